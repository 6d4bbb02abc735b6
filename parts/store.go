package parts

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Filter narrows a store search. Zero-value fields match everything.
type Filter struct {
	Name       string
	PartNumber string
	Category   string
	Status     Status
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
}

// Page bounds a result page. Page numbering starts at 1.
type Page struct {
	Number int
	Limit  int
}

func (p Page) normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	return p
}

// Store is an in-memory part store, safe for concurrent use. Parts are
// stored by value; callers always receive copies.
type Store struct {
	mu    sync.RWMutex
	parts map[string]Part
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{parts: make(map[string]Part)}
}

// Insert adds a new part, assigning its id, status, and timestamps.
func (s *Store) Insert(p Part) Part {
	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.Price = RoundPrice(p.Price)
	p.Status = DeriveStatus(p.Quantity)
	p.CreatedAt = now
	p.UpdatedAt = now

	s.mu.Lock()
	s.parts[p.ID] = p
	s.mu.Unlock()
	return p
}

// Get returns the part with the given id.
func (s *Store) Get(id string) (Part, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.parts[id]
	return p, ok
}

// FindByPartNumber returns the part with the given part number.
func (s *Store) FindByPartNumber(partNumber string) (Part, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parts {
		if p.PartNumber == partNumber {
			return p, true
		}
	}
	return Part{}, false
}

// Update applies mutate to the part with the given id and refreshes its
// derived fields. Returns false if the part does not exist.
func (s *Store) Update(id string, mutate func(*Part)) (Part, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parts[id]
	if !ok {
		return Part{}, false
	}

	mutate(&p)
	p.ID = id
	p.Price = RoundPrice(p.Price)
	p.Status = DeriveStatus(p.Quantity)
	p.UpdatedAt = time.Now().UTC()

	s.parts[id] = p
	return p, true
}

// Delete removes a part. Returns false if it does not exist.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parts[id]; !ok {
		return false
	}
	delete(s.parts, id)
	return true
}

// Count returns the number of stored parts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.parts)
}

// Search returns the page of parts matching the filter, ordered by part
// number, and the total match count.
func (s *Store) Search(filter Filter, page Page) ([]Part, int) {
	s.mu.RLock()
	matched := make([]Part, 0, len(s.parts))
	for _, p := range s.parts {
		if filter.matches(&p) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PartNumber < matched[j].PartNumber
	})

	total := len(matched)
	page = page.normalize()
	start := (page.Number - 1) * page.Limit
	if start >= total {
		return []Part{}, total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func (f *Filter) matches(p *Part) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.PartNumber != "" && !strings.EqualFold(p.PartNumber, f.PartNumber) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStock != nil && p.InStock() != *f.InStock {
		return false
	}
	return true
}
