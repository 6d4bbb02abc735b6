package parts

import (
	"context"
	"time"

	"github.com/partsearch/partsearch/errors"
	"github.com/partsearch/partsearch/logger"
	"github.com/partsearch/partsearch/util"
	"github.com/partsearch/partsearch/validation"
)

// CreateInput is the payload for creating a part.
type CreateInput struct {
	PartNumber  string  `json:"partNumber" validate:"required,max=64"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=1024"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,max=128"`
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=1024"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=128"`
}

func (u UpdateInput) isEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Quantity == nil && u.Category == nil
}

// SearchQuery is the service-level search request.
type SearchQuery struct {
	Filter Filter
	Page   Page
}

// SearchPage is one page of search results with pagination metadata.
type SearchPage struct {
	Parts      []Part `json:"parts"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

// Service implements the parts use cases over a Store.
type Service struct {
	store  *Store
	events EventPublisher
	log    *logger.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithEvents publishes part change events to p.
func WithEvents(p EventPublisher) ServiceOption {
	return func(s *Service) { s.events = p }
}

// NewService creates a parts service.
func NewService(store *Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		log:   logger.WithComponent("parts"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) publish(eventType EventType, p *Part, id string) {
	if s.events == nil {
		return
	}
	e := Event{
		Type:   eventType,
		PartID: id,
		Time:   time.Now().UTC(),
	}
	if p != nil {
		e.PartID = p.ID
		e.Category = p.Category
		e.Part = p
	}
	s.events.Publish(e)
}

// Search returns one page of parts matching the query.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	if q.Filter.Status != "" {
		switch q.Filter.Status {
		case StatusActive, StatusInactive, StatusLowStock, StatusOutOfStock:
		default:
			return nil, errors.Validation("status must be one of: active, inactive, low_stock, out_of_stock")
		}
	}
	if q.Filter.MinPrice != nil && *q.Filter.MinPrice < 0 {
		return nil, errors.Validation("minPrice must be non-negative")
	}
	if q.Filter.MaxPrice != nil && *q.Filter.MaxPrice < 0 {
		return nil, errors.Validation("maxPrice must be non-negative")
	}

	page := q.Page.normalize()
	matched, total := s.store.Search(q.Filter, page)

	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}

	return &SearchPage{
		Parts:      matched,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns a part by id.
func (s *Service) Get(ctx context.Context, id string) (*Part, error) {
	if err := validation.Required("id", id); err != nil {
		return nil, err
	}
	p, ok := s.store.Get(id)
	if !ok {
		return nil, errors.NotFound("part", id)
	}
	return &p, nil
}

// Create validates the input and stores a new part. Part numbers are
// unique.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Part, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}
	if _, exists := s.store.FindByPartNumber(input.PartNumber); exists {
		return nil, errors.AlreadyExists("part", input.PartNumber)
	}

	p := s.store.Insert(Part{
		PartNumber:  util.SanitizeString(input.PartNumber),
		Name:        util.SanitizeString(input.Name),
		Description: util.SanitizeString(input.Description),
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    util.SanitizeString(input.Category),
	})

	s.log.Info("part created", logger.Fields(
		logger.FieldOperation, "create_part",
		"part_id", p.ID,
		"part_number", p.PartNumber,
	))
	s.publish(EventCreated, &p, "")
	return &p, nil
}

// Update applies a partial update to a part.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Part, error) {
	if err := validation.Required("id", id); err != nil {
		return nil, err
	}
	if input.isEmpty() {
		return nil, errors.Validation("update requires at least one field")
	}
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	p, ok := s.store.Update(id, func(p *Part) {
		if input.Name != nil {
			p.Name = util.SanitizeString(*input.Name)
		}
		if input.Description != nil {
			p.Description = util.SanitizeString(*input.Description)
		}
		if input.Price != nil {
			p.Price = *input.Price
		}
		if input.Quantity != nil {
			p.Quantity = *input.Quantity
		}
		if input.Category != nil {
			p.Category = util.SanitizeString(*input.Category)
		}
	})
	if !ok {
		return nil, errors.NotFound("part", id)
	}

	s.log.Info("part updated", logger.Fields(
		logger.FieldOperation, "update_part",
		"part_id", id,
	))
	s.publish(EventUpdated, &p, "")
	return &p, nil
}

// Delete removes a part.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validation.Required("id", id); err != nil {
		return err
	}
	if !s.store.Delete(id) {
		return errors.NotFound("part", id)
	}

	s.log.Info("part deleted", logger.Fields(
		logger.FieldOperation, "delete_part",
		"part_id", id,
	))
	s.publish(EventDeleted, nil, id)
	return nil
}
