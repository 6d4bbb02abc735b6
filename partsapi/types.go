package partsapi

import (
	"strconv"
	"time"

	"github.com/partsearch/partsearch/httpclient"
)

// PartStatus is the stock status of a part.
type PartStatus string

const (
	StatusActive     PartStatus = "active"
	StatusInactive   PartStatus = "inactive"
	StatusLowStock   PartStatus = "low_stock"
	StatusOutOfStock PartStatus = "out_of_stock"
)

// Valid reports whether the status is one of the known values.
func (s PartStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// PartRecord is the inventory item exchanged with the backend.
type PartRecord struct {
	ID          string     `json:"id"`
	PartNumber  string     `json:"partNumber"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Status      PartStatus `json:"status"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SearchResult is the paginated response of a part search.
type SearchResult struct {
	Parts      []PartRecord `json:"parts"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

// SearchCriteria filters and paginates a part search. Zero-value fields are
// omitted from the query string; set fields are encoded in declaration
// order.
type SearchCriteria struct {
	Name       string
	PartNumber string
	Category   string
	Status     PartStatus
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	Page       int
	Limit      int
}

// Query renders the criteria as ordered query parameters.
func (c SearchCriteria) Query() []httpclient.Param {
	var params []httpclient.Param
	add := func(key, value string) {
		params = append(params, httpclient.Param{Key: key, Value: value})
	}

	if c.Name != "" {
		add("name", c.Name)
	}
	if c.PartNumber != "" {
		add("partNumber", c.PartNumber)
	}
	if c.Category != "" {
		add("category", c.Category)
	}
	if c.Status != "" {
		add("status", string(c.Status))
	}
	if c.MinPrice != nil {
		add("minPrice", formatPrice(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		add("maxPrice", formatPrice(*c.MaxPrice))
	}
	if c.InStock != nil {
		add("inStock", strconv.FormatBool(*c.InStock))
	}
	if c.Page > 0 {
		add("page", strconv.Itoa(c.Page))
	}
	if c.Limit > 0 {
		add("limit", strconv.Itoa(c.Limit))
	}
	return params
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CreatePartInput is the payload for creating a part.
type CreatePartInput struct {
	PartNumber  string  `json:"partNumber" validate:"required,max=64"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description,omitempty" validate:"max=1024"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,max=128"`
}

// UpdatePartInput is a partial update payload. Nil fields are left
// unchanged by the server.
type UpdatePartInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1024"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=128"`
}

// IsEmpty reports whether the update carries no changes.
func (u UpdatePartInput) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Quantity == nil && u.Category == nil
}
