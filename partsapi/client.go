package partsapi

import (
	"context"
	"net/url"
	"strings"

	"github.com/partsearch/partsearch/httpclient"
	"github.com/partsearch/partsearch/validation"
)

// Client is the parts API client. Safe for concurrent use.
type Client struct {
	http *httpclient.Client
}

// NewClient wraps an httpclient.Client with parts operations.
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// SearchParts searches parts matching the criteria and returns one page of
// results.
func (c *Client) SearchParts(ctx context.Context, criteria SearchCriteria) (*SearchResult, error) {
	if criteria.Status != "" && !criteria.Status.Valid() {
		return nil, httpclient.NewValidationError("status must be one of: active, inactive, low_stock, out_of_stock")
	}
	if criteria.MinPrice != nil && *criteria.MinPrice < 0 {
		return nil, httpclient.NewValidationError("minPrice must be non-negative")
	}
	if criteria.MaxPrice != nil && *criteria.MaxPrice < 0 {
		return nil, httpclient.NewValidationError("maxPrice must be non-negative")
	}

	opts := make([]httpclient.RequestOption, 0, len(criteria.Query()))
	for _, p := range criteria.Query() {
		opts = append(opts, httpclient.WithQuery(p.Key, p.Value))
	}

	resp, err := httpclient.Get[SearchResult](c.http, ctx, "/parts/search", opts...)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetPartByID fetches a single part.
func (c *Client) GetPartByID(ctx context.Context, id string) (*PartRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, httpclient.NewValidationError("part id is required")
	}

	resp, err := httpclient.Get[PartRecord](c.http, ctx, "/parts/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreatePart creates a new part and returns the created record.
func (c *Client) CreatePart(ctx context.Context, input CreatePartInput) (*PartRecord, error) {
	if err := validation.Validate(input); err != nil {
		return nil, httpclient.NewValidationError(err.Error())
	}

	resp, err := httpclient.Post[PartRecord](c.http, ctx, "/parts", input)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdatePart applies a partial update and returns the updated record.
func (c *Client) UpdatePart(ctx context.Context, id string, input UpdatePartInput) (*PartRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, httpclient.NewValidationError("part id is required")
	}
	if input.IsEmpty() {
		return nil, httpclient.NewValidationError("update requires at least one field")
	}
	if err := validation.Validate(input); err != nil {
		return nil, httpclient.NewValidationError(err.Error())
	}

	resp, err := httpclient.Put[PartRecord](c.http, ctx, "/parts/"+url.PathEscape(id), input)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeletePart removes a part. Success is signaled by the status code alone.
func (c *Client) DeletePart(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return httpclient.NewValidationError("part id is required")
	}
	return httpclient.Delete(c.http, ctx, "/parts/"+url.PathEscape(id))
}
