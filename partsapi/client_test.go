package partsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/partsearch/partsearch/httpclient"
)

// recordingTransport counts round trips and replays a canned response.
type recordingTransport struct {
	calls int
	resp  *httpclient.Response
	err   error
}

func (t *recordingTransport) RoundTrip(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	return t.resp, nil
}

func jsonResponse(status int, body string) *httpclient.Response {
	var data any
	_ = json.Unmarshal([]byte(body), &data)
	return &httpclient.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(body),
		Data:       data,
	}
}

func newServerClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(ClientConfig{BaseURL: srv.URL, RetryAttempts: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client, srv
}

func TestSearchParts(t *testing.T) {
	client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parts/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.RawQuery; got != "name=engine&category=Automotive&page=2&limit=5" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"parts": [{"id": "p-1", "partNumber": "PN-1", "name": "Engine Mount",
				"price": 49.99, "quantity": 12, "status": "active", "category": "Automotive",
				"createdAt": "2025-01-15T08:00:00Z", "updatedAt": "2025-01-16T08:00:00Z"}],
			"total": 11, "page": 2, "limit": 5, "totalPages": 3
		}`))
	}))

	result, err := client.SearchParts(context.Background(), SearchCriteria{
		Name:     "engine",
		Category: "Automotive",
		Page:     2,
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("SearchParts() error = %v", err)
	}
	if result.Total != 11 || result.TotalPages != 3 {
		t.Errorf("pagination = total %d / pages %d", result.Total, result.TotalPages)
	}
	if len(result.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(result.Parts))
	}
	part := result.Parts[0]
	if part.Name != "Engine Mount" || part.Status != StatusActive {
		t.Errorf("part = %+v", part)
	}
	if part.CreatedAt.IsZero() {
		t.Error("createdAt not parsed as a timestamp")
	}
}

func TestSearchPartsValidation(t *testing.T) {
	transport := &recordingTransport{resp: jsonResponse(200, `{}`)}
	client, err := NewWithTransport(transport)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		criteria SearchCriteria
	}{
		{"bad status", SearchCriteria{Status: "discontinued"}},
		{"negative minPrice", SearchCriteria{MinPrice: floatPtr(-1)}},
		{"negative maxPrice", SearchCriteria{MaxPrice: floatPtr(-0.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.SearchParts(context.Background(), tt.criteria)
			if err == nil {
				t.Fatal("SearchParts() error = nil, want validation error")
			}
			if httpclient.StatusCode(err) != 0 {
				t.Errorf("validation error should not carry a status code: %v", err)
			}
		})
	}
	if transport.calls != 0 {
		t.Errorf("transport called %d times, validation must fail before any network call", transport.calls)
	}
}

func TestGetPartByID(t *testing.T) {
	client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parts/abc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "abc", "partNumber": "PN-9", "name": "Gasket",
			"price": 3.25, "quantity": 0, "status": "out_of_stock", "category": "Seals",
			"createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"}`))
	}))

	part, err := client.GetPartByID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetPartByID() error = %v", err)
	}
	if part.ID != "abc" || part.Status != StatusOutOfStock {
		t.Errorf("part = %+v", part)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !part.CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", part.CreatedAt, want)
	}
}

func TestGetPartByIDNotFound(t *testing.T) {
	client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": "NOT_FOUND", "message": "part missing not found"}}`))
	}))

	_, err := client.GetPartByID(context.Background(), "missing")
	if !httpclient.IsNotFound(err) {
		t.Fatalf("GetPartByID() error = %v, want not-found", err)
	}
}

func TestGetPartByIDEmptyID(t *testing.T) {
	transport := &recordingTransport{}
	client, err := NewWithTransport(transport)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.GetPartByID(context.Background(), "  "); err == nil {
		t.Fatal("GetPartByID() error = nil, want validation error")
	}
	if transport.calls != 0 {
		t.Error("transport must not be called for an empty id")
	}
}

func TestCreatePart(t *testing.T) {
	client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/parts" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var input CreatePartInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if input.PartNumber != "PN-100" {
			t.Errorf("partNumber = %q", input.PartNumber)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "p-new", "partNumber": "PN-100", "name": "Bolt",
			"price": 0.5, "quantity": 100, "status": "active", "category": "Hardware",
			"createdAt": "2025-05-01T00:00:00Z", "updatedAt": "2025-05-01T00:00:00Z"}`))
	}))

	part, err := client.CreatePart(context.Background(), CreatePartInput{
		PartNumber: "PN-100",
		Name:       "Bolt",
		Price:      0.5,
		Quantity:   100,
		Category:   "Hardware",
	})
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if part.ID != "p-new" {
		t.Errorf("ID = %q", part.ID)
	}
}

func TestCreatePartFailsFastOnInvalidInput(t *testing.T) {
	transport := &recordingTransport{}
	client, err := NewWithTransport(transport)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input CreatePartInput
	}{
		{"missing part number", CreatePartInput{Name: "Bolt", Category: "Hardware"}},
		{"missing name", CreatePartInput{PartNumber: "PN-1", Category: "Hardware"}},
		{"negative price", CreatePartInput{PartNumber: "PN-1", Name: "Bolt", Category: "Hardware", Price: -1}},
		{"negative quantity", CreatePartInput{PartNumber: "PN-1", Name: "Bolt", Category: "Hardware", Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.CreatePart(context.Background(), tt.input); err == nil {
				t.Error("CreatePart() error = nil, want validation error")
			}
		})
	}
	if transport.calls != 0 {
		t.Errorf("transport called %d times, want 0", transport.calls)
	}
}

func TestUpdatePart(t *testing.T) {
	client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/parts/p-1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body) != 1 || body["price"] != 9.99 {
			t.Errorf("partial body = %v, want only price", body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "p-1", "partNumber": "PN-1", "name": "Bolt",
			"price": 9.99, "quantity": 5, "status": "low_stock", "category": "Hardware",
			"createdAt": "2025-05-01T00:00:00Z", "updatedAt": "2025-05-02T00:00:00Z"}`))
	}))

	part, err := client.UpdatePart(context.Background(), "p-1", UpdatePartInput{Price: floatPtr(9.99)})
	if err != nil {
		t.Fatalf("UpdatePart() error = %v", err)
	}
	if part.Price != 9.99 || part.Status != StatusLowStock {
		t.Errorf("part = %+v", part)
	}
}

func TestUpdatePartRejectsEmptyUpdate(t *testing.T) {
	transport := &recordingTransport{}
	client, err := NewWithTransport(transport)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.UpdatePart(context.Background(), "p-1", UpdatePartInput{}); err == nil {
		t.Fatal("UpdatePart() error = nil, want validation error")
	}
	if transport.calls != 0 {
		t.Error("transport must not be called for an empty update")
	}
}

func TestDeletePart(t *testing.T) {
	client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/parts/p-1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeletePart(context.Background(), "p-1"); err != nil {
		t.Fatalf("DeletePart() error = %v", err)
	}
}

func TestClientEscapesPathIDs(t *testing.T) {
	var gotPath string
	client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeletePart(context.Background(), "a/b c"); err != nil {
		t.Fatalf("DeletePart() error = %v", err)
	}
	if gotPath != "/parts/a%2Fb%20c" {
		t.Errorf("path = %q", gotPath)
	}
}
