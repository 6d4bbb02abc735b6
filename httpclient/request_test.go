package httpclient

import (
	"testing"
)

func TestEncodeQueryPreservesInsertionOrder(t *testing.T) {
	var req Request
	req.AddQuery("name", "engine")
	req.AddQuery("category", "Automotive")
	req.AddQuery("page", "2")
	req.AddQuery("limit", "5")

	got := encodeQuery(req.Query)
	want := "name=engine&category=Automotive&page=2&limit=5"
	if got != want {
		t.Errorf("encodeQuery() = %q, want %q", got, want)
	}
}

func TestEncodeQueryEscaping(t *testing.T) {
	tests := []struct {
		name   string
		params []Param
		want   string
	}{
		{
			name:   "empty",
			params: nil,
			want:   "",
		},
		{
			name:   "single",
			params: []Param{{"q", "bolt"}},
			want:   "q=bolt",
		},
		{
			name:   "spaces and symbols",
			params: []Param{{"name", "brake pad"}, {"filter", "price>10"}},
			want:   "name=brake+pad&filter=price%3E10",
		},
		{
			name:   "duplicate keys keep both",
			params: []Param{{"tag", "a"}, {"tag", "b"}},
			want:   "tag=a&tag=b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeQuery(tt.params); got != tt.want {
				t.Errorf("encodeQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestSetHeader(t *testing.T) {
	var req Request
	req.SetHeader("X-Custom", "one")
	req.SetHeader("X-Custom", "two")

	if got := req.Headers["X-Custom"]; got != "two" {
		t.Errorf("Headers[X-Custom] = %q, want %q", got, "two")
	}
}

func TestResponseStatusHelpers(t *testing.T) {
	tests := []struct {
		status    int
		isSuccess bool
		isError   bool
	}{
		{200, true, false},
		{204, true, false},
		{301, false, false},
		{404, false, true},
		{503, false, true},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.status}
		if resp.IsSuccess() != tt.isSuccess {
			t.Errorf("status %d: IsSuccess() = %v, want %v", tt.status, resp.IsSuccess(), tt.isSuccess)
		}
		if resp.IsError() != tt.isError {
			t.Errorf("status %d: IsError() = %v, want %v", tt.status, resp.IsError(), tt.isError)
		}
	}
}

func TestResponseIsJSON(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"Application/JSON", true},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		resp := &Response{Headers: map[string]string{"Content-Type": tt.contentType}}
		if got := resp.IsJSON(); got != tt.want {
			t.Errorf("IsJSON(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}
