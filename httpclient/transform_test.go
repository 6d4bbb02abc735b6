package httpclient

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDateFieldTransformerTopLevel(t *testing.T) {
	tr := NewDateFieldTransformer()
	body := map[string]any{
		"id":        "p-1",
		"createdAt": "2025-03-01T10:30:00Z",
		"updatedAt": "2025-03-02T11:00:00.500Z",
	}

	result := tr.Transform(body).(map[string]any)

	created, ok := result["createdAt"].(time.Time)
	if !ok {
		t.Fatalf("createdAt = %T, want time.Time", result["createdAt"])
	}
	if want := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC); !created.Equal(want) {
		t.Errorf("createdAt = %v, want %v", created, want)
	}
	if _, ok := result["updatedAt"].(time.Time); !ok {
		t.Errorf("updatedAt = %T, want time.Time", result["updatedAt"])
	}
	if result["id"] != "p-1" {
		t.Errorf("id = %v, want p-1", result["id"])
	}
}

func TestDateFieldTransformerRecursesIntoNestedStructures(t *testing.T) {
	raw := `{
		"parts": [
			{"id": "p-1", "createdAt": "2025-01-15T08:00:00Z"},
			{"id": "p-2", "createdAt": "2025-02-20", "meta": {"updatedAt": "2025-02-21T09:00:00Z"}}
		],
		"total": 2
	}`
	var body any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatal(err)
	}

	result := NewDateFieldTransformer().Transform(body).(map[string]any)
	parts := result["parts"].([]any)

	first := parts[0].(map[string]any)
	if _, ok := first["createdAt"].(time.Time); !ok {
		t.Errorf("parts[0].createdAt = %T, want time.Time", first["createdAt"])
	}

	second := parts[1].(map[string]any)
	if _, ok := second["createdAt"].(time.Time); !ok {
		t.Errorf("date-only parts[1].createdAt = %T, want time.Time", second["createdAt"])
	}
	meta := second["meta"].(map[string]any)
	if _, ok := meta["updatedAt"].(time.Time); !ok {
		t.Errorf("nested meta.updatedAt = %T, want time.Time", meta["updatedAt"])
	}

	if result["total"] != float64(2) {
		t.Errorf("total = %v, want 2", result["total"])
	}
}

func TestDateFieldTransformerBestEffort(t *testing.T) {
	tr := NewDateFieldTransformer()
	body := map[string]any{
		"createdAt": "not-a-date",
		"updatedAt": 12345,
	}

	result := tr.Transform(body).(map[string]any)

	if result["createdAt"] != "not-a-date" {
		t.Errorf("unparseable createdAt = %v, want original string", result["createdAt"])
	}
	if result["updatedAt"] != 12345 {
		t.Errorf("non-string updatedAt = %v, want original value", result["updatedAt"])
	}
}

func TestDateFieldTransformerIdempotent(t *testing.T) {
	tr := NewDateFieldTransformer()
	body := map[string]any{"createdAt": "2025-03-01T10:30:00Z"}

	once := tr.Transform(body).(map[string]any)
	first := once["createdAt"].(time.Time)

	twice := tr.Transform(once).(map[string]any)
	second, ok := twice["createdAt"].(time.Time)
	if !ok {
		t.Fatalf("second pass createdAt = %T, want time.Time", twice["createdAt"])
	}
	if !first.Equal(second) {
		t.Errorf("second pass changed the value: %v != %v", first, second)
	}
}

func TestDateFieldTransformerCustomFields(t *testing.T) {
	tr := NewDateFieldTransformer("shippedAt")
	body := map[string]any{
		"shippedAt": "2025-04-01T00:00:00Z",
		"createdAt": "2025-04-01T00:00:00Z",
	}

	result := tr.Transform(body).(map[string]any)

	if _, ok := result["shippedAt"].(time.Time); !ok {
		t.Errorf("shippedAt = %T, want time.Time", result["shippedAt"])
	}
	if _, ok := result["createdAt"].(string); !ok {
		t.Errorf("createdAt = %T, want untouched string", result["createdAt"])
	}
}

func TestIdentityTransformer(t *testing.T) {
	body := map[string]any{"a": 1}
	got := IdentityTransformer{}.Transform(body)
	if !reflect.DeepEqual(got, body) {
		t.Errorf("Transform() = %v, want %v", got, body)
	}
}

type upperKeyTransformer struct{}

func (upperKeyTransformer) Transform(v any) any {
	if m, ok := v.(map[string]any); ok {
		m["tagged"] = true
	}
	return v
}

func TestChainTransformerOrder(t *testing.T) {
	tr := Chain(NewDateFieldTransformer(), upperKeyTransformer{})
	body := map[string]any{"createdAt": "2025-03-01T10:30:00Z"}

	result := tr.Transform(body).(map[string]any)

	if _, ok := result["createdAt"].(time.Time); !ok {
		t.Errorf("chained date transform did not run")
	}
	if result["tagged"] != true {
		t.Errorf("second transformer did not run")
	}
}
