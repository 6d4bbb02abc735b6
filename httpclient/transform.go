package httpclient

import (
	"time"
)

// Transformer post-processes a decoded response body. Transformers must be
// stateless: the same instance is shared by every request on a client.
type Transformer interface {
	// Transform rewrites v and returns the result. Implementations may
	// mutate v in place; the orchestrator owns the value and applies the
	// transformer exactly once per response.
	Transform(v any) any
}

// IdentityTransformer returns the body unchanged.
type IdentityTransformer struct{}

func (IdentityTransformer) Transform(v any) any { return v }

// defaultDateFields are the field names rewritten by NewDateFieldTransformer.
var defaultDateFields = []string{"createdAt", "updatedAt"}

// dateLayouts are tried in order when parsing a candidate date string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// DateFieldTransformer deep-traverses a decoded JSON value and promotes
// designated string fields from ISO-8601 text to time.Time, recursing into
// nested objects and arrays. Parsing is best-effort: a field that fails to
// parse keeps its original string form. Only string-typed values are
// rewritten, so applying the transformer twice is a no-op on the second
// pass.
type DateFieldTransformer struct {
	fields map[string]struct{}
}

// NewDateFieldTransformer creates a transformer for the given field names,
// defaulting to createdAt and updatedAt.
func NewDateFieldTransformer(fields ...string) *DateFieldTransformer {
	if len(fields) == 0 {
		fields = defaultDateFields
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return &DateFieldTransformer{fields: set}
}

func (t *DateFieldTransformer) Transform(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			if s, ok := child.(string); ok {
				if _, match := t.fields[k]; match {
					if parsed, ok := parseDate(s); ok {
						val[k] = parsed
					}
					continue
				}
			}
			val[k] = t.Transform(child)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = t.Transform(child)
		}
		return val
	default:
		return v
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ChainTransformer applies an ordered list of transformers, each receiving
// the previous one's output.
type ChainTransformer struct {
	transformers []Transformer
}

// Chain composes transformers into a single one.
func Chain(transformers ...Transformer) *ChainTransformer {
	return &ChainTransformer{transformers: transformers}
}

func (c *ChainTransformer) Transform(v any) any {
	for _, t := range c.transformers {
		v = t.Transform(v)
	}
	return v
}
