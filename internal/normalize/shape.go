// Package normalize turns untrusted JSON payloads into values that match a
// declared shape. Every declared primitive ends up with its declared type or
// its documented default, lists are never nil, and timestamps are strings.
// Normalization is total and pure: it never panics and never mutates its input.
package normalize

import (
	"time"
)

// Shape is a declarative description of one resource payload.
type Shape struct {
	name   string
	fields []Field
}

// NewShape declares a shape. A later field with the same name replaces an
// earlier one.
func NewShape(name string, fields ...Field) *Shape {
	s := &Shape{name: name}
	for _, f := range fields {
		s.put(f)
	}
	return s
}

// Extend returns a new shape with the fields of s followed by fields.
func (s *Shape) Extend(name string, fields ...Field) *Shape {
	out := &Shape{name: name, fields: append([]Field(nil), s.fields...)}
	for _, f := range fields {
		out.put(f)
	}
	return out
}

func (s *Shape) put(f Field) {
	for i := range s.fields {
		if s.fields[i].Name == f.Name {
			s.fields[i] = f
			return
		}
	}
	s.fields = append(s.fields, f)
}

func (s *Shape) Name() string {
	return s.name
}

// Fields returns a copy of the declared fields.
func (s *Shape) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field looks a declared field up by name.
func (s *Shape) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Normalize coerces raw into a Record using the current time for timestamp
// fields that carry nothing usable.
func (s *Shape) Normalize(raw any) Record {
	return s.NormalizeAt(raw, time.Now())
}

// NormalizeAt is Normalize with an explicit clock.
func (s *Shape) NormalizeAt(raw any, now time.Time) Record {
	obj, _ := asObject(raw)
	out := make(Record, len(s.fields))
	for _, f := range s.fields {
		if v, ok := f.normalize(obj[f.Name], now); ok {
			out[f.Name] = v
		}
	}
	return out
}

// ListOf normalizes a top-level array payload. Anything that is not an array
// yields an empty, non-nil slice.
func (s *Shape) ListOf(raw any) []Record {
	return s.ListOfAt(raw, time.Now())
}

// ListOfAt is ListOf with an explicit clock.
func (s *Shape) ListOfAt(raw any, now time.Time) []Record {
	items, ok := asList(raw)
	if !ok {
		return []Record{}
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, s.NormalizeAt(item, now))
	}
	return out
}

// normalize returns the coerced value; ok is false when an optional field
// must be omitted.
func (f Field) normalize(raw any, now time.Time) (any, bool) {
	switch f.Kind {
	case KindInt:
		if i, ok := asInt(raw); ok {
			if v, ok := f.bounded(float64(i)); ok {
				if v != float64(i) {
					return int64(v), true
				}
				return i, true
			}
		}
		if f.Optional {
			return nil, false
		}
		return f.Default.(int64), true

	case KindNumber:
		if n, ok := asFloat(raw); ok {
			if v, ok := f.bounded(n); ok {
				return v, true
			}
		}
		if f.Optional {
			return nil, false
		}
		return f.Default.(float64), true

	case KindString:
		if str, ok := raw.(string); ok && f.acceptsString(str) {
			return str, true
		}
		if f.Optional {
			return nil, false
		}
		return f.Default.(string), true

	case KindBool:
		if b, ok := raw.(bool); ok {
			return b, true
		}
		if f.Optional {
			return nil, false
		}
		return f.Default.(bool), true

	case KindTimestamp:
		if ts, ok := asTimestamp(raw); ok && !(f.Optional && isBlank(ts)) {
			return ts, true
		}
		if f.Optional {
			return nil, false
		}
		return now.UTC().Format(TimeLayout), true

	case KindDecimalString:
		if d, ok := asDecimal(raw); ok {
			return d, true
		}
		if f.Optional {
			return nil, false
		}
		return f.Default.(string), true

	case KindList:
		return f.Elem.ListOfAt(raw, now), true

	case KindObject:
		return f.Elem.NormalizeAt(raw, now), true

	case KindCounts:
		if c, ok := asCounts(raw); ok {
			return c, true
		}
		return map[string]int64{}, true
	}
	return nil, false
}
