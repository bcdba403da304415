package normalize

import (
	"github.com/goccy/go-json"
)

// Option holds a value that a payload may legitimately leave out.
// An absent Option marshals to null.
type Option[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{value: v, set: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Option[T]) IsSet() bool {
	return o.set
}

// IsZero reports absence, so omitzero-aware encoders can skip the field.
func (o Option[T]) IsZero() bool {
	return !o.set
}

func (o Option[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
