package entity

import (
	"bytes"
	"encoding/json"
)

// Optional is a tagged field for partial updates.
// Set is false when the field was absent; Null is true when it was present as JSON null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a provided value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a provided-but-null value.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Get returns the value and whether it carries one (provided and not null).
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && !o.Null
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// which is what makes "absent" distinguishable from "null".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
