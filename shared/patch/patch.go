// Package patch models partial-update fields where "omitted", "explicitly
// null" and "set to a value" are three distinct states. A plain pointer
// conflates the first two, which breaks nullable columns like a todo's
// description.
package patch

import "encoding/json"

// Field is a presence-aware JSON field. Tag struct members with `omitzero`
// so unset fields disappear from the wire again on the client side.
type Field[T any] struct {
	value   T
	present bool
	null    bool
}

// Set returns a Field carrying a value.
func Set[T any](value T) Field[T] {
	return Field[T]{value: value, present: true}
}

// Null returns a Field explicitly set to JSON null.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the field appeared in the payload at all.
func (f Field[T]) Present() bool {
	return f.present
}

// Null reports whether the field was explicitly null.
func (f Field[T]) Null() bool {
	return f.present && f.null
}

// Value returns the decoded value; the zero value when absent or null.
func (f Field[T]) Value() T {
	return f.value
}

// IsZero makes `omitzero` drop fields that were never set.
func (f Field[T]) IsZero() bool {
	return !f.present
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true

	if string(data) == "null" {
		f.null = true

		return nil
	}

	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.null {
		return []byte("null"), nil
	}

	return json.Marshal(f.value)
}
