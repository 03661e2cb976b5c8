// Package optional provides a JSON-aware optional value for partial updates.
package optional

import "encoding/json"

// Value holds a T that may be absent. A JSON null or a missing key both
// leave the value unset.
type Value[T any] struct {
	v   T
	set bool
}

// Some returns a set Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// IsSet reports whether a value was provided.
func (o Value[T]) IsSet() bool { return o.set }

// Get returns the held value and whether it was set.
func (o Value[T]) Get() (T, bool) { return o.v, o.set }

// OrElse returns the held value, or def when unset.
func (o Value[T]) OrElse(def T) T {
	if o.set {
		return o.v
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		var zero T
		o.v, o.set = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &o.v); err != nil {
		return err
	}
	o.set = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
