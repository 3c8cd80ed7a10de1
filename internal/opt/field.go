// Package opt provides Field, an update value that is either unset or
// explicitly set. It keeps "leave unchanged" apart from "set to the zero value".
package opt

// Field holds an optional value of type T.
//
// The zero Field is unset:
//
//	var f opt.Field[string] // unset
//	f = opt.Set("")         // set, to the empty string
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Unset returns an empty Field.
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// IsSet reports whether the field carries a value.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// OrElse returns the value if set and def otherwise.
func (f Field[T]) OrElse(def T) T {
	if f.set {
		return f.value
	}
	return def
}
