// Package cycle provides a fixed-size circular selection over a set of values.
package cycle

import "errors"

// ErrEmpty is returned when a Ring is built from no values.
var ErrEmpty = errors.New("cycle: empty value set")

// Ring holds a non-empty ordered set of values and a cursor into it.
// Next rotates the cursor forward by one, wrapping at the end.
type Ring[T any] struct {
	values []T
	cursor int
}

// New builds a Ring positioned on the first value.
// The input slice is copied.
func New[T any](values []T) (*Ring[T], error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	vs := make([]T, len(values))
	copy(vs, values)
	return &Ring[T]{values: vs}, nil
}

// MustNew is like New but panics on an empty input.
func MustNew[T any](values []T) *Ring[T] {
	r, err := New(values)
	if err != nil {
		panic(err)
	}
	return r
}

// Current returns the value under the cursor.
func (r *Ring[T]) Current() T {
	return r.values[r.cursor]
}

// Next advances the cursor one position and returns the new current value.
func (r *Ring[T]) Next() T {
	r.cursor = (r.cursor + 1) % len(r.values)
	return r.values[r.cursor]
}

// Index returns the cursor position.
func (r *Ring[T]) Index() int {
	return r.cursor
}

// Seek moves the cursor to position i (wrapped into range) and returns the value there.
// Used to restore a previously saved selection.
func (r *Ring[T]) Seek(i int) T {
	n := len(r.values)
	r.cursor = ((i % n) + n) % n
	return r.values[r.cursor]
}

// Len returns the number of values.
func (r *Ring[T]) Len() int {
	return len(r.values)
}

// Values returns a copy of the values in order, starting from the first.
func (r *Ring[T]) Values() []T {
	vs := make([]T, len(r.values))
	copy(vs, r.values)
	return vs
}
