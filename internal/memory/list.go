package memory

import "iter"

// List is an ordered, append-only-by-default collection. Lookups are linear
// scans returning the first match. The zero value is an empty list.
type List[T any] struct {
	items []T
}

// Append adds v at the end of the list.
func (l *List[T]) Append(v T) {
	l.items = append(l.items, v)
}

// Index returns the position of the first element for which match returns
// true, or -1.
func (l *List[T]) Index(match func(T) bool) int {
	for i, v := range l.items {
		if match(v) {
			return i
		}
	}
	return -1
}

// At returns a pointer to the element at i for in-place mutation.
// The pointer is invalidated by the next Append or RemoveAt.
func (l *List[T]) At(i int) *T {
	return &l.items[i]
}

// RemoveAt deletes the element at i, preserving the order of the rest.
func (l *List[T]) RemoveAt(i int) {
	copy(l.items[i:], l.items[i+1:])
	var zero T
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// All yields every element in order, passing each through clone first so
// callers never hold references into the list. The sequence reads the list
// when ranged, not when All is called.
func (l *List[T]) All(clone func(T) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.items {
			if clone != nil {
				v = clone(v)
			}
			if !yield(v) {
				return
			}
		}
	}
}
