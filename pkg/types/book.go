// Book entity for the library lending tracker.
package types

import "strings"

// Book is one copy in the library. Title is the natural key and is compared
// case-insensitively.
type Book struct {
	Title        string
	IsCheckedOut bool
}

// HasTitle reports whether title matches the book's title, ignoring case.
func (b Book) HasTitle(title string) bool {
	return strings.EqualFold(b.Title, title)
}

// CheckOut marks the book as borrowed.
// Returns ErrAlreadyCheckedOut if someone already holds it.
func (b *Book) CheckOut() error {
	if b.IsCheckedOut {
		return ErrAlreadyCheckedOut
	}
	b.IsCheckedOut = true
	return nil
}

// Return marks the book as available again. Idempotent.
func (b *Book) Return() {
	b.IsCheckedOut = false
}

// Status returns "checked out" or "available".
func (b Book) Status() string {
	if b.IsCheckedOut {
		return "checked out"
	}
	return "available"
}
