package types

import (
	"errors"
	"fmt"
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Record store errors.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateID        = errors.New("duplicate ID")
	ErrInvalidName        = errors.New("name must not be empty")
	ErrInvalidTitle       = errors.New("title must not be empty")
	ErrInvalidDescription = errors.New("description must not be empty")
	ErrInvalidUser        = errors.New("user name must not be empty")
	ErrBorrowLimit        = errors.New("borrow limit reached")
	ErrAlreadyCheckedOut  = errors.New("book is already checked out")
	ErrStockOverflow      = errors.New("stock quantity out of range")
	ErrInvalidScore       = errors.New("score must be a finite number")
)

// ErrNotBorrowed is returned when a user checks in a title they do not hold.
// It wraps ErrNotFound so a repeated check-in reads as a lookup miss.
var ErrNotBorrowed = fmt.Errorf("book not borrowed by user: %w", ErrNotFound)
