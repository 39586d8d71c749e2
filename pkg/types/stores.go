package types

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Inventory stores products in insertion order. Names are not unique: a
// product added under an existing name is kept but lookups return the
// first match, so the later one is shadowed.
type Inventory interface {
	// AddProduct appends p. Returns ErrInvalidName if p has no name.
	AddProduct(p Product) error

	// FindProduct returns the first product whose name matches, ignoring case.
	// Returns ErrNotFound if there is none.
	FindProduct(name string) (Product, error)

	// UpdateStock adds delta to the first matching product's stock and
	// returns the updated product. Returns ErrStockOverflow, leaving the
	// stock unchanged, if the sum does not fit in an int.
	UpdateStock(name string, delta int) (Product, error)

	// SetPrice replaces the first matching product's price.
	SetPrice(name string, price decimal.Decimal) (Product, error)

	// RemoveProduct deletes the first matching product.
	RemoveProduct(name string) error

	// Products yields every product in insertion order. The sequence can be
	// ranged over any number of times.
	Products() iter.Seq2[Product, error]

	// Len returns the number of stored products.
	Len() (int, error)
}

// Library stores books and tracks which titles each user has borrowed.
// A user may hold at most BorrowLimit books at once.
type Library interface {
	// AddBook appends a book that is not checked out. Duplicate titles are
	// allowed and shadowed by the first match.
	AddBook(title string) (Book, error)

	// FindBook returns the first book whose title matches, ignoring case.
	FindBook(title string) (Book, error)

	// Borrow checks out the first matching book to user. The borrow limit
	// is checked before the title is looked up, so ErrBorrowLimit wins
	// over ErrNotFound and ErrAlreadyCheckedOut.
	Borrow(user, title string) (Book, error)

	// CheckIn returns a book the user holds. The title is matched against
	// the user's own borrowed list only; a miss returns ErrNotBorrowed.
	CheckIn(user, title string) (Book, error)

	// Borrowed yields the books user currently holds in borrow order.
	Borrowed(user string) iter.Seq2[Book, error]

	// Books yields every book in insertion order.
	Books() iter.Seq2[Book, error]

	// Len returns the number of books in the collection.
	Len() (int, error)

	// BorrowLimit returns the per-user borrow cap.
	BorrowLimit() int
}

// Gradebook stores students keyed by unique integer ID.
type Gradebook interface {
	// AddStudent appends s. Returns ErrDuplicateID if a student with the
	// same ID exists, or ErrInvalidScore if any grade is not finite; the
	// store is left unchanged.
	AddStudent(s Student) error

	// FindStudent returns the student with the given ID.
	FindStudent(id int) (Student, error)

	// AddGrade appends g to the student's grades and returns the student.
	// Returns ErrInvalidScore for a NaN or infinite score.
	AddGrade(id int, g Grade) (Student, error)

	// Students yields every student in insertion order.
	Students() iter.Seq2[Student, error]

	// Len returns the number of students.
	Len() (int, error)
}

// TaskList stores tasks addressed by 1-based position.
type TaskList interface {
	// AddTask appends a pending task and returns its position.
	// Returns ErrInvalidDescription for a blank description.
	AddTask(description string) (int, Task, error)

	// FindTask returns the task at position. Returns ErrNotFound when the
	// position is outside 1..Len.
	FindTask(position int) (Task, error)

	// CompleteTask marks the task at position as completed. Completing a
	// completed task succeeds.
	CompleteTask(position int) (Task, error)

	// Tasks yields every task in list order.
	Tasks() iter.Seq2[Task, error]

	// Len returns the number of tasks.
	Len() (int, error)
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
