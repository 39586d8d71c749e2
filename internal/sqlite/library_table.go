package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.Library = (*libraryTable)(nil)

// libraryTable stores books and the loans that mark who holds each checked
// out title. Loans record the canonical title; borrowers are matched exactly.
type libraryTable struct {
	backend *Backend
	limit   int
}

const selectBooks = "SELECT seq, title, checked_out FROM books ORDER BY seq"

type loan struct {
	Borrower string
	Title    string
}

func scanBook(rows *sql.Rows) (int64, types.Book, error) {
	var (
		seq int64
		b   types.Book
	)
	if err := rows.Scan(&seq, &b.Title, &b.IsCheckedOut); err != nil {
		return 0, types.Book{}, fmt.Errorf("scanning book: %w", err)
	}
	return seq, b, nil
}

func scanLoan(rows *sql.Rows) (int64, loan, error) {
	var (
		seq int64
		l   loan
	)
	if err := rows.Scan(&seq, &l.Borrower, &l.Title); err != nil {
		return 0, loan{}, fmt.Errorf("scanning loan: %w", err)
	}
	return seq, l, nil
}

func (lt *libraryTable) lock() (*sql.DB, func(), error) {
	return lt.backend.use(func() bool { return lt.backend.library == lt })
}

func findBook(q querier, title string) (int64, types.Book, error) {
	return queryFirst(q, scanBook, func(b types.Book) bool { return b.HasTitle(title) }, selectBooks)
}

func (lt *libraryTable) AddBook(title string) (types.Book, error) {
	db, unlock, err := lt.lock()
	if err != nil {
		return types.Book{}, err
	}
	defer unlock()

	if strings.TrimSpace(title) == "" {
		return types.Book{}, types.ErrInvalidTitle
	}
	if _, err := db.Exec("INSERT INTO books (title) VALUES (?)", title); err != nil {
		return types.Book{}, fmt.Errorf("inserting book: %w", err)
	}
	return types.Book{Title: title}, nil
}

func (lt *libraryTable) FindBook(title string) (types.Book, error) {
	db, unlock, err := lt.lock()
	if err != nil {
		return types.Book{}, err
	}
	defer unlock()

	_, b, err := findBook(db, title)
	return b, err
}

func (lt *libraryTable) Borrow(user, title string) (types.Book, error) {
	db, unlock, err := lt.lock()
	if err != nil {
		return types.Book{}, err
	}
	defer unlock()

	if user == "" {
		return types.Book{}, types.ErrInvalidUser
	}

	tx, err := db.Begin()
	if err != nil {
		return types.Book{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var held int
	if err := tx.QueryRow("SELECT COUNT(*) FROM loans WHERE borrower = ?", user).Scan(&held); err != nil {
		return types.Book{}, fmt.Errorf("counting loans: %w", err)
	}
	if held >= lt.limit {
		return types.Book{}, types.ErrBorrowLimit
	}

	seq, book, err := findBook(tx, title)
	if err != nil {
		return types.Book{}, err
	}
	if err := book.CheckOut(); err != nil {
		return book, err
	}
	if _, err := tx.Exec("UPDATE books SET checked_out = 1 WHERE seq = ?", seq); err != nil {
		return types.Book{}, fmt.Errorf("checking out book: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO loans (borrower, title) VALUES (?, ?)", user, book.Title); err != nil {
		return types.Book{}, fmt.Errorf("recording loan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return types.Book{}, fmt.Errorf("committing loan: %w", err)
	}
	return book, nil
}

func (lt *libraryTable) CheckIn(user, title string) (types.Book, error) {
	db, unlock, err := lt.lock()
	if err != nil {
		return types.Book{}, err
	}
	defer unlock()

	if user == "" {
		return types.Book{}, types.ErrInvalidUser
	}

	tx, err := db.Begin()
	if err != nil {
		return types.Book{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	loanSeq, l, err := queryFirst(tx, scanLoan,
		func(l loan) bool { return strings.EqualFold(l.Title, title) },
		"SELECT seq, borrower, title FROM loans WHERE borrower = ? ORDER BY seq", user,
	)
	if errors.Is(err, types.ErrNotFound) {
		return types.Book{}, types.ErrNotBorrowed
	}
	if err != nil {
		return types.Book{}, err
	}
	if _, err := tx.Exec("DELETE FROM loans WHERE seq = ?", loanSeq); err != nil {
		return types.Book{}, fmt.Errorf("deleting loan: %w", err)
	}

	book := types.Book{Title: l.Title}
	var bookSeq int64
	err = tx.QueryRow(
		"SELECT seq FROM books WHERE title = ? AND checked_out = 1 ORDER BY seq LIMIT 1", l.Title,
	).Scan(&bookSeq)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return types.Book{}, fmt.Errorf("finding loaned book: %w", err)
	default:
		if _, err := tx.Exec("UPDATE books SET checked_out = 0 WHERE seq = ?", bookSeq); err != nil {
			return types.Book{}, fmt.Errorf("returning book: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Book{}, fmt.Errorf("committing check-in: %w", err)
	}
	return book, nil
}

func (lt *libraryTable) Borrowed(user string) iter.Seq2[types.Book, error] {
	return snapshot(func() ([]types.Book, error) {
		db, unlock, err := lt.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()

		_, loans, err := queryAll(db, scanLoan,
			"SELECT seq, borrower, title FROM loans WHERE borrower = ? ORDER BY seq", user)
		if err != nil {
			return nil, err
		}
		books := make([]types.Book, 0, len(loans))
		for _, l := range loans {
			books = append(books, types.Book{Title: l.Title, IsCheckedOut: true})
		}
		return books, nil
	})
}

func (lt *libraryTable) Books() iter.Seq2[types.Book, error] {
	return snapshot(func() ([]types.Book, error) {
		db, unlock, err := lt.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()
		_, all, err := queryAll(db, scanBook, selectBooks)
		return all, err
	})
}

func (lt *libraryTable) Len() (int, error) {
	db, unlock, err := lt.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return count(db, "books")
}

func (lt *libraryTable) BorrowLimit() int {
	return lt.limit
}
