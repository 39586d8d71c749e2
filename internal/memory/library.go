package memory

import (
	"iter"
	"strings"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.Library = (*libraryStore)(nil)

// libraryStore keeps books in insertion order and, per user, the canonical
// titles of the books that user holds. User names are matched exactly.
type libraryStore struct {
	backend  *Backend
	limit    int
	books    List[types.Book]
	borrowed map[string][]string
}

func (s *libraryStore) check() error {
	if s.backend.library != s {
		return types.ErrDetached
	}
	return nil
}

// seed appends a title during Attach, before the backend is marked attached.
func (s *libraryStore) seed(title string) error {
	if strings.TrimSpace(title) == "" {
		return types.ErrInvalidTitle
	}
	s.books.Append(types.Book{Title: title})
	return nil
}

func (s *libraryStore) AddBook(title string) (types.Book, error) {
	if err := s.check(); err != nil {
		return types.Book{}, err
	}
	if err := s.seed(title); err != nil {
		return types.Book{}, err
	}
	return types.Book{Title: title}, nil
}

func (s *libraryStore) find(title string) int {
	return s.books.Index(func(b types.Book) bool { return b.HasTitle(title) })
}

func (s *libraryStore) FindBook(title string) (types.Book, error) {
	if err := s.check(); err != nil {
		return types.Book{}, err
	}
	i := s.find(title)
	if i < 0 {
		return types.Book{}, types.ErrNotFound
	}
	return *s.books.At(i), nil
}

func (s *libraryStore) Borrow(user, title string) (types.Book, error) {
	if err := s.check(); err != nil {
		return types.Book{}, err
	}
	if user == "" {
		return types.Book{}, types.ErrInvalidUser
	}
	if len(s.borrowed[user]) >= s.limit {
		return types.Book{}, types.ErrBorrowLimit
	}
	i := s.find(title)
	if i < 0 {
		return types.Book{}, types.ErrNotFound
	}
	book := s.books.At(i)
	if err := book.CheckOut(); err != nil {
		return *book, err
	}
	s.borrowed[user] = append(s.borrowed[user], book.Title)
	return *book, nil
}

func (s *libraryStore) CheckIn(user, title string) (types.Book, error) {
	if err := s.check(); err != nil {
		return types.Book{}, err
	}
	if user == "" {
		return types.Book{}, types.ErrInvalidUser
	}
	held := s.borrowed[user]
	j := -1
	for k, t := range held {
		if strings.EqualFold(t, title) {
			j = k
			break
		}
	}
	if j < 0 {
		return types.Book{}, types.ErrNotBorrowed
	}
	canonical := held[j]
	s.borrowed[user] = append(held[:j], held[j+1:]...)

	// The held title resolves to the same first match it was borrowed from.
	var book types.Book
	if i := s.books.Index(func(b types.Book) bool { return b.Title == canonical && b.IsCheckedOut }); i >= 0 {
		b := s.books.At(i)
		b.Return()
		book = *b
	} else {
		book = types.Book{Title: canonical}
	}
	return book, nil
}

func (s *libraryStore) Borrowed(user string) iter.Seq2[types.Book, error] {
	return func(yield func(types.Book, error) bool) {
		if err := s.check(); err != nil {
			yield(types.Book{}, err)
			return
		}
		for _, title := range s.borrowed[user] {
			if !yield(types.Book{Title: title, IsCheckedOut: true}, nil) {
				return
			}
		}
	}
}

func (s *libraryStore) Books() iter.Seq2[types.Book, error] {
	return func(yield func(types.Book, error) bool) {
		if err := s.check(); err != nil {
			yield(types.Book{}, err)
			return
		}
		for b := range s.books.All(nil) {
			if !yield(b, nil) {
				return
			}
		}
	}
}

func (s *libraryStore) Len() (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.books.Len(), nil
}

func (s *libraryStore) BorrowLimit() int {
	return s.limit
}
