package menu

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

// Library drives the lending menu for one borrower at a time. The borrower
// can be switched without leaving the menu; all borrowers share the store.
type Library struct {
	store types.Library
	p     *Prompter
	log   *zap.Logger
	user  string
}

// NewLibrary returns a controller for store.
func NewLibrary(store types.Library, p *Prompter, log *zap.Logger) *Library {
	return &Library{store: store, p: p, log: log}
}

// Run asks for the borrower's name, then loops over the library menu until
// exit or end of input.
func (c *Library) Run(ctx context.Context) error {
	c.p.Println("Welcome to the Library Management System")
	c.p.Println()
	if err := c.login(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	m := &Menu{
		Title:  "\nMenu:",
		Prompt: "Choose an option: ",
		Options: []Option{
			{Label: "Search for a Book", Run: c.search},
			{Label: "Borrow a Book", Run: c.borrow},
			{Label: "Check-in a Book", Run: c.checkIn},
			{Label: "View Books", Run: c.view},
			{Label: "Add a Book", Run: c.addBook},
			{Label: "My Borrowed Books", Run: c.borrowed},
			{Label: "Switch User", Run: c.switchUser},
		},
		Exit:    "Exit",
		Goodbye: "Exiting the program. Goodbye!",
	}
	return m.Run(ctx, c.p)
}

func (c *Library) login() error {
	user, err := c.p.NonBlank("Enter your name: ")
	if err != nil {
		return err
	}
	c.user = user
	c.log.Debug("borrower session started", zap.String("user", user))
	return nil
}

func (c *Library) search(ctx context.Context) error {
	title, err := c.p.Line("Enter the title of the book to search: ")
	if err != nil {
		return err
	}
	book, err := c.store.FindBook(title)
	if errors.Is(err, types.ErrNotFound) {
		c.p.Printf("The book '%s' is not in the collection.\n", title)
		return nil
	}
	if err != nil {
		return err
	}
	if book.IsCheckedOut {
		c.p.Printf("The book '%s' is checked out.\n", book.Title)
		return nil
	}
	c.p.Printf("The book '%s' is available.\n", book.Title)
	return nil
}

// held returns how many books the current user has borrowed.
func (c *Library) held() (int, error) {
	books, err := types.Collect(c.store.Borrowed(c.user))
	return len(books), err
}

func (c *Library) borrow(ctx context.Context) error {
	n, err := c.held()
	if err != nil {
		return err
	}
	if n >= c.store.BorrowLimit() {
		c.p.Printf("You have reached the borrowing limit of %d books.\n", c.store.BorrowLimit())
		return nil
	}

	title, err := c.p.Line("Enter the title of the book to borrow: ")
	if err != nil {
		return err
	}
	book, err := c.store.Borrow(c.user, title)
	switch {
	case errors.Is(err, types.ErrBorrowLimit):
		c.p.Printf("You have reached the borrowing limit of %d books.\n", c.store.BorrowLimit())
	case errors.Is(err, types.ErrAlreadyCheckedOut):
		c.p.Printf("The book '%s' is already checked out.\n", book.Title)
	case errors.Is(err, types.ErrNotFound):
		c.p.Printf("The book '%s' is not in the collection.\n", title)
	case err != nil:
		return err
	default:
		c.log.Debug("book borrowed", zap.String("user", c.user), zap.String("title", book.Title))
		c.p.Printf("You have successfully borrowed '%s'.\n", book.Title)
		return nil
	}
	c.log.Debug("borrow rejected", zap.String("user", c.user), zap.String("title", title), zap.Error(err))
	return nil
}

func (c *Library) checkIn(ctx context.Context) error {
	title, err := c.p.Line("Enter the title of the book to check in: ")
	if err != nil {
		return err
	}
	book, err := c.store.CheckIn(c.user, title)
	if errors.Is(err, types.ErrNotBorrowed) {
		c.log.Debug("check-in rejected", zap.String("user", c.user), zap.String("title", title), zap.Error(err))
		c.p.Printf("You do not have the book '%s' checked out.\n", title)
		return nil
	}
	if err != nil {
		return err
	}
	c.log.Debug("book checked in", zap.String("user", c.user), zap.String("title", book.Title))
	c.p.Printf("You have successfully checked in '%s'.\n", book.Title)
	return nil
}

func (c *Library) view(ctx context.Context) error {
	books, err := types.Collect(c.store.Books())
	if err != nil {
		return err
	}
	if len(books) == 0 {
		c.p.Println("No books in the library.")
		return nil
	}
	c.p.Println("Library Books:")
	for _, b := range books {
		c.p.Printf("- %s (%s)\n", b.Title, b.Status())
	}
	return nil
}

func (c *Library) addBook(ctx context.Context) error {
	title, err := c.p.Line("Enter the title of the new book: ")
	if err != nil {
		return err
	}
	book, err := c.store.AddBook(title)
	if errors.Is(err, types.ErrInvalidTitle) {
		c.p.Println("Book title cannot be empty.")
		return nil
	}
	if err != nil {
		return err
	}
	c.log.Debug("book added", zap.String("title", book.Title))
	c.p.Printf("Book '%s' added to the library.\n", book.Title)
	return nil
}

func (c *Library) borrowed(ctx context.Context) error {
	books, err := types.Collect(c.store.Borrowed(c.user))
	if err != nil {
		return err
	}
	if len(books) == 0 {
		c.p.Println("You have not borrowed any books.")
		return nil
	}
	c.p.Printf("Books borrowed by %s:\n", c.user)
	for _, b := range books {
		c.p.Printf("- %s\n", b.Title)
	}
	return nil
}

func (c *Library) switchUser(ctx context.Context) error {
	if err := c.login(); err != nil {
		return err
	}
	c.p.Printf("Now borrowing as %s.\n", c.user)
	return nil
}
