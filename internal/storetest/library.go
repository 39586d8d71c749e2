package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func library(t *testing.T, factory Factory, cfg types.Config) types.Library {
	t.Helper()
	lib, err := Attach(t, factory, cfg).Library()
	require.NoError(t, err)
	return lib
}

func titles(t *testing.T, books []types.Book) []string {
	t.Helper()
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func testLibrary(t *testing.T, backendName string, factory Factory) {
	t.Run("seeded in order", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))
		books, err := types.Collect(lib.Books())
		require.NoError(t, err)
		assert.Equal(t, types.DefaultLibrarySeed, titles(t, books))
		for _, b := range books {
			assert.False(t, b.IsCheckedOut)
		}
		assert.Equal(t, types.DefaultBorrowLimit, lib.BorrowLimit())
	})

	t.Run("custom seed and limit", func(t *testing.T) {
		cfg := Config(backendName)
		cfg.LibrarySeed = []string{"Go in Action"}
		cfg.BorrowLimit = 1
		lib := library(t, factory, cfg)

		n, err := lib.Len()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, lib.BorrowLimit())
	})

	t.Run("find is case-insensitive", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))
		got, err := lib.FindBook("c# fundamentals")
		require.NoError(t, err)
		assert.Equal(t, "C# Fundamentals", got.Title)

		_, err = lib.FindBook("Rust Fundamentals")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("borrow and check in across sessions", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))

		got, err := lib.Borrow("Alice", "C# Fundamentals")
		require.NoError(t, err)
		assert.True(t, got.IsCheckedOut)

		_, err = lib.Borrow("Bob", "c# fundamentals")
		assert.ErrorIs(t, err, types.ErrAlreadyCheckedOut)

		got, err = lib.CheckIn("Alice", "C# FUNDAMENTALS")
		require.NoError(t, err)
		assert.Equal(t, "C# Fundamentals", got.Title)
		assert.False(t, got.IsCheckedOut)

		got, err = lib.Borrow("Bob", "C# Fundamentals")
		require.NoError(t, err)
		assert.True(t, got.IsCheckedOut)
	})

	t.Run("borrow updates flag and borrower list, check in reverses both", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))

		_, err := lib.Borrow("Alice", "introduction to .net")
		require.NoError(t, err)

		book, err := lib.FindBook("Introduction to .NET")
		require.NoError(t, err)
		assert.True(t, book.IsCheckedOut)
		held, err := types.Collect(lib.Borrowed("Alice"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Introduction to .NET"}, titles(t, held))

		_, err = lib.CheckIn("Alice", "Introduction to .NET")
		require.NoError(t, err)

		book, err = lib.FindBook("Introduction to .NET")
		require.NoError(t, err)
		assert.False(t, book.IsCheckedOut)
		held, err = types.Collect(lib.Borrowed("Alice"))
		require.NoError(t, err)
		assert.Empty(t, held)

		_, err = lib.CheckIn("Alice", "Introduction to .NET")
		assert.ErrorIs(t, err, types.ErrNotBorrowed)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("check in only sees the user's own books", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))
		_, err := lib.Borrow("Alice", "C# Fundamentals")
		require.NoError(t, err)

		_, err = lib.CheckIn("Bob", "C# Fundamentals")
		assert.ErrorIs(t, err, types.ErrNotBorrowed)

		book, err := lib.FindBook("C# Fundamentals")
		require.NoError(t, err)
		assert.True(t, book.IsCheckedOut)
	})

	t.Run("borrow cap applies regardless of title", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))
		for _, title := range types.DefaultLibrarySeed[:3] {
			_, err := lib.Borrow("Alice", title)
			require.NoError(t, err, title)
		}

		_, err := lib.Borrow("Alice", types.DefaultLibrarySeed[3])
		assert.ErrorIs(t, err, types.ErrBorrowLimit)
		_, err = lib.Borrow("Alice", "No Such Book")
		assert.ErrorIs(t, err, types.ErrBorrowLimit)
		_, err = lib.Borrow("Alice", types.DefaultLibrarySeed[0])
		assert.ErrorIs(t, err, types.ErrBorrowLimit)

		book, err := lib.FindBook(types.DefaultLibrarySeed[3])
		require.NoError(t, err)
		assert.False(t, book.IsCheckedOut, "rejected borrow must not mutate")

		// Another user is unaffected by Alice's cap.
		_, err = lib.Borrow("Bob", types.DefaultLibrarySeed[3])
		require.NoError(t, err)

		_, err = lib.CheckIn("Alice", types.DefaultLibrarySeed[1])
		require.NoError(t, err)
		_, err = lib.Borrow("Alice", types.DefaultLibrarySeed[1])
		require.NoError(t, err)
	})

	t.Run("borrow of unknown title reports not found", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))
		_, err := lib.Borrow("Alice", "Unknown")
		assert.ErrorIs(t, err, types.ErrNotFound)
		held, err := types.Collect(lib.Borrowed("Alice"))
		require.NoError(t, err)
		assert.Empty(t, held)
	})

	t.Run("empty user is rejected", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))
		_, err := lib.Borrow("", "C# Fundamentals")
		assert.ErrorIs(t, err, types.ErrInvalidUser)
		_, err = lib.CheckIn("", "C# Fundamentals")
		assert.ErrorIs(t, err, types.ErrInvalidUser)
	})

	t.Run("added books can be borrowed and duplicates are shadowed", func(t *testing.T) {
		cfg := Config(backendName)
		cfg.LibrarySeed = nil
		lib := library(t, factory, cfg)

		_, err := lib.AddBook(" ")
		assert.ErrorIs(t, err, types.ErrInvalidTitle)

		added, err := lib.AddBook("The Go Programming Language")
		require.NoError(t, err)
		assert.False(t, added.IsCheckedOut)
		_, err = lib.AddBook("the go programming language")
		require.NoError(t, err)

		_, err = lib.Borrow("Alice", "The Go Programming Language")
		require.NoError(t, err)
		_, err = lib.Borrow("Bob", "The Go Programming Language")
		assert.ErrorIs(t, err, types.ErrAlreadyCheckedOut, "second copy is unreachable by title")

		books, err := types.Collect(lib.Books())
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.True(t, books[0].IsCheckedOut)
		assert.False(t, books[1].IsCheckedOut)

		_, err = lib.CheckIn("Alice", "THE GO PROGRAMMING LANGUAGE")
		require.NoError(t, err)
		books, err = types.Collect(lib.Books())
		require.NoError(t, err)
		assert.False(t, books[0].IsCheckedOut)
	})

	t.Run("borrowed list keeps borrow order with canonical titles", func(t *testing.T) {
		lib := library(t, factory, Config(backendName))
		_, err := lib.Borrow("Alice", "entity framework core guide")
		require.NoError(t, err)
		_, err = lib.Borrow("Alice", "asp.net core essentials")
		require.NoError(t, err)

		held, err := types.Collect(lib.Borrowed("Alice"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Entity Framework Core Guide", "ASP.NET Core Essentials"}, titles(t, held))
		for _, b := range held {
			assert.True(t, b.IsCheckedOut)
		}

		none, err := types.Collect(lib.Borrowed("Nobody"))
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
