package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func runLibrary(t *testing.T, lines ...string) (types.Library, string) {
	t.Helper()
	store, err := attach(t).Library()
	require.NoError(t, err)
	p, out := script(lines...)
	require.NoError(t, NewLibrary(store, p, zap.NewNop()).Run(context.Background()))
	return store, out.String()
}

func TestLibraryAliceAndBob(t *testing.T) {
	store, out := runLibrary(t,
		"", "Alice",
		"2", "c# fundamentals",
		"7", "Bob",
		"2", "C# Fundamentals",
		"7", "Alice",
		"3", "C# FUNDAMENTALS",
		"7", "Bob",
		"2", "C# Fundamentals",
		"8",
	)

	assert.Contains(t, out, "Welcome to the Library Management System")
	assert.Contains(t, out, "You have successfully borrowed 'C# Fundamentals'.")
	assert.Contains(t, out, "The book 'C# Fundamentals' is already checked out.")
	assert.Contains(t, out, "You have successfully checked in 'C# Fundamentals'.")
	assert.Contains(t, out, "Now borrowing as Bob.")
	assert.Contains(t, out, "Exiting the program. Goodbye!")

	held, err := types.Collect(store.Borrowed("Bob"))
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "C# Fundamentals", held[0].Title)
}

func TestLibrarySearch(t *testing.T) {
	_, out := runLibrary(t,
		"Alice",
		"1", "introduction to .net",
		"2", "Introduction to .NET",
		"1", "Introduction to .NET",
		"1", "Rust in Action",
		"8",
	)

	assert.Contains(t, out, "The book 'Introduction to .NET' is available.")
	assert.Contains(t, out, "The book 'Introduction to .NET' is checked out.")
	assert.Contains(t, out, "The book 'Rust in Action' is not in the collection.")
}

func TestLibraryBorrowLimitChecksBeforeAskingTitle(t *testing.T) {
	_, out := runLibrary(t,
		"Alice",
		"2", "C# Fundamentals",
		"2", "Introduction to .NET",
		"2", "ASP.NET Core Essentials",
		"2",
		"6",
		"8",
	)

	assert.Contains(t, out, "You have reached the borrowing limit of 3 books.")
	assert.Contains(t, out, "Books borrowed by Alice:\n- C# Fundamentals\n- Introduction to .NET\n- ASP.NET Core Essentials\n")
}

func TestLibraryCheckInNotBorrowed(t *testing.T) {
	_, out := runLibrary(t,
		"Alice",
		"3", "C# Fundamentals",
		"6",
		"8",
	)

	assert.Contains(t, out, "You do not have the book 'C# Fundamentals' checked out.")
	assert.Contains(t, out, "You have not borrowed any books.")
}

func TestLibraryAddAndViewBooks(t *testing.T) {
	_, out := runLibrary(t,
		"Alice",
		"5", "",
		"5", "The Go Programming Language",
		"2", "the go programming language",
		"4",
		"8",
	)

	assert.Contains(t, out, "Book title cannot be empty.")
	assert.Contains(t, out, "Book 'The Go Programming Language' added to the library.")
	assert.Contains(t, out, "Library Books:\n- C# Fundamentals (available)")
	assert.Contains(t, out, "- The Go Programming Language (checked out)")
}

func TestLibraryEOFBeforeName(t *testing.T) {
	_, out := runLibrary(t)
	assert.NotContains(t, out, "Menu:")
}
