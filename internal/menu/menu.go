// Package menu implements the interactive text front end of the library.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BinteRazi/Personal-Library-manager/internal/library"
)

// Menu reads choices line by line and works on a collection loaded from its
// store. The collection is saved when the user exits or the input ends.
type Menu struct {
	store library.Store
	in    *bufio.Scanner
	out   io.Writer
	books library.Collection
}

// maxLineSize bounds a single line of input.
const maxLineSize = 1 << 20

func New(store library.Store, in io.Reader, out io.Writer) *Menu {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Menu{
		store: store,
		in:    scanner,
		out:   out,
	}
}

// Run loads the collection and serves the menu until exit or end of input,
// saving the collection in every case. A failed read or save is returned.
func (m *Menu) Run(ctx context.Context) error {
	m.books = m.store.Load(ctx)

	for {
		m.printf("\nMenu\n")
		m.printf("1. Add a book\n")
		m.printf("2. Remove a book\n")
		m.printf("3. Search for a book\n")
		m.printf("4. Display all books\n")
		m.printf("5. Display statistics\n")
		m.printf("6. Exit\n")

		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return m.finish(ctx, err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.addBook()
		case "2":
			err = m.removeBook()
		case "3":
			err = m.searchBooks()
		case "4":
			m.displayBooks()
		case "5":
			m.displayStatistics()
		case "6":
			return m.save(ctx)
		default:
			m.printf("Invalid choice. Please try again.\n")
		}

		if err != nil {
			return m.finish(ctx, err)
		}
	}
}

// finish saves the collection after the input stopped. End of input is a
// normal exit; any other read error is returned along with the save result.
func (m *Menu) finish(ctx context.Context, readErr error) error {
	if errors.Is(readErr, io.EOF) {
		return m.save(ctx)
	}

	m.printf("\nCould not read input: %s\n", readErr)
	return errors.Join(fmt.Errorf("reading input: %w", readErr), m.save(ctx))
}

func (m *Menu) save(ctx context.Context) error {
	err := m.store.Save(ctx, m.books)
	if err != nil {
		m.printf("Could not save library: %s\n", err)
		return err
	}

	m.printf("Library saved to file. Goodbye!\n")
	return nil
}

func (m *Menu) addBook() error {
	title, err := m.prompt("Enter the book title: ")
	if err != nil {
		return err
	}
	author, err := m.prompt("Enter the author: ")
	if err != nil {
		return err
	}

	var year int
	for {
		raw, err := m.prompt("Enter the publication year: ")
		if err != nil {
			return err
		}

		year, err = library.ParseYear(raw)
		if err == nil {
			break
		}
		m.printf("Invalid year: %s.\n", err)
	}

	genre, err := m.prompt("Enter the genre: ")
	if err != nil {
		return err
	}
	read, err := m.prompt("Have you read this book? (yes/no): ")
	if err != nil {
		return err
	}

	m.books.AddBook(title, author, year, genre, library.ParseRead(read))
	m.printf("Book added successfully!\n")
	return nil
}

func (m *Menu) removeBook() error {
	title, err := m.prompt("Enter the title of the book to remove: ")
	if err != nil {
		return err
	}

	if m.books.Remove(title) {
		m.printf("Book removed successfully!\n")
	} else {
		m.printf("Book not found.\n")
	}
	return nil
}

func (m *Menu) searchBooks() error {
	choice, err := m.prompt("Search by:\n1. Title\n2. Author\nEnter your choice: ")
	if err != nil {
		return err
	}

	field, ok := library.ParseField(choice)
	if !ok {
		m.printf("Invalid choice.\n")
		return nil
	}

	keyword, err := m.prompt(fmt.Sprintf("Enter the %s: ", field))
	if err != nil {
		return err
	}

	results := m.books.Search(keyword, field)
	if len(results) == 0 {
		m.printf("No matching books found.\n")
		return nil
	}

	m.printf("Matching Books:\n")
	for i, b := range results {
		m.printf("%d. %s\n", i+1, b)
	}
	return nil
}

func (m *Menu) displayBooks() {
	entries := m.books.ListAll()
	if len(entries) == 0 {
		m.printf("Your library is empty.\n")
		return
	}

	m.printf("Your Library:\n")
	for _, e := range entries {
		m.printf("%d. %s\n", e.Position, e.Book)
	}
}

func (m *Menu) displayStatistics() {
	stats := m.books.Statistics()
	if stats.Total == 0 {
		m.printf("No books in the library.\n")
		return
	}

	m.printf("Total books: %d\n", stats.Total)
	m.printf("Percentage read: %.2f%%\n", stats.PercentRead)
}

// prompt writes label and returns the next input line, or io.EOF once the
// input is exhausted.
func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)

	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(m.in.Text(), "\r"), nil
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
