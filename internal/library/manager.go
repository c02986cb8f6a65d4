package library

import (
	"slices"
	"strings"
)

// Entry is a listed book together with its display annotations.
type Entry struct {
	Position int
	Book     Book
	Status   string
}

// Stats summarizes a collection.
type Stats struct {
	Total       int
	ReadCount   int
	PercentRead float64
}

// Add appends b to the end of the collection. Invalid UTF-8 in the text fields
// is replaced with U+FFFD, which is what the storage encoding would do anyway.
func (c *Collection) Add(b Book) {
	b.Title = validText(b.Title)
	b.Author = validText(b.Author)
	b.Genre = validText(b.Genre)
	*c = append(*c, b)
}

func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// AddBook builds a book from its fields and appends it.
func (c *Collection) AddBook(title, author string, year int, genre string, read bool) {
	c.Add(Book{
		Title:  title,
		Author: author,
		Year:   year,
		Genre:  genre,
		Read:   read,
	})
}

// Remove deletes the first book whose title equals title, ignoring case. It
// reports whether a book was removed.
func (c *Collection) Remove(title string) bool {
	idx := c.indexOf(title)
	if idx < 0 {
		return false
	}

	*c = slices.Delete(*c, idx, idx+1)
	return true
}

func (c Collection) indexOf(title string) int {
	for i, b := range c {
		if strings.EqualFold(b.Title, title) {
			return i
		}
	}
	return -1
}

// Search returns the books whose selected field contains keyword, ignoring
// case, in collection order. An empty keyword matches every book.
func (c Collection) Search(keyword string, field Field) []Book {
	keyword = strings.ToLower(keyword)

	results := make([]Book, 0)
	for _, b := range c {
		value := b.Title
		if field == FieldAuthor {
			value = b.Author
		}

		if strings.Contains(strings.ToLower(value), keyword) {
			results = append(results, b)
		}
	}
	return results
}

// ListAll returns every book in order, numbered from 1.
func (c Collection) ListAll() []Entry {
	entries := make([]Entry, 0, len(c))
	for i, b := range c {
		entries = append(entries, Entry{
			Position: i + 1,
			Book:     b,
			Status:   b.Status(),
		})
	}
	return entries
}

// Statistics counts the books and the share that has been read.
func (c Collection) Statistics() Stats {
	stats := Stats{Total: len(c)}
	if stats.Total == 0 {
		return stats
	}

	for _, b := range c {
		if b.Read {
			stats.ReadCount++
		}
	}
	stats.PercentRead = 100 * float64(stats.ReadCount) / float64(stats.Total)
	return stats
}
