package library

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidYear is returned by ParseYear when the input is not an integer.
var ErrInvalidYear = errors.New("year must be a whole number")

// Book is a single record of the collection. The JSON keys are part of the
// storage format and must not change.
type Book struct {
	Title  string `json:"Title"`
	Author string `json:"Author"`
	Year   int    `json:"Year"`
	Genre  string `json:"Genre"`
	Read   bool   `json:"Read"`
}

// Status returns "Read" or "Unread".
func (b Book) Status() string {
	if b.Read {
		return "Read"
	}
	return "Unread"
}

func (b Book) String() string {
	return b.Title + " by " + b.Author + " (" + strconv.Itoa(b.Year) + ") - " + b.Genre + " - " + b.Status()
}

// Collection is the ordered set of books of one session.
type Collection []Book

// Field selects which attribute Search matches against.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
)

func (f Field) String() string {
	if f == FieldAuthor {
		return "author"
	}
	return "title"
}

// ParseField accepts "title", "author" or the menu shortcuts "1" and "2".
func ParseField(s string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title", "1":
		return FieldTitle, true
	case "author", "2":
		return FieldAuthor, true
	}
	return FieldTitle, false
}

// ParseYear converts user input into a publication year.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidYear
	}
	return year, nil
}

// ParseRead reports whether s is an affirmative answer. Checkbox values ("on")
// count as affirmative.
func ParseRead(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "on":
		return true
	}
	return false
}
