package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/BinteRazi/Personal-Library-manager/internal/library"
)

var (
	errBookNotFound = errors.New("book not found")
	errTitleMissing = errors.New("title is missing")
)

func (s *server) getBooks(w http.ResponseWriter, r *http.Request) {
	books := s.snapshot()

	query := r.URL.Query().Get("q")
	field, ok := library.ParseField(r.URL.Query().Get("field"))
	if !ok {
		field = library.FieldTitle
	}

	var entries []library.Entry
	if query == "" {
		entries = books.ListAll()
	} else {
		entries = library.Collection(books.Search(query, field)).ListAll()
	}

	s.renderTemplate(w, http.StatusOK, "books.html", map[string]any{
		"Title":   "Books",
		"Entries": entries,
		"Query":   query,
		"Field":   field.String(),
		"Stats":   books.Statistics(),
	})
}

func (s *server) getNewBook(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, http.StatusOK, "book.html", map[string]any{
		"Title": "New Book",
	})
}

func (s *server) postNewBook(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	year, err := library.ParseYear(r.Form.Get("year"))
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	book := library.Book{
		Title:  strings.TrimSpace(r.Form.Get("title")),
		Author: strings.TrimSpace(r.Form.Get("author")),
		Year:   year,
		Genre:  strings.TrimSpace(r.Form.Get("genre")),
		Read:   library.ParseRead(r.Form.Get("read")),
	}

	err = s.updateBooks(r.Context(), func(books *library.Collection) error {
		books.Add(book)
		return nil
	})
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (s *server) getDeleteBook(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		s.renderError(w, http.StatusBadRequest, errTitleMissing)
		return
	}

	s.renderTemplate(w, http.StatusOK, "book-delete.html", map[string]any{
		"Title":     "Delete Book",
		"BookTitle": title,
	})
}

func (s *server) postDeleteBook(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	title := r.Form.Get("title")
	if title == "" {
		s.renderError(w, http.StatusBadRequest, errTitleMissing)
		return
	}

	err = s.updateBooks(r.Context(), func(books *library.Collection) error {
		if !books.Remove(title) {
			return fmt.Errorf("%w: %q", errBookNotFound, title)
		}
		return nil
	})
	if errors.Is(err, errBookNotFound) {
		s.renderError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (s *server) getStats(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, http.StatusOK, "stats.html", map[string]any{
		"Title": "Statistics",
		"Stats": s.snapshot().Statistics(),
	})
}
