// Package web serves the form-based front end of the library.
package web

import (
	"context"
	"io/fs"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BinteRazi/Personal-Library-manager/internal/library"
)

type server struct {
	store   library.Store
	booksMu sync.Mutex
	books   library.Collection
	router  chi.Router
}

// NewServer loads the collection from store and returns the HTTP handler of the
// form UI. Every mutation is saved before it becomes visible.
func NewServer(ctx context.Context, store library.Store) http.Handler {
	s := &server{
		store: store,
		books: store.Load(ctx),
	}

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
	})
	r.Get("/books", s.getBooks)
	r.Get("/books/new", s.getNewBook)
	r.Post("/books/new", s.postNewBook)
	r.Get("/books/delete", s.getDeleteBook)
	r.Post("/books/delete", s.postDeleteBook)
	r.Get("/stats", s.getStats)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, http.StatusNotFound, nil)
	})

	s.router = r
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// snapshot returns a copy of the current collection.
func (s *server) snapshot() library.Collection {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()

	return slices.Clone(s.books)
}

// updateBooks applies fn to a copy of the collection and saves it. The copy
// replaces the current collection only if the save succeeds.
func (s *server) updateBooks(ctx context.Context, fn func(books *library.Collection) error) error {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()

	books := slices.Clone(s.books)
	if books == nil {
		books = library.Collection{}
	}

	err := fn(&books)
	if err != nil {
		return err
	}

	err = s.store.Save(ctx, books)
	if err != nil {
		return err
	}

	s.books = books
	return nil
}
