package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Storage locations used when none is configured.
const (
	DefaultPath       = "library.json"
	DefaultSQLitePath = "library.db"
)

// ErrUnknownStorage is returned by OpenStore for an unsupported storage kind.
var ErrUnknownStorage = errors.New("unknown storage kind")

// Store persists a whole collection.
//
// Load never fails: a missing or unreadable location yields an empty
// collection. Save overwrites the location and returns any write error.
type Store interface {
	Load(ctx context.Context) Collection
	Save(ctx context.Context, books Collection) error
}

// DefaultPathFor returns the storage location of kind when none is configured.
func DefaultPathFor(kind string) string {
	if kind == "sqlite" {
		return DefaultSQLitePath
	}
	return DefaultPath
}

// OpenStore returns the store for kind, which is "json" (the default when
// empty) or "sqlite". An empty path selects DefaultPathFor(kind).
func OpenStore(kind, path string) (Store, error) {
	if path == "" {
		path = DefaultPathFor(kind)
	}

	switch kind {
	case "", "json":
		return NewFileStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, kind)
	}
}

// FileStore keeps the collection as an indented JSON array in a single file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) Collection {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Collection{}
	} else if err != nil {
		slog.Warn("could not read library, starting empty", "path", s.path, "error", err)
		return Collection{}
	}

	var books Collection
	err = json.Unmarshal(raw, &books)
	if err != nil {
		slog.Warn("could not parse library, starting empty", "path", s.path, "error", err)
		return Collection{}
	}

	if books == nil {
		return Collection{}
	}
	return books
}

func (s *FileStore) Save(_ context.Context, books Collection) error {
	if books == nil {
		books = Collection{}
	}

	raw, err := json.MarshalIndent(books, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding library: %w", err)
	}

	err = os.WriteFile(s.path, raw, 0644)
	if err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	return nil
}
