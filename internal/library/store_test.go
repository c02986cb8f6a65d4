package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "library.json"))

	books := sampleCollection()
	require.NoError(t, store.Save(ctx, books))
	assert.Equal(t, books, store.Load(ctx))

	require.NoError(t, store.Save(ctx, Collection{}))
	assert.Equal(t, Collection{}, store.Load(ctx))
}

func TestFileStoreFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	store := NewFileStore(path)

	err := store.Save(context.Background(), Collection{{Title: "Dune", Author: "Herbert", Year: 1965, Genre: "Sci-Fi", Read: true}})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `[
    {
        "Title": "Dune",
        "Author": "Herbert",
        "Year": 1965,
        "Genre": "Sci-Fi",
        "Read": true
    }
]`
	assert.Equal(t, want, string(raw))
}

func TestFileStoreNilSavesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, NewFileStore(path).Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileStoreLoadFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		contents *string
	}{
		{name: "missing file"},
		{name: "malformed json", contents: ptr("{not json")},
		{name: "wrong shape", contents: ptr(`{"Title": "Dune"}`)},
		{name: "year is not an integer", contents: ptr(`[{"Title": "Dune", "Year": "1965"}]`)},
		{name: "null", contents: ptr("null")},
		{name: "empty file", contents: ptr("")},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "library-"+string(rune('a'+i))+".json")
			if tt.contents != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.contents), 0644))
			}

			books := NewFileStore(path).Load(context.Background())
			assert.NotNil(t, books)
			assert.Empty(t, books)
		})
	}
}

func TestFileStoreSaveFailsOnUnwritableLocation(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing", "library.json"))

	err := store.Save(context.Background(), sampleCollection())
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenStore("", filepath.Join(dir, "books.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = OpenStore("json", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, store.(*FileStore).Path())

	_, err = OpenStore("xml", filepath.Join(dir, "books.xml"))
	assert.ErrorIs(t, err, ErrUnknownStorage)
}

func TestDefaultPathFor(t *testing.T) {
	assert.Equal(t, "library.json", DefaultPathFor(""))
	assert.Equal(t, "library.json", DefaultPathFor("json"))
	assert.Equal(t, "library.db", DefaultPathFor("sqlite"))
}

func TestFileStoreRoundTripInvalidUTF8(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "library.json"))

	var books Collection
	books.AddBook("Caf\xe9", "Ana\xffs", 2001, "Food\xc3", false)
	assert.Equal(t, "Caf\uFFFD", books[0].Title)

	require.NoError(t, store.Save(ctx, books))
	assert.Equal(t, books, store.Load(ctx))
}

func ptr(s string) *string {
	return &s
}
