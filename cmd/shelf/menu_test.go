package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/library"
)

type fakeMetadata struct {
	meta *library.Metadata
}

func (f *fakeMetadata) Lookup(ctx context.Context, isbn string) (*library.Metadata, error) {
	return f.meta, nil
}

func setTestLibrary(t *testing.T, metadata library.MetadataClient) *library.Library {
	t.Helper()
	l, err := library.Open(filepath.Join(t.TempDir(), "library.json"), metadata, nil)
	require.NoError(t, err)

	prev := lib
	lib = l
	t.Cleanup(func() { lib = prev })
	return l
}

func runMenuScript(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	menuCmd.SetIn(strings.NewReader(input))
	menuCmd.SetOut(&out)
	require.NoError(t, runMenu(menuCmd, nil))
	return out.String()
}

func TestMenuShowAllEmpty(t *testing.T) {
	setTestLibrary(t, &fakeMetadata{})

	out := runMenuScript(t, "3\n7\n")
	assert.Contains(t, out, "No books in the library.")
}

func TestMenuAddAndSearch(t *testing.T) {
	l := setTestLibrary(t, &fakeMetadata{meta: &library.Metadata{
		Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965,
	}})

	out := runMenuScript(t, "1\n1\n9780441172719\n4\n978-0441172719\n7\n")
	assert.Contains(t, out, "Book added successfully")
	assert.Contains(t, out, "Found:")
	assert.Equal(t, 1, l.Len())
}

func TestMenuAudioBookInvalidDurationFallsBackToZero(t *testing.T) {
	l := setTestLibrary(t, &fakeMetadata{meta: &library.Metadata{
		Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965,
	}})

	out := runMenuScript(t, "1\n3\n9780441172719\nnot-a-number\n7\n")
	assert.Contains(t, out, "Invalid duration.")

	book, err := l.FindByISBN("9780441172719")
	require.NoError(t, err)
	assert.Equal(t, library.KindAudioBook, book.Kind)
	assert.Zero(t, book.DurationMin)
}

func TestMenuRemoveMissing(t *testing.T) {
	setTestLibrary(t, &fakeMetadata{})

	out := runMenuScript(t, "2\n0000000000\n7\n")
	assert.Contains(t, out, "Book not found.")
}

func TestMenuInvalidChoice(t *testing.T) {
	setTestLibrary(t, &fakeMetadata{})

	out := runMenuScript(t, "9\n7\n")
	assert.Contains(t, out, "Invalid choice. Try again.")
}
