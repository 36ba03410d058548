// Package library owns the in-memory book catalog and its flat-file
// persistence. Every mutation rewrites the whole file; the store
// serializes its own read-modify-persist sequences with a mutex and
// guards the file itself with an advisory lock so the CLI and the API
// daemon can safely share one library file.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

var (
	// ErrNotFound is returned when a book is not in the catalog.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidISBN is returned when a normalized ISBN is not 10 or 13
	// characters long.
	ErrInvalidISBN = errors.New("isbn must be 10 or 13 characters")
	// ErrDuplicate is returned when the catalog already holds a book
	// with the same normalized ISBN.
	ErrDuplicate = errors.New("book already exists")
	// ErrUnavailable is the single outcome for every metadata lookup
	// miss: no data for the ISBN, network failure, or a bad upstream
	// response. The distinction is logged, never surfaced.
	ErrUnavailable = errors.New("book not found or could not be retrieved")
	// ErrConstruction is returned when a kind-specific required field
	// is missing or the requested book type is unknown.
	ErrConstruction = errors.New("cannot construct book")
)

// Metadata is what the external catalog lookup returns for an ISBN.
type Metadata struct {
	Title           string
	Author          string
	PublicationYear int
}

// MetadataClient resolves an ISBN to descriptive metadata.
// Implementations return (nil, nil) when the service has no data for
// the ISBN; the store treats errors and nil results identically.
type MetadataClient interface {
	Lookup(ctx context.Context, isbn string) (*Metadata, error)
}

// AddOptions carries the kind-specific inputs for AddByISBN. FileFormat
// is required for EBook, DurationMin for AudioBook.
type AddOptions struct {
	FileFormat  string
	DurationMin *int
}

// Library is the catalog store. It exclusively owns the in-memory book
// sequence; callers only ever receive copies.
type Library struct {
	path     string
	metadata MetadataClient
	logger   *slog.Logger
	flk      *flock.Flock

	mu    sync.Mutex
	books []Book
}

// Open loads the catalog from path. A missing file starts an empty
// catalog; a file that cannot be decoded is a fatal error.
func Open(path string, metadata MetadataClient, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Library{
		path:     path,
		metadata: metadata,
		logger:   logger,
		flk:      flock.New(path + ".lock"),
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Library) load() error {
	if err := l.flk.Lock(); err != nil {
		return fmt.Errorf("lock library file: %w", err)
	}
	defer func() { _ = l.flk.Unlock() }()

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		l.books = []Book{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read library file: %w", err)
	}

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return fmt.Errorf("library file %s is corrupt: %w", l.path, err)
	}
	if books == nil {
		books = []Book{}
	}
	l.books = books
	return nil
}

// persistLocked rewrites the whole library file. Callers must hold l.mu.
func (l *Library) persistLocked() error {
	data, err := json.MarshalIndent(l.books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}

	if err := l.flk.Lock(); err != nil {
		return fmt.Errorf("lock library file: %w", err)
	}
	defer func() { _ = l.flk.Unlock() }()

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write library file: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace library file: %w", err)
	}
	return nil
}

// Books returns a snapshot copy of the catalog in insertion order.
func (l *Library) Books() []Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Book, len(l.books))
	copy(out, l.books)
	return out
}

// Len returns the number of books in the catalog.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.books)
}

// findLocked scans for the first book whose normalized ISBN matches
// the already-normalized key. Callers must hold l.mu.
func (l *Library) findLocked(normalized string) (Book, bool) {
	for _, b := range l.books {
		if NormalizeISBN(b.ISBN) == normalized {
			return b, true
		}
	}
	return Book{}, false
}

// FindByISBN returns the first book matching the ISBN, comparing
// normalized forms. Returns ErrNotFound on a miss.
func (l *Library) FindByISBN(isbn string) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.findLocked(NormalizeISBN(isbn)); ok {
		return b, nil
	}
	return Book{}, ErrNotFound
}

// Add appends a book and persists. It does not check uniqueness;
// callers go through FindByISBN or AddByISBN for that.
func (l *Library) Add(b Book) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.books = append(l.books, b)
	if err := l.persistLocked(); err != nil {
		l.books = l.books[:len(l.books)-1]
		return err
	}
	return nil
}

// Remove deletes every book whose normalized ISBN matches and persists
// the result. Persists even when nothing matched.
func (l *Library) Remove(isbn string) error {
	normalized := NormalizeISBN(isbn)
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.books[:0]
	for _, b := range l.books {
		if NormalizeISBN(b.ISBN) != normalized {
			kept = append(kept, b)
		}
	}
	l.books = kept
	return l.persistLocked()
}

// ListByAuthor returns all books whose author matches exactly,
// case-insensitively, in catalog order.
func (l *Library) ListByAuthor(author string) []Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Book
	for _, b := range l.books {
		if strings.EqualFold(b.Author, author) {
			out = append(out, b)
		}
	}
	return out
}

// ListByKind returns all books of the given kind, matched
// case-insensitively, in catalog order.
func (l *Library) ListByKind(kind string) []Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Book
	for _, b := range l.books {
		if strings.EqualFold(string(b.Kind), kind) {
			out = append(out, b)
		}
	}
	return out
}

// AddByISBN runs the enrichment flow: normalize, validate length, check
// for a duplicate, look the ISBN up with the metadata collaborator,
// construct the requested variant and persist it. The whole sequence
// runs inside one critical section, released on every exit path. A
// single collaborator call is made, with no retries at this layer.
func (l *Library) AddByISBN(ctx context.Context, isbn string, kind Kind, opts AddOptions) (Book, error) {
	normalized := NormalizeISBN(isbn)
	if !ValidISBNLength(normalized) {
		return Book{}, fmt.Errorf("%w: %q", ErrInvalidISBN, isbn)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.findLocked(normalized); ok {
		return Book{}, fmt.Errorf("%w: %s", ErrDuplicate, normalized)
	}

	meta, err := l.metadata.Lookup(ctx, normalized)
	if err != nil {
		// Sole conversion point: any collaborator fault collapses to
		// the same externally visible absence.
		l.logger.Warn("metadata lookup failed", "isbn", normalized, "error", err)
		meta = nil
	}
	if meta == nil {
		return Book{}, fmt.Errorf("%w: %s", ErrUnavailable, normalized)
	}

	book, err := newBook(*meta, normalized, kind, opts)
	if err != nil {
		return Book{}, err
	}

	l.books = append(l.books, book)
	if err := l.persistLocked(); err != nil {
		l.books = l.books[:len(l.books)-1]
		return Book{}, err
	}

	l.logger.Info("book added", "isbn", normalized, "title", book.Title, "type", string(book.Kind))
	return book, nil
}

func newBook(meta Metadata, isbn string, kind Kind, opts AddOptions) (Book, error) {
	b := Book{
		Title:           meta.Title,
		Author:          meta.Author,
		ISBN:            isbn,
		PublicationYear: meta.PublicationYear,
		Kind:            kind,
	}
	switch kind {
	case KindBook:
	case KindEBook:
		if opts.FileFormat == "" {
			return Book{}, fmt.Errorf("%w: ebook requires file_format", ErrConstruction)
		}
		b.FileFormat = opts.FileFormat
	case KindAudioBook:
		if opts.DurationMin == nil || *opts.DurationMin < 0 {
			return Book{}, fmt.Errorf("%w: audiobook requires a non-negative duration_min", ErrConstruction)
		}
		b.DurationMin = *opts.DurationMin
	default:
		return Book{}, fmt.Errorf("%w: unknown book type %q", ErrConstruction, string(kind))
	}
	return b, nil
}
