package library

import (
	"fmt"
	"strings"
)

// Kind discriminates the closed set of book variants.
type Kind string

const (
	KindBook      Kind = "Book"
	KindEBook     Kind = "EBook"
	KindAudioBook Kind = "AudioBook"
)

// ParseKind maps user input to a Kind, case-insensitively. An empty
// string means a plain Book.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "book":
		return KindBook, true
	case "ebook":
		return KindEBook, true
	case "audiobook":
		return KindAudioBook, true
	}
	return "", false
}

// Book is one catalog record. FileFormat is only set on EBook records
// and DurationMin only on AudioBook records. The JSON tags are the
// on-disk persistence contract and must not change.
type Book struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Kind            Kind   `json:"book_type"`
	FileFormat      string `json:"file_format,omitempty"`
	DurationMin     int    `json:"duration_min,omitempty"`
}

// Summary is the external projection of a Book. The kind-specific
// fields are omitted on purpose.
type Summary struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Kind            Kind   `json:"book_type"`
}

func (b Book) Summary() Summary {
	return Summary{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Kind:            b.Kind,
	}
}

func (b Book) String() string {
	s := fmt.Sprintf("'%s' by %s (ISBN: %s, Publication year: %d)",
		b.Title, b.Author, b.ISBN, b.PublicationYear)
	switch b.Kind {
	case KindEBook:
		return fmt.Sprintf("%s [Format: %s]", s, b.FileFormat)
	case KindAudioBook:
		return fmt.Sprintf("%s [Duration: %d mins]", s, b.DurationMin)
	}
	return s
}
