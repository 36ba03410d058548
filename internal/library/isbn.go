package library

import "strings"

// NormalizeISBN strips every hyphen and space character. The normalized
// form is the sole key used for catalog equality and lookups. No length
// or charset validation happens here; that is the caller's job.
func NormalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

// ValidISBNLength reports whether a normalized ISBN has an acceptable
// length, 10 or 13 characters.
func ValidISBNLength(normalized string) bool {
	return len(normalized) == 10 || len(normalized) == 13
}
