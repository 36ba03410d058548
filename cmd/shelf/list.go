package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/internal/library"
)

var (
	listAuthor string
	listType   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the library",
	Long: `List prints the catalog in insertion order.

Example:
  shelf list
  shelf list --author "Frank Herbert"
  shelf list --type audiobook`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listAuthor, "author", "", "only books by this author (exact, case-insensitive)")
	listCmd.Flags().StringVar(&listType, "type", "", "only books of this type (book, ebook, audiobook)")
}

func runList(cmd *cobra.Command, args []string) error {
	var books []library.Book
	switch {
	case listAuthor != "":
		books = lib.ListByAuthor(listAuthor)
	case listType != "":
		books = lib.ListByKind(listType)
	default:
		books = lib.Books()
	}

	if len(books) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No books in the library.")
		return nil
	}
	printBooks(cmd.OutOrStdout(), books)
	return nil
}
