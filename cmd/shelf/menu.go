package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bookshelf/internal/library"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive library menu",
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		fmt.Fprintln(out, "\n1. Add a book\n2. Remove a book\n3. Show all books\n"+
			"4. Search a book\n5. Show an author's books\n6. List books by type\n7. Exit")

		choice, ok := prompt(in, out, "Enter an option: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			menuAdd(in, out)
		case "2":
			menuRemove(in, out)
		case "3":
			menuShowAll(out)
		case "4":
			menuSearch(in, out)
		case "5":
			menuByAuthor(in, out)
		case "6":
			menuByKind(in, out)
		case "7":
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice. Try again.")
		}
	}
}

func prompt(in *bufio.Scanner, out io.Writer, msg string) (string, bool) {
	fmt.Fprint(out, msg)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func menuAdd(in *bufio.Scanner, out io.Writer) {
	fmt.Fprintln(out, "Book type:\n1. Book\n2. EBook\n3. AudioBook")
	typeChoice, ok := prompt(in, out, "Choice: ")
	if !ok {
		return
	}

	isbn, ok := prompt(in, out, "Enter ISBN: ")
	if !ok {
		return
	}

	kind := library.KindBook
	var opts library.AddOptions

	switch typeChoice {
	case "2":
		kind = library.KindEBook
		format, ok := prompt(in, out, "File format (e.g., PDF, EPUB): ")
		if !ok {
			return
		}
		opts.FileFormat = format
	case "3":
		kind = library.KindAudioBook
		raw, ok := prompt(in, out, "Duration (minutes): ")
		if !ok {
			return
		}
		duration, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(out, "Invalid duration.")
			duration = 0
		}
		opts.DurationMin = &duration
	}

	book, err := lib.AddByISBN(context.Background(), isbn, kind, opts)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintf(out, "Book added successfully: %s\n", book)
}

func menuRemove(in *bufio.Scanner, out io.Writer) {
	isbn, ok := prompt(in, out, "ISBN of the book being deleted: ")
	if !ok {
		return
	}
	if _, err := lib.FindByISBN(isbn); err != nil {
		fmt.Fprintln(out, "Book not found.")
		return
	}
	if err := lib.Remove(isbn); err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintln(out, "Book deleted.")
}

func menuShowAll(out io.Writer) {
	books := lib.Books()
	if len(books) == 0 {
		fmt.Fprintln(out, "No books in the library.")
		return
	}
	printBooks(out, books)
}

func menuSearch(in *bufio.Scanner, out io.Writer) {
	isbn, ok := prompt(in, out, "ISBN of the book being searched: ")
	if !ok {
		return
	}
	book, err := lib.FindByISBN(isbn)
	if err != nil {
		fmt.Fprintln(out, "Book not found.")
		return
	}
	fmt.Fprintf(out, "Found:\n%s\n", book)
}

func menuByAuthor(in *bufio.Scanner, out io.Writer) {
	author, ok := prompt(in, out, "Enter author name: ")
	if !ok {
		return
	}
	books := lib.ListByAuthor(author)
	if len(books) == 0 {
		fmt.Fprintf(out, "No books found by %s.\n", author)
		return
	}
	printBooks(out, books)
}

func menuByKind(in *bufio.Scanner, out io.Writer) {
	kind, ok := prompt(in, out, "Enter a book type (book, ebook, audiobook): ")
	if !ok {
		return
	}
	books := lib.ListByKind(kind)
	if len(books) == 0 {
		fmt.Fprintf(out, "No books of type '%s' found in the library.\n", kind)
		return
	}
	printBooks(out, books)
}
