package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"bookshelf/internal/library"
)

// printBooks renders a table when stdout is a terminal and plain lines
// otherwise, so the output stays pipe-friendly.
func printBooks(out io.Writer, books []library.Book) {
	if !stdoutIsTerminal() {
		for _, b := range books {
			fmt.Fprintln(out, b)
		}
		return
	}
	fmt.Fprintln(out, renderBookTable(books))
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderBookTable(books []library.Book) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Title", "Author", "ISBN", "Year", "Type", "Details"})

	for _, b := range books {
		details := ""
		switch b.Kind {
		case library.KindEBook:
			details = b.FileFormat
		case library.KindAudioBook:
			details = strconv.Itoa(b.DurationMin) + " mins"
		}
		tw.AppendRow(table.Row{b.Title, b.Author, b.ISBN, b.PublicationYear, string(b.Kind), details})
	}

	return tw.Render()
}
