package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/internal/library"
)

var (
	addType       string
	addFileFormat string
	addDuration   int
)

var addCmd = &cobra.Command{
	Use:   "add <isbn>",
	Short: "Add a book by ISBN",
	Long: `Add looks the ISBN up on Open Library and stores the enriched record.

Example:
  shelf add 9780441172719
  shelf add 978-0-13-468599-1 --type ebook --file-format EPUB
  shelf add 9780441172719 --type audiobook --duration-min 1266`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addType, "type", "book", "book type (book, ebook, audiobook)")
	addCmd.Flags().StringVar(&addFileFormat, "file-format", "", "file format for ebooks (e.g. EPUB)")
	addCmd.Flags().IntVar(&addDuration, "duration-min", -1, "duration in minutes for audiobooks")
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, ok := library.ParseKind(addType)
	if !ok {
		return fmt.Errorf("unknown book type %q", addType)
	}

	var opts library.AddOptions
	switch kind {
	case library.KindEBook:
		opts.FileFormat = addFileFormat
	case library.KindAudioBook:
		if cmd.Flags().Changed("duration-min") {
			opts.DurationMin = &addDuration
		}
	}

	book, err := lib.AddByISBN(cmd.Context(), args[0], kind, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Book added successfully: %s\n", book)
	return nil
}
