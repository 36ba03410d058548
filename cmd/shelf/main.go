// Package main provides the shelf CLI, the interactive front end to
// the book library shared with the API daemon.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bookshelf/internal/library"
	"bookshelf/internal/openlibrary"
)

var (
	// libraryFile is set by the --file flag.
	libraryFile string

	// lib is the shared catalog store, opened on startup.
	lib *library.Library
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Shelf manages a personal book library",
	Long: `Shelf is a catalog for a personal book library. Books are stored in a
flat JSON file, looked up on Open Library by ISBN, and come in three
flavors: Book, EBook and AudioBook.

Run "shelf menu" for the interactive menu, or use the list/add/remove/find
subcommands directly.`,
	PersistentPreRunE: openStore,
	SilenceUsage:      true,
}

func init() {
	_ = godotenv.Load(".env.local")

	rootCmd.PersistentFlags().StringVar(&libraryFile, "file",
		envOr("LIBRARY_FILE", "library.json"), "library JSON file")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(findCmd)
}

func openStore(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	metadata := openlibrary.NewClient(
		envOr("OPENLIBRARY_URL", ""),
		envOr("OPENLIBRARY_USER_AGENT", "bookshelf-cli/1.0"),
		1,
		logger,
	)

	var err error
	lib, err = library.Open(libraryFile, metadata, logger)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
