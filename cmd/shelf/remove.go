package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <isbn>",
	Short: "Remove a book by ISBN",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	if _, err := lib.FindByISBN(args[0]); err != nil {
		return err
	}
	if err := lib.Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Book deleted.")
	return nil
}
