package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import books into the library",
	Long: `Imports one or more files into the library.

Supported formats: PDF, DOCX, TXT. Each file is converted to pages,
chapters are detected, and the book becomes searchable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ctx := context.Background()
	var failed int
	for _, path := range args {
		book, err := libraryService.ImportFile(ctx, path, func(status string) {
			if verbose {
				cmd.Printf("  %s\n", status)
			}
		})
		if err != nil {
			cmd.PrintErrf("Failed: %s: %v\n", path, err)
			failed++
			continue
		}
		cmd.Printf("Imported %q (%d pages, %d chapters)\n", book.Title, book.PageCount, len(book.Chapters))
		cmd.Printf("  ID: %s\n", book.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(args))
	}
	return nil
}
