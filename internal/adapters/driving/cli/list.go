package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the library",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	books, err := libraryService.List(context.Background())
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(books, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal books: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(books) == 0 {
		cmd.Println("Library is empty. Import a book with 'folio import <file>'.")
		return nil
	}

	cmd.Printf("%d book(s):\n\n", len(books))
	for i := range books {
		printBookLine(cmd, &books[i])
	}
	return nil
}

func printBookLine(cmd *cobra.Command, book *domain.Book) {
	cmd.Printf("  %s\n", book.Title)
	if book.Author != "" {
		cmd.Printf("      Author:   %s\n", book.Author)
	}
	cmd.Printf("      ID:       %s\n", book.ID)
	cmd.Printf("      Format:   %s (%d pages)\n", book.FileType, book.PageCount)
	cmd.Printf("      Progress: %d%% (page %d)\n", book.Progress, book.CurrentPage+1)
	if len(book.Bookmarks) > 0 {
		cmd.Printf("      Bookmarks: %d\n", len(book.Bookmarks))
	}
	cmd.Println()
}
