package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/core/domain"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search across the library",
	Long: `Full-text search over every page of every book.
The query supports quotes, boolean operators, and fuzzy ~ suffixes.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(context.Background(), args[0], searchLimit)
	if err != nil {
		if errors.Is(err, domain.ErrSearchUnavailable) {
			return errors.New("search index unavailable")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s, page %d (%.2f)\n", i+1, r.Title, r.Page+1, r.Score)
		for _, frag := range r.Fragments {
			cmd.Printf("      %s\n", frag)
		}
		cmd.Println()
	}
	return nil
}
