package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/core/domain"
)

var (
	highlightColor string
	highlightNote  string
	exportOut      string
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Manage highlights",
	Long:  `Add, list, remove, and export highlights.`,
}

var highlightAddCmd = &cobra.Command{
	Use:   "add [book-id] [page] [text]",
	Short: "Highlight text on a page",
	Long: `Records a highlight. The text must appear verbatim on the page;
page numbers are 1-based.`,
	Args: cobra.ExactArgs(3),
	RunE: runHighlightAdd,
}

var highlightListCmd = &cobra.Command{
	Use:   "list [book-id]",
	Short: "List a book's highlights",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightList,
}

var highlightRemoveCmd = &cobra.Command{
	Use:   "rm [highlight-id]",
	Short: "Remove a highlight",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightRemove,
}

var highlightExportCmd = &cobra.Command{
	Use:   "export [book-id]",
	Short: "Export a book's annotations as plain text",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightExport,
}

func init() {
	highlightAddCmd.Flags().StringVarP(&highlightColor, "color", "c", "yellow", "highlight color (yellow, green, blue, pink)")
	highlightAddCmd.Flags().StringVarP(&highlightNote, "note", "m", "", "optional note")
	highlightExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")

	highlightCmd.AddCommand(highlightAddCmd)
	highlightCmd.AddCommand(highlightListCmd)
	highlightCmd.AddCommand(highlightRemoveCmd)
	highlightCmd.AddCommand(highlightExportCmd)
	rootCmd.AddCommand(highlightCmd)
}

func runHighlightAdd(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	page, err := parsePageArg(args[1])
	if err != nil {
		return err
	}

	h, err := highlightService.Create(
		context.Background(),
		args[0], page, args[2],
		domain.HighlightColor(highlightColor),
		highlightNote,
	)
	if err != nil {
		return fmt.Errorf("create highlight: %w", err)
	}

	cmd.Printf("Highlighted %q on page %d.\n", h.Text, h.Page+1)
	cmd.Printf("  ID: %s\n", h.ID)
	return nil
}

func runHighlightList(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	highlights, err := highlightService.List(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("list highlights: %w", err)
	}

	if len(highlights) == 0 {
		cmd.Println("No highlights yet.")
		return nil
	}

	cmd.Printf("%d highlight(s):\n\n", len(highlights))
	for _, h := range highlights {
		cmd.Printf("  [%s] p.%d %q\n", h.Color, h.Page+1, h.Text)
		if h.Note != "" {
			cmd.Printf("      Note: %s\n", h.Note)
		}
		cmd.Printf("      ID: %s\n", h.ID)
	}
	return nil
}

func runHighlightRemove(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	if err := highlightService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	cmd.Println("Highlight removed.")
	return nil
}

func runHighlightExport(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	out, err := highlightService.Export(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("export highlights: %w", err)
	}

	if exportOut == "" {
		cmd.Print(out)
		return nil
	}

	if err := os.WriteFile(exportOut, []byte(out), 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	cmd.Printf("Exported to %s.\n", exportOut)
	return nil
}
