package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var gotoCmd = &cobra.Command{
	Use:   "goto [book-id] [page]",
	Short: "Jump to a page",
	Long:  `Moves the reading position. Page numbers are 1-based and clamped to the book's range.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runGoto,
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark [book-id] [page]",
	Short: "Toggle a page bookmark",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmark,
}

var chaptersCmd = &cobra.Command{
	Use:   "chapters [book-id]",
	Short: "List detected chapters",
	Args:  cobra.ExactArgs(1),
	RunE:  runChapters,
}

var colorCmd = &cobra.Command{
	Use:   "color [book-id] [color]",
	Short: "Set a book's library card color",
	Args:  cobra.ExactArgs(2),
	RunE:  runColor,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [book-id]",
	Short: "Delete a book",
	Long:  `Removes a book together with its highlights, chat history, stored file, and search index entries.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(gotoCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(deleteCmd)
}

// parsePageArg converts a 1-based page argument to a zero-based index.
func parsePageArg(arg string) (int, error) {
	page, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a page number", arg)
	}
	return page - 1, nil
}

func runGoto(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	page, err := parsePageArg(args[1])
	if err != nil {
		return err
	}

	book, err := libraryService.GoToPage(context.Background(), args[0], page)
	if err != nil {
		return fmt.Errorf("go to page: %w", err)
	}

	cmd.Printf("%s: page %d of %d (%d%%)\n", book.Title, book.CurrentPage+1, book.PageCount, book.Progress)
	return nil
}

func runBookmark(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	page, err := parsePageArg(args[1])
	if err != nil {
		return err
	}

	marked, err := libraryService.ToggleBookmark(context.Background(), args[0], page)
	if err != nil {
		return fmt.Errorf("toggle bookmark: %w", err)
	}

	if marked {
		cmd.Printf("Bookmarked page %d.\n", page+1)
	} else {
		cmd.Printf("Removed bookmark from page %d.\n", page+1)
	}
	return nil
}

func runChapters(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	book, err := libraryService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}

	if len(book.Chapters) == 0 {
		cmd.Println("No chapters detected.")
		return nil
	}

	cmd.Printf("%s - %d chapter(s):\n\n", book.Title, len(book.Chapters))
	for _, ch := range book.Chapters {
		cmd.Printf("  p.%-5d %s\n", ch.StartPage+1, ch.Title)
	}
	return nil
}

func runColor(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.SetColor(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("set color: %w", err)
	}
	cmd.Printf("Color set to %s.\n", args[1])
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	book, err := libraryService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}

	if err := libraryService.Delete(context.Background(), book.ID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	cmd.Printf("Deleted %q.\n", book.Title)
	return nil
}
