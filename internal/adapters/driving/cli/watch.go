package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/adapters/driven/config/file"
	"github.com/foliolabs/folio/internal/watcher"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an inbox directory for new books",
	Long: `Watches a directory and imports any PDF, DOCX, or TXT file dropped
into it. Processed files are moved to an "imported" subdirectory.

The directory defaults to inbox.dir from the config, then ~/.folio/inbox.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "directory to watch")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	dir := watchDir
	if dir == "" && configStore != nil {
		dir = configStore.GetString(file.KeyInboxDir)
	}

	w, err := watcher.New(libraryService, dir)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", w.Dir())

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
