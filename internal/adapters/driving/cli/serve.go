package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/adapters/driving/web"
	"github.com/foliolabs/folio/internal/core/services"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the library web server",
	Long: `Serves the library over HTTP for the browser reader.

With --port 0 a free port is picked automatically.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on (0 = auto)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	port := servePort
	if port == 0 {
		var err error
		port, err = services.FindAvailablePort(8080, 8180)
		if err != nil {
			return err
		}
	}

	server := web.NewServer(libraryService, highlightService, chatService, searchService)
	addr := fmt.Sprintf(":%d", port)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	cmd.Printf("Folio listening on http://localhost%s\n", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		cmd.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
