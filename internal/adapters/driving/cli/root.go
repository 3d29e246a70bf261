// Package cli implements the folio command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/adapters/driven/assistant/agent"
	"github.com/foliolabs/folio/internal/adapters/driven/blob/bolt"
	"github.com/foliolabs/folio/internal/adapters/driven/config/file"
	"github.com/foliolabs/folio/internal/adapters/driven/engines/fitz"
	"github.com/foliolabs/folio/internal/adapters/driven/engines/ooxml"
	"github.com/foliolabs/folio/internal/adapters/driven/search/bleve"
	"github.com/foliolabs/folio/internal/adapters/driven/storage/sqlite"
	"github.com/foliolabs/folio/internal/core/ports/driven"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/core/services"
	"github.com/foliolabs/folio/internal/logger"
	"github.com/foliolabs/folio/internal/normalisers"
	"github.com/foliolabs/folio/internal/normalisers/docx"
	"github.com/foliolabs/folio/internal/normalisers/pdf"
	"github.com/foliolabs/folio/internal/normalisers/plaintext"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose bool
	dataDir string
)

// Wired services. Tests may pre-populate these to skip initServices.
var (
	configStore      driven.ConfigStore
	bookStore        driven.BookStore
	highlightStore   driven.HighlightStore
	chatStore        driven.ChatStore
	blobStore        driven.BlobStore
	searchIndex      driven.SearchIndex
	assistant        driven.Assistant
	libraryService   driving.LibraryService
	highlightService driving.HighlightService
	chatService      driving.ChatService
	searchService    driving.SearchService
)

// closeFns releases resources opened by initServices.
var closeFns []func() error

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Local-first personal e-book library",
	Long: `Folio is a personal e-book library for the terminal.

Import PDF, DOCX, and TXT files, read them page by page, highlight
passages, search across your whole library, and chat with a reading
assistant about any book. Everything is stored locally under ~/.folio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		// version and help need no storage.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices()
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.folio/data)")
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if err := closeServices(); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}()
	return rootCmd.Execute()
}

// initServices wires adapters and services. Idempotent: a pre-wired
// library service (from tests) short-circuits the whole setup.
func initServices() error {
	if libraryService != nil {
		return nil
	}

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = cfg

	dir := dataDir
	if dir == "" {
		dir = cfg.GetString(file.KeyDataDir)
	}

	store, err := sqlite.NewStore(dir)
	if err != nil {
		return fmt.Errorf("open library store: %w", err)
	}
	closeFns = append(closeFns, store.Close)
	bookStore = store.BookStore()
	highlightStore = store.HighlightStore()
	chatStore = store.ChatStore()

	blobs, err := bolt.NewStore(dir)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	closeFns = append(closeFns, blobs.Close)
	blobStore = blobs

	// Search is optional: a broken index disables search, not the CLI.
	idx, err := bleve.Open(indexPath(dir))
	if err != nil {
		logger.Warn("Search index unavailable: %v", err)
	} else {
		closeFns = append(closeFns, idx.Close)
		searchIndex = idx
	}

	// The assistant is optional and only wired when configured.
	if baseURL := cfg.GetString(file.KeyAgentBaseURL); baseURL != "" {
		client, err := agent.NewClient(agent.Config{
			BaseURL: baseURL,
			APIKey:  cfg.GetString(file.KeyAgentAPIKey),
			AgentID: cfg.GetString(file.KeyAgentID),
		})
		if err != nil {
			logger.Warn("Assistant unavailable: %v", err)
		} else {
			closeFns = append(closeFns, client.Close)
			assistant = client
		}
	}

	// Normalisers and the library service must agree on the page size,
	// or stored page counts drift from the pages actually served.
	pageSize := cfg.GetInt(file.KeyPageSize)

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New(pageSize))
	registry.Register(pdf.New(fitz.New()))
	registry.Register(docx.New(ooxml.New(), pageSize))

	libraryService = services.NewLibraryService(
		registry, bookStore, highlightStore, chatStore, blobStore,
		searchIndex, assistant, pageSize,
	)
	highlightService = services.NewHighlightService(libraryService, bookStore, highlightStore)
	chatService = services.NewChatService(bookStore, chatStore, assistant, cfg.GetString(file.KeyAgentID))
	searchService = services.NewSearchService(searchIndex)

	return nil
}

// indexPath places the search index next to the other data files.
func indexPath(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, bleve.DefaultIndexName)
}

// closeServices releases everything initServices opened.
func closeServices() error {
	var firstErr error
	for i := len(closeFns) - 1; i >= 0; i-- {
		if err := closeFns[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closeFns = nil
	return firstErr
}

// Fatal prints an error and exits, used by main.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
