// Package watcher imports books dropped into an inbox directory.
// It is the command-line stand-in for browser drag-and-drop: any
// supported file that lands in the watched directory is ingested and
// then moved to an "imported" subdirectory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/logger"
)

// settleDelay is how long a file must stay quiet before import.
// Copies into the inbox arrive as a burst of write events; importing
// on the first one would read a half-written file.
const settleDelay = 500 * time.Millisecond

// importedDirName is where processed files are moved.
const importedDirName = "imported"

// Watcher watches an inbox directory and imports dropped files.
type Watcher struct {
	library driving.LibraryService
	dir     string

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for the given inbox directory, creating the
// directory if needed.
func New(library driving.LibraryService, dir string) (*Watcher, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".folio", "inbox")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}

	return &Watcher{
		library: library,
		dir:     dir,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches until the context is cancelled. Existing files in the
// inbox are imported on startup.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.importExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher: %v", err)
		}
	}
}

// importExisting sweeps files already sitting in the inbox.
func (w *Watcher) importExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("Read inbox: %v", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if eligible(path) {
			w.importFile(ctx, path)
		}
	}
}

// handleEvent schedules an import once the file settles. Create and
// Write both reset the timer; anything else is ignored.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !eligible(event.Name) {
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := event.Name
	if timer, ok := w.pending[path]; ok {
		timer.Reset(settleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.importFile(ctx, path)
	})
}

// importFile ingests one file and moves it out of the inbox.
func (w *Watcher) importFile(ctx context.Context, path string) {
	book, err := w.library.ImportFile(ctx, path, nil)
	if err != nil {
		logger.Warn("Inbox import %s: %v", path, err)
		return
	}
	logger.Info("Imported %q from inbox", book.Title)

	dest := filepath.Join(w.dir, importedDirName)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		logger.Warn("Create %s: %v", dest, err)
		return
	}
	if err := os.Rename(path, filepath.Join(dest, filepath.Base(path))); err != nil {
		logger.Warn("Move %s: %v", path, err)
	}
}

// eligible reports whether the path is a non-hidden file with a
// supported extension.
func eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	_, err := domain.ParseFileType(ext)
	return err == nil
}
