package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/foliolabs/folio/internal/chapters"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF files. Text extraction is delegated to an
// injected PDFEngine; the original bytes are retained so the reading
// surface can render native pages later.
type Normaliser struct {
	engine driven.PDFEngine
}

// New creates a new PDF normaliser around the given engine.
func New(engine driven.PDFEngine) *Normaliser {
	return &Normaliser{engine: engine}
}

// FileTypes returns the formats this normaliser handles.
func (n *Normaliser) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Normalise extracts per-page text and joins it with literal page
// marker lines. The Pages slice is left empty: PDF pagination is
// page-native and page text is recovered by splitting on the markers.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawFile, report driven.ProgressFunc) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if n.engine == nil {
		return nil, fmt.Errorf("no PDF engine configured: %w", domain.ErrEngineUnavailable)
	}

	progress(report, "Extracting text from PDF...")
	pages, err := n.engine.ExtractPages(ctx, raw.Content)
	if err != nil {
		return nil, fmt.Errorf("extracting PDF text: %w", err)
	}
	if len(pages) == 0 {
		pages = []string{""}
	}

	progress(report, fmt.Sprintf("Extracted %d pages", len(pages)))

	progress(report, "Detecting chapters...")
	chs := chapters.DetectPDFPages(pages)

	return &driven.NormaliseResult{
		Title:     extractTitle(raw.FileName),
		PlainText: JoinPages(pages),
		Binary:    raw.Content,
		PageCount: len(pages),
		Chapters:  chs,
	}, nil
}

// pageMarker matches the literal marker lines inserted between pages.
var pageMarker = regexp.MustCompile(`(?m)^--- Page \d+ ---$\n?`)

// JoinPages concatenates page texts with a "--- Page N ---" marker
// line between consecutive pages. The marker names the page that
// follows it, so page 1 carries no marker.
func JoinPages(pages []string) string {
	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteString(fmt.Sprintf("\n--- Page %d ---\n", i+1))
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// SplitJoined recovers the per-page texts from marker-joined content.
// Inverse of JoinPages up to the newlines the markers own.
func SplitJoined(content string) []string {
	parts := pageMarker.Split(content, -1)
	pages := make([]string, len(parts))
	for i, p := range parts {
		pages[i] = strings.TrimSuffix(p, "\n")
	}
	if len(pages) == 0 {
		return []string{""}
	}
	return pages
}

// progress reports a status string when a callback is present.
func progress(report driven.ProgressFunc, status string) {
	if report != nil {
		report(status)
	}
}

// extractTitle extracts a human-readable title from a file name.
func extractTitle(fileName string) string {
	name := filepath.Base(fileName)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
