package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/foliolabs/folio/internal/chapters"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
	"github.com/foliolabs/folio/internal/paginate"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text files.
type Normaliser struct {
	pageSize int
}

// New creates a new plain text normaliser. The page size must match
// the one the library service paginates with; pageSize <= 0 selects
// the default.
func New(pageSize int) *Normaliser {
	if pageSize <= 0 {
		pageSize = paginate.DefaultPageSize
	}
	return &Normaliser{pageSize: pageSize}
}

// FileTypes returns the formats this normaliser handles.
func (n *Normaliser) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeTXT}
}

// Normalise chunks the raw text into pages and scans its lines for
// chapter headings.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawFile, report driven.ProgressFunc) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	progress(report, "Reading text file...")
	text := string(raw.Content)

	progress(report, "Paginating text...")
	pages := paginate.Split(text, n.pageSize)

	progress(report, "Detecting chapters...")
	chs := chapters.DetectText(text, n.pageSize)

	return &driven.NormaliseResult{
		Title:     extractTitle(raw.FileName),
		PlainText: text,
		PageCount: len(pages),
		Chapters:  chs,
		Pages:     pages,
	}, nil
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
