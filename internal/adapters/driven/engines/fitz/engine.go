// Package fitz provides a PDF engine backed by go-fitz (MuPDF).
package fitz

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.PDFEngine = (*Engine)(nil)

// Engine extracts per-page text from PDF bytes using MuPDF.
type Engine struct{}

// New creates a new MuPDF engine.
func New() *Engine {
	return &Engine{}
}

// ExtractPages returns the text of each physical page in order.
func (e *Engine) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w: %v", domain.ErrEngineUnavailable, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.Text(i)
		if err != nil {
			// A single unreadable page degrades to empty text rather
			// than failing the whole document.
			text = ""
		}
		pages = append(pages, text)
	}

	return pages, nil
}
