package driven

import (
	"context"

	"github.com/foliolabs/folio/internal/core/domain"
)

// ProgressFunc receives human-readable status strings while an upload
// is processed. It exists purely for UI feedback and is never part of
// the data contract; implementations may pass nil.
type ProgressFunc func(status string)

// Normaliser converts an uploaded file into the uniform page/chapter
// model. Each normaliser handles one source format.
type Normaliser interface {
	// FileTypes returns the formats this normaliser handles.
	FileTypes() []domain.FileType

	// Normalise converts raw file bytes into a NormaliseResult.
	// Engine failures abort the upload: no partial result is returned.
	Normalise(ctx context.Context, raw *domain.RawFile, report ProgressFunc) (*NormaliseResult, error)
}

// NormaliseResult is the uniform output of ingestion.
type NormaliseResult struct {
	// Title is derived from document metadata or the file name.
	Title string

	// Author is the document author when the format carries one.
	Author string

	// PlainText is the full extracted text. For PDF it contains
	// literal "--- Page N ---" marker lines between physical pages.
	PlainText string

	// HTML is the converted markup for DOCX, empty otherwise.
	HTML string

	// Binary holds the original bytes when they are needed later
	// (PDF payloads destined for the blob store), nil otherwise.
	Binary []byte

	// PageCount is the number of pages. Always >= 1.
	PageCount int

	// Chapters are detected chapters in document order.
	Chapters []domain.Chapter

	// Pages holds the chunked page texts for reflowed formats.
	// Left empty for PDF, whose pagination is page-native: page text
	// is recovered by splitting PlainText on the marker lines.
	Pages []string
}

// NormaliserRegistry selects the normaliser for a file's format.
type NormaliserRegistry interface {
	// Normalise dispatches to the normaliser registered for the raw
	// file's type. Returns domain.ErrUnsupportedFileType when none is.
	Normalise(ctx context.Context, raw *domain.RawFile, report ProgressFunc) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(n Normaliser)

	// SupportedFileTypes returns all registered formats.
	SupportedFileTypes() []domain.FileType
}
