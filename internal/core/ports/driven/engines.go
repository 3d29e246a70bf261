package driven

import "context"

// PDFEngine extracts text from PDF bytes, one string per physical page.
// It is injected into the PDF normaliser as an explicit capability
// handle with per-session lifetime; no module-level engine cache exists.
type PDFEngine interface {
	// ExtractPages returns the text of each physical page in order.
	// A document that cannot be opened fails with an error wrapping
	// domain.ErrEngineUnavailable.
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}

// DocxConverter converts DOCX bytes to HTML, preserving paragraph
// structure and mapping heading styles to <h1>-<h3> elements.
type DocxConverter interface {
	// ConvertToHTML returns the rendered HTML for the document.
	ConvertToHTML(ctx context.Context, data []byte) (string, error)
}
