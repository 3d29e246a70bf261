package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/foliolabs/folio/internal/chapters"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
	"github.com/foliolabs/folio/internal/htmltext"
	"github.com/foliolabs/folio/internal/paginate"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX files. The injected converter renders the
// document as HTML; plain text is obtained by stripping the tags and
// chapters come from the HTML heading elements.
type Normaliser struct {
	converter driven.DocxConverter
	pageSize  int
}

// New creates a new DOCX normaliser around the given converter. The
// page size must match the one the library service paginates with;
// pageSize <= 0 selects the default.
func New(converter driven.DocxConverter, pageSize int) *Normaliser {
	if pageSize <= 0 {
		pageSize = paginate.DefaultPageSize
	}
	return &Normaliser{
		converter: converter,
		pageSize:  pageSize,
	}
}

// FileTypes returns the formats this normaliser handles.
func (n *Normaliser) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeDOCX}
}

// Normalise converts the document to HTML, derives page text from the
// stripped markup, and locates chapters via <h1>-<h3> offsets.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawFile, report driven.ProgressFunc) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if n.converter == nil {
		return nil, fmt.Errorf("no DOCX converter configured: %w", domain.ErrEngineUnavailable)
	}

	progress(report, "Converting DOCX to HTML...")
	html, err := n.converter.ConvertToHTML(ctx, raw.Content)
	if err != nil {
		return nil, fmt.Errorf("converting DOCX: %w", err)
	}

	progress(report, "Extracting text...")
	text := htmltext.Strip(html)

	progress(report, "Paginating text...")
	pages := paginate.Split(text, n.pageSize)

	progress(report, "Detecting chapters...")
	chs := chapters.DetectHTML(html, n.pageSize)

	title, author := extractCoreProperties(raw.Content)
	if title == "" {
		title = extractTitle(raw.FileName)
	}

	return &driven.NormaliseResult{
		Title:     title,
		Author:    author,
		PlainText: text,
		HTML:      html,
		PageCount: len(pages),
		Chapters:  chs,
		Pages:     pages,
	}, nil
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
}

// extractCoreProperties reads title and author from docProps/core.xml.
// Any failure falls back to empty values; document properties are a
// nicety, not a requirement.
func extractCoreProperties(data []byte) (title, author string) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ""
	}

	for _, file := range reader.File {
		if file.Name != "docProps/core.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			break
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			break
		}

		var core coreXML
		if err := xml.Unmarshal(content, &core); err == nil {
			return strings.TrimSpace(core.Title), strings.TrimSpace(core.Creator)
		}
		break
	}

	return "", ""
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
