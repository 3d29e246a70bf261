// Package ooxml converts DOCX documents to HTML by walking the
// WordprocessingML body: paragraphs become <p> elements and the
// built-in Heading1-Heading3 styles become <h1>-<h3>.
package ooxml

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.DocxConverter = (*Converter)(nil)

// Converter renders DOCX bytes as HTML.
type Converter struct{}

// New creates a new DOCX converter.
func New() *Converter {
	return &Converter{}
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Properties struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// ConvertToHTML renders the document body as HTML.
func (c *Converter) ConvertToHTML(ctx context.Context, data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening DOCX archive: %w: %v", domain.ErrEngineUnavailable, err)
	}

	content, err := readDocumentXML(reader)
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", fmt.Errorf("word/document.xml missing: %w", domain.ErrInvalidInput)
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("parsing document XML: %w", err)
	}

	var sb strings.Builder
	for _, para := range doc.Body.Paragraphs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text := paragraphText(para)
		if strings.TrimSpace(text) == "" {
			continue
		}

		tag := headingTag(para.Properties.Style.Val)
		sb.WriteString("<" + tag + ">")
		sb.WriteString(html.EscapeString(text))
		sb.WriteString("</" + tag + ">\n")
	}

	return sb.String(), nil
}

// readDocumentXML pulls word/document.xml out of the archive.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening document XML: %w", err)
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}
	return nil, nil
}

// paragraphText concatenates a paragraph's run texts.
func paragraphText(para paragraph) string {
	var sb strings.Builder
	for _, r := range para.Runs {
		for _, t := range r.Text {
			sb.WriteString(t.Content)
		}
	}
	return sb.String()
}

// headingTag maps WordprocessingML paragraph styles to HTML tags.
// Only the first three heading levels participate in chapter
// detection; everything else renders as a plain paragraph.
func headingTag(style string) string {
	switch style {
	case "Heading1", "Title":
		return "h1"
	case "Heading2":
		return "h2"
	case "Heading3":
		return "h3"
	default:
		return "p"
	}
}
