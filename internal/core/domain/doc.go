// Package domain defines the core business entities for Folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Book: an ingested document with its page/chapter model
//   - Chapter: a detected heading and the page it starts on
//   - Highlight: user-selected text annotated with a color and note
//   - ChatMessage: one entry in a book's AI conversation transcript
//   - RawFile: opaque bytes handed to a normaliser
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
