package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates an upload whose extension is not
	// pdf, docx, or txt. Reported before any processing begins.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEngineUnavailable indicates a format engine (PDF extractor or
	// DOCX converter) could not be loaded or failed fatally. The upload
	// is aborted with no partial book persisted.
	ErrEngineUnavailable = errors.New("format engine unavailable")

	// ErrPageOutOfRange indicates a page index outside [0, PageCount-1].
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrTextNotOnPage indicates highlight text that is not a verbatim
	// substring of the stated page's content.
	ErrTextNotOnPage = errors.New("text not found on page")

	// ErrAssistantUnavailable indicates the remote chat agent is not
	// configured. Chat features are disabled without it.
	ErrAssistantUnavailable = errors.New("assistant unavailable")

	// ErrSearchUnavailable indicates the search index is not configured.
	// Library full-text search is disabled.
	ErrSearchUnavailable = errors.New("search index unavailable")
)
