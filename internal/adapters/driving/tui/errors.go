package tui

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("tui: library service is required")

// ErrMissingHighlightService is returned when the highlight service is not provided.
var ErrMissingHighlightService = errors.New("tui: highlight service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
