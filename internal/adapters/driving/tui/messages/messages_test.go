package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTypeString(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewLibrary, "library"},
		{ViewReader, "reader"},
		{ViewChapters, "chapters"},
		{ViewChat, "chat"},
		{ViewSearch, "search"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.view.String())
	}
}
