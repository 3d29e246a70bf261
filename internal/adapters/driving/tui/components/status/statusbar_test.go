package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarStates(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)

	assert.Equal(t, StateReady, bar.State())
	assert.Contains(t, bar.View(), "Ready")

	bar.SetState(StateThinking)
	assert.Contains(t, bar.View(), "Thinking...")

	bar.SetState(StateSearching)
	assert.Contains(t, bar.View(), "Searching...")

	bar.SetState(StateError)
	bar.SetMessage("index closed")
	assert.Contains(t, bar.View(), "index closed")
}

func TestBarResultCount(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)

	bar.SetState(StateResults)
	bar.SetResultCount(7)
	assert.Contains(t, bar.View(), "7 results")
}

func TestBarClear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetResultCount(3)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Zero(t, bar.ResultCount())
}
