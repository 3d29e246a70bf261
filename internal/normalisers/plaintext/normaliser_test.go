package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/core/domain"
)

func TestNormalise(t *testing.T) {
	n := New(0)
	raw := &domain.RawFile{
		FileName: "my_favourite-book.txt",
		FileType: domain.FileTypeTXT,
		Content:  []byte("Chapter 1: Intro\n\nHello world.\n\nChapter 2: Body\n\nMore text."),
	}

	var statuses []string
	result, err := n.Normalise(context.Background(), raw, func(s string) {
		statuses = append(statuses, s)
	})

	require.NoError(t, err)
	assert.Equal(t, "my favourite book", result.Title)
	assert.Equal(t, string(raw.Content), result.PlainText)
	assert.GreaterOrEqual(t, result.PageCount, 1)
	assert.Len(t, result.Pages, result.PageCount)
	assert.Nil(t, result.Binary)
	assert.Empty(t, result.HTML)

	require.Len(t, result.Chapters, 2)
	assert.Equal(t, "Chapter 1: Intro", result.Chapters[0].Title)
	assert.Equal(t, "Chapter 2: Body", result.Chapters[1].Title)

	assert.NotEmpty(t, statuses, "progress strings should be reported")
}

func TestNormalise_CustomPageSize(t *testing.T) {
	n := New(20)
	raw := &domain.RawFile{
		FileName: "short.txt",
		FileType: domain.FileTypeTXT,
		Content:  []byte("First paragraph.\n\nSecond paragraph.\n\nThird paragraph."),
	}

	result, err := n.Normalise(context.Background(), raw, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, result.PageCount)
	require.Len(t, result.Pages, 3)
	assert.Equal(t, "First paragraph.", result.Pages[0])
}

func TestNormalise_EmptyFile(t *testing.T) {
	n := New(0)
	raw := &domain.RawFile{FileName: "empty.txt", FileType: domain.FileTypeTXT}

	result, err := n.Normalise(context.Background(), raw, nil)

	require.NoError(t, err)
	// Never zero pages: downstream index arithmetic depends on it.
	assert.Equal(t, 1, result.PageCount)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, "", result.Pages[0])
}

func TestNormalise_NilRaw(t *testing.T) {
	n := New(0)
	result, err := n.Normalise(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestFileTypes(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypeTXT}, New(0).FileTypes())
}
