package chapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectText(t *testing.T) {
	input := "Chapter 1: Intro\n\nHello world.\n\nChapter 2: Body\n\nMore text."

	got := DetectText(input, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "Chapter 1: Intro", got[0].Title)
	assert.Equal(t, "Chapter 2: Body", got[1].Title)
	assert.Equal(t, 0, got[0].StartPage)
	assert.Greater(t, got[1].StartPage, got[0].StartPage,
		"chapters should appear at increasing page indices")
}

func TestDetectText_Keywords(t *testing.T) {
	tests := []struct {
		line  string
		match bool
	}{
		{"Chapter 1: The Beginning", true},
		{"chapter 12", true},
		{"Part II - Winter", true},
		{"Section 3. Methods", true},
		{"SECTION 4", true},
		{"  Chapter 5 with leading space", true},
		{"The chapter about nothing", false},
		{"Chapters are great", false},
		{"Chapter", false},
		{"ordinary prose line", false},
	}

	for _, tt := range tests {
		got := DetectText(tt.line, 3000)
		if tt.match {
			assert.Len(t, got, 1, "expected %q to match", tt.line)
		} else {
			assert.Empty(t, got, "expected %q not to match", tt.line)
		}
	}
}

func TestDetectText_Deterministic(t *testing.T) {
	input := "Chapter 1\n\ntext\n\nChapter 2\n\nmore"
	a := DetectText(input, 10)
	b := DetectText(input, 10)
	assert.Equal(t, a, b)
}

func TestDetectText_TruncatesTitle(t *testing.T) {
	long := "Chapter 1: " + strings.Repeat("x", 200)
	got := DetectText(long, 3000)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Title, 80)
}

func TestDetectText_NonDecreasingStartPages(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 8; i++ {
		sb.WriteString("Chapter ")
		sb.WriteString(strings.Repeat("I", i))
		sb.WriteString("\n\n")
		sb.WriteString(strings.Repeat("lorem ipsum ", 50))
		sb.WriteString("\n\n")
	}

	got := DetectText(sb.String(), 300)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].StartPage, got[i-1].StartPage)
	}
}

func TestDetectPDFPages(t *testing.T) {
	pages := []string{
		"CHAPTER I\nIt was the best of times.",
		"nothing to see here",
		"Chapter 2: The Middle\nMore prose.",
		"PART II\nA new part begins.",
	}

	got := DetectPDFPages(pages)

	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].StartPage)
	assert.Equal(t, "CHAPTER I", got[0].Title)
	assert.Equal(t, 2, got[1].StartPage)
	assert.Equal(t, 3, got[2].StartPage)
}

func TestDetectPDFPages_OneChapterPerPage(t *testing.T) {
	// Even when a page contains several heading-like lines only the
	// first is recorded: physical pages carry at most one chapter test.
	pages := []string{"CHAPTER I\nsome text\nCHAPTER II"}
	got := DetectPDFPages(pages)
	require.Len(t, got, 1)
}

func TestDetectHTML(t *testing.T) {
	html := `<h1>Opening</h1><p>` + strings.Repeat("word ", 30) + `</p><h2>Second Part</h2><p>tail</p>`

	got := DetectHTML(html, 50)

	require.Len(t, got, 2)
	assert.Equal(t, "Opening", got[0].Title)
	assert.Equal(t, "Second Part", got[1].Title)
	assert.Equal(t, 0, got[0].StartPage)
	assert.Greater(t, got[1].StartPage, 0)
}

func TestDetectHTML_SkipsShortAndStripsNested(t *testing.T) {
	html := `<h1>ok</h1><h2>Chapter <em>One</em></h2><h3>   </h3>`

	got := DetectHTML(html, 3000)

	require.Len(t, got, 1)
	assert.Equal(t, "Chapter One", got[0].Title)
}

func TestDetectHTML_IgnoresLowerHeadings(t *testing.T) {
	got := DetectHTML(`<h4>Too deep</h4><h5>Deeper</h5>`, 3000)
	assert.Empty(t, got)
}
