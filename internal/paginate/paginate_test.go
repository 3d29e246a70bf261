package paginate

import (
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\n"} {
		pages := Split(input, 100)
		if len(pages) != 1 {
			t.Errorf("Split(%q): expected exactly one page, got %d", input, len(pages))
		}
	}
}

func TestSplit_SinglePage(t *testing.T) {
	pages := Split("Hello world.", 100)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0] != "Hello world." {
		t.Errorf("unexpected page content: %q", pages[0])
	}
}

func TestSplit_PreservesParagraphs(t *testing.T) {
	input := "First paragraph.\n\nSecond paragraph.\n\nThird paragraph."
	pages := Split(input, 10000)

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	// Rejoining pages with blank lines reproduces the paragraph structure.
	joined := strings.Join(pages, "\n\n")
	if joined != input {
		t.Errorf("paragraph structure lost:\nwant %q\ngot  %q", input, joined)
	}
}

func TestSplit_FlushesAtLimit(t *testing.T) {
	input := "Chapter 1: Intro\n\nHello world.\n\nChapter 2: Body\n\nMore text."
	pages := Split(input, 10)

	// The first paragraph pair already exceeds 10 characters, so the
	// paginator must produce multiple pages.
	if len(pages) < 2 {
		t.Fatalf("expected at least 2 pages, got %d: %q", len(pages), pages)
	}

	// Every paragraph survives, in order.
	joined := strings.Join(pages, "\n\n")
	for _, para := range []string{"Chapter 1: Intro", "Hello world.", "Chapter 2: Body", "More text."} {
		if !strings.Contains(joined, para) {
			t.Errorf("paragraph %q missing from output", para)
		}
	}
}

func TestSplit_OversizedParagraphNeverSplit(t *testing.T) {
	long := strings.Repeat("a", 500)
	input := "short\n\n" + long + "\n\nshort again"
	pages := Split(input, 100)

	found := false
	for _, p := range pages {
		if p == long {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized paragraph should become a page by itself, got %d pages", len(pages))
	}
}

func TestSplit_BoundExceededByAtMostOneParagraph(t *testing.T) {
	paras := []string{
		strings.Repeat("x", 40),
		strings.Repeat("y", 40),
		strings.Repeat("z", 40),
		strings.Repeat("w", 120), // oversized on its own
		strings.Repeat("v", 40),
	}
	input := strings.Join(paras, "\n\n")
	const limit = 100

	for i, page := range Split(input, limit) {
		// A page may exceed the limit only when it is a single
		// oversized paragraph.
		if len(page) > limit && strings.Contains(page, "\n\n") {
			t.Errorf("page %d exceeds limit yet contains multiple paragraphs (%d chars)", i, len(page))
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	input := "alpha\n\nbeta\n\ngamma\n\ndelta"
	a := Split(input, 12)
	b := Split(input, 12)
	if len(a) != len(b) {
		t.Fatalf("page counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("page %d differs between runs", i)
		}
	}
}

func TestPageForOffset(t *testing.T) {
	tests := []struct {
		offset, pageSize, want int
	}{
		{0, 3000, 0},
		{2999, 3000, 0},
		{3000, 3000, 1},
		{7500, 3000, 2},
		{-5, 3000, 0},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := PageForOffset(tt.offset, tt.pageSize); got != tt.want {
			t.Errorf("PageForOffset(%d, %d) = %d, want %d", tt.offset, tt.pageSize, got, tt.want)
		}
	}
}
