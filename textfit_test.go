package ideawall

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// fakeFace measures every rune at a fixed advance proportional to the size,
// standing in for a monospace font.
type fakeFace struct {
	size int
}

func (f fakeFace) Advance(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(f.size) * 0.6
}

func (f fakeFace) LineHeight() float64 {
	return float64(f.size) * 1.2
}

func fakeFaceFor(size int) Face { return fakeFace{size: size} }

func TestWrapRunesRespectsWidth(t *testing.T) {
	f := fakeFace{size: 10} // 6px per rune
	lines := wrapRunes("abcdefghij", f, 30)
	if len(lines) != 2 {
		t.Fatalf("lines = %v, want 2 lines of 5 runes", lines)
	}
	for _, line := range lines {
		if f.Advance(line) > 30 {
			t.Errorf("line %q exceeds limit", line)
		}
	}
	if strings.Join(lines, "") != "abcdefghij" {
		t.Errorf("wrap lost characters: %v", lines)
	}
}

func TestWrapRunesHonorsNewlines(t *testing.T) {
	f := fakeFace{size: 10}
	lines := wrapRunes("ab\ncd", f, 1000)
	if len(lines) != 2 || lines[0] != "ab" || lines[1] != "cd" {
		t.Errorf("lines = %v, want [ab cd]", lines)
	}
}

func TestWrapRunesOversizeRuneKept(t *testing.T) {
	f := fakeFace{size: 100} // 60px per rune, limit below a single rune
	lines := wrapRunes("ab", f, 30)
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Errorf("lines = %v, want one oversize rune per line", lines)
	}
}

func TestWrapRunesEmpty(t *testing.T) {
	if lines := wrapRunes("", fakeFace{size: 10}, 100); len(lines) != 1 || lines[0] != "" {
		t.Errorf("lines = %v, want one empty line", lines)
	}
}

func TestFitLinesPicksLargestFitting(t *testing.T) {
	// Short text in a big region fits at the maximum size.
	size, lines := fitLines("hi", 500, fitMinSize, fitMaxSize, fakeFaceFor)
	if size != fitMaxSize {
		t.Errorf("size = %d, want %d for short text in a large region", size, fitMaxSize)
	}
	if len(lines) != 1 {
		t.Errorf("lines = %v, want one line", lines)
	}
}

func TestFitLinesShrinksForLongText(t *testing.T) {
	long := strings.Repeat("x", 120)
	sizeSmall, _ := fitLines(long, 90, fitMinSize, fitMaxSize, fakeFaceFor)
	sizeLarge, _ := fitLines(long, 180, fitMinSize, fitMaxSize, fakeFaceFor)
	if sizeSmall >= sizeLarge {
		t.Errorf("size %d in 90px region >= size %d in 180px region", sizeSmall, sizeLarge)
	}
	if sizeSmall < fitMinSize {
		t.Errorf("size %d below minimum", sizeSmall)
	}
}

func TestFitLinesFallsBackToMinimum(t *testing.T) {
	long := strings.Repeat("x", 4000)
	size, lines := fitLines(long, 50, fitMinSize, fitMaxSize, fakeFaceFor)
	if size != fitMinSize {
		t.Errorf("size = %d, want fallback to %d", size, fitMinSize)
	}
	if len(lines) == 0 {
		t.Error("fallback produced no lines")
	}
}

func TestFitLinesResultFitsRegion(t *testing.T) {
	texts := []string{
		"one",
		"a medium length idea message here",
		strings.Repeat("word ", 25),
	}
	for _, s := range texts {
		limit := 130.0
		size, lines := fitLines(s, limit, fitMinSize, fitMaxSize, fakeFaceFor)
		f := fakeFaceFor(size)
		if h := float64(len(lines)) * f.LineHeight(); h > limit {
			t.Errorf("%q: height %v exceeds region %v at size %d", s, h, limit, size)
		}
		for _, line := range lines {
			if f.Advance(line) > limit {
				t.Errorf("%q: line %q exceeds region at size %d", s, line, size)
			}
		}
	}
}
