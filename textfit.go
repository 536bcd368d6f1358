package ideawall

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Face is the measurement interface the fit search runs against. It is
// satisfied by the TTF adapter below and by fakes in tests.
type Face interface {
	// Advance returns the horizontal advance of s in pixels.
	Advance(s string) float64
	// LineHeight returns the vertical distance between baselines.
	LineHeight() float64
}

const (
	fitMaxSize = 28 // font-size search starts here and walks down
	fitMinSize = 8

	// Side of the centered square used as the usable text region inside a
	// tile of radius r. The inscribed square has side r*sqrt(2) ~ 1.41r;
	// a slightly smaller region keeps glyph corners off the stroke.
	fitRegionFactor = 1.35
)

// fittedText is one cached fit-search result: the chosen font size and the
// character-wrapped lines with their measured widths.
type fittedText struct {
	size   int
	lines  []string
	widths []float64
	lineH  float64
}

func (ft *fittedText) totalHeight() float64 {
	return float64(len(ft.lines)) * ft.lineH
}

// wrapRunes wraps s at the rune level so it never exceeds maxW per line.
// Character wrapping (not word wrapping) keeps dense scripts without spaces
// wrappable. Explicit newlines are honored. A single rune wider than maxW
// still gets its own line rather than being dropped.
func wrapRunes(s string, f Face, maxW float64) []string {
	var lines []string
	line := ""
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, line)
			line = ""
			continue
		}
		candidate := line + string(r)
		if line != "" && f.Advance(candidate) > maxW {
			lines = append(lines, line)
			line = string(r)
			continue
		}
		line = candidate
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// fitLines searches integer font sizes downward from maxSize for the largest
// size whose wrapped text fits a limit-by-limit region, and returns that size
// with its wrapped lines. If nothing fits, the minimum size is used anyway.
func fitLines(s string, limit float64, minSize, maxSize int, faceFor func(int) Face) (int, []string) {
	var lines []string
	for size := maxSize; size >= minSize; size-- {
		f := faceFor(size)
		lines = wrapRunes(s, f, limit)
		if float64(len(lines))*f.LineHeight() > limit {
			continue
		}
		fits := true
		for _, line := range lines {
			if f.Advance(line) > limit {
				fits = false
				break
			}
		}
		if fits {
			return size, lines
		}
	}
	return minSize, wrapRunes(s, faceFor(minSize), limit)
}

// --- TTF adapter ---

// ttfFace adapts Ebitengine's text/v2 face to the Face interface.
type ttfFace struct {
	face *text.GoTextFace
	lh   float64
}

func newTTFFace(source *text.GoTextFaceSource, size float64) *ttfFace {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &ttfFace{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

func (f *ttfFace) Advance(s string) float64 {
	return text.Advance(s, f.face)
}

func (f *ttfFace) LineHeight() float64 {
	return f.lh
}

// --- Fitter ---

type fitKey struct {
	text  string
	limit int // world units, truncated; radii are stable per layout
}

// textFitter runs and caches fit searches against one TTF source. One face
// per integer size is created lazily and reused; fit results are cached per
// (text, region) pair so the per-frame cost is a map lookup.
type textFitter struct {
	source *text.GoTextFaceSource
	faces  map[int]*ttfFace
	cache  map[fitKey]*fittedText
}

func newTextFitter(source *text.GoTextFaceSource) *textFitter {
	return &textFitter{
		source: source,
		faces:  make(map[int]*ttfFace),
		cache:  make(map[fitKey]*fittedText),
	}
}

func (tf *textFitter) face(size int) *ttfFace {
	f, ok := tf.faces[size]
	if !ok {
		f = newTTFFace(tf.source, float64(size))
		tf.faces[size] = f
	}
	return f
}

// fit returns the cached largest-fitting layout of s inside a tile of the
// given world radius.
func (tf *textFitter) fit(s string, radius float64) *fittedText {
	limit := radius * fitRegionFactor
	key := fitKey{text: s, limit: int(limit)}
	if ft, ok := tf.cache[key]; ok {
		return ft
	}

	size, lines := fitLines(s, limit, fitMinSize, fitMaxSize, func(n int) Face {
		return tf.face(n)
	})
	f := tf.face(size)
	ft := &fittedText{
		size:   size,
		lines:  lines,
		widths: make([]float64, len(lines)),
		lineH:  f.LineHeight(),
	}
	for i, line := range lines {
		ft.widths[i] = f.Advance(line)
	}
	tf.cache[key] = ft
	return ft
}

// invalidate drops all cached fits, e.g. after a relayout.
func (tf *textFitter) invalidate() {
	clear(tf.cache)
}
