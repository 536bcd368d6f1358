package ideawall

import (
	"image/color"
	"testing"
)

func TestTileCullAgainstVisibleBounds(t *testing.T) {
	cam := testCamera() // 800x600 viewport at the origin, scale 1
	vis := cam.VisibleBounds()

	// Right viewport edge is at world x=400; a 30-radius tile is culled
	// once its center passes the edge plus margin plus radius.
	if vis.Intersects(tileCullRect(400+cullMargin+30+1, 0, 30, cullMargin)) {
		t.Error("tile beyond the cull margin not culled")
	}
	if !vis.Intersects(tileCullRect(400+cullMargin+30-1, 0, 30, cullMargin)) {
		t.Error("tile inside the cull margin culled")
	}
	if !vis.Intersects(tileCullRect(0, 0, 30, cullMargin)) {
		t.Error("centered tile culled")
	}

	// Zooming in shrinks the visible world; the same far tile stays culled.
	cam.Scale = 2
	if cam.VisibleBounds().Intersects(tileCullRect(400, 0, 30, cullMargin/cam.Scale)) {
		t.Error("tile outside the zoomed-in view not culled")
	}
}

func TestWhitePixelColor(t *testing.T) {
	if got := ColorWhite.toRGBA(); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("ColorWhite.toRGBA() = %v", got)
	}
}

func TestEllipseSegmentsBounds(t *testing.T) {
	tests := []struct {
		sr   float64
		want int
	}{
		{0, 16},
		{20, 16},
		{60, 30},
		{128, 64},
		{5000, 64},
	}
	for _, tt := range tests {
		if got := ellipseSegments(tt.sr); got != tt.want {
			t.Errorf("ellipseSegments(%v) = %d, want %d", tt.sr, got, tt.want)
		}
	}
}

func TestVertexPremultipliesColor(t *testing.T) {
	v := vertexAt(10, 20, Color{R: 1, G: 0.5, B: 0.2, A: 0.5})
	if v.ColorA != 0.5 {
		t.Errorf("ColorA = %v, want 0.5", v.ColorA)
	}
	if v.ColorR != 0.5 || v.ColorG != 0.25 || !approxEqual(float64(v.ColorB), 0.1, 1e-6) {
		t.Errorf("premultiplied RGB = (%v,%v,%v)", v.ColorR, v.ColorG, v.ColorB)
	}
	if v.SrcX != 0.5 || v.SrcY != 0.5 {
		t.Errorf("source UV = (%v,%v), want white-pixel center", v.SrcX, v.SrcY)
	}
}

func TestLerpColor(t *testing.T) {
	a := Color{R: 0, G: 0, B: 0, A: 1}
	b := Color{R: 1, G: 1, B: 1, A: 1}
	mid := lerpColor(a, b, 0.5)
	if mid.R != 0.5 || mid.G != 0.5 || mid.B != 0.5 {
		t.Errorf("lerpColor mid = %+v", mid)
	}
	if got := lerpColor(a, b, 0); got != a {
		t.Errorf("lerpColor(0) = %+v, want a", got)
	}
	if got := lerpColor(a, b, 1); got != b {
		t.Errorf("lerpColor(1) = %+v, want b", got)
	}
}

func TestToastText(t *testing.T) {
	if got := toastText("nice", &toast{kind: toastLike, likes: 12}); got != "nice\n♥ 12" {
		t.Errorf("like toast = %q", got)
	}
	if got := toastText("nice", &toast{kind: toastUnlike, likes: 0}); got != "nice\n♡ 0" {
		t.Errorf("unlike toast = %q", got)
	}
}

func TestTextVisibilityGates(t *testing.T) {
	e := testEngine(nil)

	e.cam.Scale = 1.0
	e.panSpeed = 0
	if v := e.textVisibility(); v != 1 {
		t.Errorf("visibility = %v at rest, want 1", v)
	}

	e.cam.Scale = 0.3 // below the legibility scale
	if v := e.textVisibility(); v != 0 {
		t.Errorf("visibility = %v when zoomed far out, want 0", v)
	}

	e.cam.Scale = 1.0
	e.panSpeed = 2000 // faster than the fade-out bound
	if v := e.textVisibility(); v != 0 {
		t.Errorf("visibility = %v during a fast pan, want 0", v)
	}

	e.panSpeed = 800 // mid fade
	if v := e.textVisibility(); v <= 0 || v >= 1 {
		t.Errorf("visibility = %v mid-fade, want partial", v)
	}
}

func TestSmoothstepEdges(t *testing.T) {
	if smoothstep(0, 1, -1) != 0 || smoothstep(0, 1, 2) != 1 {
		t.Error("smoothstep not clamped")
	}
	if v := smoothstep(0, 1, 0.5); !approxEqual(v, 0.5, testEps) {
		t.Errorf("smoothstep midpoint = %v", v)
	}
}
