package ideawall

import (
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	// Tiles whose bounding box misses the camera's visible bounds by more
	// than this screen-space margin are culled.
	cullMargin = 64.0

	// The flip squash never reaches zero so the tile stays a visible sliver
	// at the halfway pose.
	squashFloor = 0.08

	// Text fades in as the camera zooms past these scales, and fades out as
	// the pan speed (screen px/s) crosses these bounds.
	textScaleLo = 0.45
	textScaleHi = 0.7
	textSpeedLo = 400.0
	textSpeedHi = 1200.0

	strokeWidthFactor = 0.06
	strokeWidthMin    = 1.5

	// Idle float of the logo overlay.
	idleFloatAmp  = 4.0 // world units
	idleFloatRate = 1.6 // rad/s
)

// Draw renders one frame: background, culled tiles front-to-back order by
// layout index, then the logo overlay tracking the obstacle.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.disposed {
		return
	}
	screen.Fill(e.theme.Background.toRGBA())

	textAlpha := e.textVisibility()
	vis := e.cam.VisibleBounds()
	for i := range e.nodes {
		e.drawTile(screen, &e.nodes[i], vis, textAlpha)
	}
	e.drawObstacle(screen)

	if e.cfg.ShowDebug {
		e.drawDebug(screen)
	}
}

// textVisibility gates text alpha on zoom scale (illegible when zoomed out)
// and pan speed (illegible while the view moves fast).
func (e *Engine) textVisibility() float64 {
	zoomGate := smoothstep(textScaleLo, textScaleHi, e.cam.Scale)
	speedGate := 1 - smoothstep(textSpeedLo, textSpeedHi, e.panSpeed)
	return zoomGate * speedGate
}

func (e *Engine) drawTile(screen *ebiten.Image, n *LayoutNode, vis Rect, textAlpha float64) {
	ts := e.tiles.get(n.ID)

	wx, wy := n.X, n.Y
	alpha, spawnScale := 1.0, 1.0
	if ts.spawn != nil {
		wx, wy, alpha, spawnScale = ts.spawn.at(n.X, n.Y)
	}

	r := n.R / e.layoutOpts.PulseHeadroom * ts.size * spawnScale
	if !vis.Intersects(tileCullRect(wx, wy, r, cullMargin/e.cam.Scale)) {
		return
	}
	sx, sy := e.cam.WorldToScreen(wx, wy)
	sr := r * e.cam.Scale

	squash := math.Max(squashFloor, math.Abs(math.Cos(math.Pi*ts.flip)))
	back := ts.flip >= 0.5

	fill := e.theme.FrontFill
	if back {
		fill = e.theme.BackFill
	}
	e.fillEllipse(screen, sx, sy, sr*squash, sr, fill.scaled(alpha))

	strokeW := math.Max(strokeWidthMin, sr*strokeWidthFactor)
	e.strokeEllipse(screen, sx, sy, sr*squash, sr, strokeW, alpha)

	if e.fitter == nil {
		return
	}
	faceAlpha := textAlpha * alpha
	if faceAlpha < 0.01 {
		return
	}
	content := n.Message
	if back && ts.toast != nil {
		content = toastText(n.Message, ts.toast)
	}
	ft := e.fitter.fit(content, n.R/e.layoutOpts.PulseHeadroom)
	e.drawFitted(screen, ft, sx, sy, e.cam.Scale*ts.size*spawnScale, squash, faceAlpha)
}

// tileCullRect is a tile's world bounding box expanded by the cull margin,
// tested against the camera's visible bounds.
func tileCullRect(wx, wy, r, margin float64) Rect {
	return Rect{
		X:      wx - r - margin,
		Y:      wy - r - margin,
		Width:  2 * (r + margin),
		Height: 2 * (r + margin),
	}
}

// toastText is the transient back-face content: the idea text plus the
// confirmed like count. At rest the back face shows the plain message only.
func toastText(message string, t *toast) string {
	mark := "♥"
	if t.kind == toastUnlike {
		mark = "♡"
	}
	return message + "\n" + mark + " " + strconv.Itoa(t.likes)
}

// drawFitted renders pre-fitted lines centered on (sx, sy), scaled by the
// camera and squashed horizontally by the flip pose.
func (e *Engine) drawFitted(screen *ebiten.Image, ft *fittedText, sx, sy, scale, squash, alpha float64) {
	c := e.theme.TextColor
	face := e.fitter.face(ft.size).face
	top := -ft.totalHeight() / 2
	for i, line := range ft.lines {
		if line == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(-ft.widths[i]/2, top+float64(i)*ft.lineH)
		op.GeoM.Scale(scale*squash, scale)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
		op.ColorScale.ScaleAlpha(float32(alpha * c.A))
		text.Draw(screen, line, face, op)
	}
}

// drawObstacle draws the logo overlay (or a plain filled circle) synchronized
// to the obstacle's screen position and scale, with a continuous idle float.
func (e *Engine) drawObstacle(screen *ebiten.Image) {
	ob := e.layoutOpts.Obstacle
	yOff := math.Sin(e.elapsed*idleFloatRate) * idleFloatAmp
	sx, sy := e.cam.WorldToScreen(ob.X, ob.Y+yOff)
	sr := ob.R * e.cam.Scale

	if img := e.cfg.LogoImage; img != nil {
		b := img.Bounds()
		longest := math.Max(float64(b.Dx()), float64(b.Dy()))
		if longest == 0 {
			return
		}
		scale := 2 * sr / longest
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(sx, sy)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
		return
	}

	e.fillEllipse(screen, sx, sy, sr, sr, e.theme.ObstacleFill)
	e.strokeEllipse(screen, sx, sy, sr, sr, math.Max(strokeWidthMin, sr*strokeWidthFactor), 1)
}

// --- Triangle submission ---

// ellipseSegments picks a segment count from the on-screen radius so small
// tiles cost fewer vertices.
func ellipseSegments(sr float64) int {
	seg := int(sr / 2)
	if seg < 16 {
		return 16
	}
	if seg > 64 {
		return 64
	}
	return seg
}

// vertexAt builds an untextured vertex over the shared white pixel.
// Colors are premultiplied at submission, like every other draw in ebiten.
func vertexAt(x, y float64, col Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(col.R * col.A),
		ColorG: float32(col.G * col.A),
		ColorB: float32(col.B * col.A),
		ColorA: float32(col.A),
	}
}

// fillEllipse submits a fan-triangulated ellipse.
func (e *Engine) fillEllipse(dst *ebiten.Image, cx, cy, rx, ry float64, col Color) {
	seg := ellipseSegments(ry)
	vs := e.vertexBuf[:0]
	is := e.indexBuf[:0]

	vs = append(vs, vertexAt(cx, cy, col))
	for i := 0; i <= seg; i++ {
		a := 2 * math.Pi * float64(i) / float64(seg)
		vs = append(vs, vertexAt(cx+rx*math.Cos(a), cy+ry*math.Sin(a), col))
	}
	for i := 0; i < seg; i++ {
		is = append(is, 0, uint16(i+1), uint16(i+2))
	}

	dst.DrawTriangles(vs, is, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	e.vertexBuf, e.indexBuf = vs, is
}

// strokeEllipse submits a ring strip whose vertex colors blend between the
// theme's two stroke colors across the horizontal axis.
func (e *Engine) strokeEllipse(dst *ebiten.Image, cx, cy, rx, ry, width, alpha float64) {
	seg := ellipseSegments(ry)
	irx := math.Max(0, rx-width)
	iry := math.Max(0, ry-width)

	vs := e.vertexBuf[:0]
	is := e.indexBuf[:0]

	for i := 0; i <= seg; i++ {
		a := 2 * math.Pi * float64(i) / float64(seg)
		cos, sin := math.Cos(a), math.Sin(a)
		col := lerpColor(e.theme.StrokeA, e.theme.StrokeB, (1-cos)/2).scaled(alpha)
		vs = append(vs, vertexAt(cx+rx*cos, cy+ry*sin, col))
		vs = append(vs, vertexAt(cx+irx*cos, cy+iry*sin, col))
	}
	for i := 0; i < seg; i++ {
		o0 := uint16(2 * i)
		i0 := o0 + 1
		o1 := o0 + 2
		i1 := o0 + 3
		is = append(is, o0, i0, o1, i0, i1, o1)
	}

	dst.DrawTriangles(vs, is, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	e.vertexBuf, e.indexBuf = vs, is
}
