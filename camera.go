package ideawall

import "math"

// Camera zoom limits and motion tuning. These are tuning values, not
// contracts; the shapes (exponential approach, friction decay, clamped
// scale) are what matter.
const (
	MinScale = 0.25
	MaxScale = 3.0

	// Soft clamp: the camera exponentially approaches the permissible box
	// rather than snapping to it. A gentler rate applies for a short window
	// after a zoom/pinch gesture ends so extreme gestures settle without a
	// jarring snap.
	clampRateSoft   = 5.0
	clampRateFirm   = 12.0
	softClampWindow = 0.6 // seconds after gesture end

	inertiaFriction = 8.0 // 1/s exponential velocity decay

	focusRate = 10.0 // focus-to-origin approach rate
	focusStop = 4.0  // world units from target at which focus ends
)

// Camera maps the unbounded world plane to the viewport: (X, Y) is the world
// point under the viewport center, Scale the world-to-screen zoom factor.
// Created once at engine start and mutated continuously by gestures, inertia,
// the soft clamp, and focus animations.
type Camera struct {
	X, Y  float64
	Scale float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	// Inertia velocity in world units per second. Integrated while no drag
	// is active, decayed by inertiaFriction.
	VelX, VelY float64

	bounds    Rect // permissible content box, world space
	hasBounds bool

	dragging    bool
	softTimer   float64 // remaining post-gesture soft-clamp window
	focusActive bool
}

// NewCamera creates a camera centered on the world origin at scale 1.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Scale: 1.0, Viewport: viewport}
}

// SetViewport updates the viewport rectangle, e.g. on window resize.
func (c *Camera) SetViewport(viewport Rect) {
	c.Viewport = viewport
}

// SetContentBounds sets the world rect the soft clamp keeps in reach.
func (c *Camera) SetContentBounds(bounds Rect) {
	c.bounds = bounds
	c.hasBounds = true
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx-c.X)*c.Scale + c.Viewport.X + c.Viewport.Width/2
	sy = (wy-c.Y)*c.Scale + c.Viewport.Y + c.Viewport.Height/2
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = (sx-c.Viewport.X-c.Viewport.Width/2)/c.Scale + c.X
	wy = (sy-c.Viewport.Y-c.Viewport.Height/2)/c.Scale + c.Y
	return
}

// ZoomAt rescales by factor while holding the world point under the given
// screen point fixed. Scale is clamped to [MinScale, MaxScale].
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	wx0, wy0 := c.ScreenToWorld(sx, sy)
	c.Scale = clamp(c.Scale*factor, MinScale, MaxScale)
	wx1, wy1 := c.ScreenToWorld(sx, sy)
	c.X += wx0 - wx1
	c.Y += wy0 - wy1
}

// VisibleBounds returns the world-space rect currently covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	w := c.Viewport.Width / c.Scale
	h := c.Viewport.Height / c.Scale
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// BeginDrag zeroes inertia and cancels any focus animation. Called on
// pointer down.
func (c *Camera) BeginDrag() {
	c.dragging = true
	c.VelX, c.VelY = 0, 0
	c.focusActive = false
}

// EndDrag releases the drag and opens the post-gesture soft-clamp window.
func (c *Camera) EndDrag() {
	c.dragging = false
	c.softTimer = softClampWindow
}

// NoteZoomGesture opens the post-gesture soft-clamp window without touching
// the drag state. Called after wheel zooms and pinch ends.
func (c *Camera) NoteZoomGesture() {
	c.softTimer = softClampWindow
}

// Dragging reports whether a drag is currently held.
func (c *Camera) Dragging() bool {
	return c.dragging
}

// StartFocus begins a damped approach of the camera center toward the world
// origin. Canceled the instant a new drag begins.
func (c *Camera) StartFocus() {
	c.focusActive = true
}

// Focusing reports whether the focus-to-origin animation is running.
func (c *Camera) Focusing() bool {
	return c.focusActive
}

// Update advances focus, inertia, and the soft clamp by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.softTimer > 0 {
		c.softTimer -= dt
	}

	if c.focusActive {
		c.X = approach(c.X, 0, focusRate, dt)
		c.Y = approach(c.Y, 0, focusRate, dt)
		if math.Hypot(c.X, c.Y) < focusStop {
			c.focusActive = false
		}
	}

	if !c.dragging {
		c.X += c.VelX * dt
		c.Y += c.VelY * dt
		decay := math.Exp(-inertiaFriction * dt)
		c.VelX *= decay
		c.VelY *= decay
	}

	if c.hasBounds {
		c.softClamp(dt)
	}
}

// softClamp exponentially approaches the permissible center box derived from
// the content bounds and the current scale. Never snaps.
func (c *Camera) softClamp(dt float64) {
	tx, ty := c.clampTarget()
	rate := clampRateFirm
	if c.softTimer > 0 {
		rate = clampRateSoft
	}
	c.X = approach(c.X, tx, rate, dt)
	c.Y = approach(c.Y, ty, rate, dt)
}

// clampTarget computes the nearest permissible camera center: the viewport
// (at current scale) must not pan past the content bounds. If the bounds are
// smaller than the visible area on an axis, the target centers on the bounds.
func (c *Camera) clampTarget() (tx, ty float64) {
	halfW := c.Viewport.Width / (2 * c.Scale)
	halfH := c.Viewport.Height / (2 * c.Scale)

	minX := c.bounds.X + halfW
	maxX := c.bounds.X + c.bounds.Width - halfW
	minY := c.bounds.Y + halfH
	maxY := c.bounds.Y + c.bounds.Height - halfH

	if minX > maxX {
		tx = c.bounds.X + c.bounds.Width/2
	} else {
		tx = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		ty = c.bounds.Y + c.bounds.Height/2
	} else {
		ty = math.Max(minY, math.Min(c.Y, maxY))
	}
	return
}
