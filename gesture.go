package ideawall

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

	// Tap gate: a press/release pair classifies as a tap only when total
	// pointer travel and elapsed time both stay under these thresholds.
	tapMaxTravel   = 8.0  // screen pixels
	tapMaxDuration = 0.45 // seconds

	wheelZoomStep = 1.08 // multiplicative zoom per wheel notch
)

type gesturePointer struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	startTime float64
	travel    float64 // accumulated screen-space path length
	pinched   bool    // took part in a pinch; disqualifies tap
}

type pinchGesture struct {
	active     bool
	pointer0   int
	pointer1   int
	startDist  float64
	startScale float64
	lastMidX   float64
	lastMidY   float64
}

// Gestures classifies raw pointer input into pan, pinch, and tap, and applies
// pan/zoom directly to the camera. Taps are reported through onTap in screen
// coordinates; the engine does the hit-testing.
//
// The machine is fed either by Poll (live ebiten devices) or by the synthetic
// event queue (see inject.go), which makes it drivable from tests.
type Gestures struct {
	cam   *Camera
	onTap func(sx, sy float64)

	now float64 // gesture clock, advanced by Advance
	dt  float64 // last frame duration, for velocity capture

	pointers  [maxPointers]gesturePointer
	downCount int
	pinch     pinchGesture

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

// NewGestures creates a gesture interpreter bound to cam. onTap may be nil.
func NewGestures(cam *Camera, onTap func(sx, sy float64)) *Gestures {
	return &Gestures{cam: cam, onTap: onTap, dt: 1.0 / 60}
}

// Advance steps the gesture clock, drains one injected event, and resolves
// the pinch state for this frame. Call once per tick, after Poll.
func (g *Gestures) Advance(dt float64) {
	g.now += dt
	if dt > 0 {
		g.dt = dt
	}
	g.drainInjected()
	g.detectPinch()
}

// Poll reads live mouse, touch, and wheel state from ebiten and feeds the
// pointer machine. Not used by tests, which drive Pointer/Wheel directly.
func (g *Gestures) Poll() {
	mx, my := ebiten.CursorPosition()
	g.Pointer(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	g.pollTouches()

	if _, wy := ebiten.Wheel(); wy != 0 {
		factor := wheelZoomStep
		if wy < 0 {
			factor = 1 / wheelZoomStep
		}
		g.Wheel(float64(mx), float64(my), factor)
	}
}

// pollTouches maps ebiten touch IDs onto pointer slots 1-9 and synthesizes
// release events for touches that disappeared this frame.
func (g *Gestures) pollTouches() {
	touchIDs := ebiten.AppendTouchIDs(g.prevTouchIDs[:0])
	g.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := g.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		g.Pointer(slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && !activeSlots[i] {
			ps := &g.pointers[i]
			if ps.down {
				g.Pointer(i, ps.lastX, ps.lastY, false)
			}
			g.touchUsed[i] = false
			g.touchMap[i] = 0
		}
	}
}

// touchSlot returns the pointer slot for a touch ID, allocating one if
// needed. Returns -1 when all slots are taken.
func (g *Gestures) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && g.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !g.touchUsed[i] {
			g.touchUsed[i] = true
			g.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// Pointer runs the state machine for one pointer sample in screen space.
func (g *Gestures) Pointer(id int, sx, sy float64, pressed bool) {
	if id < 0 || id >= maxPointers {
		return
	}
	ps := &g.pointers[id]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.startTime = g.now
		ps.travel = 0
		ps.pinched = false
		g.downCount++
		if g.downCount == 1 {
			g.cam.BeginDrag()
		}

	case !pressed && ps.down:
		ps.down = false
		g.downCount--
		if g.pinch.active && g.downCount < 2 {
			g.endPinch()
		}
		if !ps.pinched && ps.travel < tapMaxTravel && g.now-ps.startTime < tapMaxDuration {
			if g.onTap != nil {
				g.onTap(sx, sy)
			}
		}
		if g.downCount == 0 {
			g.cam.EndDrag()
		}

	case pressed && ps.down:
		dx := sx - ps.lastX
		dy := sy - ps.lastY
		if dx != 0 || dy != 0 {
			ps.travel += math.Hypot(dx, dy)
			if !g.pinch.active && g.downCount == 1 {
				// Pan: screen delta moves the camera the opposite way in
				// world units; capture instantaneous velocity for inertia.
				g.cam.X -= dx / g.cam.Scale
				g.cam.Y -= dy / g.cam.Scale
				g.cam.VelX = -dx / g.cam.Scale / g.dt
				g.cam.VelY = -dy / g.cam.Scale / g.dt
			}
			ps.lastX, ps.lastY = sx, sy
		}
	}
}

// Wheel applies a multiplicative zoom step anchored at the cursor,
// independent of the pointer state machine.
func (g *Gestures) Wheel(sx, sy, factor float64) {
	g.cam.ZoomAt(sx, sy, factor)
	g.cam.NoteZoomGesture()
}

// detectPinch starts, advances, or ends the two-pointer pinch each frame.
// Zoom applies the distance ratio against the scale captured at pinch start,
// anchored at the two-finger midpoint; midpoint movement pans the camera.
func (g *Gestures) detectPinch() {
	if g.downCount >= 2 {
		p0, p1 := g.twoDownPointers()
		if p0 < 0 {
			return
		}
		ps0, ps1 := &g.pointers[p0], &g.pointers[p1]

		midX := (ps0.lastX + ps1.lastX) / 2
		midY := (ps0.lastY + ps1.lastY) / 2
		dist := math.Hypot(ps1.lastX-ps0.lastX, ps1.lastY-ps0.lastY)

		if !g.pinch.active {
			g.pinch = pinchGesture{
				active:     true,
				pointer0:   p0,
				pointer1:   p1,
				startDist:  dist,
				startScale: g.cam.Scale,
				lastMidX:   midX,
				lastMidY:   midY,
			}
			ps0.pinched = true
			ps1.pinched = true
			return
		}

		if g.pinch.startDist > 0 && g.cam.Scale > 0 {
			want := g.pinch.startScale * dist / g.pinch.startDist
			g.cam.ZoomAt(midX, midY, clamp(want, MinScale, MaxScale)/g.cam.Scale)
		}
		g.cam.X -= (midX - g.pinch.lastMidX) / g.cam.Scale
		g.cam.Y -= (midY - g.pinch.lastMidY) / g.cam.Scale
		g.pinch.lastMidX = midX
		g.pinch.lastMidY = midY
	} else if g.pinch.active {
		g.endPinch()
	}
}

func (g *Gestures) endPinch() {
	g.pinch.active = false
	g.cam.NoteZoomGesture()
}

// twoDownPointers returns the first two pressed pointer slots, or (-1, -1).
func (g *Gestures) twoDownPointers() (int, int) {
	first := -1
	for i := 0; i < maxPointers; i++ {
		if !g.pointers[i].down {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		return first, i
	}
	return -1, -1
}
