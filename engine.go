package ideawall

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// boundsMargin is the fixed world-space margin added around the packed
// content when deriving the camera's soft-clamp box.
const boundsMargin = 120

// Theme holds the fixed render colors.
type Theme struct {
	Background   Color
	FrontFill    Color
	BackFill     Color
	StrokeA      Color // gradient stroke, left
	StrokeB      Color // gradient stroke, right
	TextColor    Color
	ObstacleFill Color
}

// DefaultTheme is used when Config.Theme is nil.
var DefaultTheme = Theme{
	Background:   Color{0.09, 0.08, 0.13, 1},
	FrontFill:    Color{0.98, 0.95, 0.89, 1},
	BackFill:     Color{0.99, 0.82, 0.88, 1},
	StrokeA:      Color{1.0, 0.71, 0.42, 1},
	StrokeB:      Color{1.0, 0.42, 0.84, 1},
	TextColor:    Color{0.16, 0.13, 0.2, 1},
	ObstacleFill: Color{0.16, 0.14, 0.22, 1},
}

// Config configures an Engine. The zero value of every field has a usable
// default except FontSource, which is required for text rendering, and
// Toggler, without which taps on tiles are ignored.
type Config struct {
	// Width and Height are the initial viewport size in pixels.
	Width, Height int
	// FontSource supplies the TTF face used for tile text.
	FontSource *text.GoTextFaceSource
	// LogoImage, when set, is drawn over the central obstacle, tracking its
	// screen position and scale each frame. Without it the obstacle renders
	// as a plain filled circle.
	LogoImage *ebiten.Image
	// Layout tunes the packer.
	Layout LayoutOptions
	// Toggler performs the like toggle for a tile id and returns the
	// server-authoritative result. Called on its own goroutine; the result
	// is applied on the next tick.
	Toggler func(id string) (ToggleResult, error)
	// Theme overrides the render colors.
	Theme *Theme
	// ShowDebug draws the FPS/tile-count overlay.
	ShowDebug bool
}

// toggleOutcome carries a resolved Toggler call back onto the tick.
type toggleOutcome struct {
	id  string
	res ToggleResult
	err error
}

// Engine owns the camera, packed nodes, per-tile animation state, and gesture
// machine, and drives them from a single persistent update/draw loop. All
// mutation happens on the tick: gesture handlers run synchronously inside
// Tick, and toggle resolutions are marshaled through a channel drained at the
// top of Tick, so no locking is needed.
//
// Engine implements ebiten.Game; it can also be embedded in a larger game and
// driven through Tick/Draw directly.
type Engine struct {
	cfg        Config
	theme      Theme
	layoutOpts LayoutOptions

	cam      *Camera
	gestures *Gestures
	tiles    *tileSet
	fitter   *textFitter

	nodes      []LayoutNode
	sig        string
	liked      map[string]bool
	likeCounts map[string]int

	results chan toggleOutcome

	elapsed   float64
	panSpeed  float64 // screen px/s, for text fade during fast pans
	prevCamX  float64
	prevCamY  float64
	havePrev  bool
	vertexBuf []ebiten.Vertex
	indexBuf  []uint16

	disposed bool
}

// New creates an engine with an empty idea set.
func New(cfg Config) *Engine {
	if cfg.Width == 0 {
		cfg.Width = 960
	}
	if cfg.Height == 0 {
		cfg.Height = 640
	}
	theme := DefaultTheme
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}

	e := &Engine{
		cfg:        cfg,
		theme:      theme,
		layoutOpts: cfg.Layout.withDefaults(),
		cam:        NewCamera(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}),
		tiles:      newTileSet(),
		liked:      make(map[string]bool),
		likeCounts: make(map[string]int),
		results:    make(chan toggleOutcome, 64),
	}
	e.gestures = NewGestures(e.cam, e.handleTap)
	if cfg.FontSource != nil {
		e.fitter = newTextFitter(cfg.FontSource)
	}
	e.cam.SetContentBounds(contentBounds(nil, e.layoutOpts.Obstacle, boundsMargin))
	return e
}

// Camera returns the engine's camera.
func (e *Engine) Camera() *Camera {
	return e.cam
}

// Gestures returns the gesture machine, e.g. for injecting synthetic input.
func (e *Engine) Gestures() *Gestures {
	return e.gestures
}

// Nodes returns the current packed layout. The returned slice MUST NOT be
// mutated.
func (e *Engine) Nodes() []LayoutNode {
	return e.nodes
}

// SetIdeas replaces the idea set. The layout is recomputed only when the
// (ID, Message) signature changed, so like-count updates never relocate
// tiles. Ideas with an empty message are filtered out.
func (e *Engine) SetIdeas(ideas []Idea) {
	kept := make([]Idea, 0, len(ideas))
	for _, idea := range ideas {
		if idea.Message == "" {
			continue
		}
		kept = append(kept, idea)
	}

	for k := range e.likeCounts {
		delete(e.likeCounts, k)
	}
	for _, idea := range kept {
		e.likeCounts[idea.ID] = idea.LikeCount
	}

	sig := Signature(kept)
	if sig == e.sig {
		return
	}
	e.sig = sig
	e.nodes = Layout(kept, e.cfg.Layout)
	e.cam.SetContentBounds(contentBounds(e.nodes, e.layoutOpts.Obstacle, boundsMargin))
	if e.fitter != nil {
		e.fitter.invalidate()
	}
}

// SetLikedIDs replaces the snapshot of ideas the current user has liked.
func (e *Engine) SetLikedIDs(ids []string) {
	for k := range e.liked {
		delete(e.liked, k)
	}
	for _, id := range ids {
		e.liked[id] = true
	}
}

// Spawn arms the fly-in animation for a freshly submitted idea from a
// screen-space origin (typically the submit control's position). The
// animation starts once the idea is present in the layout, however long the
// refresh takes, and flies the tile to its packed slot.
func (e *Engine) Spawn(id string, originScreenX, originScreenY float64) {
	wx, wy := e.cam.ScreenToWorld(originScreenX, originScreenY)
	e.tiles.get(id).startSpawn(Vec2{X: wx, Y: wy})
}

// Tick advances all time-based state by dt seconds: resolved toggles, the
// gesture machine, camera motion, and tile animations. Pure state; no
// drawing.
func (e *Engine) Tick(dt float64) {
	if e.disposed {
		return
	}
	e.elapsed += dt

	e.drainResults()
	e.gestures.Advance(dt)
	e.cam.Update(dt)
	e.tiles.step(dt)
	e.retarget()

	if e.havePrev && dt > 0 {
		e.panSpeed = math.Hypot(e.cam.X-e.prevCamX, e.cam.Y-e.prevCamY) / dt * e.cam.Scale
	}
	e.prevCamX, e.prevCamY = e.cam.X, e.cam.Y
	e.havePrev = true
}

// Update implements ebiten.Game: polls live input and ticks at the fixed TPS
// step.
func (e *Engine) Update() error {
	if e.disposed {
		return nil
	}
	e.gestures.Poll()
	e.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

// Layout implements ebiten.Game, tracking window resizes into the viewport.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.cam.SetViewport(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

// Dispose tears the engine down. Further Tick/Update/Draw calls are no-ops;
// outstanding toggle goroutines drain harmlessly into the buffered channel.
func (e *Engine) Dispose() {
	e.disposed = true
	e.tiles = newTileSet()
}

// retarget recomputes every visible tile's flip and size targets from the
// liked set and like counts, and starts any armed spawn whose tile has
// entered the layout. Tiles with a toggle in flight keep their optimistic
// flip target until the call resolves.
func (e *Engine) retarget() {
	for _, n := range e.nodes {
		ts := e.tiles.get(n.ID)
		if ts.spawn != nil {
			ts.spawn.begin()
		}
		if !ts.busy {
			ts.flipTarget = flipTargetFor(e.liked[n.ID])
		}
		ts.sizeTarget = sizeTargetFor(e.likeCounts[n.ID], e.liked[n.ID])
	}
}

func flipTargetFor(liked bool) float64 {
	if liked {
		return 1
	}
	return 0
}

// handleTap routes a classified tap: the obstacle wins over tiles, tiles are
// tested topmost (last drawn) first.
func (e *Engine) handleTap(sx, sy float64) {
	wx, wy := e.cam.ScreenToWorld(sx, sy)

	ob := e.layoutOpts.Obstacle
	if math.Hypot(wx-ob.X, wy-ob.Y) <= ob.R {
		e.cam.StartFocus()
		return
	}

	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := &e.nodes[i]
		cx, cy, r := e.tileHitCircle(n)
		if math.Hypot(wx-cx, wy-cy) <= r {
			e.toggle(n.ID)
			return
		}
	}
}

// tileHitCircle is the currently rendered circle of a node: the layout radius
// with the reserved pulse headroom removed, scaled by the animated size
// multiplier, at the interpolated position while a spawn is in flight.
func (e *Engine) tileHitCircle(n *LayoutNode) (x, y, r float64) {
	x, y = n.X, n.Y
	r = n.R / e.layoutOpts.PulseHeadroom
	if ts := e.tiles.peek(n.ID); ts != nil {
		r *= ts.size
		if ts.spawn != nil {
			var scale float64
			x, y, _, scale = ts.spawn.at(n.X, n.Y)
			r *= scale
		}
	}
	return
}

// toggle starts the like-toggle flow for a tile: flips optimistically, marks
// the tile busy so a second tap is a no-op while the call is outstanding, and
// resolves the server result on a later tick.
func (e *Engine) toggle(id string) {
	if e.cfg.Toggler == nil {
		return
	}
	ts := e.tiles.get(id)
	if ts.busy {
		return
	}
	ts.busy = true
	ts.flipTarget = flipTargetFor(!e.liked[id])

	go func() {
		res, err := e.cfg.Toggler(id)
		e.results <- toggleOutcome{id: id, res: res, err: err}
	}()
}

// drainResults applies every resolved toggle. On success the authoritative
// liked state and count are committed and a toast armed; on failure the
// optimistic flip is rolled back (retarget reverts it from the unchanged
// liked set) and no toast is shown.
func (e *Engine) drainResults() {
	for {
		select {
		case out := <-e.results:
			ts := e.tiles.get(out.id)
			ts.busy = false
			if out.err != nil {
				ts.flipTarget = flipTargetFor(e.liked[out.id])
				continue
			}
			if out.res.Liked {
				e.liked[out.id] = true
			} else {
				delete(e.liked, out.id)
			}
			e.likeCounts[out.id] = out.res.LikeCount
			ts.flipTarget = flipTargetFor(out.res.Liked)
			ts.showToast(out.res)
		default:
			return
		}
	}
}
