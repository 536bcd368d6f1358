package ideawall

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	flipRate  = 18.0 // flip progress approach rate
	pulseRate = 10.0 // size multiplier approach rate

	spawnDuration = 0.5 // seconds, ease-out fly-in
	spawnMinScale = 0.4 // tiles grow from this fraction of full size

	toastDuration = 2.0 // seconds the back-face count overlay stays up

	// Size pulse bonuses. The combined multiplier never exceeds the
	// headroom the packer reserved, or pulsed tiles would visually overlap.
	pulseLikeStep    = 0.05 // per doubling of like count
	pulseLikeCap     = 0.15
	pulseSelfBonus   = 0.05
	pulseMaxMultiple = defaultPulseHeadroom
)

// ToggleResult is the server-authoritative outcome of a like toggle.
type ToggleResult struct {
	Liked     bool
	LikeCount int
}

type toastKind uint8

const (
	toastLike toastKind = iota
	toastUnlike
)

// toast is the transient back-face overlay shown after a confirmed toggle.
type toast struct {
	remaining float64
	likes     int
	kind      toastKind
}

// spawnAnim flies a freshly submitted tile from a world-space origin (the
// converted submit-button position) to its packed slot, fading in and growing.
// Armed by startSpawn, it stays dormant until begin is called on the first
// tick its tile is actually part of the layout, so a slow refresh cannot
// burn the animation before the tile is drawable.
type spawnAnim struct {
	from  Vec2
	tween *gween.Tween
	t     float64 // eased progress in [0, 1]
}

// tileState is the ephemeral per-tile animation state. Every field is a
// damped approach toward a target recomputed each frame; absence of a state
// means the defaults (front face, multiplier 1).
type tileState struct {
	flip       float64 // 0 = front face, 1 = back face
	flipTarget float64
	size       float64 // visual size multiplier
	sizeTarget float64
	toast      *toast
	spawn      *spawnAnim
	busy       bool // a like toggle is in flight
}

// tileSet is the lazy per-id state map. Entries are created on first sight;
// ids that disappear simply stop being read.
type tileSet struct {
	m map[string]*tileState
}

func newTileSet() *tileSet {
	return &tileSet{m: make(map[string]*tileState)}
}

// get returns the state for id, creating default state on first sight.
func (t *tileSet) get(id string) *tileState {
	ts, ok := t.m[id]
	if !ok {
		ts = &tileState{size: 1, sizeTarget: 1}
		t.m[id] = ts
	}
	return ts
}

// peek returns the state for id without creating it.
func (t *tileSet) peek(id string) *tileState {
	return t.m[id]
}

// step advances every tile's damped approaches, toast clocks, and spawn
// tweens by dt seconds.
func (t *tileSet) step(dt float64) {
	for _, ts := range t.m {
		ts.flip = approach(ts.flip, ts.flipTarget, flipRate, dt)
		ts.size = approach(ts.size, ts.sizeTarget, pulseRate, dt)

		if ts.toast != nil {
			ts.toast.remaining -= dt
			if ts.toast.remaining <= 0 {
				ts.toast = nil
			}
		}

		if sp := ts.spawn; sp != nil && sp.tween != nil {
			v, done := sp.tween.Update(float32(dt))
			sp.t = float64(v)
			if done {
				ts.spawn = nil
			}
		}
	}
}

// startSpawn arms the fly-in animation from a world-space origin. The tween
// itself does not run until begin.
func (ts *tileState) startSpawn(from Vec2) {
	ts.spawn = &spawnAnim{from: from}
}

// begin starts the armed tween. Safe to call every tick; only the first call
// has an effect.
func (sp *spawnAnim) begin() {
	if sp.tween == nil {
		sp.tween = gween.New(0, 1, spawnDuration, ease.OutCubic)
	}
}

// showToast arms the transient count overlay on the back face.
func (ts *tileState) showToast(res ToggleResult) {
	kind := toastUnlike
	if res.Liked {
		kind = toastLike
	}
	ts.toast = &toast{remaining: toastDuration, likes: res.LikeCount, kind: kind}
}

// sizeTargetFor computes the visual size multiplier from the like count and
// the current user's own like: a bounded logarithmic bonus per doubling plus
// a small fixed self-like bonus, clamped so it never exceeds the layout
// headroom.
func sizeTargetFor(likeCount int, likedBySelf bool) float64 {
	bonus := 0.0
	if likeCount > 0 {
		bonus = math.Min(pulseLikeCap, pulseLikeStep*math.Log2(1+float64(likeCount)))
	}
	if likedBySelf {
		bonus += pulseSelfBonus
	}
	return clamp(1+bonus, 1, pulseMaxMultiple)
}

// at returns the current world position and the alpha/scale factors
// for a tile mid-spawn. target is the packed position.
func (sp *spawnAnim) at(targetX, targetY float64) (x, y, alpha, scale float64) {
	t := clamp(sp.t, 0, 1)
	x = sp.from.X + (targetX-sp.from.X)*t
	y = sp.from.Y + (targetY-sp.from.Y)*t
	alpha = t
	scale = spawnMinScale + (1-spawnMinScale)*t
	return
}
