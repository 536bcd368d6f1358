package ideawall

import (
	"math"
	"testing"
)

func TestTileSetLazyDefaults(t *testing.T) {
	ts := newTileSet()
	if ts.peek("a") != nil {
		t.Error("peek created state")
	}
	s := ts.get("a")
	if s.flip != 0 || s.flipTarget != 0 {
		t.Errorf("new tile flip = (%v -> %v), want front face", s.flip, s.flipTarget)
	}
	if s.size != 1 || s.sizeTarget != 1 {
		t.Errorf("new tile size = (%v -> %v), want 1", s.size, s.sizeTarget)
	}
	if ts.get("a") != s {
		t.Error("get did not return existing state")
	}
}

func TestStepConvergesFlipAndSize(t *testing.T) {
	ts := newTileSet()
	s := ts.get("a")
	s.flipTarget = 1
	s.sizeTarget = 1.2

	prevFlip := s.flip
	for i := 0; i < 120; i++ {
		ts.step(1.0 / 60)
		if s.flip < prevFlip-testEps {
			t.Fatalf("flip moved backwards at frame %d", i)
		}
		prevFlip = s.flip
	}
	if math.Abs(s.flip-1) > 0.01 {
		t.Errorf("flip = %v after 2s, want ~1", s.flip)
	}
	if math.Abs(s.size-1.2) > 0.01 {
		t.Errorf("size = %v after 2s, want ~1.2", s.size)
	}
}

func TestApproachFrameRateIndependent(t *testing.T) {
	// One big step and many small steps covering the same wall time should
	// land close together.
	coarse := approach(0, 1, flipRate, 0.1)
	fine := 0.0
	for i := 0; i < 100; i++ {
		fine = approach(fine, 1, flipRate, 0.001)
	}
	if math.Abs(coarse-fine) > 1e-6 {
		t.Errorf("coarse %v vs fine %v", coarse, fine)
	}
}

func TestSizeTargetFor(t *testing.T) {
	tests := []struct {
		likes int
		self  bool
		want  float64
	}{
		{0, false, 1.0},
		{1, false, 1.05},
		{7, false, 1.15}, // log2(8)=3 hits the like cap
		{1000, false, 1.15},
		{0, true, 1.05},
		{1000, true, 1.2},
	}
	for _, tt := range tests {
		if got := sizeTargetFor(tt.likes, tt.self); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("sizeTargetFor(%d, %v) = %v, want %v", tt.likes, tt.self, got, tt.want)
		}
	}
	if sizeTargetFor(1<<30, true) > pulseMaxMultiple {
		t.Error("size target exceeds layout headroom")
	}
}

func TestToastExpires(t *testing.T) {
	ts := newTileSet()
	s := ts.get("a")
	s.showToast(ToggleResult{Liked: true, LikeCount: 3})

	if s.toast == nil || s.toast.kind != toastLike || s.toast.likes != 3 {
		t.Fatalf("toast = %+v, want armed like toast with 3", s.toast)
	}

	for i := 0; i < 110; i++ { // 1.83s, still inside the 2s window
		ts.step(1.0 / 60)
	}
	if s.toast == nil {
		t.Fatal("toast expired early")
	}
	for i := 0; i < 20; i++ {
		ts.step(1.0 / 60)
	}
	if s.toast != nil {
		t.Error("toast did not expire")
	}
}

func TestToastKindFollowsResult(t *testing.T) {
	s := &tileState{}
	s.showToast(ToggleResult{Liked: false, LikeCount: 0})
	if s.toast.kind != toastUnlike {
		t.Error("unlike result armed a like toast")
	}
}

func TestSpawnDormantUntilBegun(t *testing.T) {
	ts := newTileSet()
	s := ts.get("a")
	s.startSpawn(Vec2{X: -200, Y: 150})

	// A long stretch of ticks before begin must not consume the animation.
	for i := 0; i < 120; i++ {
		ts.step(1.0 / 60)
	}
	if s.spawn == nil {
		t.Fatal("armed spawn cleared before begin")
	}
	if s.spawn.t != 0 {
		t.Errorf("armed spawn progressed to %v before begin", s.spawn.t)
	}
}

func TestSpawnProgressesAndCompletes(t *testing.T) {
	ts := newTileSet()
	s := ts.get("a")
	s.startSpawn(Vec2{X: -200, Y: 150})
	s.spawn.begin()

	x0, y0, a0, sc0 := s.spawn.at(100, -50)
	if !approxEqual(x0, -200, testEps) || !approxEqual(y0, 150, testEps) {
		t.Errorf("spawn starts at (%v,%v), want origin", x0, y0)
	}
	if a0 != 0 || !approxEqual(sc0, spawnMinScale, testEps) {
		t.Errorf("spawn starts at alpha %v scale %v", a0, sc0)
	}

	ts.step(0.25)
	if s.spawn == nil {
		t.Fatal("spawn finished at half time")
	}
	x1, _, a1, sc1 := s.spawn.at(100, -50)
	if x1 <= x0 || a1 <= 0 || sc1 <= sc0 {
		t.Errorf("spawn did not advance: x %v alpha %v scale %v", x1, a1, sc1)
	}
	// Ease-out front-loads motion: past halfway by half the duration.
	if a1 < 0.5 {
		t.Errorf("eased progress %v at half time, want front-loaded", a1)
	}

	ts.step(0.3)
	if s.spawn != nil {
		t.Error("spawn state not cleared after full duration")
	}
}
