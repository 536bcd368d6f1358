// Package ideawall renders a live collection of short user-submitted
// messages ("ideas") as circular tiles packed around a central obstacle on a
// pannable, zoomable canvas, built on [Ebitengine].
//
// The package has two halves. [Layout] is a pure, deterministic packer: it
// seeds one circle per idea along a hexagonal spiral and relaxes local
// overlaps against neighbors and the central obstacle. [Engine] is the
// persistent interaction loop: it owns the camera (pan, pinch-zoom, inertia,
// soft bounds), classifies taps against drags, animates per-tile flip, size
// pulse, spawn, and toast state, and draws every frame.
//
// # Quick start
//
//	engine := ideawall.New(ideawall.Config{
//		Width: 960, Height: 640,
//		FontSource: fontSource,
//		Toggler:    backend.ToggleLike,
//	})
//	engine.SetIdeas(ideas)
//	engine.SetLikedIDs(likedIDs)
//	ebiten.RunGame(engine)
//
// The engine consumes idea records and a like-toggle action; fetching,
// authentication, and persistence belong to the caller. Feed refreshed data
// with [Engine.SetIdeas] and [Engine.SetLikedIDs]; both are cheap and only
// relocate tiles when an idea's text actually changed.
//
// # Single-threaded model
//
// All state is mutated on the tick: gesture handling runs inside
// [Engine.Tick], and the [Config.Toggler] callback (the only asynchronous
// edge) reports back through a channel drained at the start of the next
// tick. Optimistic flip state is applied synchronously before the toggle is
// issued and corrected when the authoritative result lands.
//
// [Ebitengine]: https://ebitengine.org
package ideawall
