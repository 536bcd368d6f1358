package ideawall

// syntheticPointerEvent represents a single injected pointer event.
type syntheticPointerEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
}

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
)

// InjectPress queues a synthetic pointer press at (x, y) in screen space.
// Injected events are consumed one per tick by the gesture machine, before
// live device input, and run through the same tap/pan/pinch classification.
func (g *Gestures) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a synthetic pointer move to (x, y).
func (g *Gestures) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a synthetic pointer release at (x, y).
func (g *Gestures) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{kind: synthRelease, x: x, y: y})
}

// InjectTap queues a press immediately followed by a release at (x, y).
// Consumed across two ticks, well inside the tap time gate.
func (g *Gestures) InjectTap(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), the given number of
// interpolated moves, and a release at (toX, toY).
func (g *Gestures) InjectDrag(fromX, fromY, toX, toY float64, moves int) {
	if moves < 1 {
		moves = 1
	}
	g.InjectPress(fromX, fromY)
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// drainInjected pops one queued event and feeds it to the pointer machine on
// slot 0. One event per tick keeps injected sequences observable across
// frames, matching how real input arrives.
func (g *Gestures) drainInjected() {
	if len(g.injectQueue) == 0 {
		return
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		g.Pointer(0, evt.x, evt.y, true)
	case synthMove:
		g.Pointer(0, evt.x, evt.y, true)
	case synthRelease:
		g.Pointer(0, evt.x, evt.y, false)
	}
}
