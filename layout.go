package ideawall

import (
	"math"
	"strings"
	"unicode/utf8"
)

// LayoutNode is the packed placement of one idea in world space. R is the
// layout radius, already inflated by the maximum visual pulse multiplier, so
// later pulsing never causes overlap.
type LayoutNode struct {
	ID      string
	Message string
	X, Y    float64
	R       float64
}

// Obstacle is the fixed circular exclusion zone at the world origin
// (the logo position).
type Obstacle struct {
	X, Y float64
	R    float64
}

// LayoutOptions tunes the packer. The zero value selects the defaults below.
type LayoutOptions struct {
	// Gap is the minimum world-space clearance between any two tile edges,
	// and between a tile edge and the obstacle edge.
	Gap float64
	// Density scales the hexagonal seed spacing. 1.0 pre-spaces rings so that
	// adjacent seeds already satisfy the gap invariant; lower values pack
	// tighter and rely on relaxation.
	Density float64
	// Iterations is the number of relaxation passes.
	Iterations int
	// Obstacle is the central exclusion circle.
	Obstacle Obstacle
	// BaseRadius is the tile radius before text-length and pulse inflation.
	BaseRadius float64
	// MinRadius and MaxRadius clamp the final per-tile layout radius.
	MinRadius, MaxRadius float64
	// PulseHeadroom is the maximum visual size multiplier the renderer may
	// ever apply. The packer reserves this much slack in every radius.
	PulseHeadroom float64
}

const (
	defaultGap           = 10
	defaultDensity       = 1.0
	defaultIterations    = 24
	defaultObstacleR     = 90
	defaultBaseRadius    = 36
	defaultMinRadius     = 30
	defaultMaxRadius     = 70
	defaultPulseHeadroom = 1.25

	// Grid cells are slightly larger than the worst-case pair reach so a
	// 3x3 neighborhood scan finds every candidate collision.
	gridCellSlack = 1.12
)

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.Gap == 0 {
		o.Gap = defaultGap
	}
	if o.Density == 0 {
		o.Density = defaultDensity
	}
	if o.Iterations == 0 {
		o.Iterations = defaultIterations
	}
	if o.Obstacle.R == 0 {
		o.Obstacle.R = defaultObstacleR
	}
	if o.BaseRadius == 0 {
		o.BaseRadius = defaultBaseRadius
	}
	if o.MinRadius == 0 {
		o.MinRadius = defaultMinRadius
	}
	if o.MaxRadius == 0 {
		o.MaxRadius = defaultMaxRadius
	}
	if o.PulseHeadroom == 0 {
		o.PulseHeadroom = defaultPulseHeadroom
	}
	return o
}

// textLengthMultiplier grows in discrete steps with message length so longer
// ideas get bigger tiles, capped at maxTextMultiplier.
const maxTextMultiplier = 1.45

func textLengthMultiplier(message string) float64 {
	switch n := utf8.RuneCountInString(message); {
	case n <= 20:
		return 1.0
	case n <= 60:
		return 1.15
	case n <= 120:
		return 1.3
	default:
		return maxTextMultiplier
	}
}

// maxLayoutRadius returns the largest radius any tile can have under opts.
func maxLayoutRadius(opts LayoutOptions) float64 {
	return clamp(opts.BaseRadius*maxTextMultiplier*opts.PulseHeadroom,
		opts.MinRadius, opts.MaxRadius)
}

// Signature returns the content signature of an idea sequence: the (ID,
// Message) pairs in order. Two sequences with equal signatures produce
// identical layouts, so callers should re-invoke Layout only when the
// signature changes. LikeCount is deliberately excluded: position is a
// function of content, never of popularity.
func Signature(ideas []Idea) string {
	var b strings.Builder
	for _, idea := range ideas {
		b.WriteString(idea.ID)
		b.WriteByte(0x1f)
		b.WriteString(idea.Message)
		b.WriteByte(0x1e)
	}
	return b.String()
}

// Layout packs one circle per idea around the central obstacle. Pure and
// deterministic for a given input order; nodes are returned in input order.
//
// Seeding walks a hexagonal spiral pre-spaced for the worst-case radius, then
// Gauss-Seidel relaxation resolves the remaining local violations (chiefly
// seeds that landed inside the obstacle). Each pass is ~O(n) thanks to
// uniform-grid bucketing.
func Layout(ideas []Idea, opts LayoutOptions) []LayoutNode {
	opts = opts.withDefaults()
	if len(ideas) == 0 {
		return nil
	}

	maxR := maxLayoutRadius(opts)
	spacing := (2*maxR + opts.Gap) / math.Sqrt(3) * opts.Density

	nodes := make([]LayoutNode, len(ideas))
	cells := hexSpiral(len(ideas))
	for i, idea := range ideas {
		q, r := float64(cells[i][0]), float64(cells[i][1])
		nodes[i] = LayoutNode{
			ID:      idea.ID,
			Message: idea.Message,
			X:       spacing * (math.Sqrt(3)*q + math.Sqrt(3)/2*r),
			Y:       spacing * 1.5 * r,
			R: clamp(opts.BaseRadius*textLengthMultiplier(idea.Message)*opts.PulseHeadroom,
				opts.MinRadius, opts.MaxRadius),
		}
	}

	relax(nodes, opts, maxR)
	return nodes
}

// hexSpiral returns the first n axial (q, r) cells of a hexagonal spiral:
// the origin, then concentric rings of 6k cells walked in a fixed direction
// order.
func hexSpiral(n int) [][2]int {
	cells := make([][2]int, 0, n)
	cells = append(cells, [2]int{0, 0})

	dirs := [6][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}
	for k := 1; len(cells) < n; k++ {
		// Ring k starts k steps along direction 4 from the origin.
		q, r := dirs[4][0]*k, dirs[4][1]*k
		for _, d := range dirs {
			for s := 0; s < k && len(cells) < n; s++ {
				cells = append(cells, [2]int{q, r})
				q += d[0]
				r += d[1]
			}
		}
	}
	return cells
}

type gridKey struct{ cx, cy int }

// relax runs opts.Iterations passes of spatial-hash separation. Within a
// pass, nodes are processed by index ascending and later corrections see
// earlier ones (Gauss-Seidel), which converges faster than a synchronized
// update but is not ordering-invariant. The obstacle is immovable: a node
// overlapping it absorbs the full correction. Overlapping node pairs split
// the correction evenly.
func relax(nodes []LayoutNode, opts LayoutOptions, maxR float64) {
	cell := (2*maxR + opts.Gap) * gridCellSlack
	grid := make(map[gridKey][]int, len(nodes))
	ob := opts.Obstacle

	for pass := 0; pass < opts.Iterations; pass++ {
		for k := range grid {
			delete(grid, k)
		}
		for i, n := range nodes {
			k := gridKey{int(math.Floor(n.X / cell)), int(math.Floor(n.Y / cell))}
			grid[k] = append(grid[k], i)
		}

		for i := range nodes {
			a := &nodes[i]

			// Obstacle clearance first, so the pair pass below sees the
			// corrected position.
			dx := a.X - ob.X
			dy := a.Y - ob.Y
			dist := math.Hypot(dx, dy)
			minDist := a.R + ob.R + opts.Gap
			if dist < minDist {
				ux, uy := 1.0, 0.0 // coincident centers: arbitrary fixed direction
				if dist > 0 {
					ux, uy = dx/dist, dy/dist
				}
				push := minDist - dist
				a.X += ux * push
				a.Y += uy * push
			}

			kx := int(math.Floor(a.X / cell))
			ky := int(math.Floor(a.Y / cell))
			for cy := ky - 1; cy <= ky+1; cy++ {
				for cx := kx - 1; cx <= kx+1; cx++ {
					for _, j := range grid[gridKey{cx, cy}] {
						if j <= i {
							continue
						}
						separate(a, &nodes[j], opts.Gap)
					}
				}
			}
		}
	}
}

// separate pushes a and b apart by half the overlap each if they violate the
// gap invariant.
func separate(a, b *LayoutNode, gap float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := a.R + b.R + gap
	if dist >= minDist {
		return
	}
	ux, uy := 1.0, 0.0
	if dist > 0 {
		ux, uy = dx/dist, dy/dist
	}
	half := (minDist - dist) / 2
	a.X -= ux * half
	a.Y -= uy * half
	b.X += ux * half
	b.Y += uy * half
}

// contentBounds returns the union of all node bounding circles plus the
// obstacle, expanded by margin. Used for the camera's soft clamp box.
func contentBounds(nodes []LayoutNode, ob Obstacle, margin float64) Rect {
	minX, minY := ob.X-ob.R, ob.Y-ob.R
	maxX, maxY := ob.X+ob.R, ob.Y+ob.R
	for _, n := range nodes {
		minX = math.Min(minX, n.X-n.R)
		minY = math.Min(minY, n.Y-n.R)
		maxX = math.Max(maxX, n.X+n.R)
		maxY = math.Max(maxY, n.Y+n.R)
	}
	return Rect{
		X:      minX - margin,
		Y:      minY - margin,
		Width:  maxX - minX + 2*margin,
		Height: maxY - minY + 2*margin,
	}
}
