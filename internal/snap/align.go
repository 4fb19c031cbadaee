// Package snap implements the two snapping modes used while dragging cards:
// quantisation to a grid and alignment against the edges and centres of the
// other cards on the board.
package snap

import (
	"math"

	"github.com/alexanderramin/pinboard/internal/geometry"
)

// DefaultThreshold is the alignment tolerance in percentage units
// (about 15px on a 3000px board at zoom 1).
const DefaultThreshold = 0.5

// GuideLines are the alignment lines to display, in percentage space.
// Horizontal holds y values, Vertical holds x values.
type GuideLines struct {
	Horizontal []float64
	Vertical   []float64
}

// Empty reports whether there is nothing to draw.
func (g GuideLines) Empty() bool {
	return len(g.Horizontal) == 0 && len(g.Vertical) == 0
}

// Result is the outcome of an alignment query.
type Result struct {
	X, Y   float64
	Guides GuideLines
	SnapX  bool
	SnapY  bool
}

// Origin returns the snapped top-left corner.
func (r Result) Origin() geometry.Point {
	return geometry.Point{X: r.X, Y: r.Y}
}

// ref is one reference value of the dragged rect, expressed as an offset from
// its origin so a match can be applied without floating drift.
type ref struct {
	offset float64
}

// axis accumulates the best match for one axis.
type axis struct {
	threshold float64
	best      float64
	origin    float64
	guides    []float64
}

func newAxis(origin, threshold float64) *axis {
	return &axis{threshold: threshold, best: threshold, origin: origin}
}

func (a *axis) consider(dragOrigin float64, r ref, other float64) {
	diff := math.Abs(dragOrigin + r.offset - other)
	switch {
	case diff < a.best:
		a.best = diff
		a.origin = other - r.offset
		a.guides = append(a.guides[:0], other)
	case diff == a.best && diff < a.threshold:
		a.guides = append(a.guides, other)
	}
}

func (a *axis) matched() bool {
	return a.best < a.threshold
}

// Align compares the dragged rectangle against every other rectangle and
// returns the aligned origin with the guide lines to show. Each axis is
// independent: for every other card the dragged left, right and centre are
// tested against the other card's left, right and centre (9 pairs per axis).
// A strictly smaller difference resets the guide set; an equal one adds to it.
// Axes with no difference below threshold keep the dragged origin and get no
// guides. A non-positive threshold uses DefaultThreshold.
func Align(dragged geometry.Rect, others []geometry.Rect, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	left, right, centerX := ref{0}, ref{dragged.W}, ref{dragged.W / 2}
	top, bottom, centerY := ref{0}, ref{dragged.H}, ref{dragged.H / 2}

	ax := newAxis(dragged.X, threshold)
	ay := newAxis(dragged.Y, threshold)

	for _, o := range others {
		xPairs := [9]struct {
			r     ref
			other float64
		}{
			{left, o.Left()},
			{left, o.Right()},
			{right, o.Left()},
			{right, o.Right()},
			{centerX, o.CenterX()},
			{left, o.CenterX()},
			{right, o.CenterX()},
			{centerX, o.Left()},
			{centerX, o.Right()},
		}
		for _, p := range xPairs {
			ax.consider(dragged.X, p.r, p.other)
		}

		yPairs := [9]struct {
			r     ref
			other float64
		}{
			{top, o.Top()},
			{top, o.Bottom()},
			{bottom, o.Top()},
			{bottom, o.Bottom()},
			{centerY, o.CenterY()},
			{top, o.CenterY()},
			{bottom, o.CenterY()},
			{centerY, o.Top()},
			{centerY, o.Bottom()},
		}
		for _, p := range yPairs {
			ay.consider(dragged.Y, p.r, p.other)
		}
	}

	res := Result{X: dragged.X, Y: dragged.Y}
	if ax.matched() {
		res.X = ax.origin
		res.SnapX = true
		res.Guides.Vertical = dedupe(ax.guides)
	}
	if ay.matched() {
		res.Y = ay.origin
		res.SnapY = true
		res.Guides.Horizontal = dedupe(ay.guides)
	}
	return res
}

func dedupe(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	seen := make(map[float64]bool, len(vals))
	for _, v := range vals {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
