package geometry

// Edge names one side of a rectangle.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// Anchor is an edge midpoint.
type Anchor struct {
	Edge  Edge
	Point Point
}

// EdgeMidpoints returns the midpoints of r's four edges in top, bottom,
// left, right order.
func EdgeMidpoints(r Rect) [4]Anchor {
	return [4]Anchor{
		{Edge: EdgeTop, Point: Point{X: r.CenterX(), Y: r.Top()}},
		{Edge: EdgeBottom, Point: Point{X: r.CenterX(), Y: r.Bottom()}},
		{Edge: EdgeLeft, Point: Point{X: r.Left(), Y: r.CenterY()}},
		{Edge: EdgeRight, Point: Point{X: r.Right(), Y: r.CenterY()}},
	}
}

// NearestEndpoints evaluates all 16 midpoint pairs between a and b and
// returns the pair with the smallest squared distance. Equal distances are
// resolved by the canonical point order, so swapping a and b swaps the
// result and nothing else.
func NearestEndpoints(a, b Rect) (from, to Anchor) {
	am := EdgeMidpoints(a)
	bm := EdgeMidpoints(b)

	best := -1.0
	for _, fa := range am {
		for _, tb := range bm {
			d := DistSq(fa.Point, tb.Point)
			switch {
			case best < 0 || d < best:
				best, from, to = d, fa, tb
			case d == best && pairLess(fa.Point, tb.Point, from.Point, to.Point):
				from, to = fa, tb
			}
		}
	}
	return from, to
}

// pairLess compares two unordered point pairs by their sorted members.
func pairLess(a1, a2, b1, b2 Point) bool {
	if Less(a2, a1) {
		a1, a2 = a2, a1
	}
	if Less(b2, b1) {
		b1, b2 = b2, b1
	}
	if a1 != b1 {
		return Less(a1, b1)
	}
	return Less(a2, b2)
}
