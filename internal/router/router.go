// Package router derives connector geometry from the rectangles of the two
// cards a connection joins. Routing is a pure function of those rectangles.
package router

import (
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/geometry"
)

// DefaultHitTolerance is half the width of the invisible stroke used for
// picking a connector, in percentage units.
const DefaultHitTolerance = 0.6

// hitSamples is the number of segments the curve is split into for picking.
const hitSamples = 32

// Path is a routed connector: the two anchor points and the curve between.
type Path struct {
	Start     geometry.Point
	End       geometry.Point
	Control   geometry.Point
	StartEdge geometry.Edge
	EndEdge   geometry.Edge
	Curve     geometry.QuadCurve
	Command   string
}

// Route picks the nearest pair of edge midpoints of from and to and bends a
// quadratic curve between them.
func Route(from, to geometry.Rect) Path {
	a, b := geometry.NearestEndpoints(from, to)
	curve := geometry.NewQuadCurve(a.Point, b.Point)
	return Path{
		Start:     a.Point,
		End:       b.Point,
		Control:   curve.Control,
		StartEdge: a.Edge,
		EndEdge:   b.Edge,
		Curve:     curve,
		Command:   curve.PathCommand(),
	}
}

// Hit reports whether p lies within tolerance of the curve. A non-positive
// tolerance uses DefaultHitTolerance.
func (p Path) Hit(pt geometry.Point, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = DefaultHitTolerance
	}
	limit := tolerance * tolerance
	prev := p.Curve.At(0)
	for i := 1; i <= hitSamples; i++ {
		next := p.Curve.At(float64(i) / hitSamples)
		if segmentDistSq(pt, prev, next) <= limit {
			return true
		}
		prev = next
	}
	return false
}

func segmentDistSq(p, a, b geometry.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return geometry.DistSq(p, a)
	}
	t := geometry.Clamp(((p.X-a.X)*dx+(p.Y-a.Y)*dy)/lenSq, 0, 1)
	return geometry.DistSq(p, geometry.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// Routed pairs a connection with its path.
type Routed struct {
	ConnectionID string
	FromCardID   string
	ToCardID     string
	Color        string
	Path         Path
}

// RectSource resolves a card id to its current display rectangle.
type RectSource func(cardID string) (geometry.Rect, bool)

// RouteAll routes every connection whose two cards resolve. Dangling
// connections are skipped.
func RouteAll(conns []domain.Connection, rects RectSource) []Routed {
	out := make([]Routed, 0, len(conns))
	for _, c := range conns {
		from, ok := rects(c.FromCardID)
		if !ok {
			continue
		}
		to, ok := rects(c.ToCardID)
		if !ok {
			continue
		}
		out = append(out, Routed{
			ConnectionID: c.ID,
			FromCardID:   c.FromCardID,
			ToCardID:     c.ToCardID,
			Color:        c.Color,
			Path:         Route(from, to),
		})
	}
	return out
}

// Affected returns the connections touching cardID, i.e. those whose paths
// must be recomputed when that card's rectangle changes.
func Affected(conns []domain.Connection, cardID string) []domain.Connection {
	var out []domain.Connection
	for _, c := range conns {
		if c.Touches(cardID) {
			out = append(out, c)
		}
	}
	return out
}

// HitTest returns the id of the topmost routed connector within tolerance of
// pt. Later entries are treated as drawn on top.
func HitTest(routes []Routed, pt geometry.Point, tolerance float64) (string, bool) {
	for i := len(routes) - 1; i >= 0; i-- {
		if routes[i].Path.Hit(pt, tolerance) {
			return routes[i].ConnectionID, true
		}
	}
	return "", false
}

// CardRects builds a RectSource over a card slice.
func CardRects(cards []domain.Card) RectSource {
	idx := make(map[string]geometry.Rect, len(cards))
	for i := range cards {
		idx[cards[i].ID] = cards[i].Rect()
	}
	return func(id string) (geometry.Rect, bool) {
		r, ok := idx[id]
		return r, ok
	}
}
