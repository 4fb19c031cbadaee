package geometry

import (
	"math"
	"strconv"
	"strings"
)

const (
	// curveBowRatio is the control-point offset as a share of segment length.
	curveBowRatio = 0.2
	// curveBowMax caps the offset in percentage units.
	curveBowMax = 5.0
)

// QuadCurve is a quadratic Bézier from Start to End bent through Control.
type QuadCurve struct {
	Start   Point
	Control Point
	End     Point
}

// NewQuadCurve builds the gentle bow used for connectors. The control point
// sits on the segment's perpendicular bisector, offset by
// min(length*0.2, 5). The normal is taken in canonical orientation (lower
// endpoint first), so the curve is the same shape whichever end is Start.
func NewQuadCurve(start, end Point) QuadCurve {
	mid := Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}

	a, b := start, end
	if Less(b, a) {
		a, b = b, a
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)

	control := mid
	if length > 0 {
		offset := math.Min(length*curveBowRatio, curveBowMax)
		nx, ny := -dy/length, dx/length
		control = Point{X: mid.X + nx*offset, Y: mid.Y + ny*offset}
	}
	return QuadCurve{Start: start, Control: control, End: end}
}

// At evaluates the curve at t in [0,1].
func (c QuadCurve) At(t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*c.Start.X + 2*u*t*c.Control.X + t*t*c.End.X,
		Y: u*u*c.Start.Y + 2*u*t*c.Control.Y + t*t*c.End.Y,
	}
}

// Reversed returns the same curve traversed from End to Start.
func (c QuadCurve) Reversed() QuadCurve {
	return QuadCurve{Start: c.End, Control: c.Control, End: c.Start}
}

// PathCommand renders the curve as an SVG path: "M sx sy Q cx cy ex ey".
func (c QuadCurve) PathCommand() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, c.Start)
	b.WriteString(" Q ")
	writePoint(&b, c.Control)
	b.WriteByte(' ')
	writePoint(&b, c.End)
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}
