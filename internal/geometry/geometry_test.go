package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 10}
	assert.Equal(t, 10.0, r.Left())
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 25.0, r.CenterX())
	assert.Equal(t, 20.0, r.Top())
	assert.Equal(t, 30.0, r.Bottom())
	assert.Equal(t, 25.0, r.CenterY())
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 3, 3, 3},
		{5, 4, 2, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Clamp(tc.v, tc.lo, tc.hi), "Clamp(%v,%v,%v)", tc.v, tc.lo, tc.hi)
	}
}

func TestClampOrigin_KeepsRectOnBoard(t *testing.T) {
	p := ClampOrigin(Point{X: 95, Y: -4}, Size{Width: 20, Height: 10})
	assert.Equal(t, Point{X: 80, Y: 0}, p)
}

func TestPercentDelta(t *testing.T) {
	assert.InDelta(t, 10.0, PercentDelta(300, 3000, 1), 1e-9)
	assert.InDelta(t, 5.0, PercentDelta(300, 3000, 2), 1e-9)
	assert.InDelta(t, 300.0, PixelDelta(10, 3000, 1), 1e-9)
	assert.Equal(t, 0.0, PercentDelta(300, 3000, 0))
}

func TestEdgeMidpoints(t *testing.T) {
	m := EdgeMidpoints(Rect{X: 0, Y: 0, W: 20, H: 10})
	assert.Equal(t, Point{X: 10, Y: 0}, m[0].Point)
	assert.Equal(t, Point{X: 10, Y: 10}, m[1].Point)
	assert.Equal(t, Point{X: 0, Y: 5}, m[2].Point)
	assert.Equal(t, Point{X: 20, Y: 5}, m[3].Point)
	assert.Equal(t, "right", m[3].Edge.String())
}

func TestNearestEndpoints_SideBySide(t *testing.T) {
	a := Rect{X: 10, Y: 10, W: 20, H: 10}
	b := Rect{X: 40, Y: 10, W: 20, H: 10}
	from, to := NearestEndpoints(a, b)
	assert.Equal(t, EdgeRight, from.Edge)
	assert.Equal(t, EdgeLeft, to.Edge)
	assert.Equal(t, Point{X: 30, Y: 15}, from.Point)
	assert.Equal(t, Point{X: 40, Y: 15}, to.Point)
}

func TestNearestEndpoints_Stacked(t *testing.T) {
	a := Rect{X: 10, Y: 10, W: 20, H: 10}
	b := Rect{X: 10, Y: 40, W: 20, H: 10}
	from, to := NearestEndpoints(a, b)
	assert.Equal(t, EdgeBottom, from.Edge)
	assert.Equal(t, EdgeTop, to.Edge)
}

func TestNearestEndpoints_SymmetricUnderSwap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 300; trial++ {
		a := Rect{X: float64(rng.Intn(80)), Y: float64(rng.Intn(80)), W: float64(10 + rng.Intn(20)), H: float64(5 + rng.Intn(20))}
		b := Rect{X: float64(rng.Intn(80)), Y: float64(rng.Intn(80)), W: float64(10 + rng.Intn(20)), H: float64(5 + rng.Intn(20))}

		f1, t1 := NearestEndpoints(a, b)
		f2, t2 := NearestEndpoints(b, a)
		assert.Equal(t, f1.Point, t2.Point, "trial %d", trial)
		assert.Equal(t, t1.Point, f2.Point, "trial %d", trial)
	}
}

func TestNewQuadCurve_BowOffset(t *testing.T) {
	c := NewQuadCurve(Point{X: 0, Y: 0}, Point{X: 10, Y: 0})
	// length 10 → offset 2 along the normal (0, 1)
	assert.InDelta(t, 5.0, c.Control.X, 1e-9)
	assert.InDelta(t, 2.0, c.Control.Y, 1e-9)
}

func TestNewQuadCurve_OffsetCapped(t *testing.T) {
	c := NewQuadCurve(Point{X: 0, Y: 50}, Point{X: 100, Y: 50})
	mid := Point{X: 50, Y: 50}
	assert.InDelta(t, 5.0, Dist(mid, c.Control), 1e-9)
}

func TestNewQuadCurve_ZeroLength(t *testing.T) {
	p := Point{X: 3, Y: 4}
	c := NewQuadCurve(p, p)
	assert.Equal(t, p, c.Control)
}

func TestNewQuadCurve_SameShapeEitherDirection(t *testing.T) {
	a := Point{X: 12.5, Y: 7}
	b := Point{X: 40, Y: 33.25}
	ab := NewQuadCurve(a, b)
	ba := NewQuadCurve(b, a)
	assert.Equal(t, ab.Control, ba.Control)
	assert.Equal(t, ab, ba.Reversed())
}

func TestQuadCurve_AtEndpoints(t *testing.T) {
	c := NewQuadCurve(Point{X: 1, Y: 2}, Point{X: 9, Y: 8})
	assert.Equal(t, c.Start, c.At(0))
	end := c.At(1)
	assert.InDelta(t, c.End.X, end.X, 1e-12)
	assert.InDelta(t, c.End.Y, end.Y, 1e-12)
}

func TestQuadCurve_PathCommand(t *testing.T) {
	c := NewQuadCurve(Point{X: 0, Y: 0}, Point{X: 10, Y: 0})
	assert.Equal(t, "M 0 0 Q 5 2 10 0", c.PathCommand())
}

func TestQuadCurve_ControlIsPerpendicular(t *testing.T) {
	c := NewQuadCurve(Point{X: 10, Y: 10}, Point{X: 30, Y: 25})
	mid := Point{X: 20, Y: 17.5}
	seg := Point{X: 20, Y: 15}
	off := Point{X: c.Control.X - mid.X, Y: c.Control.Y - mid.Y}
	dot := seg.X*off.X + seg.Y*off.Y
	require.False(t, math.IsNaN(dot))
	assert.InDelta(t, 0, dot, 1e-9)
}
