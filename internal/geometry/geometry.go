// Package geometry holds the pure board-space math shared by the snap engine,
// the gesture controller and the connection router. All rectangles are in
// board-percentage units unless a function says otherwise.
package geometry

import "math"

// Point is a position in board-percentage space (or pixels, where noted).
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.W, Height: r.H} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Moved returns r with its origin replaced.
func (r Rect) Moved(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Resized returns r with its size replaced.
func (r Rect) Resized(s Size) Rect {
	r.W, r.H = s.Width, s.Height
	return r
}

// Clamp limits v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampOrigin keeps a rectangle of size s fully inside the 0–100 board.
func ClampOrigin(p Point, s Size) Point {
	return Point{
		X: Clamp(p.X, 0, 100-s.Width),
		Y: Clamp(p.Y, 0, 100-s.Height),
	}
}

// DistSq is the squared Euclidean distance between a and b.
func DistSq(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Dist is the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Sqrt(DistSq(a, b))
}

// Less orders points by X, then Y. Used wherever a canonical order is needed
// to keep results independent of argument order.
func Less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// PercentDelta converts a pixel distance into board-percentage units for a
// board of nominal size boardSize rendered at zoom.
func PercentDelta(pixel, boardSize, zoom float64) float64 {
	scaled := boardSize * zoom
	if scaled == 0 {
		return 0
	}
	return pixel / scaled * 100
}

// PixelDelta is the inverse of PercentDelta.
func PixelDelta(percent, boardSize, zoom float64) float64 {
	return percent / 100 * boardSize * zoom
}
