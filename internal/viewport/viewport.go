// Package viewport holds the pan/zoom state of a board view and the
// transforms between container pixels and board space.
package viewport

import (
	"math"

	"github.com/alexanderramin/pinboard/internal/geometry"
)

const (
	MinZoom  = 0.25
	MaxZoom  = 2.0
	ZoomStep = 0.1

	// DefaultBoardSize is the nominal board extent in pixels at zoom 1.
	DefaultBoardSize = 3000.0
)

// Viewport is the pan offset of the board origin, in container pixels, and
// the zoom factor.
type Viewport struct {
	X    float64
	Y    float64
	Zoom float64
}

// New returns the identity viewport.
func New() Viewport {
	return Viewport{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return geometry.Clamp(z, MinZoom, MaxZoom)
}

// stepZoom is the clamped zoom one notch away from z, rounded to two
// decimals so repeated steps do not drift.
func stepZoom(z, step float64) float64 {
	return ClampZoom(math.Round((z+step)*100) / 100)
}

// Pan translates the view by a raw pixel delta. The board may scroll past its
// content, so nothing is clamped.
func (v *Viewport) Pan(dx, dy float64) {
	v.X += dx
	v.Y += dy
}

// ZoomAt applies one wheel notch around cursor, given in container pixels.
// A positive wheelDelta zooms out, anything else zooms in. The board point
// under the cursor stays under the cursor. Returns false when the clamped zoom
// is unchanged.
func (v *Viewport) ZoomAt(cursor geometry.Point, wheelDelta float64) bool {
	step := ZoomStep
	if wheelDelta > 0 {
		step = -ZoomStep
	}
	return v.zoomAround(cursor, stepZoom(v.zoom(), step))
}

// SetZoom sets an absolute zoom without preserving any anchor.
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = ClampZoom(z)
}

// ZoomIn steps the zoom up by one notch without an anchor.
func (v *Viewport) ZoomIn() { v.Zoom = stepZoom(v.zoom(), ZoomStep) }

// ZoomOut steps the zoom down by one notch without an anchor.
func (v *Viewport) ZoomOut() { v.Zoom = stepZoom(v.zoom(), -ZoomStep) }

// Reset restores the identity viewport.
func (v *Viewport) Reset() { *v = New() }

func (v *Viewport) zoomAround(cursor geometry.Point, target float64) bool {
	oldZoom := v.zoom()
	newZoom := ClampZoom(target)
	if newZoom == oldZoom {
		return false
	}
	s := newZoom / oldZoom
	v.X = cursor.X - s*(cursor.X-v.X)
	v.Y = cursor.Y - s*(cursor.Y-v.Y)
	v.Zoom = newZoom
	return true
}

// zoom guards against a zero-value Viewport.
func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

// ToModel maps a container pixel to unscaled board pixels.
func (v Viewport) ToModel(p geometry.Point) geometry.Point {
	z := v.zoom()
	return geometry.Point{X: (p.X - v.X) / z, Y: (p.Y - v.Y) / z}
}

// ToScreen maps unscaled board pixels to a container pixel.
func (v Viewport) ToScreen(m geometry.Point) geometry.Point {
	z := v.zoom()
	return geometry.Point{X: m.X*z + v.X, Y: m.Y*z + v.Y}
}

// ToPercent maps a container pixel to board-percentage space.
func (v Viewport) ToPercent(p geometry.Point, boardSize float64) geometry.Point {
	m := v.ToModel(p)
	return geometry.Point{X: m.X / boardSize * 100, Y: m.Y / boardSize * 100}
}

// FromPercent maps a board-percentage point to a container pixel.
func (v Viewport) FromPercent(p geometry.Point, boardSize float64) geometry.Point {
	return v.ToScreen(geometry.Point{X: p.X / 100 * boardSize, Y: p.Y / 100 * boardSize})
}

// PercentDelta converts a pixel distance at the current zoom into
// board-percentage units.
func (v Viewport) PercentDelta(pixel, boardSize float64) float64 {
	return geometry.PercentDelta(pixel, boardSize, v.zoom())
}
