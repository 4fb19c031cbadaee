// Package gesture is the pointer state machine for moving and resizing a
// single card. It turns pointer positions into tentative rectangles, preview
// guides and, on release, a commit describing the mutation to emit. It never
// mutates cards itself.
package gesture

import (
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/alexanderramin/pinboard/internal/snap"
)

type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Scale converts pointer pixels into board-percentage units.
type Scale struct {
	BoardSize float64
	Zoom      float64
}

// Percent converts a pixel distance at this scale.
func (s Scale) Percent(px float64) float64 {
	return geometry.PercentDelta(px, s.BoardSize, s.Zoom)
}

// Options are the snapping settings applied when a drag ends. Alignment
// always applies; Grid turns on grid snapping after it.
type Options struct {
	Grid        bool
	GridPercent float64
	Threshold   float64
}

// Commit is the terminal outcome of a gesture.
type Commit struct {
	CardID string
	Kind   State
	Before geometry.Rect
	After  geometry.Rect
}

// Changed reports whether the gesture moved or resized anything.
func (c Commit) Changed() bool {
	return c.Before != c.After
}

// Controller tracks at most one in-flight gesture.
type Controller struct {
	state        State
	cardID       string
	startPointer geometry.Point
	start        geometry.Rect
	preview      geometry.Rect
	guides       snap.GuideLines
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Active() bool { return c.state != Idle }
func (c *Controller) CardID() string { return c.cardID }
func (c *Controller) Guides() snap.GuideLines { return c.guides }
func (c *Controller) Preview() geometry.Rect { return c.preview }
func (c *Controller) StartRect() geometry.Rect { return c.start }

// DisplayRect returns the rectangle to draw for card: the in-flight preview
// when card is the gesture's target, its stored rectangle otherwise.
func (c *Controller) DisplayRect(card *domain.Card) geometry.Rect {
	if c.state != Idle && card.ID == c.cardID {
		return c.preview
	}
	return card.Rect()
}

// BeginDrag starts moving card from pointer (container pixels). cards is the
// full card list, used to promote the card to the top of the z-order. The
// returned patches must be emitted as-is. It returns false and does nothing
// while another gesture is active.
func (c *Controller) BeginDrag(card domain.Card, pointer geometry.Point, cards []domain.Card) ([]ZPatch, bool) {
	if c.state != Idle {
		return nil, false
	}
	c.begin(Dragging, card, pointer)
	return Promote(card.ID, cards), true
}

// MoveDrag updates the preview for the current pointer. others are the
// rectangles of every card except the dragged one. Alignment is computed for
// the guides only; the preview keeps the clamped tentative position.
func (c *Controller) MoveDrag(pointer geometry.Point, others []geometry.Rect, sc Scale, threshold float64) (geometry.Rect, snap.GuideLines) {
	if c.state != Dragging {
		return geometry.Rect{}, snap.GuideLines{}
	}
	c.preview = c.tentative(pointer, sc)
	c.guides = snap.Align(c.preview, others, threshold).Guides
	return c.preview, c.guides
}

// EndDrag finishes the drag: tentative position, alignment snap, grid snap
// when enabled, then a final clamp. Guides are cleared before the commit is
// returned.
func (c *Controller) EndDrag(pointer geometry.Point, others []geometry.Rect, sc Scale, opts Options) (Commit, bool) {
	if c.state != Dragging {
		return Commit{}, false
	}
	r := c.tentative(pointer, sc)
	r = r.Moved(snap.Align(r, others, opts.Threshold).Origin())
	if opts.Grid {
		r.X = snap.SnapToGrid(r.X, opts.GridPercent)
		r.Y = snap.SnapToGrid(r.Y, opts.GridPercent)
	}
	r = r.Moved(geometry.ClampOrigin(r.Origin(), r.Size()))
	return c.finish(r), true
}

// BeginResize starts resizing card from the bottom-right handle.
func (c *Controller) BeginResize(card domain.Card, pointer geometry.Point) bool {
	if c.state != Idle {
		return false
	}
	c.begin(Resizing, card, pointer)
	return true
}

// MoveResize updates the preview size: start size plus pointer delta,
// clamped to the card bounds.
func (c *Controller) MoveResize(pointer geometry.Point, sc Scale) geometry.Rect {
	if c.state != Resizing {
		return geometry.Rect{}
	}
	c.preview = c.resized(pointer, sc)
	return c.preview
}

func (c *Controller) EndResize(pointer geometry.Point, sc Scale) (Commit, bool) {
	if c.state != Resizing {
		return Commit{}, false
	}
	return c.finish(c.resized(pointer, sc)), true
}

// Cancel abandons the gesture without a commit.
func (c *Controller) Cancel() {
	*c = Controller{}
}

func (c *Controller) begin(s State, card domain.Card, pointer geometry.Point) {
	c.state = s
	c.cardID = card.ID
	c.startPointer = pointer
	c.start = card.Rect()
	c.preview = c.start
	c.guides = snap.GuideLines{}
}

func (c *Controller) finish(after geometry.Rect) Commit {
	commit := Commit{CardID: c.cardID, Kind: c.state, Before: c.start, After: after}
	*c = Controller{}
	return commit
}

func (c *Controller) delta(pointer geometry.Point, sc Scale) (float64, float64) {
	return sc.Percent(pointer.X - c.startPointer.X), sc.Percent(pointer.Y - c.startPointer.Y)
}

func (c *Controller) tentative(pointer geometry.Point, sc Scale) geometry.Rect {
	dx, dy := c.delta(pointer, sc)
	origin := geometry.Point{X: c.start.X + dx, Y: c.start.Y + dy}
	return c.start.Moved(geometry.ClampOrigin(origin, c.start.Size()))
}

func (c *Controller) resized(pointer geometry.Point, sc Scale) geometry.Rect {
	dx, dy := c.delta(pointer, sc)
	size := domain.ClampSize(geometry.Size{Width: c.start.W + dx, Height: c.start.H + dy})
	return c.start.Resized(size)
}
