package gesture

import (
	"sort"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/geometry"
)

// MaxZIndex is the largest z-index handed out before the stack is renumbered.
const MaxZIndex = 10000

// ZPatch is a z-index change to persist.
type ZPatch struct {
	CardID string
	ZIndex int
}

// Promote raises cardID above every other card. Normally that is max+1; when
// that would pass MaxZIndex all cards are renumbered 1..n in their current
// stacking order with cardID last. Only changed cards are returned.
func Promote(cardID string, cards []domain.Card) []ZPatch {
	top := domain.MaxZIndex(cards) + 1
	if top <= MaxZIndex {
		return []ZPatch{{CardID: cardID, ZIndex: top}}
	}

	order := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != cardID {
			order = append(order, c)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].ZIndex != order[j].ZIndex {
			return order[i].ZIndex < order[j].ZIndex
		}
		return order[i].ID < order[j].ID
	})

	var patches []ZPatch
	for i, c := range order {
		if z := i + 1; c.ZIndex != z {
			patches = append(patches, ZPatch{CardID: c.ID, ZIndex: z})
		}
	}
	return append(patches, ZPatch{CardID: cardID, ZIndex: len(order) + 1})
}

// CreationAnchor converts a double-click into the origin of a new card:
// the click in board-percentage space, minus half the default footprint,
// clamped so the card stays on the board. click and boardRect are in pixels,
// boardRect being the board's on-screen bounds at the current zoom.
func CreationAnchor(click geometry.Point, boardRect geometry.Rect) geometry.Point {
	if boardRect.W <= 0 || boardRect.H <= 0 {
		return geometry.Point{}
	}
	px := (click.X - boardRect.X) / boardRect.W * 100
	py := (click.Y - boardRect.Y) / boardRect.H * 100
	return CreationOrigin(geometry.Point{X: px, Y: py})
}

// CreationOrigin centres a default-sized card on p (board-percentage space),
// clamped into [0,85]×[0,90].
func CreationOrigin(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: geometry.Clamp(p.X-domain.DefaultCardWidth/2, 0, 100-domain.DefaultCardWidth),
		Y: geometry.Clamp(p.Y-domain.DefaultCardHeight/2, 0, 100-domain.DefaultCardHeight),
	}
}
