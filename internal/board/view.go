package board

import (
	"slices"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/gesture"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/alexanderramin/pinboard/internal/router"
	"github.com/alexanderramin/pinboard/internal/snap"
	"github.com/alexanderramin/pinboard/internal/viewport"
)

// CardView is a card as it should be drawn right now.
type CardView struct {
	Card          domain.Card
	Display       geometry.Rect
	Selected      bool
	Active        bool
	ConnectSource bool
}

// View is an immutable snapshot of a session. Cards are in draw order,
// lowest z-index first.
type View struct {
	BoardID     string
	Cards       []CardView
	Connections []domain.Connection
	Routes      []router.Routed
	Guides      snap.GuideLines
	Viewport    viewport.Viewport
	BoardSize   float64

	SelectedCardID       string
	SelectedConnectionID string
	ConnectMode          bool
	ConnectSourceID      string
	SnapEnabled          bool
	GridSize             int
	Gesture              gesture.State

	CanUndo bool
	CanRedo bool
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() View {
	cards := make([]CardView, 0, len(s.cards))
	for i := range s.cards {
		c := s.cards[i]
		cards = append(cards, CardView{
			Card:          c,
			Display:       s.gesture.DisplayRect(&c),
			Selected:      c.ID == s.selectedCard,
			Active:        s.gesture.Active() && s.gesture.CardID() == c.ID,
			ConnectSource: c.ID == s.connectSource,
		})
	}
	slices.SortStableFunc(cards, func(a, b CardView) int {
		return a.Card.ZIndex - b.Card.ZIndex
	})

	g := s.gesture.Guides()
	guides := snap.GuideLines{
		Horizontal: slices.Clone(g.Horizontal),
		Vertical:   slices.Clone(g.Vertical),
	}
	return View{
		BoardID:              s.boardID,
		Cards:                cards,
		Connections:          slices.Clone(s.conns),
		Routes:               s.routes(),
		Guides:               guides,
		Viewport:             s.vp,
		BoardSize:            s.cfg.BoardSize,
		SelectedCardID:       s.selectedCard,
		SelectedConnectionID: s.selectedConn,
		ConnectMode:          s.connectMode,
		ConnectSourceID:      s.connectSource,
		SnapEnabled:          s.snapOn,
		GridSize:             s.gridSize,
		Gesture:              s.gesture.State(),
		CanUndo:              s.log.CanUndo(),
		CanRedo:              s.log.CanRedo(),
	}
}

// Cards returns a copy of the session's cards in insertion order.
func (s *Session) Cards() []domain.Card {
	return slices.Clone(s.cards)
}

func (s *Session) Connections() []domain.Connection {
	return slices.Clone(s.conns)
}

// routes routes every connection against the cards' display rectangles, so
// connectors follow a card while it is being dragged.
func (s *Session) routes() []router.Routed {
	return router.RouteAll(s.conns, func(id string) (geometry.Rect, bool) {
		i := s.cardIndex(id)
		if i < 0 {
			return geometry.Rect{}, false
		}
		return s.gesture.DisplayRect(&s.cards[i]), true
	})
}
