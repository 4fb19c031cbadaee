package history

import (
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/geometry"
	"github.com/oklog/ulid/v2"
)

type ActionType string

const (
	ActionCardMove         ActionType = "card_move"
	ActionCardResize       ActionType = "card_resize"
	ActionCardContent      ActionType = "card_content"
	ActionCardColor        ActionType = "card_color"
	ActionCardCreate       ActionType = "card_create"
	ActionCardDelete       ActionType = "card_delete"
	ActionConnectionCreate ActionType = "connection_create"
	ActionConnectionDelete ActionType = "connection_delete"
)

// IsFieldUpdate reports whether replaying the action is a plain card update
// rather than a create or delete.
func (t ActionType) IsFieldUpdate() bool {
	switch t {
	case ActionCardMove, ActionCardResize, ActionCardContent, ActionCardColor:
		return true
	}
	return false
}

// Snapshot is one side of an action. Only the fields relevant to the
// action's type are set.
type Snapshot struct {
	CardID string

	// card_move
	Position geometry.Point
	// card_resize
	Size geometry.Size
	// card_content
	Content string
	// card_color
	Color string

	// card_create / card_delete
	Card        *domain.Card
	Connections []domain.Connection

	// connection_create / connection_delete
	Connection *domain.Connection
}

// Action is an invertible record of one user-visible mutation. Undo applies
// Before, redo applies After.
type Action struct {
	ID      string
	Type    ActionType
	BoardID string
	Before  Snapshot
	After   Snapshot
}

func newAction(t ActionType, boardID string, before, after Snapshot) Action {
	return Action{
		ID:      ulid.Make().String(),
		Type:    t,
		BoardID: boardID,
		Before:  before,
		After:   after,
	}
}

func CardMove(boardID, cardID string, before, after geometry.Point) Action {
	return newAction(ActionCardMove, boardID,
		Snapshot{CardID: cardID, Position: before},
		Snapshot{CardID: cardID, Position: after})
}

func CardResize(boardID, cardID string, before, after geometry.Size) Action {
	return newAction(ActionCardResize, boardID,
		Snapshot{CardID: cardID, Size: before},
		Snapshot{CardID: cardID, Size: after})
}

func CardContent(boardID, cardID, before, after string) Action {
	return newAction(ActionCardContent, boardID,
		Snapshot{CardID: cardID, Content: before},
		Snapshot{CardID: cardID, Content: after})
}

func CardColor(boardID, cardID, before, after string) Action {
	return newAction(ActionCardColor, boardID,
		Snapshot{CardID: cardID, Color: before},
		Snapshot{CardID: cardID, Color: after})
}

func CardCreate(boardID string, card domain.Card) Action {
	return newAction(ActionCardCreate, boardID,
		Snapshot{},
		Snapshot{CardID: card.ID, Card: &card})
}

// CardDelete records a deleted card together with the connections that were
// removed with it.
func CardDelete(boardID string, card domain.Card, conns []domain.Connection) Action {
	kept := append([]domain.Connection(nil), conns...)
	return newAction(ActionCardDelete, boardID,
		Snapshot{CardID: card.ID, Card: &card, Connections: kept},
		Snapshot{})
}

func ConnectionCreate(boardID string, conn domain.Connection) Action {
	return newAction(ActionConnectionCreate, boardID,
		Snapshot{},
		Snapshot{Connection: &conn})
}

func ConnectionDelete(boardID string, conn domain.Connection) Action {
	return newAction(ActionConnectionDelete, boardID,
		Snapshot{Connection: &conn},
		Snapshot{})
}

// Side returns the snapshot to apply: Before for undo, After for redo.
func (a Action) Side(undo bool) Snapshot {
	if undo {
		return a.Before
	}
	return a.After
}

// Entity returns the snapshot holding the created or deleted entity,
// whichever side carries it.
func (a Action) Entity() Snapshot {
	switch a.Type {
	case ActionCardCreate, ActionConnectionCreate:
		return a.After
	default:
		return a.Before
	}
}

func (s *Snapshot) remapCard(oldID, newID string) {
	if s.CardID == oldID {
		s.CardID = newID
	}
	if s.Card != nil && s.Card.ID == oldID {
		c := *s.Card
		c.ID = newID
		s.Card = &c
	}
	if s.Connection != nil && s.Connection.Touches(oldID) {
		c := remapConnEndpoints(*s.Connection, oldID, newID)
		s.Connection = &c
	}
	if len(s.Connections) > 0 {
		conns := make([]domain.Connection, len(s.Connections))
		for i, c := range s.Connections {
			conns[i] = remapConnEndpoints(c, oldID, newID)
		}
		s.Connections = conns
	}
}

func (s *Snapshot) remapConnection(oldID, newID string) {
	if s.Connection != nil && s.Connection.ID == oldID {
		c := *s.Connection
		c.ID = newID
		s.Connection = &c
	}
	for i := range s.Connections {
		if s.Connections[i].ID == oldID {
			conns := append([]domain.Connection(nil), s.Connections...)
			conns[i].ID = newID
			s.Connections = conns
			return
		}
	}
}

func remapConnEndpoints(c domain.Connection, oldID, newID string) domain.Connection {
	if c.FromCardID == oldID {
		c.FromCardID = newID
	}
	if c.ToCardID == oldID {
		c.ToCardID = newID
	}
	return c
}
