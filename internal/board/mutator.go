package board

import (
	"context"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// CardDraft describes a card to create. A non-empty ID asks the store to
// reuse that identity; stores may ignore it when it is taken.
type CardDraft struct {
	ID      string
	BoardID string
	Content string
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Color   string
	ZIndex  int
}

// DraftFromCard rebuilds the draft that would recreate c under its own id.
func DraftFromCard(c domain.Card) CardDraft {
	return CardDraft{
		ID:      c.ID,
		BoardID: c.BoardID,
		Content: c.Content,
		X:       c.X,
		Y:       c.Y,
		Width:   c.Width,
		Height:  c.Height,
		Color:   c.Color,
		ZIndex:  c.ZIndex,
	}
}

// Card converts the draft into a card value with defaults applied.
func (d CardDraft) Card() domain.Card {
	c := domain.Card{
		ID:      d.ID,
		BoardID: d.BoardID,
		Content: d.Content,
		X:       d.X,
		Y:       d.Y,
		Width:   d.Width,
		Height:  d.Height,
		Color:   d.Color,
		ZIndex:  d.ZIndex,
	}
	c.ApplyDefaults()
	return c
}

// CardPatch is a partial card update. Nil fields are left unchanged.
type CardPatch struct {
	ID      string
	X       *float64
	Y       *float64
	Width   *float64
	Height  *float64
	Content *string
	Color   *string
	ZIndex  *int
}

// Apply writes the set fields onto c.
func (p CardPatch) Apply(c *domain.Card) {
	if p.X != nil {
		c.X = *p.X
	}
	if p.Y != nil {
		c.Y = *p.Y
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.Content != nil {
		c.Content = *p.Content
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.ZIndex != nil {
		c.ZIndex = *p.ZIndex
	}
}

// Empty reports whether the patch changes nothing.
func (p CardPatch) Empty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Content == nil && p.Color == nil && p.ZIndex == nil
}

func MovePatch(id string, x, y float64) CardPatch {
	return CardPatch{ID: id, X: &x, Y: &y}
}

func ResizePatch(id string, w, h float64) CardPatch {
	return CardPatch{ID: id, Width: &w, Height: &h}
}

func ContentPatch(id, content string) CardPatch {
	return CardPatch{ID: id, Content: &content}
}

func ColorPatch(id, color string) CardPatch {
	return CardPatch{ID: id, Color: &color}
}

func ZIndexPatch(id string, z int) CardPatch {
	return CardPatch{ID: id, ZIndex: &z}
}

// ConnectionDraft describes a connection to create. As with CardDraft, ID is
// a request, not a guarantee.
type ConnectionDraft struct {
	ID         string
	BoardID    string
	FromCardID string
	ToCardID   string
	Color      string
}

func DraftFromConnection(c domain.Connection) ConnectionDraft {
	return ConnectionDraft{
		ID:         c.ID,
		BoardID:    c.BoardID,
		FromCardID: c.FromCardID,
		ToCardID:   c.ToCardID,
		Color:      c.Color,
	}
}

// Mutator is the persistence collaborator. The session calls it once per
// user-visible mutation and once per replayed undo/redo step.
type Mutator interface {
	CreateCard(ctx context.Context, d CardDraft) (domain.Card, error)
	UpdateCard(ctx context.Context, p CardPatch) (domain.Card, error)
	DeleteCard(ctx context.Context, id string) error
	CreateConnection(ctx context.Context, d ConnectionDraft) (domain.Connection, error)
	UpdateConnection(ctx context.Context, id, color string) (domain.Connection, error)
	DeleteConnection(ctx context.Context, id string) error
}
