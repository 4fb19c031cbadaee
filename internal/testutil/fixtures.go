package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/google/uuid"
)

var boardCounter atomic.Int64

// Board options
type BoardOption func(*domain.Board)

func WithBoardID(id string) BoardOption {
	return func(b *domain.Board) {
		b.ID = id
	}
}

func WithCreatedAt(t time.Time) BoardOption {
	return func(b *domain.Board) {
		b.CreatedAt = t
		b.UpdatedAt = t
	}
}

// NewTestBoard returns an unsaved board. An empty name gets a unique one.
func NewTestBoard(name string, opts ...BoardOption) *domain.Board {
	if name == "" {
		name = fmt.Sprintf("Board %d", boardCounter.Add(1))
	}
	now := time.Now().UTC().Truncate(time.Second)
	b := &domain.Board{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Card options
type CardOption func(*domain.Card)

func WithCardID(id string) CardOption {
	return func(c *domain.Card) {
		c.ID = id
	}
}

func WithPosition(x, y float64) CardOption {
	return func(c *domain.Card) {
		c.X = x
		c.Y = y
	}
}

func WithSize(w, h float64) CardOption {
	return func(c *domain.Card) {
		c.Width = w
		c.Height = h
	}
}

func WithCardColor(color string) CardOption {
	return func(c *domain.Card) {
		c.Color = color
	}
}

func WithZIndex(z int) CardOption {
	return func(c *domain.Card) {
		c.ZIndex = z
	}
}

// NewTestCard returns an unsaved card with default geometry.
func NewTestCard(boardID, content string, opts ...CardOption) *domain.Card {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.Card{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Content:   content,
		X:         domain.DefaultCardX,
		Y:         domain.DefaultCardY,
		Width:     domain.DefaultCardWidth,
		Height:    domain.DefaultCardHeight,
		Color:     domain.DefaultCardColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connection options
type ConnectionOption func(*domain.Connection)

func WithConnectionID(id string) ConnectionOption {
	return func(c *domain.Connection) {
		c.ID = id
	}
}

func WithConnectionColor(color string) ConnectionOption {
	return func(c *domain.Connection) {
		c.Color = color
	}
}

func NewTestConnection(boardID, fromID, toID string, opts ...ConnectionOption) *domain.Connection {
	c := &domain.Connection{
		ID:         uuid.New().String(),
		BoardID:    boardID,
		FromCardID: fromID,
		ToCardID:   toID,
		Color:      domain.DefaultConnectionColor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
