package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
)

type BoardRepo interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	GetByName(ctx context.Context, name string) (*domain.Board, error)
	List(ctx context.Context) ([]*domain.Board, error)
	Update(ctx context.Context, b *domain.Board) error
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByBoard(ctx context.Context, boardID string) ([]domain.Card, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error
}

type ConnectionRepo interface {
	Create(ctx context.Context, c *domain.Connection) error
	GetByID(ctx context.Context, id string) (*domain.Connection, error)
	ListByBoard(ctx context.Context, boardID string) ([]domain.Connection, error)
	ListByCard(ctx context.Context, cardID string) ([]domain.Connection, error)
	UpdateColor(ctx context.Context, id, color string) error
	Delete(ctx context.Context, id string) error
	DeleteByCard(ctx context.Context, cardID string) (int, error)
}

type HintRepo interface {
	Get(ctx context.Context) (*domain.BoardHint, error)
	Upsert(ctx context.Context, h *domain.BoardHint) error
}
