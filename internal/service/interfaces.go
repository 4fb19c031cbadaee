package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/pinboard/internal/domain"
)

var (
	ErrNoDefaultBoard = errors.New("no board selected (pass a board or run 'pinboard board use')")
	ErrAmbiguousRef   = errors.New("reference matches more than one item")
)

// BoardSummary is a board with the size of its contents.
type BoardSummary struct {
	Board           *domain.Board
	CardCount       int
	ConnectionCount int
}

type BoardService interface {
	Create(ctx context.Context, name string) (*domain.Board, error)
	List(ctx context.Context) ([]BoardSummary, error)
	Rename(ctx context.Context, id, name string) (*domain.Board, error)
	Delete(ctx context.Context, id string) error
	Load(ctx context.Context, id string) (*domain.BoardDetail, error)

	// Resolve finds a board by id, case-insensitive name or unique id
	// prefix. An empty ref resolves to the default board.
	Resolve(ctx context.Context, ref string) (*domain.Board, error)
	// ResolveCard finds a card on boardID by id or unique id prefix.
	ResolveCard(ctx context.Context, boardID, ref string) (*domain.Card, error)

	Hint(ctx context.Context) (*domain.BoardHint, error)
	Use(ctx context.Context, boardID string) error
	SaveHint(ctx context.Context, h *domain.BoardHint) error
}
