package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/google/uuid"
)

// minPrefix is the shortest id prefix accepted as a reference.
const minPrefix = 4

type boardService struct {
	boards   repository.BoardRepo
	cards    repository.CardRepo
	conns    repository.ConnectionRepo
	hints    repository.HintRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewBoardService(
	boards repository.BoardRepo,
	cards repository.CardRepo,
	conns repository.ConnectionRepo,
	hints repository.HintRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		boards:   boards,
		cards:    cards,
		conns:    conns,
		hints:    hints,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create adds a board. The first board ever created becomes the default.
func (s *boardService) Create(ctx context.Context, name string) (b *domain.Board, err error) {
	fields := map[string]any{"name": name}
	defer observe(ctx, s.observer, "create-board", time.Now().UTC(), fields, &err)

	now := time.Now().UTC()
	b = &domain.Board{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = b.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteBoardRepo(tx).Create(ctx, b); err != nil {
			return err
		}
		hints := repository.NewSQLiteHintRepo(tx)
		h, err := hints.Get(ctx)
		if err != nil {
			return err
		}
		if h.HasBoard() {
			return nil
		}
		h.BoardID = b.ID
		return hints.Upsert(ctx, h)
	})
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}
	fields["board_id"] = b.ID
	return b, nil
}

func (s *boardService) List(ctx context.Context) (out []BoardSummary, err error) {
	defer observe(ctx, s.observer, "list-boards", time.Now().UTC(), nil, &err)

	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]BoardSummary, 0, len(boards))
	for _, b := range boards {
		cards, err := s.cards.ListByBoard(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		conns, err := s.conns.ListByBoard(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, BoardSummary{Board: b, CardCount: len(cards), ConnectionCount: len(conns)})
	}
	return out, nil
}

func (s *boardService) Rename(ctx context.Context, id, name string) (b *domain.Board, err error) {
	fields := map[string]any{"board_id": id, "name": name}
	defer observe(ctx, s.observer, "rename-board", time.Now().UTC(), fields, &err)

	b, err = s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Name = strings.TrimSpace(name)
	if err = b.Validate(); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now().UTC()
	if err = s.boards.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the board with its cards and connections.
func (s *boardService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"board_id": id}
	defer observe(ctx, s.observer, "delete-board", time.Now().UTC(), fields, &err)

	return s.boards.Delete(ctx, id)
}

func (s *boardService) Load(ctx context.Context, id string) (detail *domain.BoardDetail, err error) {
	fields := map[string]any{"board_id": id}
	defer observe(ctx, s.observer, "load-board", time.Now().UTC(), fields, &err)

	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	conns, err := s.conns.ListByBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	fields["cards"] = len(cards)
	fields["connections"] = len(conns)
	return &domain.BoardDetail{Board: *b, Cards: cards, Connections: conns}, nil
}

func (s *boardService) Resolve(ctx context.Context, ref string) (b *domain.Board, err error) {
	fields := map[string]any{"ref": ref}
	defer observe(ctx, s.observer, "resolve-board", time.Now().UTC(), fields, &err)

	ref = strings.TrimSpace(ref)
	if ref == "" {
		h, err := s.hints.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !h.HasBoard() {
			return nil, ErrNoDefaultBoard
		}
		return s.boards.GetByID(ctx, h.BoardID)
	}

	b, err = s.boards.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return b, err
	}
	b, err = s.boards.GetByName(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return b, err
	}

	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	i, err := matchPrefix(ids, ref)
	if err != nil {
		return nil, fmt.Errorf("board %q: %w", ref, err)
	}
	return boards[i], nil
}

func (s *boardService) ResolveCard(ctx context.Context, boardID, ref string) (c *domain.Card, err error) {
	fields := map[string]any{"board_id": boardID, "ref": ref}
	defer observe(ctx, s.observer, "resolve-card", time.Now().UTC(), fields, &err)

	cards, err := s.cards.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(cards))
	for i := range cards {
		if cards[i].ID == ref {
			return &cards[i], nil
		}
		ids[i] = cards[i].ID
	}
	i, err := matchPrefix(ids, ref)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", ref, err)
	}
	return &cards[i], nil
}

// matchPrefix returns the index of the only id starting with ref.
func matchPrefix(ids []string, ref string) (int, error) {
	if len(ref) < minPrefix {
		return -1, repository.ErrNotFound
	}
	found := -1
	for i, id := range ids {
		if !strings.HasPrefix(id, ref) {
			continue
		}
		if found >= 0 {
			return -1, ErrAmbiguousRef
		}
		found = i
	}
	if found < 0 {
		return -1, repository.ErrNotFound
	}
	return found, nil
}

func (s *boardService) Hint(ctx context.Context) (*domain.BoardHint, error) {
	return s.hints.Get(ctx)
}

// Use makes boardID the default board. The stored viewport is reset when
// the default changes.
func (s *boardService) Use(ctx context.Context, boardID string) (err error) {
	fields := map[string]any{"board_id": boardID}
	defer observe(ctx, s.observer, "use-board", time.Now().UTC(), fields, &err)

	if _, err = s.boards.GetByID(ctx, boardID); err != nil {
		return err
	}
	h, err := s.hints.Get(ctx)
	if err != nil {
		return err
	}
	if h.BoardID != boardID {
		h.BoardID = boardID
		h.ViewportX, h.ViewportY, h.Zoom = 0, 0, 1
	}
	return s.hints.Upsert(ctx, h)
}

func (s *boardService) SaveHint(ctx context.Context, h *domain.BoardHint) (err error) {
	fields := map[string]any{"board_id": h.BoardID, "zoom": h.Zoom}
	defer observe(ctx, s.observer, "save-hint", time.Now().UTC(), fields, &err)

	return s.hints.Upsert(ctx, h)
}
