package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/google/uuid"
)

// mutatorService persists board session edits. Every call runs in its own
// transaction and bumps the owning board's updated_at.
type mutatorService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

var _ board.Mutator = (*mutatorService)(nil)

func NewMutatorService(uow db.UnitOfWork, observers ...UseCaseObserver) board.Mutator {
	return &mutatorService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// claimID returns requested when it is free, otherwise a fresh id.
func claimID(requested string, lookup func() error) (string, error) {
	if requested == "" {
		return uuid.New().String(), nil
	}
	err := lookup()
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return requested, nil
	case err != nil:
		return "", err
	default:
		return uuid.New().String(), nil
	}
}

func (s *mutatorService) CreateCard(ctx context.Context, d board.CardDraft) (card domain.Card, err error) {
	fields := map[string]any{"board_id": d.BoardID, "requested_id": d.ID}
	defer observe(ctx, s.observer, "create-card", time.Now().UTC(), fields, &err)

	card = d.Card()
	if err = card.Validate(); err != nil {
		return domain.Card{}, fmt.Errorf("creating card: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		boards := repository.NewSQLiteBoardRepo(tx)
		cards := repository.NewSQLiteCardRepo(tx)

		if _, err := boards.GetByID(ctx, card.BoardID); err != nil {
			return err
		}
		id, err := claimID(d.ID, func() error {
			_, err := cards.GetByID(ctx, d.ID)
			return err
		})
		if err != nil {
			return err
		}
		card.ID = id

		now := time.Now().UTC()
		card.CreatedAt, card.UpdatedAt = now, now
		if err := cards.Create(ctx, &card); err != nil {
			return err
		}
		return boards.Touch(ctx, card.BoardID, now)
	})
	if err != nil {
		return domain.Card{}, fmt.Errorf("creating card: %w", err)
	}
	fields["card_id"] = card.ID
	return card, nil
}

func (s *mutatorService) UpdateCard(ctx context.Context, p board.CardPatch) (card domain.Card, err error) {
	fields := map[string]any{"card_id": p.ID}
	defer observe(ctx, s.observer, "update-card", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cards := repository.NewSQLiteCardRepo(tx)
		current, err := cards.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		p.Apply(current)
		if err := current.Validate(); err != nil {
			return err
		}
		current.UpdatedAt = time.Now().UTC()
		if err := cards.Update(ctx, current); err != nil {
			return err
		}
		card = *current
		return repository.NewSQLiteBoardRepo(tx).Touch(ctx, card.BoardID, card.UpdatedAt)
	})
	if err != nil {
		return domain.Card{}, fmt.Errorf("updating card: %w", err)
	}
	return card, nil
}

// DeleteCard removes the card and every connection touching it.
func (s *mutatorService) DeleteCard(ctx context.Context, id string) (err error) {
	fields := map[string]any{"card_id": id}
	defer observe(ctx, s.observer, "delete-card", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cards := repository.NewSQLiteCardRepo(tx)
		card, err := cards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := repository.NewSQLiteConnectionRepo(tx).DeleteByCard(ctx, id)
		if err != nil {
			return err
		}
		fields["connections_removed"] = n
		if err := cards.Delete(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteBoardRepo(tx).Touch(ctx, card.BoardID, time.Now().UTC())
	})
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}

func (s *mutatorService) CreateConnection(ctx context.Context, d board.ConnectionDraft) (conn domain.Connection, err error) {
	fields := map[string]any{"board_id": d.BoardID, "from": d.FromCardID, "to": d.ToCardID}
	defer observe(ctx, s.observer, "create-connection", time.Now().UTC(), fields, &err)

	conn = domain.Connection{
		BoardID:    d.BoardID,
		FromCardID: d.FromCardID,
		ToCardID:   d.ToCardID,
		Color:      d.Color,
	}
	conn.ApplyDefaults()
	if err = conn.Validate(); err != nil {
		return domain.Connection{}, fmt.Errorf("creating connection: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cards := repository.NewSQLiteCardRepo(tx)
		conns := repository.NewSQLiteConnectionRepo(tx)

		for _, cardID := range []string{conn.FromCardID, conn.ToCardID} {
			c, err := cards.GetByID(ctx, cardID)
			if err != nil {
				return err
			}
			if c.BoardID != conn.BoardID {
				return fmt.Errorf("card %s is on another board", cardID)
			}
		}
		id, err := claimID(d.ID, func() error {
			_, err := conns.GetByID(ctx, d.ID)
			return err
		})
		if err != nil {
			return err
		}
		conn.ID = id
		if err := conns.Create(ctx, &conn); err != nil {
			return err
		}
		return repository.NewSQLiteBoardRepo(tx).Touch(ctx, conn.BoardID, time.Now().UTC())
	})
	if err != nil {
		return domain.Connection{}, fmt.Errorf("creating connection: %w", err)
	}
	fields["connection_id"] = conn.ID
	return conn, nil
}

func (s *mutatorService) UpdateConnection(ctx context.Context, id, color string) (conn domain.Connection, err error) {
	fields := map[string]any{"connection_id": id, "color": color}
	defer observe(ctx, s.observer, "update-connection", time.Now().UTC(), fields, &err)

	if !domain.ValidColor(color) {
		err = fmt.Errorf("updating connection: invalid color %q", color)
		return domain.Connection{}, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		conns := repository.NewSQLiteConnectionRepo(tx)
		if err := conns.UpdateColor(ctx, id, color); err != nil {
			return err
		}
		updated, err := conns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		conn = *updated
		return repository.NewSQLiteBoardRepo(tx).Touch(ctx, conn.BoardID, time.Now().UTC())
	})
	if err != nil {
		return domain.Connection{}, fmt.Errorf("updating connection: %w", err)
	}
	return conn, nil
}

func (s *mutatorService) DeleteConnection(ctx context.Context, id string) (err error) {
	fields := map[string]any{"connection_id": id}
	defer observe(ctx, s.observer, "delete-connection", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		conns := repository.NewSQLiteConnectionRepo(tx)
		conn, err := conns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := conns.Delete(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteBoardRepo(tx).Touch(ctx, conn.BoardID, time.Now().UTC())
	})
	if err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	return nil
}
