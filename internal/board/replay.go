package board

import (
	"context"
	"slices"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/history"
)

// Undo reverts the most recent action. It reports whether there was one.
// Replay never records a new action; references to entities that no longer
// exist are skipped.
func (s *Session) Undo(ctx context.Context) (bool, error) {
	a, ok := s.log.Undo()
	if !ok {
		return false, nil
	}
	return true, s.replay(ctx, a, true)
}

// Redo re-applies the most recently undone action.
func (s *Session) Redo(ctx context.Context) (bool, error) {
	a, ok := s.log.Redo()
	if !ok {
		return false, nil
	}
	return true, s.replay(ctx, a, false)
}

func (s *Session) CanUndo() bool { return s.log.CanUndo() }
func (s *Session) CanRedo() bool { return s.log.CanRedo() }

func (s *Session) replay(ctx context.Context, a history.Action, undo bool) error {
	if s.gesture.Active() {
		s.gesture.Cancel()
	}
	s.obs.ObserveBoard(ctx, Event{Kind: EventReplay, BoardID: s.boardID, Action: replayName(a.Type, undo)})

	switch a.Type {
	case history.ActionCardMove, history.ActionCardResize, history.ActionCardContent, history.ActionCardColor:
		return s.replayField(ctx, a.Type, a.Side(undo))

	case history.ActionCardCreate:
		card := a.After.Card
		if card == nil {
			return nil
		}
		if undo {
			return s.replayDeleteCard(ctx, a.Type, card.ID)
		}
		return s.replayCreateCard(ctx, a.Type, *card, nil)

	case history.ActionCardDelete:
		card := a.Before.Card
		if card == nil {
			return nil
		}
		if undo {
			return s.replayCreateCard(ctx, a.Type, *card, a.Before.Connections)
		}
		return s.replayDeleteCard(ctx, a.Type, card.ID)

	case history.ActionConnectionCreate:
		conn := a.After.Connection
		if conn == nil {
			return nil
		}
		if undo {
			return s.replayDeleteConnection(ctx, a.Type, conn.ID)
		}
		return s.replayCreateConnection(ctx, a.Type, *conn)

	case history.ActionConnectionDelete:
		conn := a.Before.Connection
		if conn == nil {
			return nil
		}
		if undo {
			return s.replayCreateConnection(ctx, a.Type, *conn)
		}
		return s.replayDeleteConnection(ctx, a.Type, conn.ID)
	}
	return nil
}

func replayName(t history.ActionType, undo bool) string {
	if undo {
		return "undo_" + string(t)
	}
	return "redo_" + string(t)
}

func (s *Session) skipped(ctx context.Context, t history.ActionType, id, reason string) error {
	s.obs.ObserveBoard(ctx, Event{Kind: EventReplaySkipped, BoardID: s.boardID, Action: string(t), CardID: id, Reason: reason})
	return nil
}

func (s *Session) replayField(ctx context.Context, t history.ActionType, side history.Snapshot) error {
	i := s.cardIndex(side.CardID)
	if i < 0 {
		return s.skipped(ctx, t, side.CardID, "card gone")
	}

	var p CardPatch
	switch t {
	case history.ActionCardMove:
		p = MovePatch(side.CardID, side.Position.X, side.Position.Y)
	case history.ActionCardResize:
		p = ResizePatch(side.CardID, side.Size.Width, side.Size.Height)
	case history.ActionCardContent:
		p = ContentPatch(side.CardID, side.Content)
	case history.ActionCardColor:
		p = ColorPatch(side.CardID, side.Color)
	}
	p.Apply(&s.cards[i])

	if _, err := s.mut.UpdateCard(ctx, p); err != nil {
		return s.failed(ctx, replayName(t, false), side.CardID, err)
	}
	return nil
}

// replayCreateCard brings back card, asking the store for its old id, then
// restores the connections that were severed with it. If the store hands
// out a new id, every reference in the undo log is rewritten.
func (s *Session) replayCreateCard(ctx context.Context, t history.ActionType, card domain.Card, severed []domain.Connection) error {
	if s.cardIndex(card.ID) >= 0 {
		return s.skipped(ctx, t, card.ID, "card exists")
	}
	created, err := s.mut.CreateCard(ctx, DraftFromCard(card))
	if err != nil {
		return s.failed(ctx, string(t), card.ID, err)
	}
	if created.ID != card.ID {
		s.log.RemapCardID(card.ID, created.ID)
	}
	s.cards = append(s.cards, created)

	var firstErr error
	for _, conn := range severed {
		if conn.FromCardID == card.ID {
			conn.FromCardID = created.ID
		}
		if conn.ToCardID == card.ID {
			conn.ToCardID = created.ID
		}
		if err := s.replayCreateConnection(ctx, history.ActionConnectionCreate, conn); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Session) replayDeleteCard(ctx context.Context, t history.ActionType, id string) error {
	if s.cardIndex(id) < 0 {
		return s.skipped(ctx, t, id, "card gone")
	}
	s.removeCard(id)
	if err := s.mut.DeleteCard(ctx, id); err != nil {
		return s.failed(ctx, string(t), id, err)
	}
	return nil
}

func (s *Session) replayCreateConnection(ctx context.Context, t history.ActionType, conn domain.Connection) error {
	if s.connIndex(conn.ID) >= 0 {
		return s.skipped(ctx, t, conn.FromCardID, "connection exists")
	}
	if reason := s.connectRejection(conn.FromCardID, conn.ToCardID); reason != "" {
		return s.skipped(ctx, t, conn.FromCardID, reason)
	}
	created, err := s.mut.CreateConnection(ctx, DraftFromConnection(conn))
	if err != nil {
		return s.failed(ctx, string(t), conn.FromCardID, err)
	}
	if created.ID != conn.ID {
		s.log.RemapConnectionID(conn.ID, created.ID)
	}
	s.conns = append(s.conns, created)
	return nil
}

func (s *Session) replayDeleteConnection(ctx context.Context, t history.ActionType, id string) error {
	i := s.connIndex(id)
	if i < 0 {
		return s.skipped(ctx, t, "", "connection gone")
	}
	s.conns = slices.Delete(s.conns, i, i+1)
	if s.selectedConn == id {
		s.selectedConn = ""
	}
	if err := s.mut.DeleteConnection(ctx, id); err != nil {
		return s.failed(ctx, string(t), "", err)
	}
	return nil
}
