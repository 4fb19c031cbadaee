package board

import (
	"context"
	"io"
	"log/slog"
)

// EventKind classifies what the session reports to its observer.
type EventKind string

const (
	EventCommit          EventKind = "commit"
	EventReplay          EventKind = "replay"
	EventReplaySkipped   EventKind = "replay_skipped"
	EventConnectRejected EventKind = "connect_rejected"
	EventMutatorFailed   EventKind = "mutator_failed"
)

// Event is one engine occurrence worth logging.
type Event struct {
	Kind    EventKind
	BoardID string
	Action  string
	CardID  string
	Reason  string
	Err     error
}

// Observer receives session events. Implementations must not call back into
// the session.
type Observer interface {
	ObserveBoard(ctx context.Context, e Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveBoard(context.Context, Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes session events to w.
func NewLogObserver(w io.Writer, level slog.Leveler) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func (o *logObserver) ObserveBoard(ctx context.Context, e Event) {
	attrs := []any{"kind", string(e.Kind), "board_id", e.BoardID}
	if e.Action != "" {
		attrs = append(attrs, "action", e.Action)
	}
	if e.CardID != "" {
		attrs = append(attrs, "card_id", e.CardID)
	}
	if e.Reason != "" {
		attrs = append(attrs, "reason", e.Reason)
	}
	switch {
	case e.Err != nil:
		attrs = append(attrs, "error", e.Err.Error())
		o.logger.ErrorContext(ctx, "board_event", attrs...)
	case e.Kind == EventCommit || e.Kind == EventReplay:
		o.logger.InfoContext(ctx, "board_event", attrs...)
	default:
		o.logger.DebugContext(ctx, "board_event", attrs...)
	}
}
