package cli

import (
	"context"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/snap"
	"github.com/alexanderramin/pinboard/internal/viewport"
)

// openedBoard is a loaded board ready for editing.
type openedBoard struct {
	detail  *domain.BoardDetail
	session *board.Session
}

// openBoard resolves ref (empty means the default board), loads it and
// opens a session. When the board is the default one, the viewport, grid
// and snap setting saved in the hint are restored.
func openBoard(ctx context.Context, app *App, ref string) (*openedBoard, error) {
	b, err := app.Boards.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	detail, err := app.Boards.Load(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	hint, err := app.Boards.Hint(ctx)
	if err != nil {
		return nil, err
	}

	cfg := app.Config.Board()
	opts := []board.Option{board.WithObserver(app.observer())}
	if hint.HasBoard() && hint.BoardID == b.ID {
		if snap.ValidGridSize(hint.GridSize) {
			cfg.GridSize = hint.GridSize
		}
		cfg.SnapEnabled = hint.SnapEnabled
		opts = append(opts, board.WithViewport(viewport.Viewport{X: hint.ViewportX, Y: hint.ViewportY, Zoom: hint.Zoom}))
	}

	return &openedBoard{
		detail:  detail,
		session: board.NewSession(*detail, app.Mutator, cfg, opts...),
	}, nil
}

// card resolves a card reference on the opened board.
func (o *openedBoard) card(ctx context.Context, app *App, ref string) (domain.Card, error) {
	c, err := app.Boards.ResolveCard(ctx, o.detail.Board.ID, ref)
	if err != nil {
		return domain.Card{}, err
	}
	return *c, nil
}

// hint captures the session's view for saving.
func (o *openedBoard) hint() *domain.BoardHint {
	v := o.session.Snapshot()
	return &domain.BoardHint{
		BoardID:     o.detail.Board.ID,
		ViewportX:   v.Viewport.X,
		ViewportY:   v.Viewport.Y,
		Zoom:        v.Viewport.Zoom,
		GridSize:    v.GridSize,
		SnapEnabled: v.SnapEnabled,
	}
}
