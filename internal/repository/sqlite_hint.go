package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
)

// SQLiteHintRepo reads and writes the single board_hints row.
type SQLiteHintRepo struct {
	db db.DBTX
}

func NewSQLiteHintRepo(conn db.DBTX) *SQLiteHintRepo {
	return &SQLiteHintRepo{db: conn}
}

func (r *SQLiteHintRepo) Get(ctx context.Context) (*domain.BoardHint, error) {
	query := `SELECT board_id, viewport_x, viewport_y, zoom, grid_size, snap_enabled, updated_at
		FROM board_hints WHERE id = 'default'`
	var (
		h         domain.BoardHint
		boardID   sql.NullString
		snap      int
		updatedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&boardID, &h.ViewportX, &h.ViewportY, &h.Zoom, &h.GridSize, &snap, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board hint: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("getting board hint: %w", err)
	}
	h.BoardID = boardID.String
	h.SnapEnabled = snap != 0
	h.UpdatedAt = parseNullableTime(updatedAt)
	return &h, nil
}

func (r *SQLiteHintRepo) Upsert(ctx context.Context, h *domain.BoardHint) error {
	query := `INSERT INTO board_hints (id, board_id, viewport_x, viewport_y, zoom, grid_size, snap_enabled, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			board_id = excluded.board_id,
			viewport_x = excluded.viewport_x,
			viewport_y = excluded.viewport_y,
			zoom = excluded.zoom,
			grid_size = excluded.grid_size,
			snap_enabled = excluded.snap_enabled,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		nullableString(h.BoardID),
		h.ViewportX,
		h.ViewportY,
		h.Zoom,
		h.GridSize,
		boolToInt(h.SnapEnabled),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting board hint: %w", err)
	}
	return nil
}
