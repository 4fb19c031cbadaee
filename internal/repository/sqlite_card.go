package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
)

// SQLiteCardRepo implements CardRepo using a SQLite database.
type SQLiteCardRepo struct {
	db db.DBTX
}

func NewSQLiteCardRepo(conn db.DBTX) *SQLiteCardRepo {
	return &SQLiteCardRepo{db: conn}
}

const cardColumns = `id, board_id, content, x, y, width, height, color, z_index, created_at, updated_at`

func (r *SQLiteCardRepo) Create(ctx context.Context, c *domain.Card) error {
	query := `INSERT INTO cards (` + cardColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.BoardID,
		c.Content,
		c.X, c.Y, c.Width, c.Height,
		c.Color,
		c.ZIndex,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	return scanCard(row)
}

// ListByBoard returns cards in draw order.
func (r *SQLiteCardRepo) ListByBoard(ctx context.Context, boardID string) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE board_id = ? ORDER BY z_index, created_at, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

func (r *SQLiteCardRepo) Update(ctx context.Context, c *domain.Card) error {
	query := `UPDATE cards SET content = ?, x = ?, y = ?, width = ?, height = ?, color = ?, z_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Content,
		c.X, c.Y, c.Width, c.Height,
		c.Color,
		c.ZIndex,
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	return requireAffected(res, "card")
}

func (r *SQLiteCardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return requireAffected(res, "card")
}

func scanCard(s rowScanner) (*domain.Card, error) {
	var c domain.Card
	var createdAt, updatedAt string
	err := s.Scan(
		&c.ID, &c.BoardID, &c.Content,
		&c.X, &c.Y, &c.Width, &c.Height,
		&c.Color, &c.ZIndex,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("card: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning card: %w", err)
	}
	c.CreatedAt, c.UpdatedAt, err = parseTimes(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
