package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
)

// SQLiteBoardRepo implements BoardRepo using a SQLite database.
type SQLiteBoardRepo struct {
	db db.DBTX
}

func NewSQLiteBoardRepo(conn db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: conn}
}

const boardColumns = `id, name, created_at, updated_at`

func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	query := `INSERT INTO boards (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.Name, formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, id)
	return scanBoard(row)
}

// GetByName matches case-insensitively. The oldest board wins when names
// collide.
func (r *SQLiteBoardRepo) GetByName(ctx context.Context, name string) (*domain.Board, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE name = ? COLLATE NOCASE ORDER BY created_at, id LIMIT 1`, name)
	return scanBoard(row)
}

func (r *SQLiteBoardRepo) List(ctx context.Context) ([]*domain.Board, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+boardColumns+` FROM boards ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return boards, nil
}

func (r *SQLiteBoardRepo) Update(ctx context.Context, b *domain.Board) error {
	res, err := r.db.ExecContext(ctx, `UPDATE boards SET name = ?, updated_at = ? WHERE id = ?`,
		b.Name, formatTime(b.UpdatedAt), b.ID)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	return requireAffected(res, "board")
}

// Touch bumps updated_at after a card or connection on the board changed.
func (r *SQLiteBoardRepo) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE boards SET updated_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("touching board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return requireAffected(res, "board")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(s rowScanner) (*domain.Board, error) {
	var b domain.Board
	var createdAt, updatedAt string
	if err := s.Scan(&b.ID, &b.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning board: %w", err)
	}
	var err error
	b.CreatedAt, b.UpdatedAt, err = parseTimes(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
