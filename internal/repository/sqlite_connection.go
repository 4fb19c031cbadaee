package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
)

// SQLiteConnectionRepo implements ConnectionRepo using a SQLite database.
type SQLiteConnectionRepo struct {
	db db.DBTX
}

func NewSQLiteConnectionRepo(conn db.DBTX) *SQLiteConnectionRepo {
	return &SQLiteConnectionRepo{db: conn}
}

const connectionColumns = `id, board_id, from_card_id, to_card_id, color`

// Create returns ErrDuplicateConnection when the two cards are already
// linked in either direction.
func (r *SQLiteConnectionRepo) Create(ctx context.Context, c *domain.Connection) error {
	query := `INSERT INTO connections (` + connectionColumns + `, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.BoardID, c.FromCardID, c.ToCardID, c.Color, nowUTC())
	if err != nil {
		if isUniqueViolation(err) && !strings.Contains(err.Error(), "connections.id") {
			return fmt.Errorf("inserting connection: %w", ErrDuplicateConnection)
		}
		return fmt.Errorf("inserting connection: %w", err)
	}
	return nil
}

func (r *SQLiteConnectionRepo) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+connectionColumns+` FROM connections WHERE id = ?`, id)
	return scanConnection(row)
}

func (r *SQLiteConnectionRepo) ListByBoard(ctx context.Context, boardID string) ([]domain.Connection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+connectionColumns+` FROM connections WHERE board_id = ? ORDER BY created_at, rowid`, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	defer rows.Close()
	return scanConnections(rows)
}

func (r *SQLiteConnectionRepo) ListByCard(ctx context.Context, cardID string) ([]domain.Connection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+connectionColumns+` FROM connections WHERE from_card_id = ? OR to_card_id = ? ORDER BY created_at, rowid`,
		cardID, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing connections by card: %w", err)
	}
	defer rows.Close()
	return scanConnections(rows)
}

func (r *SQLiteConnectionRepo) UpdateColor(ctx context.Context, id, color string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE connections SET color = ? WHERE id = ?`, color, id)
	if err != nil {
		return fmt.Errorf("updating connection: %w", err)
	}
	return requireAffected(res, "connection")
}

func (r *SQLiteConnectionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM connections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	return requireAffected(res, "connection")
}

// DeleteByCard removes every connection touching cardID and reports how
// many went.
func (r *SQLiteConnectionRepo) DeleteByCard(ctx context.Context, cardID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM connections WHERE from_card_id = ? OR to_card_id = ?`, cardID, cardID)
	if err != nil {
		return 0, fmt.Errorf("deleting connections of card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted connections: %w", err)
	}
	return int(n), nil
}

func scanConnection(s rowScanner) (*domain.Connection, error) {
	var c domain.Connection
	if err := s.Scan(&c.ID, &c.BoardID, &c.FromCardID, &c.ToCardID, &c.Color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("connection: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning connection: %w", err)
	}
	return &c, nil
}

func scanConnections(rows *sql.Rows) ([]domain.Connection, error) {
	var conns []domain.Connection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating connections: %w", err)
	}
	return conns, nil
}
