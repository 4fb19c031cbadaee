package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent, so it is run in
// full on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateConnectionPairIndex(db); err != nil {
		return fmt.Errorf("migrating connection pair index: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL CHECK(length(name) BETWEEN 1 AND 255),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id         TEXT PRIMARY KEY,
		board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		content    TEXT NOT NULL DEFAULT '',
		x          REAL NOT NULL DEFAULT 10 CHECK(x BETWEEN 0 AND 100),
		y          REAL NOT NULL DEFAULT 10 CHECK(y BETWEEN 0 AND 100),
		width      REAL NOT NULL DEFAULT 15 CHECK(width BETWEEN 10 AND 50),
		height     REAL NOT NULL DEFAULT 10 CHECK(height BETWEEN 5 AND 50),
		color      TEXT NOT NULL DEFAULT '#FEF3C7',
		z_index    INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cards_board ON cards(board_id)`,

	`CREATE TABLE IF NOT EXISTS connections (
		id           TEXT PRIMARY KEY,
		board_id     TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		from_card_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		to_card_id   TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		color        TEXT NOT NULL DEFAULT '#92400E',
		created_at   TEXT NOT NULL,
		CHECK(from_card_id != to_card_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_connections_board ON connections(board_id)`,
	`CREATE INDEX IF NOT EXISTS idx_connections_from ON connections(from_card_id)`,
	`CREATE INDEX IF NOT EXISTS idx_connections_to ON connections(to_card_id)`,

	// Single row: the board the CLI opens by default and its last viewport.
	`CREATE TABLE IF NOT EXISTS board_hints (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		board_id   TEXT REFERENCES boards(id) ON DELETE SET NULL,
		viewport_x REAL NOT NULL DEFAULT 0,
		viewport_y REAL NOT NULL DEFAULT 0,
		zoom       REAL NOT NULL DEFAULT 1,
		updated_at TEXT
	)`,

	`INSERT OR IGNORE INTO board_hints (id) VALUES ('default')`,

	// Per-user snapping preferences remembered alongside the viewport.
	`ALTER TABLE board_hints ADD COLUMN grid_size INTEGER NOT NULL DEFAULT 20`,
	`ALTER TABLE board_hints ADD COLUMN snap_enabled INTEGER NOT NULL DEFAULT 0`,
}

const connectionPairIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_connections_pair
	ON connections(min(from_card_id, to_card_id), max(from_card_id, to_card_id))`

// migrateConnectionPairIndex enforces one connection per unordered card pair.
// Stores created before the index existed may hold duplicates; the oldest
// connection of each pair is kept.
func migrateConnectionPairIndex(db *sql.DB) error {
	ctx := context.Background()

	var exists int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_connections_pair'`).Scan(&exists); err != nil {
		return fmt.Errorf("checking pair index: %w", err)
	}
	if exists > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM connections WHERE rowid NOT IN (
		SELECT MIN(rowid) FROM connections
		GROUP BY min(from_card_id, to_card_id), max(from_card_id, to_card_id)
	)`); err != nil {
		return fmt.Errorf("removing duplicate connections: %w", err)
	}

	if _, err := tx.ExecContext(ctx, connectionPairIndex); err != nil {
		return fmt.Errorf("creating pair index: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	committed = true
	return nil
}
