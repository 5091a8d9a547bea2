package tablestore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okita/worklogd/internal/domain/record"
)

// sqliteSchema holds the single append-only table. The duration column is
// typeless so the header cell stays text while data cells stay numeric.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS rows (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	c0 TEXT, c1 TEXT, c2 TEXT, c3, c4 TEXT, c5 TEXT, c6 TEXT
)`

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the database at dsn and ensures the
// rows table exists.
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return &SQLiteStore{db: db}, nil
}

// RowCount returns the current number of rows, header included.
func (s *SQLiteStore) RowCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM rows"); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return n, nil
}

// AppendRow appends one row to the end of the table.
func (s *SQLiteStore) AppendRow(ctx context.Context, row Row) error {
	if len(row) != record.Columns {
		return fmt.Errorf("%w: got %d", ErrCellCount, len(row))
	}
	const q = "INSERT INTO rows (c0, c1, c2, c3, c4, c5, c6) VALUES (?, ?, ?, ?, ?, ?, ?)"
	if _, err := s.db.ExecContext(ctx, q, row...); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}

// Rows returns up to limit of the most recently appended rows in append order.
func (s *SQLiteStore) Rows(ctx context.Context, limit int) ([]Row, error) {
	q := "SELECT c0, c1, c2, c3, c4, c5, c6 FROM rows ORDER BY position ASC"
	args := []any{}
	if limit > 0 {
		q = `SELECT c0, c1, c2, c3, c4, c5, c6 FROM (
			SELECT position, c0, c1, c2, c3, c4, c5, c6 FROM rows ORDER BY position DESC LIMIT ?
		) ORDER BY position ASC`
		args = append(args, limit)
	}

	rows, err := s.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
		}
		out = append(out, Row(cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}
