// Package tablestore defines the destination-table interface and its backends.
package tablestore

import (
	"context"
	"strconv"
)

// Row is one ordered sequence of cell values. Cells are strings except
// the duration cell, which stays numeric where the backend can keep it.
type Row []any

// CellString returns cell i rendered as a string.
func (r Row) CellString(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	switch v := r[i].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		return ""
	}
}

// CellFloat returns cell i as a float64, parsing string cells written by
// text-only backends. Unparseable cells yield zero.
func (r Row) CellFloat(i int) float64 {
	if i < 0 || i >= len(r) {
		return 0
	}
	switch v := r[i].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	default:
		return 0
	}
}

// Store provides append-only access to the shared destination table.
// The table is created externally or on open; this interface never
// updates or deletes existing rows.
type Store interface {
	// RowCount returns the current number of rows, header included.
	RowCount(ctx context.Context) (int, error)

	// AppendRow appends one row to the end of the table.
	AppendRow(ctx context.Context, row Row) error

	// Rows returns up to limit of the most recently appended rows in
	// append order. limit <= 0 returns every row.
	Rows(ctx context.Context, limit int) ([]Row, error)

	// Close releases backend resources.
	Close() error
}
