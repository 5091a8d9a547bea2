package tablestore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/okita/worklogd/internal/domain/record"
)

// File permissions for the flat-file backend.
const (
	csvFilePermission = 0o600
)

// CSVStore is a Store backed by an append-only CSV flat file. All cells
// are persisted as text; readers recover the duration via Row.CellFloat.
type CSVStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewCSVStore creates the file at path when missing.
func NewCSVStore(path string) (*CSVStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, csvFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return &CSVStore{path: path}, nil
}

// RowCount returns the current number of rows, header included.
func (s *CSVStore) RowCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	lines, err := s.readAll()
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

// AppendRow appends one row as a single CSV line.
func (s *CSVStore) AppendRow(_ context.Context, row Row) error {
	if len(row) != record.Columns {
		return fmt.Errorf("%w: got %d", ErrCellCount, len(row))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, csvFilePermission)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer f.Close()

	cells := make([]string, len(row))
	for i := range row {
		cells[i] = row.CellString(i)
	}

	w := csv.NewWriter(f)
	if err := w.Write(cells); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}

// Rows returns up to limit of the most recently appended rows in append order.
func (s *CSVStore) Rows(_ context.Context, limit int) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	lines, err := s.readAll()
	if err != nil {
		return nil, err
	}
	start := 0
	if limit > 0 && limit < len(lines) {
		start = len(lines) - limit
	}
	out := make([]Row, 0, len(lines)-start)
	for _, line := range lines[start:] {
		row := make(Row, len(line))
		for i, cell := range line {
			row[i] = cell
		}
		out = append(out, row)
	}
	return out, nil
}

// Close rejects further operations. The file itself stays on disk.
func (s *CSVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *CSVStore) readAll() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = record.Columns
	var lines [][]string
	for {
		line, err := r.Read()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
		}
		lines = append(lines, line)
	}
}
