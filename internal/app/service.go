// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okita/worklogd/internal/adapters/tablestore"
	"github.com/okita/worklogd/internal/domain/record"
	"github.com/okita/worklogd/internal/domain/types"
	"github.com/okita/worklogd/pkg/logger"
	"github.com/okita/worklogd/pkg/metrics"
)

// Default configuration for the service.
const (
	defaultMaxRecentLimit = 200
)

// Service implements the record appender on top of a table store.
type Service struct {
	mu sync.RWMutex

	// appendMu serializes the check-then-append sequence so concurrent
	// requests on an empty table cannot both write a header row. A second
	// process sharing the same backend can still race; that duplicate is
	// benign and left undetected.
	appendMu sync.Mutex

	// Core components
	store tablestore.Store

	// Configuration
	maxRecentLimit int
	ownsStore      bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the destination table. The caller keeps ownership of the
// store lifecycle unless the service created its own default.
func WithStore(store tablestore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxRecentLimit caps how many rows Recent returns.
func WithMaxRecentLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxRecentLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxRecentLimit: defaultMaxRecentLimit,
		logger:         nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = tablestore.NewMemoryStore(ctx)
		s.ownsStore = true
		s.logger.Info(ctx, "no store configured; using in-memory table")
	}

	s.started = true
	s.logger.Info(ctx, "worklog service started",
		logger.Int("maxRecentLimit", s.maxRecentLimit),
	)

	return nil
}

// Stop gracefully shuts down the service. Stores injected by the caller
// stay open; only a service-created default store is closed here.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping worklog service...")

	if s.ownsStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(ctx, "failed to close store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "worklog service stopped")
}

// Append writes rec as one data row, writing the fixed header row first
// when the table is empty. It reports whether a header was written.
// Exactly one well-formed record yields exactly one data row and at most
// one header row; a header written before a failed data append is an
// accepted partial state since the table is append-only.
func (s *Service) Append(ctx context.Context, rec record.Record) (bool, error) {
	start := time.Now()

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	count, err := s.store.RowCount(ctx)
	if err != nil {
		metrics.RecordStorageError()
		return false, fmt.Errorf("row count: %w", err)
	}

	headerWritten := false
	if count == 0 {
		header := record.Header()
		headerRow := make(tablestore.Row, len(header))
		for i, cell := range header {
			headerRow[i] = cell
		}
		if err := s.store.AppendRow(ctx, headerRow); err != nil {
			metrics.RecordStorageError()
			return false, fmt.Errorf("append header: %w", err)
		}
		headerWritten = true
		count++
		metrics.RecordHeaderWrite()
		s.logger.Info(ctx, "initialized empty table with header row")
	}

	if err := s.store.AppendRow(ctx, tablestore.Row(rec.Row())); err != nil {
		metrics.RecordStorageError()
		return headerWritten, fmt.Errorf("append row: %w", err)
	}
	count++

	metrics.RecordRowAppended()
	metrics.RecordAppendLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateTableRowCount(count)

	s.logger.Debug(ctx, "appended record",
		logger.String("category", rec.Category),
		logger.String("source", rec.Source),
		logger.Float64("duration", rec.Duration),
	)

	return headerWritten, nil
}

// Recent returns the newest n data rows, newest first. The header row is
// never included and n is capped by the configured limit.
func (s *Service) Recent(ctx context.Context, n int) ([]types.LogRow, error) {
	if n < 1 {
		n = 1
	}
	if n > s.maxRecentLimit {
		n = s.maxRecentLimit
	}

	// Fetch one extra so a header row in the window can be dropped.
	rows, err := s.store.Rows(ctx, n+1)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	out := make([]types.LogRow, 0, n)
	for i := len(rows) - 1; i >= 0 && len(out) < n; i-- {
		if isHeader(rows[i]) {
			continue
		}
		out = append(out, toLogRow(rows[i]))
	}
	return out, nil
}

// CategoryTotals sums the duration of every data row per category,
// sorted by category name.
func (s *Service) CategoryTotals(ctx context.Context) ([]types.CategoryTotal, error) {
	rows, err := s.store.Rows(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	sums := make(map[string]float64)
	for _, row := range rows {
		if isHeader(row) {
			continue
		}
		sums[row.CellString(1)] += row.CellFloat(3)
	}

	totals := make([]types.CategoryTotal, 0, len(sums))
	for category, minutes := range sums {
		totals = append(totals, types.CategoryTotal{Category: category, TotalMinutes: minutes})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })
	return totals, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"maxRecentLimit": s.maxRecentLimit,
	}

	if s.started {
		if count, err := s.store.RowCount(context.Background()); err == nil {
			stats["tableRowCount"] = count
			metrics.UpdateTableRowCount(count)
		}
	}

	return stats
}

// isHeader reports whether row is the fixed header row.
func isHeader(row tablestore.Row) bool {
	header := record.Header()
	if len(row) != len(header) {
		return false
	}
	for i, cell := range header {
		if row.CellString(i) != cell {
			return false
		}
	}
	return true
}

// toLogRow converts stored cells back into the wire shape.
func toLogRow(row tablestore.Row) types.LogRow {
	return types.LogRow{
		Date:        row.CellString(0),
		Category:    row.CellString(1),
		SubCategory: row.CellString(2),
		Duration:    row.CellFloat(3),
		Memo:        row.CellString(4),
		Source:      row.CellString(5),
		EventID:     row.CellString(6),
	}
}
