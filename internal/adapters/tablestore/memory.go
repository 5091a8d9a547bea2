package tablestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okita/worklogd/internal/domain/record"
	"github.com/okita/worklogd/pkg/metrics"
)

// Default configuration for the in-memory store.
const (
	defaultMetricsUpdateInterval = 30 * time.Second
)

// MemoryStore is a mutex-guarded, in-process Store implementation.
// Rows live for the lifetime of the process; it backs tests and
// single-node deployments that do not need durability.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   []Row
	closed bool

	metricsUpdateInterval time.Duration
	stopMetrics           context.CancelFunc
}

// NewMemoryStore creates an empty in-memory table and starts the
// background metrics updater.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		metricsUpdateInterval: defaultMetricsUpdateInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	metricsCtx, cancel := context.WithCancel(ctx)
	s.stopMetrics = cancel
	go s.startMetricsUpdater(metricsCtx)

	return s
}

// RowCount returns the current number of rows, header included.
func (s *MemoryStore) RowCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return len(s.rows), nil
}

// AppendRow appends one row to the end of the table.
func (s *MemoryStore) AppendRow(_ context.Context, row Row) error {
	if len(row) != record.Columns {
		return fmt.Errorf("%w: got %d", ErrCellCount, len(row))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	// Copy so callers cannot mutate stored cells afterwards.
	stored := make(Row, len(row))
	copy(stored, row)
	s.rows = append(s.rows, stored)
	return nil
}

// Rows returns up to limit of the most recently appended rows in append order.
func (s *MemoryStore) Rows(_ context.Context, limit int) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	start := 0
	if limit > 0 && limit < len(s.rows) {
		start = len(s.rows) - limit
	}
	out := make([]Row, len(s.rows)-start)
	copy(out, s.rows[start:])
	return out, nil
}

// Close stops the metrics updater and rejects further operations.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.stopMetrics != nil {
		s.stopMetrics()
	}
	return nil
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(s.metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			n := len(s.rows)
			s.mu.RUnlock()
			metrics.UpdateTableRowCount(n)
		}
	}
}
