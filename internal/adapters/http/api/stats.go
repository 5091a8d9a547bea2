// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	deps          Dependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, deps Dependencies) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, deps: deps}
}

// HandleStats handles GET /stats requests. The payload combines service
// counters with per-category duration totals.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stats"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	stats := h.statsProvider.GetStats()

	totals, err := h.deps.CategoryTotals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if totals == nil {
		totals = []CategoryTotal{}
	}
	stats["categoryTotals"] = totals

	writeJSON(w, http.StatusOK, stats)
}
