// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/okita/worklogd/internal/domain/record"
	"github.com/okita/worklogd/pkg/metrics"
)

// Request body bound for POST /records; a single record is tiny.
const maxRequestBody = 1 << 20

// RecordsHandler handles the record webhook and the recent-rows read.
type RecordsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies, maxLimit int) *RecordsHandler {
	return &RecordsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleRecords dispatches /records by method.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePostRecord(w, r)
	case http.MethodGet:
		h.handleGetRecords(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handlePostRecord implements the webhook: parse the body as one record,
// append it, and acknowledge with the literal body "Success". Nothing is
// written when parsing fails.
func (h *RecordsHandler) handlePostRecord(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_record"

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := record.Parse(body)
	if err != nil {
		metrics.RecordMalformedRequest()
		writeError(w, http.StatusBadRequest, "malformed_input", WrapKind(op, ErrBadRequest, err))
		return
	}

	if _, err := h.deps.Append(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failure", Wrap(op, err))
		return
	}

	writeText(w, http.StatusOK, "Success")
}

// handleGetRecords implements GET /records?limit=N.
func (h *RecordsHandler) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_records"

	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	rows, err := h.deps.Recent(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if rows == nil {
		rows = []LogRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}
