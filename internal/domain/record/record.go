// Package record contains the time-tracking record model and its wire parsing.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Record represents one time-tracking entry submitted by clients.
// Fields mirror the JSON payload of POST /records.
type Record struct {
	Date        string  // timestamp or date string, stored verbatim
	Category    string  // top-level category name
	SubCategory string  // category refinement
	Duration    float64 // duration in minutes, no unit conversion
	Memo        string  // free text, may be empty
	Source      string  // record origin, e.g. "Manual" or "Calendar"
	EventID     string  // optional origin id; empty when absent
}

// Header returns the fixed header row written once to an empty table.
// Column order is significant and textually exact.
func Header() []string {
	return []string{"Timestamp", "Category", "SubCategory", "Duration (min)", "Memo", "Source", "EventID"}
}

// Columns is the number of cells in every row, header included.
const Columns = 7

// payload mirrors the request JSON. Pointer fields distinguish an absent
// key from a present-but-zero value.
type payload struct {
	Date        *string  `json:"Date"`
	Category    *string  `json:"Category"`
	SubCategory *string  `json:"SubCategory"`
	Duration    *float64 `json:"Duration"`
	Memo        *string  `json:"Memo"`
	Source      *string  `json:"Source"`
	EventID     *string  `json:"EventID"`
}

// Parse decodes a request body into a Record.
//
// Required keys: Date, Category, SubCategory, Duration, Memo, Source.
// EventID is optional and defaults to the empty string. A body that is not
// a JSON object, omits a required key, or carries a non-numeric Duration
// is rejected with ErrMalformedInput before any write happens.
func Parse(body []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	var p payload
	if err := dec.Decode(&p); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	switch {
	case p.Date == nil:
		return Record{}, missing("Date")
	case p.Category == nil:
		return Record{}, missing("Category")
	case p.SubCategory == nil:
		return Record{}, missing("SubCategory")
	case p.Duration == nil:
		return Record{}, missing("Duration")
	case p.Memo == nil:
		return Record{}, missing("Memo")
	case p.Source == nil:
		return Record{}, missing("Source")
	}

	rec := Record{
		Date:        *p.Date,
		Category:    *p.Category,
		SubCategory: *p.SubCategory,
		Duration:    *p.Duration,
		Memo:        *p.Memo,
		Source:      *p.Source,
	}
	if p.EventID != nil {
		rec.EventID = *p.EventID
	}

	// Memo may be blank; the identifying fields may not.
	switch {
	case strings.TrimSpace(rec.Date) == "":
		return Record{}, blank("Date")
	case strings.TrimSpace(rec.Category) == "":
		return Record{}, blank("Category")
	case strings.TrimSpace(rec.SubCategory) == "":
		return Record{}, blank("SubCategory")
	case strings.TrimSpace(rec.Source) == "":
		return Record{}, blank("Source")
	}

	return rec, nil
}

// Row returns the ordered cells appended to the table for this record.
// Duration stays numeric; every other cell is a string.
func (r Record) Row() []any {
	return []any{r.Date, r.Category, r.SubCategory, r.Duration, r.Memo, r.Source, r.EventID}
}

func missing(key string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedInput, key)
}

func blank(key string) error {
	return fmt.Errorf("%w: blank %s", ErrMalformedInput, key)
}
