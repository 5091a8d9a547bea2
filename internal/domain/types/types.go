// Package types contains common types used across the application
package types

// LogRow represents one stored data row as returned by read endpoints.
// JSON keys match the inbound payload keys so a fetched row round-trips.
type LogRow struct {
	Date        string  `json:"Date"`
	Category    string  `json:"Category"`
	SubCategory string  `json:"SubCategory"`
	Duration    float64 `json:"Duration"`
	Memo        string  `json:"Memo"`
	Source      string  `json:"Source"`
	EventID     string  `json:"EventID"`
}

// CategoryTotal is the summed duration for one category.
type CategoryTotal struct {
	Category     string  `json:"category"`
	TotalMinutes float64 `json:"total_minutes"`
}
