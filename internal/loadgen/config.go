package loadgen

import "time"

// Config holds configuration for the load generator
type Config struct {
	BaseURL    string        // Base URL of the service
	NumRecords int           // Number of records to generate
	RecentN    int           // Number of recent rows to fetch back
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated records
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// Record is the JSON payload submitted to the ingest endpoint
type Record struct {
	Date        string  `json:"Date"`
	Category    string  `json:"Category"`
	SubCategory string  `json:"SubCategory"`
	Duration    float64 `json:"Duration"`
	Memo        string  `json:"Memo"`
	Source      string  `json:"Source"`
	EventID     string  `json:"EventID,omitempty"`
}

// RecentRow is a row echoed back by the recent-records endpoint
type RecentRow struct {
	Date        string  `json:"Date"`
	Category    string  `json:"Category"`
	SubCategory string  `json:"SubCategory"`
	Duration    float64 `json:"Duration"`
	Memo        string  `json:"Memo"`
	Source      string  `json:"Source"`
	EventID     string  `json:"EventID"`
}

// Stats holds load run statistics
type Stats struct {
	RecordsGenerated int
	RecordsSubmitted int
	RecordsAccepted  int
	RecordsRejected  int
	RecordsFailed    int
	RecentRetrieved  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
