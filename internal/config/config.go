// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Storage backend names accepted in Config.Storage.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageCSV    = "csv"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// Storage selects the table backend: memory, sqlite, or csv.
	Storage string `koanf:"storage"`

	// SQLiteDSN is the sqlite data source when Storage is "sqlite".
	SQLiteDSN string `koanf:"sqlite_dsn"`

	// CSVPath is the flat-file path when Storage is "csv".
	CSVPath string `koanf:"csv_path"`

	// MaxRecentLimit caps GET /records?limit.
	MaxRecentLimit int `koanf:"max_recent_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8090",
		Storage:        StorageSQLite,
		SQLiteDSN:      "worklog.db",
		CSVPath:        "worklog.csv",
		MaxRecentLimit: 200,
	}
}
