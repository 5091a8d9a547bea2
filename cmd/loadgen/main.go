package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okita/worklogd/internal/loadgen"
)

// Default configuration constants.
const (
	defaultNumRecords = 1000
	defaultRecentN    = 50
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8090", "Base URL of the service")
		numRecords = flag.Int("records", defaultNumRecords, "Number of records to generate and submit")
		recentN    = flag.Int("recent", defaultRecentN, "Number of recent rows to fetch back for verification")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated records (default: generated_records_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: loadgen_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	// Setup logging
	if err := loadgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &loadgen.Config{
		BaseURL:    *baseURL,
		NumRecords: *numRecords,
		RecentN:    *recentN,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the load generator
	if err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load run failed: " + err.Error() + "\n")
		return
	}
}
