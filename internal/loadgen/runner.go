package loadgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okita/worklogd/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete load run against a worklogd instance.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting worklogd load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("records", config.NumRecords),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("recentN", config.RecentN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate records
	records, err := generateRecords(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("record generation failed: %w", err)
	}

	// Step 3: Submit records concurrently
	if err := submitRecords(ctx, config, records, stats); err != nil {
		return fmt.Errorf("record submission failed: %w", err)
	}

	// Step 4: Give the service a moment to settle
	logger.Get().Info(ctx, "waiting for rows to settle")
	time.Sleep(SettleDelay)

	// Step 5: Retrieve recent rows
	recent, err := retrieveRecent(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("recent rows retrieval failed: %w", err)
	}

	// Step 6: Get service stats
	serviceStats, err := retrieveStats(ctx, config)
	if err != nil {
		logger.Get().Warn(ctx, "failed to retrieve service stats", logger.Error(err))
	}

	// Step 7: Verify results
	if err := verifyResults(config, records, recent, serviceStats, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save records to file
	if err := saveRecordsToFile(ctx, config, records); err != nil {
		logger.Get().Warn(ctx, "failed to save records to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "load run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveRecordsToFile saves the generated records to a JSON file.
func saveRecordsToFile(ctx context.Context, config *Config, records []Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_records_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write records to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, rec := range records {
		jsonData, err := marshalJSON(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}

		// Add comma except for last record
		if i < len(records)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "records saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final load run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, recordsPerSecond float64

	if stats.RecordsSubmitted > 0 {
		successRate = float64(stats.RecordsAccepted) / float64(stats.RecordsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		recordsPerSecond = float64(stats.RecordsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("recordsGenerated", stats.RecordsGenerated),
		logger.Int("recordsSubmitted", stats.RecordsSubmitted),
		logger.Int("recordsAccepted", stats.RecordsAccepted),
		logger.Int("recordsRejected", stats.RecordsRejected),
		logger.Int("recordsFailed", stats.RecordsFailed),
		logger.Int("recentRetrieved", stats.RecentRetrieved),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("recordsPerSecond", recordsPerSecond))
}
