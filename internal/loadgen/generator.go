package loadgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okita/worklogd/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Duration generation ranges in minutes.
const (
	shortTaskMin    = 5.0
	shortTaskRange  = 25.0
	mediumTaskMin   = 30.0
	mediumTaskRange = 60.0
	longTaskMin     = 90.0
	longTaskRange   = 150.0
)

// Task length distribution cases.
const (
	caseShortTask  = 0
	caseMediumTask = 1
	caseLongTask   = 2
	taskCaseCount  = 3
)

// categories maps each category to its plausible sub-categories.
var categories = map[string][]string{
	"Work":     {"Coding", "Review", "Planning"},
	"Meeting":  {"Standup", "1on1", "Customer"},
	"Training": {"Reading", "Course", "Workshop"},
	"Support":  {"Ticket", "Oncall", "Escalation"},
	"Admin":    {"Email", "Expense", "Misc"},
}

var sources = []string{"webhook-client", "cli", "mobile"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// generateRecords creates the specified number of records with unique event IDs.
func generateRecords(ctx context.Context, config *Config, stats *Stats) ([]Record, error) {
	logger.Get().Info(ctx, "generating records with unique event IDs", logger.Int("numRecords", config.NumRecords))

	records := make([]Record, config.NumRecords)

	categoryNames := make([]string, 0, len(categories))
	for name := range categories {
		categoryNames = append(categoryNames, name)
	}

	workerCount := minInt(config.Workers, config.NumRecords)
	if workerCount < 1 {
		workerCount = 1
	}
	recordsPerWorker := config.NumRecords / workerCount

	var wg sync.WaitGroup
	for worker := 0; worker < workerCount; worker++ {
		start := worker * recordsPerWorker
		end := start + recordsPerWorker
		if worker == workerCount-1 {
			end = config.NumRecords
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				default:
					records[i] = generateRecord(categoryNames, i)
				}
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("record generation cancelled: %w", err)
	}

	stats.RecordsGenerated = len(records)
	logger.Get().Info(ctx, "record generation completed", logger.Int("count", len(records)))
	return records, nil
}

// generateRecord produces a single plausible time-tracking record.
func generateRecord(categoryNames []string, index int) Record {
	category := categoryNames[getRandomInt(len(categoryNames))]
	subs := categories[category]
	sub := subs[getRandomInt(len(subs))]

	var duration float64
	switch getRandomInt(taskCaseCount) {
	case caseShortTask:
		duration = shortTaskMin + getRandomFloat()*shortTaskRange
	case caseMediumTask:
		duration = mediumTaskMin + getRandomFloat()*mediumTaskRange
	case caseLongTask:
		duration = longTaskMin + getRandomFloat()*longTaskRange
	}

	// Spread timestamps backwards so records look like a real work history.
	ts := time.Now().Add(-time.Duration(index) * time.Minute).Format("2006-01-02 15:04:05")

	return Record{
		Date:        ts,
		Category:    category,
		SubCategory: sub,
		Duration:    float64(int(duration*100)) / 100,
		Memo:        fmt.Sprintf("%s / %s session %d", category, sub, index),
		Source:      sources[getRandomInt(len(sources))],
		EventID:     uuid.New().String(),
	}
}

// minInt returns the smaller of two ints.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
