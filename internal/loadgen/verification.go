package loadgen

import (
	"fmt"
	"log"
)

// verifyResults checks the retrieved rows against what was submitted.
func verifyResults(config *Config, submitted []Record, recent []RecentRow, serviceStats map[string]interface{}, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(recent) == 0 {
		return fmt.Errorf("no recent rows to verify")
	}

	// Index submitted records by event ID for round-trip checks.
	byEventID := make(map[string]Record, len(submitted))
	for _, rec := range submitted {
		byEventID[rec.EventID] = rec
	}

	matched := 0
	for _, row := range recent {
		rec, ok := byEventID[row.EventID]
		if !ok {
			continue
		}
		matched++
		if rec.Category != row.Category || rec.SubCategory != row.SubCategory {
			log.Printf("⚠️  Row %s came back with different category fields", row.EventID)
		}
	}

	if matched == 0 {
		log.Println("⚠️  None of the retrieved rows matched submitted event IDs (service may hold older data)")
	} else {
		log.Printf("✅ %d/%d retrieved rows matched submitted records", matched, len(recent))
	}

	if serviceStats != nil {
		if count, ok := serviceStats["tableRowCount"]; ok {
			log.Printf("📈 Service reports %v stored rows", count)
		}
		if totals, ok := serviceStats["categoryTotals"]; ok && config.Verbose {
			log.Printf("📈 Category totals: %v", totals)
		}
	}

	// Display a sample of what came back
	displayRecentRows(recent, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// displayRecentRows prints the retrieved rows, newest first.
func displayRecentRows(recent []RecentRow, verbose bool) {
	limit := len(recent)
	if !verbose && limit > 10 {
		limit = 10
	}

	log.Printf("🗒️  Most recent %d rows:", limit)
	for i := 0; i < limit; i++ {
		row := recent[i]
		log.Printf("   %2d. %s  %-10s %-12s %7.1f min  %s",
			i+1, row.Date, row.Category, row.SubCategory, row.Duration, row.Memo)
	}
}
