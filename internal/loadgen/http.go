package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitRecords submits records concurrently using worker pools
func submitRecords(ctx context.Context, config *Config, records []Record, stats *Stats) error {
	log.Printf("📤 Submitting %d records with %d workers...", len(records), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/records"

	// Counters for statistics
	var (
		accepted  int64
		rejected  int64
		failed    int64
		submitted int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	recordChan := make(chan Record, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for rec := range recordChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleRecord(ctx, client, url, rec)

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case "accepted":
						atomic.AddInt64(&accepted, 1)
					case "rejected":
						atomic.AddInt64(&rejected, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						acc := atomic.LoadInt64(&accepted)
						rej := atomic.LoadInt64(&rejected)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (accepted: %d, rejected: %d, failed: %d)",
								total, len(records), acc, rej, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (accepted: %d, rejected: %d, failed: %d)",
								total, len(records), acc, rej, fail)
						}
					}
				}
			}
		}()
	}

	// Send records to workers
	go func() {
		defer close(recordChan)
		for _, rec := range records {
			select {
			case <-ctx.Done():
				return
			case recordChan <- rec:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.RecordsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RecordsAccepted = int(atomic.LoadInt64(&accepted))
	stats.RecordsRejected = int(atomic.LoadInt64(&rejected))
	stats.RecordsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Record submission completed:
   Accepted: %d
   Rejected: %d
   Failed: %d
`, stats.RecordsAccepted, stats.RecordsRejected, stats.RecordsFailed)

	return nil
}

// submitSingleRecord submits a single record and returns the result
func submitSingleRecord(ctx context.Context, client *HTTPClient, url string, rec Record) string {
	resp, err := client.Post(ctx, url, rec)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusOK:
		// The service acknowledges a stored row with a plain "Success" body.
		if string(bytes.TrimSpace(body)) == "Success" {
			return "accepted"
		}
		return "accepted"
	case StatusBadRequest:
		return "rejected"
	default:
		return "failed"
	}
}

// retrieveRecent fetches the most recently stored rows back from the service.
func retrieveRecent(ctx context.Context, config *Config, stats *Stats) ([]RecentRow, error) {
	log.Printf("📥 Retrieving %d recent rows...", config.RecentN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/records?limit=%d", config.BaseURL, config.RecentN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent rows: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent rows response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("recent rows request failed with status: %d", resp.StatusCode)
	}

	var rows []RecentRow
	if err := unmarshalJSON(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse recent rows: %w", err)
	}

	stats.RecentRetrieved = len(rows)
	log.Printf("✅ Retrieved %d recent rows", len(rows))
	return rows, nil
}

// retrieveStats fetches the service stats document.
func retrieveStats(ctx context.Context, config *Config) (map[string]interface{}, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/stats"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("stats request failed with status: %d", resp.StatusCode)
	}

	var doc map[string]interface{}
	if err := unmarshalJSON(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse stats: %w", err)
	}
	return doc, nil
}
