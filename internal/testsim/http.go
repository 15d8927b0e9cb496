package testsim

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
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
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

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// postJSON posts a body and decodes the JSON response into out.
func postJSON(ctx context.Context, client *HTTPClient, url string, body, out interface{}) (int, error) {
	resp, err := client.Post(ctx, url, body)
	if err != nil {
		return 0, err
	}
	data, err := readResponseBody(resp)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// getJSON fetches a URL and decodes the JSON response into out.
func getJSON(ctx context.Context, client *HTTPClient, url string, out interface{}) (int, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return 0, err
	}
	data, err := readResponseBody(resp)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// evaluateRequest is the /evaluate payload shape.
type evaluateRequest struct {
	Factors FactorSet `json:"factors"`
}

// submitEvaluations scores every profile concurrently using a worker pool
// and returns the evaluations in submission order.
func submitEvaluations(ctx context.Context, config *Config, profiles []Profile, stats *Stats) ([]EvalResult, error) {
	log.Printf("📤 Submitting %d evaluations with %d workers...", len(profiles), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/evaluate"

	// Counters for statistics
	var (
		successful int64
		failed     int64
		submitted  int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	type job struct {
		index   int
		profile Profile
	}

	results := make([]EvalResult, len(profiles))
	jobChan := make(chan job, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					var ev Evaluation
					status, err := postJSON(ctx, client, url, evaluateRequest{Factors: j.profile.Factors}, &ev)

					atomic.AddInt64(&submitted, 1)
					if err != nil || status != StatusOK {
						atomic.AddInt64(&failed, 1)
					} else {
						atomic.AddInt64(&successful, 1)
						results[j.index] = EvalResult{Profile: j.profile, Evaluation: ev}
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, failed: %d)",
								total, len(profiles), succ, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, failed: %d)",
								total, len(profiles), succ, fail)
						}
					}
				}
			}
		}()
	}

	// Send profiles to workers
	go func() {
		defer close(jobChan)
		for i, profile := range profiles {
			select {
			case <-ctx.Done():
				return
			case jobChan <- job{index: i, profile: profile}:
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
	stats.EvaluationsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EvaluationsOK = int(atomic.LoadInt64(&successful))
	stats.EvaluationsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Evaluation submission completed:
   Successful: %d
   Failed: %d
`, stats.EvaluationsOK, stats.EvaluationsFailed)

	// Drop failed slots so verification only sees completed evaluations
	ok := make([]EvalResult, 0, len(results))
	for _, r := range results {
		if r.Evaluation.Category != "" {
			ok = append(ok, r)
		}
	}

	return ok, nil
}
