// Package benchmark drives concurrent load against the API, either in
// process through the router or against a running server.
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// APIBenchmark fires Requests calls with at most Concurrency in flight.
// When Handler is set requests never leave the process.
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Handler     http.Handler
	Client      *http.Client
	// Header, when set, is applied to every request after the defaults
	Header func(i int, h http.Header)
}

// BenchmarkResult aggregates one run
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	P95Time        time.Duration `json:"p95_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// RequestResult is the outcome of a single call
type RequestResult struct {
	Duration   time.Duration
	StatusCode int
	Error      error
}

// NewAPIBenchmark targets a running server at baseURL
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewHandlerBenchmark targets handler in process. Paths are relative to
// basePath, usually "/api".
func NewHandlerBenchmark(handler http.Handler, basePath string, concurrency, requests int, authToken string) *APIBenchmark {
	return &APIBenchmark{
		BaseURL:     basePath,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Handler:     handler,
	}
}

func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.runTest(http.MethodGet, b.BaseURL+path, nil)
}

func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPost, path, payload)
}

func (b *APIBenchmark) RunPATCH(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPatch, path, payload)
}

func (b *APIBenchmark) RunPUT(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPut, path, payload)
}

func (b *APIBenchmark) runJSON(method, path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &BenchmarkResult{
			URL:    url,
			Method: method,
			Errors: []string{fmt.Sprintf("encode payload: %v", err)},
		}
	}
	return b.runTest(method, url, jsonData)
}

// Do sends a single request and returns its status and body
func (b *APIBenchmark) Do(method, path string, payload interface{}) (int, []byte, error) {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return 0, nil, err
		}
	}
	return b.send(0, method, b.BaseURL+path, body)
}

func (b *APIBenchmark) send(i int, method, url string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}
	if b.Header != nil {
		b.Header(i, req.Header)
	}

	if b.Handler != nil {
		req.RemoteAddr = "127.0.0.1:40000"
		w := httptest.NewRecorder()
		b.Handler.ServeHTTP(w, req)
		return w.Code, w.Body.Bytes(), nil
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}

func (b *APIBenchmark) runTest(method, url string, payload []byte) *BenchmarkResult {
	result := &BenchmarkResult{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		StatusCodes:   make(map[int]int),
	}

	pool, err := ants.NewPool(b.Concurrency)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("create worker pool: %v", err))
		result.FailureCount = b.Requests
		return result
	}
	defer pool.Release()

	results := make([]RequestResult, b.Requests)
	var wg sync.WaitGroup
	startTime := time.Now()

	for i := 0; i < b.Requests; i++ {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			start := time.Now()
			status, _, err := b.send(i, method, url, payload)
			results[i] = RequestResult{Duration: time.Since(start), StatusCode: status, Error: err}
		}
		if err := pool.Submit(task); err != nil {
			results[i] = RequestResult{Error: err}
			wg.Done()
		}
	}
	wg.Wait()

	result.TotalTime = time.Since(startTime)
	result.collect(results)
	return result
}

func (r *BenchmarkResult) collect(results []RequestResult) {
	durations := make([]time.Duration, 0, len(results))
	var total time.Duration

	for _, res := range results {
		if res.Error != nil {
			r.FailureCount++
			r.Errors = append(r.Errors, res.Error.Error())
			continue
		}
		durations = append(durations, res.Duration)
		total += res.Duration

		r.StatusCodes[res.StatusCode]++
		if res.StatusCode >= 200 && res.StatusCode < 300 {
			r.SuccessCount++
		} else {
			r.FailureCount++
		}
	}

	if len(durations) > 0 {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
		r.MinTime = durations[0]
		r.MaxTime = durations[len(durations)-1]
		r.P95Time = durations[(len(durations)*95-1)/100]
		r.AverageTime = total / time.Duration(len(durations))
	}
	if r.TotalTime > 0 {
		r.RequestsPerSec = float64(r.TotalRequests) / r.TotalTime.Seconds()
	}
}

// SuccessRate is the share of 2xx answers, in percent
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// Report writes the summary through logf, typically testing.T.Logf
func (r *BenchmarkResult) Report(logf func(format string, args ...interface{})) {
	logf("%s %s: %d requests, concurrency %d", r.Method, r.URL, r.TotalRequests, r.Concurrency)
	logf("  ok=%d failed=%d total=%s rps=%.2f", r.SuccessCount, r.FailureCount, r.TotalTime, r.RequestsPerSec)
	logf("  avg=%s min=%s p95=%s max=%s", r.AverageTime, r.MinTime, r.P95Time, r.MaxTime)

	codes := make([]int, 0, len(r.StatusCodes))
	for c := range r.StatusCodes {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	for _, c := range codes {
		logf("  status %d: %d", c, r.StatusCodes[c])
	}
	for i, e := range r.Errors {
		if i >= 5 {
			logf("  ... %d more errors", len(r.Errors)-5)
			break
		}
		logf("  error: %s", e)
	}
}
