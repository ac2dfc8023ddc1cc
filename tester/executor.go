package tester

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Method is the closed set of HTTP methods the executor will issue.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// ParseMethod maps a case-supplied method string onto the closed enum.
// Unknown values are a data error for the caller to record, not a dispatch
// failure.
func ParseMethod(s string) (Method, bool) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodGet:
		return MethodGet, true
	case MethodPost:
		return MethodPost, true
	case MethodPut:
		return MethodPut, true
	case MethodPatch:
		return MethodPatch, true
	case MethodDelete:
		return MethodDelete, true
	}
	return "", false
}

func (m Method) hasBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

// Response is a fully drained HTTP exchange result. Any received status code,
// 4xx and 5xx included, is a transport-level success; a 404 is a valid,
// inspectable response.
type Response struct {
	Status  int
	Body    []byte
	Elapsed time.Duration
}

const requestTimeout = 10 * time.Second

// Executor issues single HTTP calls with a fixed timeout. It keeps no state
// across invocations beyond the shared client and the default headers set at
// construction.
type Executor struct {
	client  *http.Client
	headers map[string]string
}

func NewExecutor(defaultHeaders map[string]string) *Executor {
	h := make(map[string]string, len(defaultHeaders))
	for k, v := range defaultHeaders {
		h[k] = v
	}
	return &Executor{
		client:  &http.Client{Timeout: requestTimeout},
		headers: h,
	}
}

// Execute issues one request. A returned error is a transport failure
// (connection refused, DNS, timeout); an HTTP error status is not an error.
func (e *Executor) Execute(method Method, url string, data map[string]any, headers map[string]string) (*Response, error) {
	var body io.Reader
	if method.hasBody() && data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(string(method), url, body)
	if err != nil {
		return nil, fmt.Errorf("NewRequest: %w", err)
	}
	for k, v := range e.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if method.hasBody() && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	log.Printf("tester.execute: sending method=%s url=%s", method, url)
	resp, err := e.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("Do: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	log.Printf("tester.execute: received method=%s url=%s status=%d latency_ms=%d", method, url, resp.StatusCode, elapsed.Milliseconds())
	return &Response{Status: resp.StatusCode, Body: raw, Elapsed: elapsed}, nil
}

// JoinURL appends an endpoint suffix to the base, trimming one trailing slash
// from the base so "/items/" + "/7" still yields "/items/7".
func JoinURL(base, endpoint string) string {
	return strings.TrimSuffix(base, "/") + endpoint
}
