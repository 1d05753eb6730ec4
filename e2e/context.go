// Package e2e drives a running standsdir server through Gherkin scenarios.
//
// Start the server with the fixture seed before running the suite:
//
//	BUILDERS_FILE=e2e/testdata/builders.json ADMIN_TOKEN=e2e-admin go run ./cmd/server
//	cd e2e && E2E_BASE_URL=http://localhost:8080 E2E_ADMIN_TOKEN=e2e-admin go test -tags e2e ./...
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// TestContext holds the HTTP client and the last response of a scenario.
type TestContext struct {
	BaseURL    string
	AdminToken string
	HTTPClient *http.Client

	lastStatus  int
	lastBody    []byte
	lastHeaders http.Header
	clientIP    string
	vars        map[string]string
}

// NewTestContext reads E2E_BASE_URL and E2E_ADMIN_TOKEN.
func NewTestContext() *TestContext {
	base := os.Getenv("E2E_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &TestContext{
		BaseURL:    strings.TrimRight(base, "/"),
		AdminToken: os.Getenv("E2E_ADMIN_TOKEN"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		vars:       make(map[string]string),
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastHeaders = nil
	tc.clientIP = fmt.Sprintf("198.51.100.%d", time.Now().UnixNano()%250+1)
	tc.vars = make(map[string]string)
}

// SetClientIP pins the X-Forwarded-For address used by later requests.
func (tc *TestContext) SetClientIP(ip string) {
	tc.clientIP = ip
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, path, body, nil)
}

// AdminGET and AdminPOST send the operator token.
func (tc *TestContext) AdminGET(path string) error {
	return tc.do(http.MethodGet, path, nil, map[string]string{"X-Admin-Token": tc.AdminToken})
}

func (tc *TestContext) AdminPOST(path string, body any) error {
	return tc.do(http.MethodPost, path, body, map[string]string{"X-Admin-Token": tc.AdminToken})
}

func (tc *TestContext) do(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.clientIP != "" {
		req.Header.Set("X-Forwarded-For", tc.clientIP)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastHeaders = resp.Header
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	return tc.lastHeaders.Get(name)
}

// GetResponseField reads a dot-separated path from the last JSON body.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	cur := doc
	for _, part := range strings.Split(field, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		cur, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found", field)
		}
	}
	return cur, nil
}

// Remember stores a value for later steps, e.g. a created lead ID.
func (tc *TestContext) Remember(key, value string) {
	tc.vars[key] = value
}

func (tc *TestContext) Recall(key string) string {
	return tc.vars[key]
}
