package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const correlationHeader = "eazybank-correlation-id"

// TestContext holds state between test steps.
type TestContext struct {
	BaseURL          string
	HTTPClient       *http.Client
	CorrelationID    string
	LastResponse     *http.Response
	LastResponseBody []byte
}

func NewTestContext() *TestContext {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &TestContext{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 40 * time.Second},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.CorrelationID = ""
	tc.LastResponse = nil
	tc.LastResponseBody = nil
}

// GET makes a GET request, forwarding the scenario correlation id when set.
func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if tc.CorrelationID != "" {
		req.Header.Set(correlationHeader, tc.CorrelationID)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// ResponseField walks a dotted path such as "cards.cardType" through the JSON body.
func (tc *TestContext) ResponseField(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		obj, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", path, part)
		}
		data, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response", path)
		}
	}
	return data, nil
}
