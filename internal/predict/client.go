// Package predict talks to the attrition model service over HTTP and maps
// request failures onto a small user-facing taxonomy.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a prediction exchange; a request still outstanding
// after this is reported as a no-response failure.
const DefaultTimeout = 10 * time.Second

// Config drives model service client behaviour. BaseURL is fixed at process
// start; there is no runtime reconfiguration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client performs prediction requests against the model service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ErrMissingBaseURL is returned when the client has no endpoint to call.
var ErrMissingBaseURL = errors.New("predict client missing base url")

// NewClient constructs a model service client if configuration is valid.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}, nil
}

// BaseURL reports the configured endpoint (used in failure messages).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict submits the request payload and decodes the prediction result.
// Failures are returned as *AttemptError; a failed attempt never yields a
// partial Result.
func (c *Client) Predict(ctx context.Context, payload map[string]any) (*Result, error) {
	if c == nil {
		return nil, errors.New("predict client is nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal prediction request: %w", err)
	}

	endpoint := c.baseURL + "/api/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err, c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, serverError(resp.StatusCode, readServerMessage(resp.Body), c.baseURL)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &AttemptError{
			Kind:     KindUnknown,
			Message:  fmt.Sprintf("decode prediction response: %v", err),
			Endpoint: c.baseURL,
		}
	}
	return &result, nil
}

// Health probes the model service liveness endpoint.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	if err := c.getJSON(ctx, "/api/health", &status); err != nil {
		return HealthStatus{}, err
	}
	return status, nil
}

// Features fetches the model service's own feature metadata.
func (c *Client) Features(ctx context.Context) (FeaturesResponse, error) {
	var features FeaturesResponse
	if err := c.getJSON(ctx, "/api/features", &features); err != nil {
		return FeaturesResponse{}, err
	}
	return features, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c == nil {
		return errors.New("predict client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(err, c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp.StatusCode, readServerMessage(resp.Body), c.baseURL)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// readServerMessage extracts the server-provided error text, if any. Bodies
// are capped so a misbehaving upstream cannot balloon memory.
func readServerMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Error
}
