package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blogem/clocklog/models"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 64 << 10

// ResponseError is returned for a non-2xx response. Message holds the
// server's structured error text and is empty when the body had none.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// APIClient talks to the clock log backend over HTTP
type APIClient struct {
	baseURL *url.URL
	http    *http.Client
}

// NewAPIClient creates a client for the backend at baseURL. A zero timeout
// leaves the transport default in place.
func NewAPIClient(baseURL string, timeout time.Duration) (*APIClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}

	return &APIClient{
		baseURL: u,
		http: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   timeout,
		},
	}, nil
}

// FetchTime returns the backend's current time as HH:MM:SS
func (c *APIClient) FetchTime(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath("api", "time").String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build time request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get time: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read time response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", responseError(resp.StatusCode, body)
	}

	text := strings.TrimSpace(string(body))
	if !models.IsClockText(text) {
		return "", fmt.Errorf("unexpected time format %q", text)
	}
	return text, nil
}

// PostLog submits a form record
func (c *APIClient) PostLog(ctx context.Context, form models.FormRecord) error {
	payload, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath("api", "log").String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post log: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read log response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, body)
	}
	return nil
}

// Close releases idle keep-alive connections
func (c *APIClient) Close() {
	c.http.CloseIdleConnections()
}

func responseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{StatusCode: statusCode}

	var structured models.ErrorResponse
	if err := json.Unmarshal(body, &structured); err == nil {
		respErr.Message = structured.Error
	}
	return respErr
}
