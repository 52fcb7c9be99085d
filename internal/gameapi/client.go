// Package gameapi is the HTTP client for the video game collection resource.
package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inovacc/gameshelf/internal/model"
)

// CollectionPath is the path of the collection resource on every deployment.
const CollectionPath = "/api/VideoGame"

const (
	defaultTimeout  = 30 * time.Second
	maxErrorBodyLen = 512
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: API error (status %d)", e.Method, e.Path, e.StatusCode)
	}

	return fmt.Sprintf("%s %s: API error (status %d): %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to one deployment of the collection API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// ClientOptions configures the client
type ClientOptions struct {
	// HTTPClient overrides the default client (Timeout is then ignored)
	HTTPClient *http.Client

	// Timeout bounds each request; zero means 30s
	Timeout time.Duration

	Logger *slog.Logger
}

// NewClient creates a client for the API at baseURL (scheme and host,
// optionally with a path prefix).
func NewClient(baseURL string, opts ClientOptions) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: missing host", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	logger.Debug("creating collection API client", slog.String("base_url", u.String()))

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(u.String(), "/"),
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns the whole collection in server order.
func (c *Client) List(ctx context.Context) ([]model.GameRecord, error) {
	var records []model.GameRecord
	if err := c.doRequest(ctx, http.MethodGet, CollectionPath, nil, &records); err != nil {
		return nil, err
	}

	if records == nil {
		records = []model.GameRecord{}
	}

	return records, nil
}

// Get returns a single record.
func (c *Client) Get(ctx context.Context, id model.RecordID) (model.GameRecord, error) {
	var rec model.GameRecord
	if err := c.doRequest(ctx, http.MethodGet, recordPath(id), nil, &rec); err != nil {
		return model.GameRecord{}, err
	}

	return rec, nil
}

// Create posts a new record and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, draft model.Draft) (model.GameRecord, error) {
	var rec model.GameRecord
	if err := c.doRequest(ctx, http.MethodPost, CollectionPath, draft, &rec); err != nil {
		return model.GameRecord{}, err
	}

	return rec, nil
}

// Update replaces the fields of record id and returns the stored record.
func (c *Client) Update(ctx context.Context, id model.RecordID, draft model.Draft) (model.GameRecord, error) {
	var rec model.GameRecord
	if err := c.doRequest(ctx, http.MethodPut, recordPath(id), draft, &rec); err != nil {
		return model.GameRecord{}, err
	}

	return rec, nil
}

// Delete removes record id. Any response body is ignored.
func (c *Client) Delete(ctx context.Context, id model.RecordID) error {
	return c.doRequest(ctx, http.MethodDelete, recordPath(id), nil, nil)
}

// Health calls GET /health, which the bundled dev server provides.
func (c *Client) Health(ctx context.Context) error {
	var status map[string]string

	return c.doRequest(ctx, http.MethodGet, "/health", nil, &status)
}

func recordPath(id model.RecordID) string {
	return CollectionPath + "/" + url.PathEscape(id.String())
}

// doRequest performs one JSON request. body and result may be nil.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	c.logger.Debug("making collection API request",
		slog.String("method", method),
		slog.String("path", path),
	)

	var bodyReader io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
