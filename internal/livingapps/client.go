// Package livingapps is the access layer for the hosted LivingApps record
// store. Five remote collections ("apps") hold all data; this client maps
// them onto plain CRUD over HTTP. Deliberately absent: retries, backoff,
// caching, pagination, request de-duplication. Every call is a fresh
// round trip, and callers re-read full lists after each mutation.
package livingapps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mnogodumalon/kurs40/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// Record is a single entity instance in a remote collection. The server
// assigns record IDs; this client never generates one. Field values are
// kept loosely typed because the store has no field-level type contract.
type Record struct {
	RecordID string                 `json:"record_id"`
	Fields   map[string]interface{} `json:"fields"`
}

// Fields is the wire shape of create/update bodies.
type Fields map[string]interface{}

// Client performs CRUD operations against the LivingApps REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListRecords fetches the full collection for the given app. No
// pagination, filtering or sorting parameters exist on this endpoint.
func (c *Client) ListRecords(ctx context.Context, appID string) ([]Record, error) {
	url := fmt.Sprintf("%s/apps/%s/records", c.baseURL, appID)

	var records []Record
	if err := c.do(ctx, http.MethodGet, url, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateRecord submits a new record and returns the server-assigned
// record including its new identifier.
func (c *Client) CreateRecord(ctx context.Context, appID string, fields Fields) (*Record, error) {
	url := fmt.Sprintf("%s/apps/%s/records", c.baseURL, appID)

	var record Record
	if err := c.do(ctx, http.MethodPost, url, recordBody{Fields: fields}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecord submits a partial field update for an existing record.
// Fields omitted from the set are left unchanged server-side.
func (c *Client) UpdateRecord(ctx context.Context, appID, recordID string, fields Fields) (*Record, error) {
	url := fmt.Sprintf("%s/apps/%s/records/%s", c.baseURL, appID, recordID)

	var record Record
	if err := c.do(ctx, http.MethodPatch, url, recordBody{Fields: fields}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord removes a record. Deleting an already-deleted identifier
// surfaces whatever the remote signals, typically a 404 APIError.
func (c *Client) DeleteRecord(ctx context.Context, appID, recordID string) error {
	url := fmt.Sprintf("%s/apps/%s/records/%s", c.baseURL, appID, recordID)
	return c.do(ctx, http.MethodDelete, url, nil, nil)
}

// recordBody is the JSON envelope for create and update requests.
type recordBody struct {
	Fields Fields `json:"fields"`
}

// do issues one request. Network failures map to ErrTransport, non-2xx
// statuses to APIError; a 2xx response is decoded into out when out is
// non-nil (delete responses carry no body worth parsing).
func (c *Client) do(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("url", url).Msg("Record store request failed")
		return apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the error body has no
		// contract and is not parsed.
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn().Int("status", resp.StatusCode).Str("method", method).Str("url", url).Msg("Record store returned non-success status")
		return apperrors.NewAPIError(resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
