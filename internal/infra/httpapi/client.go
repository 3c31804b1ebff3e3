// Package httpapi talks to the timeline REST API.
//
// Endpoints:
//
//	GET /api/gantt            task rows
//	GET /api/projects         project rows
//	PUT /api/gantt/{id}       {"startDate": ..., "endDate": ...}
//	PUT /api/projects/{id}    {"startDate": ..., "endDate": ...}
package httpapi

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

	"github.com/runoshun/gantt/internal/domain"
)

// maxErrorBody caps how much of a failed response is kept as the error message.
const maxErrorBody = 4096

// UpdateRequest is the body of a PUT request.
type UpdateRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Client implements domain.DataSource over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for baseURL. A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP creates a client using a preconfigured http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// CollectionPath returns the endpoint path for mode.
func CollectionPath(mode domain.Mode) string {
	if mode == domain.ModeProjects {
		return "/api/projects"
	}
	return "/api/gantt"
}

// List fetches the raw rows of mode.
func (c *Client) List(ctx context.Context, mode domain.Mode) ([]domain.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+CollectionPath(mode), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var rows []domain.RawRecord
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rows == nil {
		rows = []domain.RawRecord{}
	}
	return rows, nil
}

// Update sends the new date pair for the record id.
// A non-2xx response yields a *domain.UpdateFailure carrying the response body.
func (c *Client) Update(ctx context.Context, id string, mode domain.Mode, startDate, endDate string) error {
	body, err := json.Marshal(UpdateRequest{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	endpoint := c.baseURL + CollectionPath(mode) + "/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.UpdateFailure{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.UpdateFailure{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(text)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var _ domain.DataSource = (*Client)(nil)
