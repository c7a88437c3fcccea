// Package gateway is the client-side HTTP boundary of the records API.
// It translates typed calls into requests against the REST surface and
// decodes responses back into domain values. The gateway performs exactly
// one attempt per call; retry policy belongs to the caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

const (
	recordsPath = "/api/tests"

	defaultTimeout = 15 * time.Second
)

// TransportError reports a failed round trip: either the request never
// reached the server (Status is zero) or the server answered with a
// non-2xx status.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client calls the records REST API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New creates a Client for the API at baseURL. A nil httpClient gets a
// default one with a request timeout.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		log:     logger.With("component", "gateway"),
	}
}

// FetchAll loads the full record collection.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Record, error) {
	var recs []domain.Record
	if err := c.do(ctx, "fetch all", http.MethodGet, c.baseURL+recordsPath, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Create persists a new record and returns the server-assigned row.
func (c *Client) Create(ctx context.Context, draft domain.RecordDraft) (*domain.Record, error) {
	body := map[string]any{
		"name":  draft.Name,
		"phone": draft.Phone,
		"age":   draft.Age,
	}

	var rec domain.Record
	if err := c.do(ctx, "create", http.MethodPost, c.baseURL+recordsPath, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update applies a partial patch to the record with the given id and
// returns the updated row. Only fields present in the patch go on the
// wire; a field explicitly set to null clears the column.
func (c *Client) Update(ctx context.Context, id domain.ID, patch domain.RecordPatch) (*domain.Record, error) {
	body := map[string]any{"id": id.String()}
	if patch.Name.Set {
		body["name"] = patch.Name.Ptr()
	}
	if patch.Phone.Set {
		body["phone"] = patch.Phone.Ptr()
	}
	if patch.Age.Set {
		body["age"] = patch.Age.Ptr()
	}

	var rec domain.Record
	if err := c.do(ctx, "update", http.MethodPut, c.baseURL+recordsPath, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id domain.ID) error {
	u := c.baseURL + recordsPath + "?id=" + url.QueryEscape(id.String())

	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, "delete", http.MethodDelete, u, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &TransportError{Op: "delete", Err: fmt.Errorf("server reported failure")}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, u string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("unexpected status",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)
		return &TransportError{Op: op, Status: resp.StatusCode, Err: decodeAPIError(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// decodeAPIError extracts the {"error": "..."} payload the server sends
// on failures, falling back to a generic error when the body is opaque.
func decodeAPIError(r io.Reader) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	return fmt.Errorf("request rejected")
}
