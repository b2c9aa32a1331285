// Package supabase is a thin client for a PostgREST-style tabular data
// API. It only knows how to build queries and move JSON; everything else
// (what to fetch, what to do on failure) lives with the callers.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to one Supabase project with one key. Construct separate
// clients per privilege level: the anonymous key for reads, the
// service-role key for the admin write paths. Never share the
// service-role client with read-only callers.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client for the given project URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-2xx response from the data API, carrying the
// upstream message so write paths can surface it.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: %d %s", e.Status, e.Message)
}

// Query runs a read against the collection and decodes the rows into out
// (a pointer to a slice).
func (c *Client) Query(ctx context.Context, col Collection, p Params, out any) error {
	q, rng, err := col.Build(p)
	if err != nil {
		return err
	}
	_, err = c.get(ctx, col.Name, q, rng, false, out)
	return err
}

// QueryWithCount runs a read like Query but also asks the API for the
// exact total row count (ignoring the pagination window), for total-pages
// calculations in paginated listings.
func (c *Client) QueryWithCount(ctx context.Context, col Collection, p Params, out any) (int, error) {
	q, rng, err := col.Build(p)
	if err != nil {
		return 0, err
	}
	return c.get(ctx, col.Name, q, rng, true, out)
}

// Get runs a raw read against a named table with caller-built query
// values. Used by the migration, which addresses write-path tables that
// have no Collection definition.
func (c *Client) Get(ctx context.Context, table string, q url.Values, out any) error {
	_, err := c.get(ctx, table, q, nil, false, out)
	return err
}

// Insert POSTs rows to the table and decodes the representation the API
// returns into out (pass nil to discard).
func (c *Client) Insert(ctx context.Context, table string, body any, out any) error {
	return c.write(ctx, http.MethodPost, table, nil, body, out)
}

// Update PATCHes rows matching the filter values (e.g. {"id": "eq.42"})
// and decodes the returned representation into out.
func (c *Client) Update(ctx context.Context, table string, filter url.Values, body any, out any) error {
	return c.write(ctx, http.MethodPatch, table, filter, body, out)
}

func (c *Client) get(ctx context.Context, table string, q url.Values, rng *Range, exactCount bool, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.restURL(table, q), nil)
	if err != nil {
		return 0, err
	}
	c.setAuth(req)
	if rng != nil {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", rng.From, rng.To))
	}
	if exactCount {
		req.Header.Set("Prefer", "count=exact")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("supabase: %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apiErrorFrom(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, fmt.Errorf("supabase: decode %s response: %w", table, err)
		}
	}

	count := 0
	if exactCount {
		count, err = parseContentRangeTotal(resp.Header.Get("Content-Range"))
		if err != nil {
			return 0, fmt.Errorf("supabase: %s: %w", table, err)
		}
	}
	return count, nil
}

func (c *Client) write(ctx context.Context, method, table string, filter url.Values, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("supabase: encode %s body: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.restURL(table, filter), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase: decode %s response: %w", table, err)
	}
	return nil
}

func (c *Client) restURL(table string, q url.Values) string {
	u := c.baseURL + "/rest/v1/" + table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Requests carry the key twice: as the apikey header and as the bearer
// token. For anonymous reads both are the same value.
func (c *Client) setAuth(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func apiErrorFrom(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	msg := strings.TrimSpace(string(raw))
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		msg = body.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// parseContentRangeTotal extracts the total from a Content-Range header
// of the form "0-11/57" (or "*/0" for an empty result).
func parseContentRangeTotal(header string) (int, error) {
	_, total, ok := strings.Cut(header, "/")
	if !ok {
		return 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	if total == "*" {
		return 0, nil
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	return n, nil
}
