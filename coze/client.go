// Package coze invokes remote Coze workflows. A workflow run returns an
// opaque JSON-encoded string payload; callers decode it into their own
// shape and treat a missing shape as zero results, not a hard error.
package coze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the workflow API endpoint used when none is
// configured.
const DefaultBaseURL = "https://api.coze.cn"

// Client calls the workflow API with a bearer token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// New creates a workflow client. baseURL may be empty.
func New(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		// Workflows do real work upstream; allow more than an API
		// round-trip.
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type runRequest struct {
	WorkflowID string         `json:"workflow_id"`
	Parameters map[string]any `json:"parameters"`
}

type runResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data string `json:"data"`
}

// RunWorkflow executes the workflow with the given parameter mapping and
// returns the raw data payload: a JSON-encoded string, possibly empty.
func (c *Client) RunWorkflow(ctx context.Context, workflowID string, params map[string]any) (string, error) {
	body, err := json.Marshal(runRequest{WorkflowID: workflowID, Parameters: params})
	if err != nil {
		return "", fmt.Errorf("coze: encode run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/workflow/run", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("coze: run workflow %s: %w", workflowID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("coze: read workflow %s response: %w", workflowID, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("coze: workflow %s returned %d: %s", workflowID, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out runResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("coze: decode workflow %s envelope: %w", workflowID, err)
	}
	if out.Code != 0 {
		return "", fmt.Errorf("coze: workflow %s failed: %s", workflowID, out.Msg)
	}
	return out.Data, nil
}

// DecodePayload decodes the JSON-encoded string a workflow run returned.
// Empty data leaves out untouched and reports false; a malformed payload
// is an error; callers decide whether that degrades to zero results.
func DecodePayload(data string, out any) (bool, error) {
	if strings.TrimSpace(data) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("coze: invalid JSON payload: %w", err)
	}
	return true, nil
}
