package shout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response ends up in an error message.
const maxErrorBody = 512

// Client is a thin HTTP wrapper around the shout endpoint.
// It posts JSON bodies and returns the raw response.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a shout endpoint client. A zero timeout means no limit.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for any non-2xx answer from the endpoint.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("POST %s returned %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("POST %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// PostJSON sends body as application/json and returns the status and payload.
func (c *Client) PostJSON(ctx context.Context, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request to %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return resp.StatusCode, nil, &StatusError{StatusCode: resp.StatusCode, Endpoint: c.endpoint, Body: msg}
	}

	return resp.StatusCode, data, nil
}
