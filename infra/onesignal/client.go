// Package onesignal pushes shouts to every subscribed device through the
// OneSignal notifications API.
package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/cogciprocate/shoutit/app"
	"github.com/cogciprocate/shoutit/infra/auth"
)

// allSegment targets every subscriber.
const allSegment = "All"

type notification struct {
	AppID            string            `json:"app_id"`
	Contents         map[string]string `json:"contents"`
	IncludedSegments []string          `json:"included_segments"`
}

// StatusError captures non-2xx answers from OneSignal.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("onesignal: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client implements app.Broadcaster.
type Client struct {
	url    string
	appID  string
	keys   auth.KeyProvider
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a OneSignal broadcaster for appID.
func NewClient(url, appID string, keys auth.KeyProvider, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		appID:  appID,
		keys:   keys,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Broadcast sends text as an English notification to the "All" segment.
func (c *Client) Broadcast(ctx context.Context, text string) (app.Delivery, error) {
	key, err := c.keys.APIKey()
	if err != nil {
		return app.Delivery{}, fmt.Errorf("auth: %w", err)
	}

	body, err := json.Marshal(notification{
		AppID:            c.appID,
		Contents:         map[string]string{"en": text},
		IncludedSegments: []string{allSegment},
	})
	if err != nil {
		return app.Delivery{}, fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return app.Delivery{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Basic "+key)

	resp, err := c.http.Do(req)
	if err != nil {
		return app.Delivery{}, fmt.Errorf("request to onesignal: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return app.Delivery{}, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("onesignal response", "status", resp.StatusCode, "body", string(data))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return app.Delivery{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	parsed := gjson.ParseBytes(data)
	// OneSignal reports rejected payloads with a 200 and an "errors" array.
	if errs := parsed.Get("errors"); errs.Exists() && errs.IsArray() && len(errs.Array()) > 0 && parsed.Get("id").String() == "" {
		return app.Delivery{}, &StatusError{StatusCode: resp.StatusCode, Body: errs.Raw}
	}

	return app.Delivery{
		ID:         parsed.Get("id").String(),
		Recipients: int(parsed.Get("recipients").Int()),
	}, nil
}
