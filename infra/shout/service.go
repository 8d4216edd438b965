package shout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/cogciprocate/shoutit/domain"
)

// envelope is the wire shape of a shout: exactly one "message" key.
type envelope struct {
	Message string `json:"message"`
}

// service implements app.ShoutService on top of Client.
type service struct {
	client *Client
	now    func() time.Time
}

// NewService creates a ShoutService posting through client.
func NewService(client *Client) *service {
	return &service{client: client, now: time.Now}
}

// Shout posts {"message": text}. Empty text is sent as-is.
func (s *service) Shout(ctx context.Context, text string) (domain.Receipt, error) {
	body, err := EncodeEnvelope(text)
	if err != nil {
		return domain.Receipt{}, err
	}

	status, data, err := s.client.PostJSON(ctx, body)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("shouting: %w", err)
	}

	return domain.Receipt{
		StatusCode: status,
		Raw:        responseString(data),
		ReceivedAt: s.now(),
	}, nil
}

// EncodeEnvelope renders the request body for text.
func EncodeEnvelope(text string) ([]byte, error) {
	body, err := json.Marshal(envelope{Message: text})
	if err != nil {
		return nil, fmt.Errorf("encoding shout: %w", err)
	}
	return body, nil
}

// DecodeEnvelope parses a request body produced by EncodeEnvelope. The
// "message" key must be present and hold a string.
func DecodeEnvelope(data []byte) (domain.Shout, error) {
	if !gjson.ValidBytes(data) {
		return domain.Shout{}, domain.ErrMalformedShout
	}
	msg := gjson.GetBytes(data, "message")
	if msg.Type != gjson.String {
		return domain.Shout{}, domain.ErrMalformedShout
	}
	return domain.Shout{Text: msg.String()}, nil
}

// responseString is the display form of a response body: compact JSON when
// the body parses, trimmed text otherwise, "" for an empty body.
func responseString(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return ""
	}
	if gjson.Valid(trimmed) {
		return gjson.Get(trimmed, "@ugly").Raw
	}
	return trimmed
}
