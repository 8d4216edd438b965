package onesignal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cogciprocate/shoutit/domain"
	"github.com/cogciprocate/shoutit/infra/auth"
	"github.com/cogciprocate/shoutit/infra/logging"
)

func newTestClient(t *testing.T, key auth.KeyProvider, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/v1/notifications", "app-1", key, logging.Discard())
}

func TestBroadcast_RequestShape(t *testing.T) {
	var got map[string]any
	var gotAuth, gotType, gotPath string
	c := newTestClient(t, auth.StaticKey("secret"), func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &got))
		_, _ = io.WriteString(w, `{"id":"n-1","recipients":3}`)
	})

	d, err := c.Broadcast(context.Background(), `he said "hi"`)
	require.NoError(t, err)
	require.Equal(t, "n-1", d.ID)
	require.Equal(t, 3, d.Recipients)

	require.Equal(t, "Basic secret", gotAuth)
	require.Equal(t, "application/json; charset=utf-8", gotType)
	require.Equal(t, "/api/v1/notifications", gotPath)
	require.Equal(t, "app-1", got["app_id"])
	require.Equal(t, map[string]any{"en": `he said "hi"`}, got["contents"])
	require.Equal(t, []any{"All"}, got["included_segments"])
}

func TestBroadcast_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, auth.StaticKey("secret"), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"errors":["bad app id"]}`)
	})

	_, err := c.Broadcast(context.Background(), "hello")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusBadRequest, se.StatusCode)
	require.Contains(t, se.Body, "bad app id")
}

func TestBroadcast_ErrorsInOKResponse(t *testing.T) {
	c := newTestClient(t, auth.StaticKey("secret"), func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"","errors":["All included players are not subscribed"]}`)
	})

	_, err := c.Broadcast(context.Background(), "hello")
	var se *StatusError
	require.True(t, errors.As(err, &se))
}

func TestBroadcast_KeyErrorSkipsRequest(t *testing.T) {
	called := false
	c := newTestClient(t, auth.StaticKey(""), func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Broadcast(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrEmptyKey)
	require.False(t, called)
}
