package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cogciprocate/shoutit/app"
	"github.com/cogciprocate/shoutit/infra/logging"
)

type stubBroadcaster struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (s *stubBroadcaster) Broadcast(_ context.Context, text string) (app.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	if s.err != nil {
		return app.Delivery{}, s.err
	}
	return app.Delivery{ID: "n-1", Recipients: 2}, nil
}

func newTestServer(b app.Broadcaster) *Server {
	s := NewServer(b, logging.Discard())
	s.newID = func() string { return "fixed-id" }
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	h := newTestServer(&stubBroadcaster{}).Handler()

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, hint, rec.Body.String())

	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/nope", "").Code)
	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/", "").Code)
}

func TestShout_Broadcasts(t *testing.T) {
	b := &stubBroadcaster{}
	h := newTestServer(b).Handler()

	rec := do(t, h, http.MethodPost, "/shout", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"hello"}, b.texts)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, Response{ID: "fixed-id", Message: "hello", Recipients: 2}, resp)
}

func TestShout_EmptyMessageIsRelayed(t *testing.T) {
	b := &stubBroadcaster{}
	rec := do(t, newTestServer(b).Handler(), http.MethodPost, "/shout", `{"message":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{""}, b.texts)
}

func TestShout_RejectsMalformed(t *testing.T) {
	b := &stubBroadcaster{}
	h := newTestServer(b).Handler()

	for _, body := range []string{"", "nope", `{"message":42}`, `{"text":"x"}`} {
		rec := do(t, h, http.MethodPost, "/shout", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	require.Empty(t, b.texts)
	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/shout", "").Code)
}

func TestShout_RejectsOversizedBody(t *testing.T) {
	b := &stubBroadcaster{}
	body := `{"message":"` + strings.Repeat("x", maxBody) + `"}`
	rec := do(t, newTestServer(b).Handler(), http.MethodPost, "/shout", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, b.texts)
}

func TestShout_BroadcastFailure(t *testing.T) {
	b := &stubBroadcaster{err: errors.New("upstream 500")}
	rec := do(t, newTestServer(b).Handler(), http.MethodPost, "/shout", `{"message":"hello"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotContains(t, rec.Body.String(), "upstream 500")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := newTestServer(&stubBroadcaster{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln, time.Second) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, hint, string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
