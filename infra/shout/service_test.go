package shout

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cogciprocate/shoutit/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func newTestService(t *testing.T, h http.HandlerFunc) *service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(NewClient(srv.URL+"/shout", 5*time.Second))
}

func TestShout_RequestShape(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "hello", text: "hello", want: `{"message":"hello"}`},
		{name: "empty", text: "", want: `{"message":""}`},
		{name: "quotes", text: `say "hi"`, want: `{"message":"say \"hi\""}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotBody, gotType, gotPath, gotMethod, gotAuth string
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				data, _ := io.ReadAll(r.Body)
				gotBody = string(data)
				gotType = r.Header.Get("Content-Type")
				gotPath = r.URL.Path
				gotMethod = r.Method
				gotAuth = r.Header.Get("Authorization")
			})

			_, err := svc.Shout(context.Background(), tc.text)
			require.NoError(t, err)
			require.Equal(t, tc.want, gotBody)
			require.Equal(t, "application/json", gotType)
			require.Equal(t, "/shout", gotPath)
			require.Equal(t, http.MethodPost, gotMethod)
			require.Empty(t, gotAuth)
		})
	}
}

func TestShout_ReceiptStringForm(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty body", body: "", want: ""},
		{name: "whitespace body", body: " \n", want: ""},
		{name: "json compacted", body: "{\n  \"id\": \"abc\",\n  \"ok\": true\n}", want: `{"id":"abc","ok":true}`},
		{name: "empty object", body: "{}", want: "{}"},
		{name: "plain text", body: "  shouted  ", want: "shouted"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tc.body)
			})
			r, err := svc.Shout(context.Background(), "x")
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, r.StatusCode)
			require.Equal(t, tc.want, r.String())
			require.False(t, r.ReceivedAt.IsZero())
		})
	}
}

func TestShout_NonSuccessStatusIsFailure(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "relay down", http.StatusBadGateway)
	})

	_, err := svc.Shout(context.Background(), "hello")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusBadGateway, se.StatusCode)
	require.Contains(t, err.Error(), "relay down")
}

func TestShout_TransportErrorIsFailure(t *testing.T) {
	client := NewClient("http://shout.test/shout", time.Second)
	client.http.Transport = roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := NewService(client).Shout(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
}

func TestShout_RespectsContextCancel(t *testing.T) {
	release := make(chan struct{})
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Shout(ctx, "hello")
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestStatusError_TruncatesBody(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, strings.Repeat("x", 2000))
	})
	_, err := svc.Shout(context.Background(), "hello")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Len(t, se.Body, maxErrorBody)
}

func TestDecodeEnvelope(t *testing.T) {
	s, err := DecodeEnvelope([]byte(`{"message":"hi \"there\""}`))
	require.NoError(t, err)
	require.Equal(t, `hi "there"`, s.Text)

	s, err = DecodeEnvelope([]byte(`{"message":""}`))
	require.NoError(t, err)
	require.Equal(t, "", s.Text)

	for _, bad := range []string{``, `not json`, `{}`, `{"message":1}`, `{"msg":"x"}`} {
		_, err := DecodeEnvelope([]byte(bad))
		require.ErrorIs(t, err, domain.ErrMalformedShout, bad)
	}
}
