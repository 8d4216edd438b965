// Package relay serves the shout endpoint: it accepts {"message": ...}
// envelopes over HTTP and hands each one to a Broadcaster.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cogciprocate/shoutit/app"
	"github.com/cogciprocate/shoutit/infra/shout"
)

// maxBody bounds an incoming shout envelope.
const maxBody = 64 << 10

const hint = "Try POSTing data to /shout"

// Response is the body returned for an accepted shout.
type Response struct {
	ID         string `json:"id"`
	Message    string `json:"message"`
	Recipients int    `json:"recipients"`
}

type errorResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// Server relays shouts to a Broadcaster.
type Server struct {
	broadcaster app.Broadcaster
	logger      *slog.Logger
	newID       func() string
}

// NewServer creates a relay server.
func NewServer(b app.Broadcaster, logger *slog.Logger) *Server {
	return &Server{
		broadcaster: b,
		logger:      logger,
		newID:       func() string { return uuid.NewString() },
	}
}

// Handler returns the relay's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/shout", s.serveShout)
	return mux
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, hint)
}

func (s *Server) serveShout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	id := s.newID()
	log := s.logger.With("id", id, "remote", r.RemoteAddr)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		log.Warn("reading shout body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{ID: id, Error: "unreadable body"})
		return
	}

	msg, err := shout.DecodeEnvelope(data)
	if err != nil {
		log.Warn("rejecting shout", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{ID: id, Error: err.Error()})
		return
	}

	log.Info("shout received", "message", msg.Text)

	delivery, err := s.broadcaster.Broadcast(r.Context(), msg.Text)
	if err != nil {
		log.Error("broadcast failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{ID: id, Error: "broadcast failed"})
		return
	}

	log.Info("shout broadcast", "notification", delivery.ID, "recipients", delivery.Recipients)
	writeJSON(w, http.StatusOK, Response{ID: id, Message: msg.Text, Recipients: delivery.Recipients})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down,
// giving in-flight shouts up to grace to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, grace)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, grace time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("relay listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("relay shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
