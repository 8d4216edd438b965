package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpoint is the shout service the client posts to.
const DefaultEndpoint = "http://cogciprocate.com:8080/shout"

// DefaultTimeout bounds a single shout request.
const DefaultTimeout = 15 * time.Second

// Config holds client-side configuration.
type Config struct {
	Endpoint   string        // Shout endpoint, e.g. "http://cogciprocate.com:8080/shout"
	LogPath    string        // Diagnostic log file used while the TUI owns the terminal
	ShowErrors bool          // Surface failures as a toast instead of logging only
	Timeout    time.Duration // Per-request timeout
}

// Load reads configuration from environment variables.
//
//	SHOUTIT_ENDPOINT     — shout endpoint (default: DefaultEndpoint)
//	SHOUTIT_LOG          — log file path (default: ~/.config/shoutit/shoutit.log)
//	SHOUTIT_SHOW_ERRORS  — "true" to show failures in the UI (default: false)
//	SHOUTIT_TIMEOUT      — request timeout as a Go duration (default: 15s)
func Load() (Config, error) {
	endpoint := os.Getenv("SHOUTIT_ENDPOINT")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	endpoint, err := NormalizeEndpoint(endpoint)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHOUTIT_ENDPOINT: %w", err)
	}

	logPath := os.Getenv("SHOUTIT_LOG")
	if logPath == "" {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		logPath = filepath.Join(dir, "shoutit.log")
	}

	showErrors := false
	if v := strings.TrimSpace(os.Getenv("SHOUTIT_SHOW_ERRORS")); v != "" {
		showErrors, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHOUTIT_SHOW_ERRORS: %w", err)
		}
	}

	timeout := DefaultTimeout
	if v := strings.TrimSpace(os.Getenv("SHOUTIT_TIMEOUT")); v != "" {
		timeout, err = time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("invalid SHOUTIT_TIMEOUT: %q", v)
		}
	}

	return Config{
		Endpoint:   endpoint,
		LogPath:    logPath,
		ShowErrors: showErrors,
		Timeout:    timeout,
	}, nil
}

// NormalizeEndpoint checks that raw is an absolute http(s) URL.
func NormalizeEndpoint(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("must be an absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("scheme %q is not http or https", parsed.Scheme)
	}
	return parsed.String(), nil
}

// Dir returns the shoutit configuration directory (~/.config/shoutit).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "shoutit"), nil
}
