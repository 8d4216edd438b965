package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/cogciprocate/shoutit/domain"
)

// KeyProvider supplies the REST API key used to authenticate push requests.
type KeyProvider interface {
	APIKey() (string, error)
}

// StaticKey is a key taken verbatim from configuration.
type StaticKey string

// APIKey returns the key, trimming whitespace.
func (k StaticKey) APIKey() (string, error) {
	key := strings.TrimSpace(string(k))
	if key == "" {
		return "", domain.ErrEmptyKey
	}
	return key, nil
}

// FileKeyProvider reads the key from a file on every call, so rotating the
// file does not need a relay restart.
type FileKeyProvider struct {
	path string
}

// NewFileKeyProvider creates a KeyProvider that reads from the given file path.
func NewFileKeyProvider(path string) *FileKeyProvider {
	return &FileKeyProvider{path: path}
}

// APIKey reads and returns the key, trimming whitespace.
func (f *FileKeyProvider) APIKey() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading api key from %s: %w", f.path, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("key file %s: %w", f.path, domain.ErrEmptyKey)
	}

	return key, nil
}

// NewKeyProvider prefers an inline key and falls back to a key file.
func NewKeyProvider(inline, path string) KeyProvider {
	if strings.TrimSpace(inline) != "" {
		return StaticKey(inline)
	}
	return NewFileKeyProvider(path)
}
