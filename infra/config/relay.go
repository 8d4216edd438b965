package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cogciprocate/shoutit/domain"
)

// DefaultOneSignalURL is the OneSignal notifications endpoint.
const DefaultOneSignalURL = "https://onesignal.com/api/v1/notifications"

// DefaultListen is the address the relay binds when none is configured.
const DefaultListen = ":8080"

// Relay holds relay server configuration, read from relay.toml.
type Relay struct {
	Listen         string `toml:"listen"`
	AppID          string `toml:"app_id"`
	RESTAPIKey     string `toml:"rest_api_key"`
	RESTAPIKeyFile string `toml:"rest_api_key_file"`
	OneSignalURL   string `toml:"onesignal_url"`
}

// DefaultRelayPath returns ~/.config/shoutit/relay.toml.
func DefaultRelayPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "relay.toml"), nil
}

// LoadRelay reads the relay config file at path, then applies environment
// overrides. A missing file is not an error; missing credentials are.
//
//	SHOUTIT_RELAY_LISTEN, SHOUTIT_RELAY_APP_ID, SHOUTIT_RELAY_API_KEY,
//	SHOUTIT_RELAY_API_KEY_FILE, SHOUTIT_RELAY_ONESIGNAL_URL
func LoadRelay(path string) (Relay, error) {
	var cfg Relay
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Relay{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	override(&cfg.Listen, "SHOUTIT_RELAY_LISTEN")
	override(&cfg.AppID, "SHOUTIT_RELAY_APP_ID")
	override(&cfg.RESTAPIKey, "SHOUTIT_RELAY_API_KEY")
	override(&cfg.RESTAPIKeyFile, "SHOUTIT_RELAY_API_KEY_FILE")
	override(&cfg.OneSignalURL, "SHOUTIT_RELAY_ONESIGNAL_URL")

	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.OneSignalURL == "" {
		cfg.OneSignalURL = DefaultOneSignalURL
	}
	if cfg.AppID == "" || (cfg.RESTAPIKey == "" && cfg.RESTAPIKeyFile == "") {
		return Relay{}, fmt.Errorf("%w: set app_id and rest_api_key (or rest_api_key_file) in %s", domain.ErrMissingCredentials, path)
	}
	return cfg, nil
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
