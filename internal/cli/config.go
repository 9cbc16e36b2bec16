package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/surge-sh/surge-go/pkg/surge"
)

// Config is the CLI configuration, loaded from config.toml and
// overridable with SURGE_* environment variables. Flags override both.
type Config struct {
	// Endpoint is the API base URL.
	Endpoint string `toml:"endpoint"`

	// Timeout bounds plain API calls, in seconds.
	Timeout int `toml:"timeout"`

	// Insecure disables TLS certificate verification. Only useful
	// against local test endpoints.
	Insecure bool `toml:"insecure"`

	// Domain is the default deploy target when no --domain flag and
	// no CNAME file is present.
	Domain string `toml:"domain"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: surge.DefaultEndpoint,
		Timeout:  int(surge.DefaultTimeout / time.Second),
	}
}

// RequestTimeout returns the timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// configPath returns the config file location (~/.config/surge/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path (or the default location
// when path is empty) and applies environment overrides. A missing
// file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			applyEnv(cfg)
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyEnv(cfg)

	if cfg.Endpoint == "" {
		cfg.Endpoint = surge.DefaultEndpoint
	}
	return cfg, nil
}

// applyEnv overlays SURGE_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SURGE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SURGE_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = n
		}
	}
	if v := os.Getenv("SURGE_INSECURE"); v != "" {
		cfg.Insecure = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SURGE_DOMAIN"); v != "" {
		cfg.Domain = v
	}
}

// readCNAME returns the domain named by dir's CNAME file, the
// conventional per-project way to pin a deploy target.
func readCNAME(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "CNAME"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
}
