// Package config loads memfit-dl configuration.
//
// Configuration comes from a single file named by the --config flag or the
// MEMFIT_DL_CONFIG environment variable. Files ending in .json or .jsonc
// are read as JSON with comments; anything else as YAML. Without a file
// the defaults apply.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/locale"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "MEMFIT_DL_CONFIG"

// Config is the configuration shared by the memfit-dl commands.
type Config struct {
	// BaseURL is the artifact host serving installers and the version file.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// DiffURL is the host serving binary patches. Empty disables patching.
	DiffURL string `yaml:"diff_url" json:"diff_url"`

	// Listen is the address the site service binds.
	Listen string `yaml:"listen" json:"listen"`

	// FallbackVersion replaces the built-in fallback when the version
	// file cannot be read.
	FallbackVersion string `yaml:"fallback_version" json:"fallback_version"`

	// HTTPTimeout bounds each outbound request, e.g. "10s".
	HTTPTimeout Duration `yaml:"http_timeout" json:"http_timeout"`

	// DefaultLocale is used when a request names no supported language.
	DefaultLocale locale.Locale `yaml:"default_locale" json:"default_locale"`
}

// Duration is a time.Duration read from a string such as "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		BaseURL:         download.DefaultBaseURL,
		Listen:          ":8080",
		FallbackVersion: download.FallbackVersion,
		HTTPTimeout:     Duration(download.DefaultTimeout),
		DefaultLocale:   locale.Default,
	}
}

// Path returns the config file to load: flagValue when set, otherwise the
// environment variable. Empty means no file.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvVar)
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL("base_url", c.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.DiffURL != "" {
		if err := validateURL("diff_url", c.DiffURL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Listen == "" {
		errs = append(errs, errors.New("listen is required"))
	}
	if err := download.ValidateVersion(c.FallbackVersion); err != nil {
		errs = append(errs, fmt.Errorf("fallback_version: %w", err))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http_timeout must be positive"))
	}
	if _, ok := locale.Parse(string(c.DefaultLocale)); !ok {
		errs = append(errs, fmt.Errorf("default_locale %q is not supported", c.DefaultLocale))
	}

	return errors.Join(errs...)
}

// Timeout returns HTTPTimeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout)
}

// Locale returns DefaultLocale normalized to a supported locale.
func (c *Config) Locale() locale.Locale {
	if l, ok := locale.Parse(string(c.DefaultLocale)); ok {
		return l
	}
	return locale.Default
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q must be an http or https URL", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q has no host", field, raw)
	}
	return nil
}
