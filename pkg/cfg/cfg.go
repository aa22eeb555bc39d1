// Package cfg loads runtime configuration from the process environment,
// optionally seeded from a .env file next to the working directory. All
// knobs carry defaults so the service starts with zero configuration.
package cfg

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/paperdrop/paperdrop/pkg/logging"
)

// DotEnvFileName is looked up relative to the working directory.
const DotEnvFileName = ".env"

// Injectable seams for tests.
var (
	osSetenv    = os.Setenv
	osLookupEnv = os.LookupEnv
)

// rawSettings mirrors the environment variables one to one. Durations stay
// strings here and are parsed into Config during Load.
type rawSettings struct {
	Host           string `env:"PAPERDROP_HOST,default=127.0.0.1"`
	Port           int    `env:"PAPERDROP_PORT,default=8080"`
	PublicURL      string `env:"PAPERDROP_PUBLIC_URL"`
	DataDir        string `env:"PAPERDROP_DATA_DIR"`
	FormTTL        string `env:"PAPERDROP_FORM_TTL,default=5m"`
	InvoiceTTL     string `env:"PAPERDROP_INVOICE_TTL,default=10m"`
	ImageTTL       string `env:"PAPERDROP_IMAGE_TTL,default=5m"`
	SweepInterval  string `env:"PAPERDROP_SWEEP_INTERVAL,default=5m"`
	MaxBodyBytes   int64  `env:"PAPERDROP_MAX_BODY_BYTES,default=1048576"`
	ImageAPIURL    string `env:"PAPERDROP_IMAGE_API_URL"`
	ImageAPIKey    string `env:"PAPERDROP_IMAGE_API_KEY"`
	CORSOrigins    string `env:"PAPERDROP_CORS_ORIGINS"`
	TrustedProxies string `env:"PAPERDROP_TRUSTED_PROXIES"`
	Extras         env.EnvSet
}

// Config is the parsed, validated runtime configuration.
type Config struct {
	Host           string
	Port           int
	PublicURL      string
	DataDir        string
	FormTTL        time.Duration
	InvoiceTTL     time.Duration
	ImageTTL       time.Duration
	SweepInterval  time.Duration
	MaxBodyBytes   int64
	ImageAPIURL    string
	ImageAPIKey    string
	CORSOrigins    []string
	TrustedProxies []string
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DownloadURL builds the public link for a token.
func (c *Config) DownloadURL(token string) string {
	return fmt.Sprintf("%s/v1/files/%s", strings.TrimRight(c.PublicURL, "/"), token)
}

// ImageAPIConfigured reports whether the outbound image API can be called.
func (c *Config) ImageAPIConfigured() bool {
	return c.ImageAPIURL != "" && c.ImageAPIKey != ""
}

// Load seeds the environment from .env when present, then unmarshals and
// validates the full configuration. Variables already set in the real
// environment win over the .env file.
func Load(fs afero.Fs, logger *logging.Logger) (*Config, error) {
	if err := loadDotEnv(fs, logger); err != nil {
		return nil, err
	}

	var raw rawSettings
	if _, err := env.UnmarshalFromEnviron(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal environment: %w", err)
	}

	cfg := &Config{
		Host:           raw.Host,
		Port:           raw.Port,
		PublicURL:      raw.PublicURL,
		DataDir:        raw.DataDir,
		MaxBodyBytes:   raw.MaxBodyBytes,
		ImageAPIURL:    raw.ImageAPIURL,
		ImageAPIKey:    raw.ImageAPIKey,
		CORSOrigins:    splitList(raw.CORSOrigins),
		TrustedProxies: splitList(raw.TrustedProxies),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(xdg.CacheHome, "paperdrop", "artifacts")
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://" + cfg.Addr()
	}

	var err error
	if cfg.FormTTL, err = parseDuration("PAPERDROP_FORM_TTL", raw.FormTTL); err != nil {
		return nil, err
	}
	if cfg.InvoiceTTL, err = parseDuration("PAPERDROP_INVOICE_TTL", raw.InvoiceTTL); err != nil {
		return nil, err
	}
	if cfg.ImageTTL, err = parseDuration("PAPERDROP_IMAGE_TTL", raw.ImageTTL); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = parseDuration("PAPERDROP_SWEEP_INTERVAL", raw.SweepInterval); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv reads DotEnvFileName through the provided filesystem and sets
// every key that is not already present in the environment.
func loadDotEnv(fs afero.Fs, logger *logging.Logger) error {
	exists, err := afero.Exists(fs, DotEnvFileName)
	if err != nil || !exists {
		return err
	}

	data, err := afero.ReadFile(fs, DotEnvFileName)
	if err != nil {
		return fmt.Errorf("read %s: %w", DotEnvFileName, err)
	}

	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", DotEnvFileName, err)
	}

	for key, value := range values {
		if _, set := osLookupEnv(key); set {
			continue
		}
		if err := osSetenv(key, value); err != nil {
			return fmt.Errorf("set %s from %s: %w", key, DotEnvFileName, err)
		}
	}

	logger.Debug("loaded environment file", "path", DotEnvFileName, "keys", len(values))
	return nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PAPERDROP_PORT must be in 1..65535, got %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("PAPERDROP_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if _, err := url.ParseRequestURI(c.PublicURL); err != nil {
		return fmt.Errorf("PAPERDROP_PUBLIC_URL is not a valid URL: %w", err)
	}
	if c.ImageAPIURL != "" {
		if _, err := url.ParseRequestURI(c.ImageAPIURL); err != nil {
			return fmt.Errorf("PAPERDROP_IMAGE_API_URL is not a valid URL: %w", err)
		}
	}
	return nil
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, value)
	}
	return d, nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Redacted returns the configuration as display pairs with the image API
// key masked. Used by the config command; secrets never reach a terminal
// or a log line in the clear.
func (c *Config) Redacted() [][2]string {
	mask := ""
	if c.ImageAPIKey != "" {
		mask = "********"
	}
	return [][2]string{
		{"PAPERDROP_HOST", c.Host},
		{"PAPERDROP_PORT", fmt.Sprintf("%d", c.Port)},
		{"PAPERDROP_PUBLIC_URL", c.PublicURL},
		{"PAPERDROP_DATA_DIR", c.DataDir},
		{"PAPERDROP_FORM_TTL", c.FormTTL.String()},
		{"PAPERDROP_INVOICE_TTL", c.InvoiceTTL.String()},
		{"PAPERDROP_IMAGE_TTL", c.ImageTTL.String()},
		{"PAPERDROP_SWEEP_INTERVAL", c.SweepInterval.String()},
		{"PAPERDROP_MAX_BODY_BYTES", fmt.Sprintf("%d", c.MaxBodyBytes)},
		{"PAPERDROP_IMAGE_API_URL", c.ImageAPIURL},
		{"PAPERDROP_IMAGE_API_KEY", mask},
		{"PAPERDROP_CORS_ORIGINS", strings.Join(c.CORSOrigins, ",")},
		{"PAPERDROP_TRUSTED_PROXIES", strings.Join(c.TrustedProxies, ",")},
	}
}
