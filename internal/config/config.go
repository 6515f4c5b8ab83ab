// Package config defines the run configuration and its loading layers.
package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/ranking"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// BootstrapURL is the snapshot endpoint.
	BootstrapURL string `koanf:"bootstrap_url"`
	// FetchTimeoutMS bounds one fetch attempt.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
	// FetchRetries retries transport errors and 5xx responses.
	FetchRetries int `koanf:"fetch_retries"`
	// UserAgent is sent with the fetch.
	UserAgent string `koanf:"user_agent"`

	// OutputDir receives plain text reports.
	OutputDir string `koanf:"output_dir"`
	// DocsDir receives Markdown and HTML reports and the indexes.
	DocsDir string `koanf:"docs_dir"`

	// Reports is a comma separated list of variants to produce.
	Reports string `koanf:"reports"`
	// OwnershipThreshold is the minimum ownership percent in ownership reports.
	OwnershipThreshold float64 `koanf:"ownership_threshold"`
	// OwnershipCap and PriceCap size the ranked sets.
	OwnershipCap int `koanf:"ownership_cap"`
	PriceCap     int `koanf:"price_cap"`
	// LossStrategy is ascending or tail.
	LossStrategy string `koanf:"loss_strategy"`

	// Timezone names the location report dates are expressed in.
	Timezone string `koanf:"timezone"`
	// LockTimeoutMS bounds the wait for the index lock.
	LockTimeoutMS int `koanf:"lock_timeout_ms"`
	// MetricsTextfile, when set, receives a Prometheus textfile export after each run.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		BootstrapURL:       "https://fantasy.premierleague.com/api/bootstrap-static/",
		FetchTimeoutMS:     30_000,
		FetchRetries:       0,
		UserAgent:          "fplpulse/1.0",
		OutputDir:          "output",
		DocsDir:            "docs",
		Reports:            "ownership,price",
		OwnershipThreshold: 2.0,
		OwnershipCap:       10,
		PriceCap:           20,
		LossStrategy:       string(ranking.Ascending),
		Timezone:           "Local",
		LockTimeoutMS:      10_000,
	}
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	u, err := url.Parse(c.BootstrapURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: bootstrap_url %q", ErrInvalidConfig, c.BootstrapURL)
	}
	if c.FetchTimeoutMS <= 0 {
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("%w: fetch_retries must not be negative", ErrInvalidConfig)
	}
	if c.OutputDir == "" || c.DocsDir == "" {
		return fmt.Errorf("%w: output_dir and docs_dir must not be empty", ErrInvalidConfig)
	}
	if c.OwnershipThreshold < 0 || c.OwnershipThreshold > 100 {
		return fmt.Errorf("%w: ownership_threshold %v outside 0..100", ErrInvalidConfig, c.OwnershipThreshold)
	}
	if c.OwnershipCap <= 0 || c.PriceCap <= 0 {
		return fmt.Errorf("%w: ownership_cap and price_cap must be positive", ErrInvalidConfig)
	}
	if c.LockTimeoutMS <= 0 {
		return fmt.Errorf("%w: lock_timeout_ms must be positive", ErrInvalidConfig)
	}
	if _, err := ranking.ParseLossStrategy(c.LossStrategy); err != nil {
		return fmt.Errorf("%w: loss_strategy: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Variants(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Variants parses Reports in order, without duplicates.
func (c *Config) Variants() ([]model.Variant, error) {
	var out []model.Variant
	for _, name := range strings.Split(c.Reports, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		v, err := model.ParseVariant(name)
		if err != nil {
			return nil, fmt.Errorf("%w: reports: %w", ErrInvalidConfig, err)
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: reports must name at least one variant", ErrInvalidConfig)
	}
	return out, nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// LockTimeout returns LockTimeoutMS as a duration.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutMS) * time.Millisecond
}

// LossStrategyValue returns the parsed loss strategy. Call after Validate.
func (c *Config) LossStrategyValue() ranking.LossStrategy {
	s, _ := ranking.ParseLossStrategy(c.LossStrategy)
	return s
}
