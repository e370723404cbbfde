// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config holds labsearch runtime settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/poiesic/labsearch/search"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the CLI and the HTTP server.
type Config struct {
	// DataLocation is the delimited source, a local path or an http(s) URL.
	// Empty means the built-in records are used when no snapshot exists.
	DataLocation string `yaml:"data"`

	// StorePath is the BadgerDB directory holding imported snapshots.
	// Empty disables the snapshot store.
	StorePath string `yaml:"db"`

	// Language is the BCP 47 tag used to collate names and categories.
	// Default: "fr"
	Language string `yaml:"language"`

	// TaxonomyPath is an optional YAML taxonomy replacing the built-in one.
	TaxonomyPath string `yaml:"taxonomy"`

	// SuggestLimit caps autocomplete results.
	// Default: 8
	SuggestLimit int `yaml:"suggest_limit"`

	// ResultLimit caps search results printed by the CLI.
	// Default: 50
	ResultLimit int `yaml:"result_limit"`

	// GroupPreview is how many records each category shows before "+N more".
	// Default: 20
	GroupPreview int `yaml:"group_preview"`

	// FetchAttempts and FetchDelay control retries of remote sources.
	// Defaults: 3 attempts, 500ms before the first retry
	FetchAttempts int           `yaml:"fetch_attempts"`
	FetchDelay    time.Duration `yaml:"fetch_delay"`

	// ListenAddr is the HTTP listen address for serve.
	// Default: ":8080"
	ListenAddr string `yaml:"listen"`

	// AllowedOrigins lists CORS origins for the HTTP API.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithDataLocation sets the delimited source location.
func WithDataLocation(location string) Option {
	return func(c *Config) {
		c.DataLocation = location
	}
}

// WithStorePath sets the snapshot store directory.
func WithStorePath(path string) Option {
	return func(c *Config) {
		c.StorePath = path
	}
}

// WithLanguage sets the collation language tag.
func WithLanguage(tag string) Option {
	return func(c *Config) {
		c.Language = tag
	}
}

// WithTaxonomyPath sets the taxonomy file.
func WithTaxonomyPath(path string) Option {
	return func(c *Config) {
		c.TaxonomyPath = path
	}
}

// WithListenAddr sets the HTTP listen address.
func WithListenAddr(addr string) Option {
	return func(c *Config) {
		c.ListenAddr = addr
	}
}

// WithFetchRetry sets the retry budget for remote sources.
func WithFetchRetry(attempts int, delay time.Duration) Option {
	return func(c *Config) {
		c.FetchAttempts = attempts
		c.FetchDelay = delay
	}
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Language:       "fr",
		SuggestLimit:   search.DefaultSuggestLimit,
		ResultLimit:    50,
		GroupPreview:   20,
		FetchAttempts:  3,
		FetchDelay:     500 * time.Millisecond,
		ListenAddr:     ":8080",
		AllowedOrigins: []string{"*"},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDataLocation("https://example.org/analyses.csv"),
//	    WithStorePath("/var/lib/labsearch"),
//	)
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims text settings and restores defaults for zero values.
func (c *Config) Normalize() {
	defaults := DefaultConfig()

	c.DataLocation = strings.TrimSpace(c.DataLocation)
	c.StorePath = strings.TrimSpace(c.StorePath)
	c.TaxonomyPath = strings.TrimSpace(c.TaxonomyPath)
	c.Language = strings.TrimSpace(c.Language)
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)

	if c.Language == "" {
		c.Language = defaults.Language
	}
	if c.SuggestLimit == 0 {
		c.SuggestLimit = defaults.SuggestLimit
	}
	if c.ResultLimit == 0 {
		c.ResultLimit = defaults.ResultLimit
	}
	if c.GroupPreview == 0 {
		c.GroupPreview = defaults.GroupPreview
	}
	if c.FetchAttempts == 0 {
		c.FetchAttempts = defaults.FetchAttempts
	}
	if c.FetchDelay == 0 {
		c.FetchDelay = defaults.FetchDelay
	}
	if c.ListenAddr == "" {
		c.ListenAddr = defaults.ListenAddr
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = defaults.AllowedOrigins
	}
}

// Validate checks that the configuration is usable.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if _, err := c.LanguageTag(); err != nil {
		return err
	}
	if c.SuggestLimit < 0 {
		return fmt.Errorf("%w: suggest_limit must not be negative", ErrInvalidConfig)
	}
	if c.ResultLimit < 0 {
		return fmt.Errorf("%w: result_limit must not be negative", ErrInvalidConfig)
	}
	if c.GroupPreview < 0 {
		return fmt.Errorf("%w: group_preview must not be negative", ErrInvalidConfig)
	}
	if c.FetchAttempts < 0 {
		return fmt.Errorf("%w: fetch_attempts must not be negative", ErrInvalidConfig)
	}
	if c.FetchDelay < 0 {
		return fmt.Errorf("%w: fetch_delay must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LanguageTag parses Language.
func (c *Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil || tag == language.Und {
		return language.Und, fmt.Errorf("%w: language %q", ErrInvalidConfig, c.Language)
	}
	return tag, nil
}

// LoadFile reads a YAML config file over the defaults.
// Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML config over the defaults. Empty input yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
