// Copyright 2025 Keith Nytati
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads sxutil configuration from YAML files with SX_*
// environment-variable overrides. Values not set in the file keep
// their defaults; environment variables override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level sxutil configuration.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Serve   ServeConfig   `yaml:"serve"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig controls index generation. Its zero values defer to the
// builder and analyzer defaults, so an empty section is valid.
type BuildConfig struct {
	// MinTermLength is the minimum rune length of an indexed term.
	// Zero means the analyzer default.
	MinTermLength int `yaml:"minTermLength"`

	// StopWords are added to the default stop word list.
	StopWords []string `yaml:"stopWords"`

	// KeepWords are removed from the default stop word list.
	KeepWords []string `yaml:"keepWords"`

	// Excludes are path patterns skipped during page discovery.
	Excludes []string `yaml:"excludes"`

	// Workers bounds the number of pages parsed concurrently. Zero
	// means one worker per CPU.
	Workers int `yaml:"workers"`

	// EnvVersion is stamped into generated indexes. Zero means the
	// generator's default version.
	EnvVersion int `yaml:"envVersion"`

	// Manifest is the path to a YAML object manifest. Empty means no
	// object inventory.
	Manifest string `yaml:"manifest"`
}

// ServeConfig holds the search server's listen address, timeouts, and
// result limits.
type ServeConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// DefaultLimit is the result limit applied when a request names
	// none; MaxLimit caps the limit a request may ask for.
	DefaultLimit int `yaml:"defaultLimit"`
	MaxLimit     int `yaml:"maxLimit"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	// Level is the minimum level logged: debug, info, warn, or error.
	Level string `yaml:"level"`

	// Format selects the handler: json or text.
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Serve: ServeConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			DefaultLimit:    10,
			MaxLimit:        100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML config file (if path is non-empty) and applies
// environment-variable overrides on top of the defaults. Unknown keys
// in the file are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides reads SX_* environment variables and overrides the
// corresponding config fields. Unparseable values are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SX_SERVE_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
	if v := os.Getenv("SX_SERVE_DEFAULT_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Serve.DefaultLimit = limit
		}
	}
	if v := os.Getenv("SX_SERVE_MAX_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Serve.MaxLimit = limit
		}
	}
	if v := os.Getenv("SX_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SX_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SX_BUILD_MIN_TERM_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Build.MinTermLength = n
		}
	}
	if v := os.Getenv("SX_BUILD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Build.Workers = n
		}
	}
	if v := os.Getenv("SX_BUILD_ENV_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Build.EnvVersion = n
		}
	}
}
