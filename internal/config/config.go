// Copyright 2026 Blink Labs Software
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

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blinklabs-io/namgov/internal/input"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "namgov.config"

const (
	DefaultShutdownTimeout = "30s"
	DefaultMaxBodySize     = 4 << 20
)

var ErrInvalidConfig = errors.New("invalid configuration")

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type tempConfig struct {
	Config yaml.Node `yaml:"config,omitempty"`
}

type Config struct {
	BindAddr        string `yaml:"bindAddr"        split_words:"true"`
	ApiPort         uint   `yaml:"apiPort"         split_words:"true"`
	MetricsPort     uint   `yaml:"metricsPort"     split_words:"true"`
	ShutdownTimeout string `yaml:"shutdownTimeout" split_words:"true"`
	// Request bodies larger than this are rejected by the decode API
	MaxBodySize int64 `yaml:"maxBodySize" split_words:"true"`
	// Input encoding used when a request or command does not name one
	DefaultEncoding string `yaml:"defaultEncoding" split_words:"true"`
	Tracing         bool   `yaml:"tracing"`
	TracingStdout   bool   `yaml:"tracingStdout"   split_words:"true"`
}

// DefaultConfig returns the built-in configuration values.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:        "0.0.0.0",
		ApiPort:         8080,
		MetricsPort:     12799,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxBodySize:     DefaultMaxBodySize,
		DefaultEncoding: string(input.EncodingHex),
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// and NAMGOV_* environment variables, in that order of precedence.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	if configFile == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".namgov", "namgov.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		if configFile == "" {
			systemPath := "/etc/namgov/namgov.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		var tempCfg tempConfig
		if err := yaml.Unmarshal(buf, &tempCfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}

		// Settings may live at the top level or under a "config" key. The
		// section is decoded over the defaults so unset keys keep them.
		if tempCfg.Config.Kind != 0 {
			if err := tempCfg.Config.Decode(cfg); err != nil {
				return nil, fmt.Errorf("error parsing config section: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(buf, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("namgov", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := input.ParseEncoding(c.DefaultEncoding); err != nil {
		return fmt.Errorf("%w: defaultEncoding: %w", ErrInvalidConfig, err)
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf(
			"%w: maxBodySize must be positive, got %d",
			ErrInvalidConfig,
			c.MaxBodySize,
		)
	}
	if c.ApiPort > 65535 || c.MetricsPort > 65535 {
		return fmt.Errorf("%w: port out of range", ErrInvalidConfig)
	}
	if _, err := c.ShutdownDuration(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ShutdownDuration parses ShutdownTimeout, falling back to the default
// when it is empty.
func (c *Config) ShutdownDuration() (time.Duration, error) {
	timeout := c.ShutdownTimeout
	if timeout == "" {
		timeout = DefaultShutdownTimeout
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	return d, nil
}

// Encoding returns the parsed default input encoding.
func (c *Config) Encoding() input.Encoding {
	enc, err := input.ParseEncoding(c.DefaultEncoding)
	if err != nil {
		return input.EncodingHex
	}
	return enc
}
