// Package config holds the lifecycle name sets and delivery policy used when
// installing minitap on a host.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FailurePolicy decides what a failing subscriber does to the lifecycle call
// that triggered it.
type FailurePolicy string

const (
	// PolicyIsolate runs every subscriber and always runs the original method.
	PolicyIsolate FailurePolicy = "isolate"
	// PolicyAbort stops at the first failing subscriber and skips the
	// original method, returning the error to the host.
	PolicyAbort FailurePolicy = "abort"
)

var (
	// ErrInvalidPolicy is returned by Validate for an unknown OnSubscriberError.
	ErrInvalidPolicy = errors.New("invalid subscriber error policy")
	// ErrEmptyMethodName is returned by Validate for a blank lifecycle name.
	ErrEmptyMethodName = errors.New("empty lifecycle method name")
)

// Config is the full installer configuration.
type Config struct {
	AppMethods        []string      `yaml:"app_methods" json:"app_methods" env:"MINITAP_APP_METHODS" envSeparator:","`
	PageMethods       []string      `yaml:"page_methods" json:"page_methods" env:"MINITAP_PAGE_METHODS" envSeparator:","`
	PageEvents        []string      `yaml:"page_events" json:"page_events" env:"MINITAP_PAGE_EVENTS" envSeparator:","`
	OnSubscriberError FailurePolicy `yaml:"on_subscriber_error" json:"on_subscriber_error" env:"MINITAP_ON_SUBSCRIBER_ERROR"`
	LogLevel          string        `yaml:"log_level" json:"log_level" env:"MINITAP_LOG_LEVEL"`
}

// Default returns the built-in lifecycle sets with the isolate policy.
func Default() Config {
	return Config{
		AppMethods: []string{
			"onLaunch", "onShow", "onHide", "onError",
			"onShareAppMessage", "onUnhandledRejection",
		},
		PageMethods: []string{
			"onLoad", "onShow", "onReady", "onHide", "onUnload",
			"onTitleClick", "onPullDownRefresh", "onReachBottom", "onShareAppMessage",
		},
		PageEvents:        []string{"onBack"},
		OnSubscriberError: PolicyIsolate,
		LogLevel:          "info",
	}
}

// Load reads a YAML (or .json) file on top of Default. A missing file is not
// an error and yields the defaults. Lists present in the file replace the
// default lists entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MINITAP_* environment variables. Unset
// variables leave the current values alone.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the policy and rejects blank method names.
func (c Config) Validate() error {
	switch c.OnSubscriberError {
	case PolicyIsolate, PolicyAbort:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, c.OnSubscriberError)
	}
	for set, names := range map[string][]string{
		"app_methods":  c.AppMethods,
		"page_methods": c.PageMethods,
		"page_events":  c.PageEvents,
	} {
		for i, name := range names {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: %s[%d]", ErrEmptyMethodName, set, i)
			}
		}
	}
	return nil
}

// FailFast reports whether the hub should stop at the first failure.
func (c Config) FailFast() bool {
	return c.OnSubscriberError == PolicyAbort
}
