// Package config loads mathcards settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathcards/internal/session"
)

// Config holds all mathcards settings.
type Config struct {
	Deck    DeckConfig    `yaml:"deck"`
	Timing  TimingConfig  `yaml:"timing"`
	Cache   CacheConfig   `yaml:"cache"`
	Images  ImagesConfig  `yaml:"images"`
	Logging LoggingConfig `yaml:"logging"`
}

// DeckConfig selects the deck and how the study screen starts.
type DeckConfig struct {
	// Path is a local file or an http(s) URL.
	Path    string `yaml:"path"`
	Topic   string `yaml:"topic"`
	Search  string `yaml:"search"`
	Shuffle bool   `yaml:"shuffle"`
	Watch   bool   `yaml:"watch"`
	// WatchDebounce coalesces bursts of file writes.
	WatchDebounce string `yaml:"watch_debounce"`
}

// TimingConfig holds animation and input delays as duration strings.
type TimingConfig struct {
	FlipLock       string `yaml:"flip_lock"`
	StepStagger    string `yaml:"step_stagger"`
	SectionStagger string `yaml:"section_stagger"`
	SearchDebounce string `yaml:"search_debounce"`
}

// CacheConfig configures the offline asset cache.
type CacheConfig struct {
	Name    string   `yaml:"name"`
	BaseURL string   `yaml:"base_url"`
	Assets  []string `yaml:"assets"`
	Timeout string   `yaml:"timeout"`
	// Concurrency bounds parallel fetches during install.
	Concurrency int `yaml:"concurrency"`
}

// ImagesConfig configures the attribution downloader.
type ImagesConfig struct {
	Manifest  string `yaml:"manifest"`
	OutputDir string `yaml:"output_dir"`
	Timeout   string `yaml:"timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives log output. Empty means stderr for commands and
	// no logging for the study screen.
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Deck: DeckConfig{
			Path:          "data/flashcards.json",
			Topic:         session.AllTopics,
			WatchDebounce: "250ms",
		},
		Timing: TimingConfig{
			FlipLock:       "620ms",
			StepStagger:    "600ms",
			SectionStagger: "150ms",
			SearchDebounce: "200ms",
		},
		Cache: CacheConfig{
			Name:    "flashcards-v1",
			BaseURL: "http://localhost:8080",
			Assets: []string{
				"/",
				"/index.html",
				"/styles.css",
				"/script.js",
				"/data/flashcards.json",
				"/assets/icon.png",
			},
			Timeout:     "15s",
			Concurrency: 4,
		},
		Images: ImagesConfig{
			Manifest:  "images.json",
			OutputDir: "assets/images",
			Timeout:   "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath resolves the config file location in priority order:
// 1. MATHCARDS_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/mathcards/config.yaml
// 3. ~/.config/mathcards/config.yaml
func DefaultPath() string {
	if p := os.Getenv("MATHCARDS_CONFIG"); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mathcards", "config.yaml")
}

// Validate checks that every duration parses and the cache is usable.
func (c *Config) Validate() error {
	durations := map[string]string{
		"deck.watch_debounce":    c.Deck.WatchDebounce,
		"timing.flip_lock":       c.Timing.FlipLock,
		"timing.step_stagger":    c.Timing.StepStagger,
		"timing.section_stagger": c.Timing.SectionStagger,
		"timing.search_debounce": c.Timing.SearchDebounce,
		"cache.timeout":          c.Cache.Timeout,
		"images.timeout":         c.Images.Timeout,
	}
	for key, v := range durations {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid %s %q: must not be negative", key, v)
		}
	}
	if c.Cache.Name == "" {
		return fmt.Errorf("cache.name must not be empty")
	}
	return nil
}

// SessionTiming returns the study session delays.
func (c *Config) SessionTiming() session.Timing {
	def := session.DefaultTiming()
	return session.Timing{
		FlipLock:       duration(c.Timing.FlipLock, def.FlipLock),
		StepStagger:    duration(c.Timing.StepStagger, def.StepStagger),
		SectionStagger: duration(c.Timing.SectionStagger, def.SectionStagger),
	}
}

// SearchDebounce returns the delay between the last keystroke and filtering.
func (c *Config) SearchDebounce() time.Duration {
	return duration(c.Timing.SearchDebounce, 200*time.Millisecond)
}

// WatchDebounce returns the file watcher's coalescing window.
func (c *Config) WatchDebounce() time.Duration {
	return duration(c.Deck.WatchDebounce, 250*time.Millisecond)
}

// CacheTimeout returns the HTTP timeout for cache fetches.
func (c *Config) CacheTimeout() time.Duration {
	return duration(c.Cache.Timeout, 15*time.Second)
}

// ImagesTimeout returns the HTTP timeout for image downloads.
func (c *Config) ImagesTimeout() time.Duration {
	return duration(c.Images.Timeout, 30*time.Second)
}

func duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
