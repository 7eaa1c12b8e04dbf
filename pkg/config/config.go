// Package config binds ecbrates's process-wide settings from the
// environment, per spec.md §9 ("Global mutable configuration ... should be
// read once at construction of the supervisor and threaded through").
package config

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full set of environment-tunable settings. Every field has a
// spec-mandated default, so a zero-argument Load always yields a usable
// configuration.
type Config struct {
	// SchedulerInterval is the fetcher's refresh period for both scheduled
	// keys. Default 12h (spec.md §4.4).
	SchedulerInterval time.Duration `envconfig:"SCHEDULER_INTERVAL" default:"12h"`
	// CacheBackend selects "memory" or "file". Default "memory".
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"memory"`
	// CachePath is the on-disk cache file path, used only when CacheBackend
	// is "file". Default ".forex_cache" (spec.md §6).
	CachePath string `envconfig:"CACHE_PATH" default:".forex_cache"`
	// UseCache bypasses the cache entirely when false. Default true.
	UseCache bool `envconfig:"USE_CACHE" default:"true"`
	// AutoStart starts the supervisor's fetcher immediately on construction.
	// Default true (spec.md §6).
	AutoStart bool `envconfig:"AUTO_START" default:"true"`
	// FeedBaseURL overrides the ECB base URL, mainly for tests and
	// self-hosted mirrors.
	FeedBaseURL string `envconfig:"FEED_BASE_URL" default:""`
}

// envPrefix namespaces every recognized variable, e.g. ECBRATES_USE_CACHE.
const envPrefix = "ecbrates"

// Load reads a .env file (if present at envFile, or the default ".env" in
// the working directory when envFile is empty) and then binds Config from
// the process environment. A missing .env file is not an error - the
// system environment is used as-is, matching the teacher pack's
// LoadAppConfig idiom.
func Load(logger *log.Logger, envFile string) (*Config, error) {
	if logger == nil {
		logger = log.Default()
	}

	var err error
	if envFile != "" {
		err = godotenv.Load(envFile)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Debug("no .env file found, using system environment variables")
	} else {
		logger.Debug("environment variables loaded from .env file", "path", envFile)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}

	logger.Info("config loaded",
		"scheduler_interval", cfg.SchedulerInterval,
		"cache_backend", cfg.CacheBackend,
		"use_cache", cfg.UseCache,
		"auto_start", cfg.AutoStart,
	)
	return &cfg, nil
}
