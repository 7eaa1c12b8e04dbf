package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"ECBRATES_SCHEDULER_INTERVAL",
		"ECBRATES_CACHE_BACKEND",
		"ECBRATES_CACHE_PATH",
		"ECBRATES_USE_CACHE",
		"ECBRATES_AUTO_START",
		"ECBRATES_FEED_BASE_URL",
	}
	for _, k := range keys {
		old, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(nil, "testdata/does-not-exist.env")
	require.NoError(t, err)

	require.Equal(t, 12*time.Hour, cfg.SchedulerInterval)
	require.Equal(t, "memory", cfg.CacheBackend)
	require.Equal(t, ".forex_cache", cfg.CachePath)
	require.True(t, cfg.UseCache)
	require.True(t, cfg.AutoStart)
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	clearEnv(t)
	os.Setenv("ECBRATES_CACHE_BACKEND", "file")
	os.Setenv("ECBRATES_USE_CACHE", "false")
	os.Setenv("ECBRATES_SCHEDULER_INTERVAL", "1h")

	cfg, err := Load(nil, "testdata/does-not-exist.env")
	require.NoError(t, err)

	require.Equal(t, "file", cfg.CacheBackend)
	require.False(t, cfg.UseCache)
	require.Equal(t, time.Hour, cfg.SchedulerInterval)
}
