package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://dummyjson.com", cfg.Provider.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 0, cfg.Provider.ProductLimit)
	assert.Equal(t, 10, cfg.View.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.View.Debounce)
	assert.Equal(t, 1, cfg.View.ScrollThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CATALOG_PROVIDER_BASE_URL", "http://localhost:9000")
	t.Setenv("CATALOG_VIEW_PAGE_SIZE", "25")
	t.Setenv("CATALOG_VIEW_DEBOUNCE", "250ms")
	t.Setenv("CATALOG_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Provider.BaseURL)
	assert.Equal(t, 25, cfg.View.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.View.Debounce)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"CATALOG_PROVIDER_BASE_URL": "not a url",
		"CATALOG_VIEW_PAGE_SIZE":    "0",
		"CATALOG_LOG_LEVEL":         "verbose",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("CATALOG_VIEW_DEBOUNCE", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
