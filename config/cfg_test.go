package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[logger]
level = -4
add_source = true

[http]
port = "8081"
allowed_origins = ["http://localhost:3000"]

[woo]
base_url = "https://shop.example.com/wp-json/wc/v3"
consumer_key = "ck_test"
consumer_secret = "cs_test"
timeout = "15s"

[dashboard]
top_products_limit = 5
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, -4, cfg.Logger.Level)
	assert.True(t, cfg.Logger.AddSource)
	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "https://shop.example.com/wp-json/wc/v3", cfg.Woo.BaseURL)
	assert.Equal(t, "ck_test", cfg.Woo.ConsumerKey)
	assert.Equal(t, float64(15), cfg.Woo.Timeout.Seconds())
	assert.Equal(t, 5, cfg.Dashboard.TopProductsLimit)
}

func TestLoadConfigRequiresBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[woo]\nconsumer_key = \"ck\"\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
