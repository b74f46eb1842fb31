package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "listings.db", cfg.Store.Path)
	assert.Equal(t, "https://glue-api.zapimoveis.com.br/v2/listings", cfg.Scrape.BaseURL)
	assert.Equal(t, 30, cfg.Scrape.TimeoutSecs)
	assert.Equal(t, 0.5, cfg.Scrape.RequestsPerSecond)
	assert.Equal(t, 500, cfg.Scrape.MaxPages)
	assert.Equal(t, "cheias_em_porto_alegre.kml", cfg.Flood.ZonesPath)
	assert.Equal(t, "Inundação simulada com nível 500 cm (5.0 m)", cfg.Flood.Folder)
	assert.Equal(t, 8, cfg.Flood.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  path: /tmp/other.db
flood:
  zones_path: zones.shp
  workers: 2
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	assert.Equal(t, "zones.shp", cfg.Flood.ZonesPath)
	assert.Equal(t, 2, cfg.Flood.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Untouched sections keep their defaults.
	assert.Equal(t, 3, cfg.Scrape.MaxRetries)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SINKRE_STORE_PATH", "env.db")
	t.Setenv("SINKRE_FLOOD_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Store.Path)
	assert.Equal(t, 4, cfg.Flood.Workers)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [\n"), 0o644))

	_, err := Load()
	require.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "nonsense", Format: "json"})
	require.Error(t, err)
}
