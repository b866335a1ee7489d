package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GENBA_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".genba", "genba.db"), cfg.DBPath)
	assert.Equal(t, 4, cfg.DayWidth)
	assert.Equal(t, 35, cfg.Days)
	assert.False(t, cfg.Log)
	assert.Equal(t, DefaultHolidaysURL, cfg.HolidaysURL)
	assert.Empty(t, cfg.WeatherAPIKey)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GENBA_DB", "/tmp/board.db")
	t.Setenv("GENBA_DAY_WIDTH", "6")
	t.Setenv("GENBA_DAYS", "14")
	t.Setenv("GENBA_LOG", "1")
	t.Setenv("GENBA_HOLIDAYS_URL", "http://localhost/holidays")
	t.Setenv("GENBA_WEATHER_URL", "http://localhost/weather")
	t.Setenv("GENBA_WEATHER_API_KEY", "k")
	t.Setenv("GENBA_LAT", "34.69")
	t.Setenv("GENBA_LON", "135.50")
	t.Setenv("GENBA_HTTP_TIMEOUT_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/board.db", cfg.DBPath)
	assert.Equal(t, 6, cfg.DayWidth)
	assert.Equal(t, 14, cfg.Days)
	assert.True(t, cfg.Log)
	assert.Equal(t, "http://localhost/holidays", cfg.HolidaysURL)
	assert.Equal(t, "http://localhost/weather", cfg.WeatherURL)
	assert.Equal(t, "k", cfg.WeatherAPIKey)
	assert.InDelta(t, 34.69, cfg.Lat, 1e-9)
	assert.InDelta(t, 135.50, cfg.Lon, 1e-9)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTPTimeout())
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("GENBA_DB", "/tmp/board.db")
	t.Setenv("GENBA_DAY_WIDTH", "wide")
	t.Setenv("GENBA_DAYS", "-3")
	t.Setenv("GENBA_LAT", "120")
	t.Setenv("GENBA_LOG", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.DayWidth, cfg.DayWidth)
	assert.Equal(t, def.Days, cfg.Days)
	assert.Equal(t, def.Lat, cfg.Lat)
	assert.False(t, cfg.Log)
}
