package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DefaultHolidaysURL = "https://holidays-jp.github.io/api/v1/date.json"
	DefaultWeatherURL  = "https://api.openweathermap.org/data/2.5/forecast"
)

// Config holds process-wide settings. Every field has a usable default so
// the board runs with no environment at all.
type Config struct {
	DBPath   string
	DayWidth int // terminal cells per day column
	Days     int // visible window length
	Log      bool

	HolidaysURL   string
	WeatherURL    string
	WeatherAPIKey string // weather is disabled when empty
	Lat, Lon      float64

	HTTPTimeoutMs int
}

// Default returns the configuration used when no variables are set.
// DBPath is left empty; Load resolves it against the home directory.
func Default() Config {
	return Config{
		DayWidth:      4,
		Days:          35,
		HolidaysURL:   DefaultHolidaysURL,
		WeatherURL:    DefaultWeatherURL,
		Lat:           35.6812,
		Lon:           139.7671,
		HTTPTimeoutMs: 5000,
	}
}

// HTTPTimeout returns the per-request timeout for calendar clients.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

// Load reads GENBA_* environment variables, falling back to defaults for
// unset or malformed values.
func Load() (Config, error) {
	cfg := Default()

	cfg.DBPath = os.Getenv("GENBA_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".genba", "genba.db")
	}

	applyPositiveInt(&cfg.DayWidth, "GENBA_DAY_WIDTH")
	applyPositiveInt(&cfg.Days, "GENBA_DAYS")
	applyPositiveInt(&cfg.HTTPTimeoutMs, "GENBA_HTTP_TIMEOUT_MS")

	if v := os.Getenv("GENBA_LOG"); v != "" {
		cfg.Log, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GENBA_HOLIDAYS_URL"); v != "" {
		cfg.HolidaysURL = v
	}
	if v := os.Getenv("GENBA_WEATHER_URL"); v != "" {
		cfg.WeatherURL = v
	}
	cfg.WeatherAPIKey = os.Getenv("GENBA_WEATHER_API_KEY")

	applyFloat(&cfg.Lat, "GENBA_LAT", -90, 90)
	applyFloat(&cfg.Lon, "GENBA_LON", -180, 180)

	return cfg, nil
}

func applyPositiveInt(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}

func applyFloat(dst *float64, envName string, lo, hi float64) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < lo || f > hi {
		return
	}
	*dst = f
}
