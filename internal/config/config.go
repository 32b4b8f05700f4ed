package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/climasense/climasense/internal/weather"
)

// AppConfig is the application configuration resolved from the
// environment.
type AppConfig struct {
	// Credential is the environment-provided OpenWeatherMap key. The
	// settings store may override it per user.
	Credential string

	// WAQIToken authenticates against the global AQI provider.
	// Defaults to the provider's public demo token.
	WAQIToken string

	Units    weather.Units
	HomeCity string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls the global AQI snapshot refresh cadence.
	RefreshInterval time.Duration

	// SettingsPath locates the persisted user settings file. Empty
	// disables persistence.
	SettingsPath string

	Port string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Credential = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WAQIToken = getenvDefault("WAQI_TOKEN", "demo")
	cfg.HomeCity = getenvDefault("HOME_CITY", "Nashik")
	cfg.SettingsPath = getenvDefault("SETTINGS_PATH", "settings.json")
	cfg.Port = getenvDefault("PORT", "8080")

	units := weather.Units(getenvDefault("WEATHER_UNITS", string(weather.UnitsMetric)))
	if units != weather.UnitsMetric && units != weather.UnitsImperial {
		return nil, fmt.Errorf("invalid WEATHER_UNITS %q: use metric or imperial", units)
	}
	cfg.Units = units

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("REFRESH_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
