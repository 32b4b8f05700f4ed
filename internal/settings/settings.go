// Package settings holds the user's provider credential, unit
// preference and favorite locations, and produces the explicit
// per-request configuration consumed by the core. Persistence is a
// small JSON file; everything else is in-memory.
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/climasense/climasense/internal/weather"
)

// EnvCredentialKey is the environment variable supplying the default
// provider credential when the user has not set an explicit override.
const EnvCredentialKey = "OPENWEATHER_API_KEY"

var validate = validator.New()

// Settings is the persisted user state.
type Settings struct {
	APIKey            string        `json:"apiKey" validate:"omitempty,min=10"`
	Units             weather.Units `json:"units" validate:"oneof=metric imperial"`
	Location          string        `json:"location" validate:"required"`
	FavoriteLocations []string      `json:"favoriteLocations"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		Units:             weather.UnitsMetric,
		Location:          "Nashik",
		FavoriteLocations: []string{"Nashik"},
	}
}

// ValidateCredential is the plausibility pre-check for a provider
// credential: non-empty and at least 10 characters after trimming.
// Real invalidity is only discovered via a 401 from the provider.
func ValidateCredential(key string) bool {
	return len(strings.TrimSpace(key)) >= 10
}

// Store is a concurrency-safe settings holder with optional JSON-file
// persistence. An empty path disables persistence.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	path     string
}

// NewStore creates a Store seeded from the file at path when it exists,
// falling back to defaults otherwise.
func NewStore(path string) (*Store, error) {
	s := &Store{settings: Defaults(), path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	loaded := Defaults()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}
	if err := validate.Struct(loaded); err != nil {
		return nil, err
	}
	s.settings = loaded
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.FavoriteLocations = append([]string(nil), s.settings.FavoriteLocations...)
	return out
}

// Update validates and replaces the stored settings, persisting them
// when a path is configured.
func (s *Store) Update(settings Settings) error {
	if err := validate.Struct(settings); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.save(settings)
}

// Credential resolves the provider credential: an explicit user
// override wins over the environment default. Implausible values
// resolve to "".
func (s *Store) Credential() string {
	s.mu.RLock()
	override := strings.TrimSpace(s.settings.APIKey)
	s.mu.RUnlock()

	if ValidateCredential(override) {
		return override
	}
	if env := strings.TrimSpace(os.Getenv(EnvCredentialKey)); ValidateCredential(env) {
		return env
	}
	return ""
}

// Config produces the per-request configuration handed to the core.
func (s *Store) Config() weather.Config {
	s.mu.RLock()
	units := s.settings.Units
	s.mu.RUnlock()
	return weather.Config{
		Credential: s.Credential(),
		Units:      units,
	}
}

// AddFavorite appends a location unless already present.
func (s *Store) AddFavorite(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.settings.FavoriteLocations {
		if fav == location {
			return nil
		}
	}
	s.settings.FavoriteLocations = append(s.settings.FavoriteLocations, location)
	return s.save(s.settings)
}

// RemoveFavorite drops a location from the favorites.
func (s *Store) RemoveFavorite(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs := s.settings.FavoriteLocations[:0]
	for _, fav := range s.settings.FavoriteLocations {
		if fav != location {
			favs = append(favs, fav)
		}
	}
	s.settings.FavoriteLocations = favs
	return s.save(s.settings)
}

// save persists the given state. Callers hold the write lock, so the
// marshal cannot interleave with a competing update.
func (s *Store) save(settings Settings) error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
