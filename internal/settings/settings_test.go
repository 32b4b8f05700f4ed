package settings

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/climasense/climasense/internal/weather"
)

func TestValidateCredential(t *testing.T) {
	cases := map[string]bool{
		"":                 false,
		"   ":              false,
		"short":            false,
		"123456789":        false,
		"1234567890":       true,
		" 1234567890 ":     true,
		"0123456789abcdef": true,
	}
	for key, want := range cases {
		if got := ValidateCredential(key); got != want {
			t.Errorf("ValidateCredential(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestCredentialPrecedence(t *testing.T) {
	t.Setenv(EnvCredentialKey, "env-key-0123456789")

	s, err := NewStore("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No override: the environment default wins.
	if got := s.Credential(); got != "env-key-0123456789" {
		t.Errorf("Credential() = %q, want env default", got)
	}

	// A plausible override beats the environment.
	st := s.Settings()
	st.APIKey = "override-key-12345"
	if err := s.Update(st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Credential(); got != "override-key-12345" {
		t.Errorf("Credential() = %q, want explicit override", got)
	}
}

func TestCredentialImplausibleResolvesEmpty(t *testing.T) {
	t.Setenv(EnvCredentialKey, "short")

	s, err := NewStore("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Credential(); got != "" {
		t.Errorf("Credential() = %q, want empty for implausible keys", got)
	}
}

func TestUpdateRejectsInvalidSettings(t *testing.T) {
	s, err := NewStore("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := s.Settings()
	st.Units = weather.Units("kelvin")
	if err := s.Update(st); err == nil {
		t.Error("expected validation error for unknown units")
	}

	st = s.Settings()
	st.APIKey = "short"
	if err := s.Update(st); err == nil {
		t.Error("expected validation error for implausibly short API key")
	}
}

func TestFavorites(t *testing.T) {
	s, err := NewStore("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.AddFavorite("Pune"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddFavorite("Pune"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Nashik", "Pune"}
	if got := s.Settings().FavoriteLocations; !reflect.DeepEqual(got, want) {
		t.Errorf("favorites = %v, want %v (no duplicates)", got, want)
	}

	if err := s.RemoveFavorite("Nashik"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Settings().FavoriteLocations; !reflect.DeepEqual(got, []string{"Pune"}) {
		t.Errorf("favorites = %v, want [Pune]", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := s.Settings()
	st.APIKey = "persisted-key-1234"
	st.Units = weather.UnitsImperial
	st.Location = "Pune"
	if err := s.Update(st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := reloaded.Settings()
	if got.APIKey != "persisted-key-1234" || got.Units != weather.UnitsImperial || got.Location != "Pune" {
		t.Errorf("reloaded settings = %+v", got)
	}
}

func TestConcurrentUpdatesPersistLatestState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st := Defaults()
			st.Location = fmt.Sprintf("City-%d", i)
			if err := s.Update(st); err != nil {
				t.Errorf("update %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	// Whatever update won, the file must reflect the in-memory state.
	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := reloaded.Settings().Location, s.Settings().Location; got != want {
		t.Errorf("persisted location = %q, in-memory = %q", got, want)
	}
}

func TestConfigCarriesUnitsAndCredential(t *testing.T) {
	t.Setenv(EnvCredentialKey, "env-key-0123456789")

	s, err := NewStore("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := s.Config()
	if cfg.Credential != "env-key-0123456789" {
		t.Errorf("Config().Credential = %q", cfg.Credential)
	}
	if cfg.Units != weather.UnitsMetric {
		t.Errorf("Config().Units = %q, want metric default", cfg.Units)
	}
}
