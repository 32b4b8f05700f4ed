package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Fixup is an injectable post-fetch renaming table kept for backward
// compatibility with existing bookmarks. City and country substitutions
// apply independently.
type Fixup struct {
	Cities    map[string]string
	Countries map[string]string
}

// DefaultFixup preserves the legacy Jakarta/ID relabeling.
func DefaultFixup() Fixup {
	return Fixup{
		Cities:    map[string]string{"Jakarta": "Nashik"},
		Countries: map[string]string{"ID": "IN"},
	}
}

// Apply returns a copy of the snapshot with any renames applied.
func (f Fixup) Apply(s Snapshot) Snapshot {
	if to, ok := f.Cities[s.City]; ok {
		s.City = to
	}
	if to, ok := f.Countries[s.Country]; ok {
		s.Country = to
	}
	return s
}

// DashboardSnapshot is the unified per-location view model. Forecast
// and Pollution are optional: their fetches fail softly and the
// dashboard still succeeds without them.
type DashboardSnapshot struct {
	// RequestID tokens each fetch so a caller that has since issued a
	// newer request can recognize and discard a stale resolution.
	RequestID string           `json:"requestId"`
	Weather   Snapshot         `json:"weather"`
	Forecast  *ForecastSet     `json:"forecast,omitempty"`
	Pollution *PollutionRecord `json:"pollution,omitempty"`
	// ConditionClass buckets the current condition for presentation
	// (storm, rainy, sunny, cloudy or default).
	ConditionClass string `json:"conditionClass"`
	// PollutionSkipped is set when no detailed pollution record could
	// be attached, distinguishing "provider down" from "not requested".
	PollutionSkipped SkipReason `json:"pollutionSkipped,omitempty"`
	FetchedAt        time.Time  `json:"fetchedAt"`
}

// Service composes the primary and pollution providers into the
// per-location dashboard pipeline.
type Service struct {
	provider  Provider
	pollution PollutionProvider
	fixup     Fixup
}

// NewService creates a Service. The fixup table may be empty to disable
// legacy renaming.
func NewService(provider Provider, pollution PollutionProvider, fixup Fixup) *Service {
	return &Service{
		provider:  provider,
		pollution: pollution,
		fixup:     fixup,
	}
}

// Current fetches the normalized current conditions for a city.
func (s *Service) Current(ctx context.Context, city string, cfg Config) (Snapshot, error) {
	snap, err := s.provider.FetchCurrent(ctx, city, cfg)
	if err != nil {
		return Snapshot{}, err
	}
	return s.fixup.Apply(snap), nil
}

// Forecast fetches the daily/hourly forecast set for a city.
func (s *Service) Forecast(ctx context.Context, city string, cfg Config) (ForecastSet, error) {
	return s.provider.FetchForecast(ctx, city, cfg)
}

// Pollution fetches the detailed pollution record for coordinates.
func (s *Service) Pollution(ctx context.Context, lat, lon float64, cfg Config) (*PollutionRecord, SkipReason) {
	return s.pollution.FetchPollution(ctx, lat, lon, cfg.Credential)
}

// Dashboard runs the full per-location pipeline: current conditions
// first (a typed failure here aborts and propagates verbatim), then
// forecast and detailed pollution concurrently, then the coarse-AQI
// fallback when pollution detail is absent. The resolved AQI is
// attached to the weather snapshot before the fixup table applies.
func (s *Service) Dashboard(ctx context.Context, city string, cfg Config) (DashboardSnapshot, error) {
	current, err := s.provider.FetchCurrent(ctx, city, cfg)
	if err != nil {
		return DashboardSnapshot{}, err
	}

	var (
		wg        sync.WaitGroup
		forecast  *ForecastSet
		pollution *PollutionRecord
		skipped   SkipReason
	)

	// Forecast and pollution have no data dependency on each other;
	// both only need the coordinates resolved above.
	wg.Add(2)
	go func() {
		defer wg.Done()
		fs, ferr := s.provider.FetchForecast(ctx, city, cfg)
		if ferr != nil {
			log.Printf("forecast fetch failed for %s: %v", city, ferr)
			return
		}
		forecast = &fs
	}()
	go func() {
		defer wg.Done()
		pollution, skipped = s.pollution.FetchPollution(
			ctx, current.Coordinates.Lat, current.Coordinates.Lon, cfg.Credential)
	}()
	wg.Wait()

	if pollution != nil {
		current.AQI = pollution.AQI
	} else {
		log.Printf("pollution detail %s for %s; falling back to coarse AQI", skipped, city)
		current.AQI = s.pollution.FetchAQI(
			ctx, current.Coordinates.Lat, current.Coordinates.Lon, cfg.Credential)
	}

	return DashboardSnapshot{
		RequestID:        uuid.NewString(),
		Weather:          s.fixup.Apply(current),
		Forecast:         forecast,
		Pollution:        pollution,
		ConditionClass:   ConditionClass(current.Condition),
		PollutionSkipped: skipped,
		FetchedAt:        time.Now().UTC(),
	}, nil
}
