package weather

import "context"

// Provider abstracts the primary weather source (OpenWeatherMap).
// Implementations must map upstream failures onto the APIError taxonomy.
type Provider interface {
	FetchCurrent(ctx context.Context, city string, cfg Config) (Snapshot, error)
	FetchForecast(ctx context.Context, city string, cfg Config) (ForecastSet, error)
}

// PollutionProvider abstracts the supplementary air-pollution source.
// Pollution detail is enrichment, not a primary feature: FetchPollution
// never fails, it degrades to a nil record with a SkipReason.
type PollutionProvider interface {
	FetchPollution(ctx context.Context, lat, lon float64, credential string) (*PollutionRecord, SkipReason)
	FetchAQI(ctx context.Context, lat, lon float64, credential string) int
}
