package globalaqi

import (
	"context"
	"time"
)

// DemoSource serves the fixed offline dataset. It satisfies the same
// Source interface as the live client so callers can select the
// fallback explicitly instead of relying on a hidden catch path.
type DemoSource struct{}

var _ Source = DemoSource{}

type demoCity struct {
	name    string
	country string
	lat     float64
	lon     float64
	aqi     int
}

var demoCities = []demoCity{
	{"New York", "USA", 40.7128, -74.0060, 25},
	{"London", "UK", 51.5074, -0.1278, 35},
	{"Tokyo", "Japan", 35.6762, 139.6503, 45},
	{"Delhi", "India", 28.7041, 77.1025, 180},
	{"Beijing", "China", 39.9042, 116.4074, 120},
	{"Los Angeles", "USA", 34.0522, -118.2437, 55},
	{"Mumbai", "India", 19.0760, 72.8777, 95},
	{"São Paulo", "Brazil", -23.5505, -46.6333, 75},
}

// FetchSnapshot returns the demo snapshot. It never fails.
func (DemoSource) FetchSnapshot(context.Context) (Snapshot, error) {
	now := time.Now().UTC()
	locations := make([]Record, 0, len(demoCities))
	for _, c := range demoCities {
		locations = append(locations, Record{
			Location:    c.name,
			City:        c.name,
			Country:     c.country,
			Coordinates: Coordinates{Latitude: c.lat, Longitude: c.lon},
			Measurements: []Measurement{
				{Parameter: "PM2.5", Value: c.aqi, Unit: "µg/m³", LastUpdated: now},
			},
			AQI:               c.aqi,
			DominantPollutant: "PM2.5",
			SourceName:        "Demo Data",
		})
	}
	return Snapshot{Locations: locations, LastUpdated: now}, nil
}
