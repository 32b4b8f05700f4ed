// Package globalaqi aggregates worldwide air-quality station readings
// from the World Air Quality Index project into a display-ready
// snapshot. The source is best-effort: every failure path substitutes a
// fixed demo dataset instead of propagating an error.
package globalaqi

import (
	"context"
	"time"
)

// Coordinates is a station position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Measurement is one raw reading attached to a station record.
type Measurement struct {
	Parameter   string    `json:"parameter"`
	Value       int       `json:"value"`
	Unit        string    `json:"unit"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Record is one monitoring station reading normalized into the
// canonical shape. Index is always in (0,500] after filtering.
type Record struct {
	Location          string        `json:"location"`
	City              string        `json:"city"`
	Country           string        `json:"country"`
	Coordinates       Coordinates   `json:"coordinates"`
	Measurements      []Measurement `json:"measurements"`
	AQI               int           `json:"aqi"`
	DominantPollutant string        `json:"dominantPollutant"`
	SourceName        string        `json:"sourceName"`
}

// Snapshot is a point-in-time collection of station records, capped at
// 50 entries for display performance.
type Snapshot struct {
	Locations   []Record  `json:"locations"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Source produces global AQI snapshots. Both the live client and the
// offline demo dataset satisfy it, so the fallback path is selectable
// and independently testable.
type Source interface {
	FetchSnapshot(ctx context.Context) (Snapshot, error)
}

// snapshotCap bounds the number of records kept per snapshot. The cut
// is a stable truncation of the filtered, order-preserved station list.
const snapshotCap = 50
