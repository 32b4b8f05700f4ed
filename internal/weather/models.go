package weather

// Units selects the measurement system requested from the provider.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Config carries the caller-supplied provider credential and unit
// preference into each fetch. The core holds no ambient settings state;
// the settings collaborator builds one of these per request.
type Config struct {
	Credential string
	Units      Units
}

// Coordinates is a geographic position as reported by the provider.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Snapshot is the normalized current-conditions record. It is built
// once per fetch and never mutated; a refresh produces a new value.
type Snapshot struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Temperature int         `json:"temperature"`
	FeelsLike   int         `json:"feelsLike"`
	Condition   string      `json:"condition"`
	Description string      `json:"description"`
	Humidity    int         `json:"humidity"`
	Wind        int         `json:"wind"`
	Pressure    int         `json:"pressure"`
	Icon        string      `json:"icon"`
	AQI         int         `json:"aqi,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// DailyForecast is one calendar day of the forecast. Temperature stats
// cover every sample of the day; condition, icon, humidity and wind
// come from the day's chronologically middle sample.
type DailyForecast struct {
	Date      string `json:"date"`
	Temp      int    `json:"temp"`
	TempMin   int    `json:"tempMin"`
	TempMax   int    `json:"tempMax"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
	Humidity  int    `json:"humidity"`
	Wind      int    `json:"wind"`
	AQI       int    `json:"aqi,omitempty"`
}

// HourlyForecast is one near-term sample, typically at 3-hour
// resolution.
type HourlyForecast struct {
	Time string `json:"time"`
	Temp int    `json:"temp"`
	Icon string `json:"icon"`
}

// ForecastSet pairs the daily and hourly sequences derived from one
// upstream time-series response. Both are ordered by time ascending.
type ForecastSet struct {
	Daily  []DailyForecast  `json:"daily"`
	Hourly []HourlyForecast `json:"hourly"`
}

// PollutionComponents holds the six pollutant concentrations in µg/m³,
// rounded to integers. A record always carries all six.
type PollutionComponents struct {
	CO   int `json:"co"`
	NO2  int `json:"no2"`
	O3   int `json:"o3"`
	PM25 int `json:"pm2_5"`
	PM10 int `json:"pm10"`
	SO2  int `json:"so2"`
}

// PollutionRecord is the detailed air-pollution reading for a
// coordinate pair. Absent entirely when the source cannot serve it.
type PollutionRecord struct {
	AQI        int                 `json:"aqi"`
	Components PollutionComponents `json:"components"`
	Timestamp  int64               `json:"timestamp"`
}

// SkipReason explains why a pollution fetch produced no record, so
// callers can tell "provider down" from "never asked".
type SkipReason string

const (
	// SkipNone means a record was produced.
	SkipNone SkipReason = ""
	// SkipNotRequested means preconditions failed (missing credential
	// or unusable coordinates) and no request was issued.
	SkipNotRequested SkipReason = "not_requested"
	// SkipUnavailable means the request was issued but the provider
	// failed or answered with an unusable payload.
	SkipUnavailable SkipReason = "unavailable"
)
