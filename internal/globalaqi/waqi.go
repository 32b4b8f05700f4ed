package globalaqi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/climasense/climasense/internal/aqi"
)

const (
	defaultWAQIBaseURL = "https://api.waqi.info"
	waqiSourceName     = "World Air Quality Index"
)

// Client fetches worldwide station readings from the WAQI map-bounds
// endpoint. A circuit breaker guards the publicly rate-limited service;
// an open breaker, like any other failure, short-circuits to the
// fallback source. No automatic retries are performed.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	fallback   Source
}

// NewClient constructs a Client. token falls back to the provider's
// public demo token when empty; fallback must not be nil.
func NewClient(httpClient *http.Client, token string, fallback Source) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if token == "" {
		token = "demo"
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "waqi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		baseURL:    defaultWAQIBaseURL,
		token:      token,
		httpClient: httpClient,
		circuit:    cb,
		fallback:   fallback,
	}
}

var _ Source = (*Client)(nil)

type stationPayload struct {
	Lat     float64     `json:"lat"`
	Lon     float64     `json:"lon"`
	AQI     interface{} `json:"aqi"` // string in the map tier, "-" when unreported
	Station struct {
		Name string `json:"name"`
	} `json:"station"`
}

// FetchSnapshot returns the normalized worldwide snapshot, or the
// fallback dataset on any transport, status or shape failure.
func (c *Client) FetchSnapshot(ctx context.Context) (Snapshot, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.fetchLive(ctx)
	})
	if err != nil {
		log.Printf("WARN: global AQI fetch failed, serving fallback dataset: %v", err)
		return c.fallback.FetchSnapshot(ctx)
	}
	return result.(Snapshot), nil
}

func (c *Client) fetchLive(ctx context.Context) (Snapshot, error) {
	// Worldwide bounding box.
	u := fmt.Sprintf("%s/map/bounds/?latlng=-90,-180,90,180&token=%s", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Snapshot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("waqi responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, err
	}

	var payload struct {
		Status string           `json:"status"`
		Data   []stationPayload `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("decode waqi response: %w", err)
	}
	if payload.Status != "ok" || payload.Data == nil {
		return Snapshot{}, fmt.Errorf("unexpected waqi response status %q", payload.Status)
	}

	return normalizeStations(payload.Data), nil
}

// normalizeStations filters and converts raw station payloads into the
// canonical record shape, preserving upstream order and truncating to
// the snapshot cap.
func normalizeStations(stations []stationPayload) Snapshot {
	now := time.Now().UTC()
	locations := make([]Record, 0, snapshotCap)

	for _, st := range stations {
		if len(locations) >= snapshotCap {
			break
		}
		if st.Lat == 0 || st.Lon == 0 || !aqi.ValidCoordinates(st.Lat, st.Lon) {
			continue
		}
		index, ok := parseStationAQI(st.AQI)
		if !ok || index <= 0 || index > 500 {
			continue
		}

		name := st.Station.Name
		if name == "" {
			name = "Unknown Station"
		}
		city := strings.SplitN(name, ",", 2)[0]
		if city == "" {
			city = "Unknown City"
		}

		locations = append(locations, Record{
			Location:    name,
			City:        city,
			Country:     "Unknown", // not supplied in the map tier
			Coordinates: Coordinates{Latitude: st.Lat, Longitude: st.Lon},
			Measurements: []Measurement{
				{
					// Synthetic reading: the station AQI stands in as
					// an approximate PM2.5 concentration.
					Parameter:   "PM2.5",
					Value:       index,
					Unit:        "µg/m³",
					LastUpdated: now,
				},
			},
			AQI:               index,
			DominantPollutant: "PM2.5",
			SourceName:        waqiSourceName,
		})
	}

	return Snapshot{Locations: locations, LastUpdated: now}
}

// parseStationAQI accepts the string or numeric AQI forms the map tier
// emits. Unreported values ("-") and anything non-numeric are rejected.
func parseStationAQI(v interface{}) (int, bool) {
	switch value := v.(type) {
	case string:
		value = strings.TrimSpace(value)
		if n, err := strconv.Atoi(value); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return int(f), true
		}
		return 0, false
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}
