package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/climasense/climasense/internal/common"
	"github.com/climasense/climasense/internal/weather"
)

// The provider reports a coarse 1-5 index; indexing this table with it
// yields the 0-500 scale value.
var coarseScale = [...]int{0, 50, 100, 150, 200, 300}

const fallbackAQI = 50

// coarseToAQI converts the provider's 1-5 index to the 0-500 scale.
// Out-of-range values default to 50.
func coarseToAQI(index int) int {
	if index >= 1 && index <= 5 {
		return coarseScale[index]
	}
	return fallbackAQI
}

// coerceCoarseIndex reads the provider's 1-5 index from a loosely typed
// field. Anything non-numeric yields 0, which coarseToAQI then defaults.
func coerceCoarseIndex(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// FetchPollution fetches the detailed pollutant record for the given
// coordinates. Pollution detail is supplementary enrichment, so this
// never returns an error: preconditions or provider failures degrade
// to a nil record with a reason.
func (c *OpenWeatherClient) FetchPollution(ctx context.Context, lat, lon float64, credential string) (*weather.PollutionRecord, weather.SkipReason) {
	if strings.TrimSpace(credential) == "" {
		log.Printf("WARN: air pollution request skipped: missing API key")
		return nil, weather.SkipNotRequested
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		log.Printf("WARN: air pollution request skipped: invalid coordinates")
		return nil, weather.SkipNotRequested
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, weather.SkipUnavailable
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%g", lat))
	values.Set("lon", fmt.Sprintf("%g", lon))
	values.Set("appid", credential)

	u := fmt.Sprintf("%s/air_pollution?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, weather.SkipUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("WARN: air pollution request failed: %v", err)
		return nil, weather.SkipUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			log.Printf("WARN: invalid API key for air pollution request")
		case http.StatusTooManyRequests:
			log.Printf("WARN: rate limit exceeded for air pollution request")
		default:
			log.Printf("WARN: air pollution request returned status %d", resp.StatusCode)
		}
		return nil, weather.SkipUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, weather.SkipUnavailable
	}

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				// The index is numeric in practice but must not sink the
				// whole record when it is not; leniently coerced below.
				AQI interface{} `json:"aqi"`
			} `json:"main"`
			Components struct {
				CO   float64 `json:"co"`
				NO2  float64 `json:"no2"`
				O3   float64 `json:"o3"`
				PM25 float64 `json:"pm2_5"`
				PM10 float64 `json:"pm10"`
				SO2  float64 `json:"so2"`
			} `json:"components"`
		} `json:"list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.List) == 0 {
		return nil, weather.SkipUnavailable
	}

	first := payload.List[0]
	ts := first.Dt
	if ts == 0 {
		ts = time.Now().Unix()
	}

	return &weather.PollutionRecord{
		AQI: coarseToAQI(coerceCoarseIndex(first.Main.AQI)),
		Components: weather.PollutionComponents{
			CO:   common.RoundInt(first.Components.CO),
			NO2:  common.RoundInt(first.Components.NO2),
			O3:   common.RoundInt(first.Components.O3),
			PM25: common.RoundInt(first.Components.PM25),
			PM10: common.RoundInt(first.Components.PM10),
			SO2:  common.RoundInt(first.Components.SO2),
		},
		Timestamp: ts,
	}, weather.SkipNone
}

// FetchAQI returns just the 0-500 index for the coordinates, falling
// back to 50 when the detailed record is absent.
func (c *OpenWeatherClient) FetchAQI(ctx context.Context, lat, lon float64, credential string) int {
	record, _ := c.FetchPollution(ctx, lat, lon, credential)
	if record == nil {
		return fallbackAQI
	}
	return record.AQI
}
