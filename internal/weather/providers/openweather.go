package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/climasense/climasense/internal/common"
	"github.com/climasense/climasense/internal/weather"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// Free-tier allowance is 60 calls/minute; short bursts are fine.
	requestsPerSecond = 1.0
	burstSize         = 5
)

// OpenWeatherClient talks to the OpenWeatherMap current-weather,
// forecast and air-pollution endpoints. It implements both
// weather.Provider and weather.PollutionProvider.
type OpenWeatherClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOpenWeatherClient constructs a client. If httpClient is nil, a
// client with a 10 second timeout is used; exceeding it surfaces as a
// NetworkError, never an indefinite hang.
func NewOpenWeatherClient(httpClient *http.Client) *OpenWeatherClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &OpenWeatherClient{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

var (
	_ weather.Provider          = (*OpenWeatherClient)(nil)
	_ weather.PollutionProvider = (*OpenWeatherClient)(nil)
)

type currentPayload struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// FetchCurrent fetches and normalizes current conditions for a city.
func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, city string, cfg weather.Config) (weather.Snapshot, error) {
	if strings.TrimSpace(cfg.Credential) == "" {
		return weather.Snapshot{}, weather.ErrMissingCredential()
	}
	if strings.TrimSpace(city) == "" {
		return weather.Snapshot{}, weather.ErrInvalidLocation()
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", cfg.Credential)
	values.Set("units", string(unitsOrDefault(cfg.Units)))

	body, apiErr := c.get(ctx, "/weather", values, city)
	if apiErr != nil {
		return weather.Snapshot{}, apiErr
	}

	var payload currentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Snapshot{}, weather.ErrMalformedResponse()
	}
	if payload.Name == "" || payload.Main == nil || len(payload.Weather) == 0 {
		return weather.Snapshot{}, weather.ErrMalformedResponse()
	}

	first := payload.Weather[0]
	return weather.Snapshot{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temperature: common.RoundInt(payload.Main.Temp),
		FeelsLike:   common.RoundInt(payload.Main.FeelsLike),
		Condition:   first.Main,
		Description: first.Description,
		Humidity:    payload.Main.Humidity,
		Wind:        common.RoundInt(payload.Wind.Speed),
		Pressure:    payload.Main.Pressure,
		Icon:        first.Icon,
		Coordinates: weather.Coordinates{
			Lat: payload.Coord.Lat,
			Lon: payload.Coord.Lon,
		},
	}, nil
}

// FetchForecast resolves the city's coordinates through FetchCurrent,
// then fetches the 3-hourly series and derives the daily and hourly
// sequences from it.
func (c *OpenWeatherClient) FetchForecast(ctx context.Context, city string, cfg weather.Config) (weather.ForecastSet, error) {
	current, err := c.FetchCurrent(ctx, city, cfg)
	if err != nil {
		return weather.ForecastSet{}, err
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%g", current.Coordinates.Lat))
	values.Set("lon", fmt.Sprintf("%g", current.Coordinates.Lon))
	values.Set("appid", cfg.Credential)
	values.Set("units", string(unitsOrDefault(cfg.Units)))

	body, apiErr := c.get(ctx, "/forecast", values, city)
	if apiErr != nil {
		return weather.ForecastSet{}, apiErr
	}

	var payload struct {
		List []forecastEntry `json:"list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.ForecastSet{}, weather.ErrMalformedResponse()
	}
	if payload.List == nil {
		return weather.ForecastSet{}, weather.ErrMalformedResponse()
	}

	return weather.ForecastSet{
		Daily:  buildDaily(payload.List),
		Hourly: buildHourly(payload.List),
	}, nil
}

// get runs one rate-limited GET against the provider and returns the
// body of a 2xx response, or a typed error for everything else.
func (c *OpenWeatherClient) get(ctx context.Context, path string, values url.Values, city string) ([]byte, *weather.APIError) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, weather.ErrNetwork(err)
	}

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, weather.ErrUnknown(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, weather.ErrNetwork(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, weather.ErrNetwork(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, body, city)
	}
	return body, nil
}

// buildHourly takes the first 8 samples verbatim: a 12-hour clock
// label, rounded temperature and the icon token.
func buildHourly(entries []forecastEntry) []weather.HourlyForecast {
	n := len(entries)
	if n > 8 {
		n = 8
	}
	hourly := make([]weather.HourlyForecast, 0, n)
	for _, e := range entries[:n] {
		icon := ""
		if len(e.Weather) > 0 {
			icon = e.Weather[0].Icon
		}
		hourly = append(hourly, weather.HourlyForecast{
			Time: time.Unix(e.Dt, 0).Format("3 PM"),
			Temp: common.RoundInt(e.Main.Temp),
			Icon: icon,
		})
	}
	return hourly
}

// buildDaily groups the series by local calendar date in encounter
// order and keeps the first 7 distinct dates. Temperature mean/min/max
// cover the whole day; the chronologically middle sample supplies the
// representative condition, icon, humidity and wind.
func buildDaily(entries []forecastEntry) []weather.DailyForecast {
	var order []string
	groups := make(map[string][]forecastEntry)
	for _, e := range entries {
		day := time.Unix(e.Dt, 0).Format("2006-01-02")
		if _, seen := groups[day]; !seen {
			order = append(order, day)
		}
		groups[day] = append(groups[day], e)
	}
	if len(order) > 7 {
		order = order[:7]
	}

	daily := make([]weather.DailyForecast, 0, len(order))
	for _, day := range order {
		items := groups[day]

		sum := 0.0
		min := items[0].Main.Temp
		max := items[0].Main.Temp
		for _, it := range items {
			sum += it.Main.Temp
			if it.Main.Temp < min {
				min = it.Main.Temp
			}
			if it.Main.Temp > max {
				max = it.Main.Temp
			}
		}

		midday := items[len(items)/2]
		condition := ""
		icon := ""
		if len(midday.Weather) > 0 {
			condition = midday.Weather[0].Main
			icon = midday.Weather[0].Icon
		}

		daily = append(daily, weather.DailyForecast{
			Date:      time.Unix(items[0].Dt, 0).Weekday().String(),
			Temp:      common.RoundInt(sum / float64(len(items))),
			TempMin:   common.RoundInt(min),
			TempMax:   common.RoundInt(max),
			Condition: condition,
			Icon:      icon,
			Humidity:  midday.Main.Humidity,
			Wind:      common.RoundInt(midday.Wind.Speed),
		})
	}
	return daily
}

func unitsOrDefault(u weather.Units) weather.Units {
	if u == "" {
		return weather.UnitsMetric
	}
	return u
}
