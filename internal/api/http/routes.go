package httpapi

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/climasense/climasense/internal/aqi"
	"github.com/climasense/climasense/internal/globalaqi"
	"github.com/climasense/climasense/internal/settings"
	"github.com/climasense/climasense/internal/store"
	"github.com/climasense/climasense/internal/weather"
)

var validate = validator.New()

// StatusForError maps a core error onto an HTTP status for the
// centralized error handler. Primary-provider failures keep their
// taxonomy-derived statuses; anything else is a 500.
func StatusForError(err error) int {
	var apiErr *weather.APIError
	if !errors.As(err, &apiErr) {
		return fiber.StatusInternalServerError
	}
	switch apiErr.Kind {
	case weather.KindMissingCredential, weather.KindInvalidLocation:
		return fiber.StatusBadRequest
	case weather.KindInvalidCredential:
		return fiber.StatusUnauthorized
	case weather.KindLocationNotFound:
		return fiber.StatusNotFound
	case weather.KindRateLimited:
		return fiber.StatusTooManyRequests
	case weather.KindUpstreamError, weather.KindMalformedResponse:
		return fiber.StatusBadGateway
	case weather.KindNetworkError:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *weather.Service, userSettings *settings.Store, global globalaqi.Source, snapshots *store.SnapshotStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := svc.Current(c.UserContext(), city, userSettings.Config())
		if err != nil {
			return err
		}
		return c.JSON(snapshot)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		forecast, err := svc.Forecast(c.UserContext(), city, userSettings.Config())
		if err != nil {
			return err
		}
		return c.JSON(forecast)
	})

	v1.Get("/weather/dashboard", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		dashboard, err := svc.Dashboard(c.UserContext(), city, userSettings.Config())
		if err != nil {
			return err
		}
		return c.JSON(dashboard)
	})

	v1.Get("/airquality", func(c *fiber.Ctx) error {
		var q coordsQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		record, skipped := svc.Pollution(c.UserContext(), q.Lat, q.Lon, userSettings.Config())
		if record == nil {
			return c.JSON(fiber.Map{"available": false, "reason": skipped})
		}
		return c.JSON(fiber.Map{"available": true, "pollution": record})
	})

	v1.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(settingsView(userSettings.Settings()))
	})

	v1.Put("/settings", func(c *fiber.Ctx) error {
		var body settings.Settings
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid settings payload")
		}
		if err := userSettings.Update(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(settingsView(userSettings.Settings()))
	})

	v1.Post("/settings/favorites", func(c *fiber.Ctx) error {
		var body struct {
			Location string `json:"location"`
		}
		if err := c.BodyParser(&body); err != nil || body.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location is required")
		}
		if err := userSettings.AddFavorite(body.Location); err != nil {
			return err
		}
		return c.JSON(settingsView(userSettings.Settings()))
	})

	v1.Delete("/settings/favorites/:location", func(c *fiber.Ctx) error {
		location, err := url.PathUnescape(c.Params("location"))
		if err != nil || location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location is required")
		}
		if err := userSettings.RemoveFavorite(location); err != nil {
			return err
		}
		return c.JSON(settingsView(userSettings.Settings()))
	})

	v1.Get("/aqi/calculate", func(c *fiber.Ctx) error {
		pollutant := c.Query("pollutant")
		valueStr := c.Query("value")
		if pollutant == "" || valueStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "pollutant and value query parameters are required")
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil || value < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "value must be a non-negative number")
		}

		index := aqi.Calculate(aqi.Pollutant(pollutant), value)
		return c.JSON(fiber.Map{
			"aqi":          index,
			"category":     aqi.Category(index),
			"color":        aqi.Color(index),
			"healthAdvice": aqi.HealthAdvice(index),
			"markerSize":   aqi.MarkerSize(index),
		})
	})

	v1.Get("/aqi/map", func(c *fiber.Ctx) error {
		// Prefer the background-refreshed snapshot; fall through to a
		// live fetch (which itself degrades to the demo dataset).
		if snapshot, ok := snapshots.Latest(); ok {
			return c.JSON(snapshot)
		}
		snapshot, err := global.FetchSnapshot(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "global AQI data unavailable")
		}
		return c.JSON(snapshot)
	})
}

// settingsView masks the stored credential; the API only reports
// whether one is set.
func settingsView(s settings.Settings) fiber.Map {
	return fiber.Map{
		"hasApiKey":         s.APIKey != "",
		"units":             s.Units,
		"location":          s.Location,
		"favoriteLocations": s.FavoriteLocations,
	}
}

// cityQuery holds the query parameter identifying a location.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (string, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.City, nil
}

// coordsQuery holds the query parameters for coordinate lookups.
type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func (q *coordsQuery) bind(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return errors.New("lon must be a number")
	}

	q.Lat = lat
	q.Lon = lon
	return validate.Struct(q)
}
