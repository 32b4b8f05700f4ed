package providers

import (
	"encoding/json"
	"net/http"

	"github.com/climasense/climasense/internal/weather"
)

// providerMessage pulls the human-readable message out of an
// OpenWeatherMap error body, e.g. {"cod":"404","message":"city not found"}.
// Returns "" when the body is not decodable.
func providerMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// classifyStatus maps a non-2xx primary-provider response onto the
// typed error taxonomy. city is only used for the 404 message.
func classifyStatus(status int, body []byte, city string) *weather.APIError {
	switch status {
	case http.StatusUnauthorized:
		return weather.ErrInvalidCredential()
	case http.StatusNotFound:
		return weather.ErrLocationNotFound(city)
	case http.StatusTooManyRequests:
		return weather.ErrRateLimited()
	default:
		return weather.ErrUpstream(status, providerMessage(body))
	}
}
