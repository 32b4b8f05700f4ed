// Package aqi converts pollutant concentrations into the 0-500 US EPA
// Air Quality Index and classifies index values into health categories.
package aqi

import "math"

// Pollutant identifies one of the six pollutants covered by the EPA
// breakpoint tables.
type Pollutant string

const (
	PM25 Pollutant = "pm25"
	PM10 Pollutant = "pm10"
	O3   Pollutant = "o3"
	NO2  Pollutant = "no2"
	SO2  Pollutant = "so2"
	CO   Pollutant = "co"
)

// breakpoint maps a concentration band [Min,Max] onto an AQI sub-range
// [AQIMin,AQIMax].
type breakpoint struct {
	Min    float64
	Max    float64
	AQIMin int
	AQIMax int
}

// US EPA breakpoints. Particulates, NO2 and SO2 are in µg/m³; O3 and CO
// bands follow the ppm-equivalent table.
var breakpoints = map[Pollutant][]breakpoint{
	PM25: {
		{0, 12.0, 0, 50},
		{12.1, 35.4, 51, 100},
		{35.5, 55.4, 101, 150},
		{55.5, 150.4, 151, 200},
		{150.5, 250.4, 201, 300},
		{250.5, 500.4, 301, 500},
	},
	PM10: {
		{0, 54, 0, 50},
		{55, 154, 51, 100},
		{155, 254, 101, 150},
		{255, 354, 151, 200},
		{355, 424, 201, 300},
		{425, 604, 301, 500},
	},
	O3: {
		{0, 0.054, 0, 50},
		{0.055, 0.070, 51, 100},
		{0.071, 0.085, 101, 150},
		{0.086, 0.105, 151, 200},
		{0.106, 0.200, 201, 300},
		{0.201, 0.604, 301, 500},
	},
	NO2: {
		{0, 0.053, 0, 50},
		{0.054, 0.100, 51, 100},
		{0.101, 0.360, 101, 150},
		{0.361, 0.649, 151, 200},
		{0.650, 1.249, 201, 300},
		{1.250, 2.049, 301, 500},
	},
	SO2: {
		{0, 0.035, 0, 50},
		{0.036, 0.075, 51, 100},
		{0.076, 0.185, 101, 150},
		{0.186, 0.304, 151, 200},
		{0.305, 0.604, 201, 300},
		{0.605, 1.004, 301, 500},
	},
	CO: {
		{0, 4.4, 0, 50},
		{4.5, 9.4, 51, 100},
		{9.5, 12.4, 101, 150},
		{12.5, 15.4, 151, 200},
		{15.5, 30.4, 201, 300},
		{30.5, 50.4, 301, 500},
	},
}

// Calculate maps a pollutant concentration to an AQI value by linear
// interpolation within the containing breakpoint band.
//
// CO readings above 50 are assumed to be µg/m³ and are converted to
// mg/m³ before lookup; the upstream unit contract is undocumented, so
// magnitude is the only available signal.
//
// Unknown pollutants return 0. Concentrations above the top band
// saturate at 500.
func Calculate(pollutant Pollutant, value float64) int {
	bands, ok := breakpoints[pollutant]
	if !ok {
		return 0
	}

	adjusted := value
	if pollutant == CO && value > 50 {
		adjusted = value / 1000
	}

	for _, bp := range bands {
		if adjusted >= bp.Min && adjusted <= bp.Max {
			span := float64(bp.AQIMax-bp.AQIMin) / (bp.Max - bp.Min)
			return int(math.Round(span*(adjusted-bp.Min) + float64(bp.AQIMin)))
		}
	}

	return 500
}

// Color returns the conventional EPA display color for an AQI value.
func Color(aqi int) string {
	switch {
	case aqi <= 50:
		return "#00e400" // green
	case aqi <= 100:
		return "#ffff00" // yellow
	case aqi <= 150:
		return "#ff7e00" // orange
	case aqi <= 200:
		return "#ff0000" // red
	case aqi <= 300:
		return "#8f3f97" // purple
	default:
		return "#7e0023" // maroon
	}
}

// Category returns the EPA category name for an AQI value.
func Category(aqi int) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// HealthAdvice returns the health guidance text for an AQI value.
func HealthAdvice(aqi int) string {
	switch {
	case aqi <= 50:
		return "Air quality is satisfactory, and air pollution poses little or no risk."
	case aqi <= 100:
		return "Air quality is acceptable. However, there may be a risk for some people."
	case aqi <= 150:
		return "Members of sensitive groups may experience health effects."
	case aqi <= 200:
		return "Everyone may begin to experience health effects."
	case aqi <= 300:
		return "Health alert: everyone may experience more serious health effects."
	default:
		return "Health warning of emergency conditions. The entire population is more likely to be affected."
	}
}

// MarkerSize returns the map marker radius for an AQI value, stepped by
// severity band.
func MarkerSize(aqi int) int {
	switch {
	case aqi <= 50:
		return 8
	case aqi <= 100:
		return 10
	case aqi <= 150:
		return 12
	case aqi <= 200:
		return 14
	case aqi <= 300:
		return 16
	default:
		return 18
	}
}

// ValidCoordinates reports whether lat/lon form a usable map position.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
