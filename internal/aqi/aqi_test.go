package aqi

import "testing"

// Band edges must map exactly onto the AQI sub-range edges. CO band
// maxima above 50 are skipped here because values above 50 take the
// µg/m³ conversion path; that path is covered separately below.
func TestCalculateBandBoundaries(t *testing.T) {
	for pollutant, bands := range breakpoints {
		for i, bp := range bands {
			if !(pollutant == CO && bp.Min > 50) {
				if got := Calculate(pollutant, bp.Min); got != bp.AQIMin {
					t.Errorf("%s band %d: Calculate(%v) = %d, want %d", pollutant, i, bp.Min, got, bp.AQIMin)
				}
			}
			if !(pollutant == CO && bp.Max > 50) {
				if got := Calculate(pollutant, bp.Max); got != bp.AQIMax {
					t.Errorf("%s band %d: Calculate(%v) = %d, want %d", pollutant, i, bp.Max, got, bp.AQIMax)
				}
			}
		}
	}
}

func TestCalculateSaturation(t *testing.T) {
	if got := Calculate(PM25, 1000); got != 500 {
		t.Errorf("Calculate(pm25, 1000) = %d, want 500", got)
	}
}

func TestCalculateUnknownPollutant(t *testing.T) {
	if got := Calculate(Pollutant("unknown"), 10); got != 0 {
		t.Errorf("Calculate(unknown, 10) = %d, want 0", got)
	}
}

// A CO reading of 40 is treated as mg/m³ and lands near the top band; a
// reading of 4500 is treated as µg/m³, converted to 4.5 mg/m³, and lands
// at the bottom of the second band. The two paths must stay distinct.
func TestCalculateCOUnitDisambiguation(t *testing.T) {
	low := Calculate(CO, 40)
	high := Calculate(CO, 4500)

	if low != 396 {
		t.Errorf("Calculate(co, 40) = %d, want 396", low)
	}
	if high != 51 {
		t.Errorf("Calculate(co, 4500) = %d, want 51", high)
	}
	if low == high {
		t.Errorf("CO paths collapsed: both returned %d", low)
	}

	// Top of the CO table via the µg/m³ path.
	if got := Calculate(CO, 50400); got != 500 {
		t.Errorf("Calculate(co, 50400) = %d, want 500", got)
	}
}

func TestCategoryBands(t *testing.T) {
	cases := []struct {
		aqi      int
		category string
		color    string
		marker   int
	}{
		{0, "Good", "#00e400", 8},
		{50, "Good", "#00e400", 8},
		{51, "Moderate", "#ffff00", 10},
		{100, "Moderate", "#ffff00", 10},
		{101, "Unhealthy for Sensitive Groups", "#ff7e00", 12},
		{150, "Unhealthy for Sensitive Groups", "#ff7e00", 12},
		{151, "Unhealthy", "#ff0000", 14},
		{200, "Unhealthy", "#ff0000", 14},
		{201, "Very Unhealthy", "#8f3f97", 16},
		{300, "Very Unhealthy", "#8f3f97", 16},
		{301, "Hazardous", "#7e0023", 18},
		{500, "Hazardous", "#7e0023", 18},
	}

	for _, tc := range cases {
		if got := Category(tc.aqi); got != tc.category {
			t.Errorf("Category(%d) = %q, want %q", tc.aqi, got, tc.category)
		}
		if got := Color(tc.aqi); got != tc.color {
			t.Errorf("Color(%d) = %q, want %q", tc.aqi, got, tc.color)
		}
		if got := MarkerSize(tc.aqi); got != tc.marker {
			t.Errorf("MarkerSize(%d) = %d, want %d", tc.aqi, got, tc.marker)
		}
	}
}

func TestHealthAdviceIsTotal(t *testing.T) {
	for _, aqi := range []int{0, 50, 75, 125, 175, 250, 400, 500} {
		if HealthAdvice(aqi) == "" {
			t.Errorf("HealthAdvice(%d) returned empty advice", aqi)
		}
	}
}

func TestValidCoordinates(t *testing.T) {
	valid := [][2]float64{{0, 0}, {90, 180}, {-90, -180}, {28.7, 77.1}}
	for _, c := range valid {
		if !ValidCoordinates(c[0], c[1]) {
			t.Errorf("ValidCoordinates(%v, %v) = false, want true", c[0], c[1])
		}
	}
	invalid := [][2]float64{{91, 0}, {0, 181}, {-95, 10}}
	for _, c := range invalid {
		if ValidCoordinates(c[0], c[1]) {
			t.Errorf("ValidCoordinates(%v, %v) = true, want false", c[0], c[1])
		}
	}
}
