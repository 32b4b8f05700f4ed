package weather

import "testing"

func TestConditionClass(t *testing.T) {
	cases := map[string]string{
		"Thunderstorm": "storm",
		"Storm":        "storm",
		"Rain":         "rainy",
		"Drizzle":      "rainy",
		"Clear":        "sunny",
		"Sunny":        "sunny",
		"Clouds":       "cloudy",
		"Haze":         "default",
		"":             "default",
	}
	for condition, want := range cases {
		if got := ConditionClass(condition); got != want {
			t.Errorf("ConditionClass(%q) = %q, want %q", condition, got, want)
		}
	}
}
