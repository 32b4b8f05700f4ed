package common

import "testing"

func TestHasAny(t *testing.T) {
	if !HasAny("light rain showers", "rain", "drizzle") {
		t.Error("expected match on rain")
	}
	if HasAny("clear sky", "rain", "drizzle") {
		t.Error("unexpected match on clear sky")
	}
	if HasAny("anything") {
		t.Error("no substrings should never match")
	}
}

func TestRoundInt(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{21.6, 22},
		{20.4, 20},
		{3.5, 4},
		{-3.5, -4},
		{0, 0},
	}
	for _, tc := range cases {
		if got := RoundInt(tc.in); got != tc.want {
			t.Errorf("RoundInt(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
