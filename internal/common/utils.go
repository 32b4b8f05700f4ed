package common

import (
	"math"
	"strings"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// RoundInt rounds to the nearest whole number, halves away from zero.
func RoundInt(v float64) int {
	return int(math.Round(v))
}
