package weather

import (
	"strings"

	"github.com/climasense/climasense/internal/common"
)

// ConditionClass buckets a provider condition label into one of the
// display classes {storm, rainy, sunny, cloudy, default} used by the
// view layer to pick backgrounds and icons.
func ConditionClass(condition string) string {
	lower := strings.ToLower(condition)
	switch {
	case common.HasAny(lower, "thunder", "storm"):
		return "storm"
	case common.HasAny(lower, "rain", "drizzle"):
		return "rainy"
	case common.HasAny(lower, "clear", "sun"):
		return "sunny"
	case strings.Contains(lower, "cloud"):
		return "cloudy"
	default:
		return "default"
	}
}
