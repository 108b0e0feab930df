package scheduler

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDurationMinutes is assumed when a job's duration is missing or
// unparsable. Parsing degrades to defaults instead of failing: a
// best-effort estimate is more useful to a dispatcher than an error.
const DefaultDurationMinutes = 60

// workdayMinutes is the 8-hour workday used when durations are given in days.
const workdayMinutes = 8 * 60

var durationPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?|days?)`)

// ParseDuration converts free-form duration input into integer minutes.
// Accepted forms: a bare number (already minutes), "2 hours", "1.5 hrs",
// "45 minutes", "30 min", "2 days". Anything else yields the default.
func ParseDuration(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultDurationMinutes
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(v))
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultDurationMinutes
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DefaultDurationMinutes
	}

	switch strings.ToLower(m[2])[0] {
	case 'h':
		return int(math.Round(value * 60))
	case 'd':
		return int(math.Round(value * workdayMinutes))
	default: // minutes
		return int(math.Round(value))
	}
}
