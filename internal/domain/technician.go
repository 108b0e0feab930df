package domain

import (
	"fmt"
	"strings"
	"time"
)

// Capacity defaults applied when a technician record leaves a limit unset.
const (
	DefaultMaxJobsPerDay   = 4
	DefaultMaxHoursPerDay  = 8
	DefaultBufferMinutes   = 30
	DefaultDayStart        = "08:00"
	DefaultDayEnd          = "17:00"
	DefaultMaxTravelMiles  = 25
)

// DayHours is one weekday's working window in 24h "HH:MM" form.
type DayHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// WorkingHours maps lowercase weekday names ("monday"...) to day windows.
// A missing entry means the technician is available that day with the
// default window: absence is permissive, only an explicit Enabled=false
// marks a day off.
type WorkingHours map[string]DayHours

type Technician struct {
	ID    string
	Name  string
	Color string // display only, never scored

	WorkingHours   WorkingHours
	Skills         []string
	Specialties    []string
	Certifications []string

	MaxJobsPerDay        int
	MaxHoursPerDay       int
	DefaultBufferMinutes int

	HomeZip        string
	MaxTravelMiles int
	PreferredZones []string

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeekdayName returns the lowercase weekday key used by WorkingHours.
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// WorksOn reports whether the technician is available on the given weekday.
func (t *Technician) WorksOn(d time.Weekday) bool {
	if t.WorkingHours == nil {
		return true
	}
	hours, ok := t.WorkingHours[WeekdayName(d)]
	if !ok {
		return true
	}
	return hours.Enabled
}

// DayWindow returns the working window for the given weekday as minutes
// from midnight. Missing or unparsable entries fall back to the default
// 08:00-17:00 window.
func (t *Technician) DayWindow(d time.Weekday) (startMin, endMin int) {
	start, end := DefaultDayStart, DefaultDayEnd
	if hours, ok := t.WorkingHours[WeekdayName(d)]; ok {
		if hours.Start != "" {
			start = hours.Start
		}
		if hours.End != "" {
			end = hours.End
		}
	}
	startMin = parseClock(start, 8*60)
	endMin = parseClock(end, 17*60)
	return startMin, endMin
}

// JobLimit returns the per-day job cap with the default applied.
func (t *Technician) JobLimit() int {
	if t.MaxJobsPerDay > 0 {
		return t.MaxJobsPerDay
	}
	return DefaultMaxJobsPerDay
}

// HourLimit returns the per-day hour cap with the default applied.
func (t *Technician) HourLimit() int {
	if t.MaxHoursPerDay > 0 {
		return t.MaxHoursPerDay
	}
	return DefaultMaxHoursPerDay
}

// BufferMinutes returns the minimum idle gap between two jobs.
func (t *Technician) BufferMinutes() int {
	if t.DefaultBufferMinutes > 0 {
		return t.DefaultBufferMinutes
	}
	return DefaultBufferMinutes
}

// TravelRadius returns the travel radius in miles with the default applied.
func (t *Technician) TravelRadius() int {
	if t.MaxTravelMiles > 0 {
		return t.MaxTravelMiles
	}
	return DefaultMaxTravelMiles
}

// AllSkills returns declared skills and specialties as a single list.
func (t *Technician) AllSkills() []string {
	out := make([]string, 0, len(t.Skills)+len(t.Specialties))
	out = append(out, t.Skills...)
	out = append(out, t.Specialties...)
	return out
}

// PrefersZone reports whether the named zone is in the technician's
// preferred-zone list (case-insensitive).
func (t *Technician) PrefersZone(zone string) bool {
	if zone == "" {
		return false
	}
	for _, z := range t.PreferredZones {
		if strings.EqualFold(z, zone) {
			return true
		}
	}
	return false
}

// Validate checks working-hours entries for well-formed day names and times.
func (t *Technician) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("technician name is required")
	}
	for day, hours := range t.WorkingHours {
		if !validWeekdays[day] {
			return fmt.Errorf("unknown weekday %q in working hours", day)
		}
		if hours.Start != "" && parseClock(hours.Start, -1) < 0 {
			return fmt.Errorf("invalid start time %q for %s", hours.Start, day)
		}
		if hours.End != "" && parseClock(hours.End, -1) < 0 {
			return fmt.Errorf("invalid end time %q for %s", hours.End, day)
		}
	}
	return nil
}

var validWeekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// ParseClock converts "HH:MM" to minutes from midnight, returning fallback
// on malformed input.
func ParseClock(s string, fallback int) int {
	return parseClock(s, fallback)
}

func parseClock(s string, fallback int) int {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return fallback
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return fallback
	}
	return h*60 + m
}

// FormatClock converts minutes from midnight to "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
