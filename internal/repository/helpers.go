package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
)

const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// parseNullableInt converts a sql.NullInt64 back to a *int.
func parseNullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// stringsToJSON serializes a string slice for a TEXT column, storing "[]"
// rather than SQL NULL for empty slices.
func stringsToJSON(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// jsonToStrings deserializes a TEXT column back to a string slice.
// Malformed data yields nil rather than an error.
func jsonToStrings(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func hoursToJSON(h domain.WorkingHours) string {
	if len(h) == 0 {
		return "{}"
	}
	b, err := json.Marshal(h)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func jsonToHours(s string) domain.WorkingHours {
	if s == "" || s == "{}" {
		return nil
	}
	var out domain.WorkingHours
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func crewToJSON(c []domain.CrewMember) string {
	if len(c) == 0 {
		return "[]"
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func jsonToCrew(s string) []domain.CrewMember {
	if s == "" || s == "[]" {
		return nil
	}
	var out []domain.CrewMember
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
