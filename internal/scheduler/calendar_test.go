package scheduler

import (
	"testing"
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/stretchr/testify/assert"
)

func weekdayOnly() *domain.Technician {
	return &domain.Technician{
		ID: "t-1", Name: "Ana",
		WorkingHours: domain.WorkingHours{
			"saturday": {Enabled: false},
			"sunday":   {Enabled: false},
		},
	}
}

func TestNextAvailableDate_SkipsWeekend(t *testing.T) {
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	roster := []*domain.Technician{weekdayOnly()}

	got := NextAvailableDate(roster, saturday, MaxLookaheadDays)
	assert.Equal(t, monday, got)
}

func TestNextAvailableDate_FallsBackToStart(t *testing.T) {
	never := &domain.Technician{ID: "t-1", Name: "Ana", WorkingHours: domain.WorkingHours{
		"monday": {Enabled: false}, "tuesday": {Enabled: false}, "wednesday": {Enabled: false},
		"thursday": {Enabled: false}, "friday": {Enabled: false},
		"saturday": {Enabled: false}, "sunday": {Enabled: false},
	}}

	got := NextAvailableDate([]*domain.Technician{never}, monday, MaxLookaheadDays)
	assert.Equal(t, monday, got, "no coverage falls back to the start date")
}

func TestSpreadByCapacity_RollsOverflowForward(t *testing.T) {
	var jobs []*domain.Job
	for i := 0; i < 5; i++ {
		jobs = append(jobs, &domain.Job{ID: string(rune('a' + i))})
	}
	tech := weekdayOnly()
	tech.MaxJobsPerDay = 3

	batches := SpreadByCapacity(jobs, []*domain.Technician{tech}, monday)

	assert.Len(t, batches, 2)
	assert.Equal(t, monday, batches[0].Date)
	assert.Len(t, batches[0].Jobs, 3)
	assert.Equal(t, monday.AddDate(0, 0, 1), batches[1].Date)
	assert.Len(t, batches[1].Jobs, 2)
}

func TestSpreadByCapacity_SkipsDaysOff(t *testing.T) {
	friday := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	tech := weekdayOnly()
	tech.MaxJobsPerDay = 1
	jobs := []*domain.Job{{ID: "j-1"}, {ID: "j-2"}}

	batches := SpreadByCapacity(jobs, []*domain.Technician{tech}, friday)

	assert.Len(t, batches, 2)
	assert.Equal(t, friday, batches[0].Date)
	assert.Equal(t, monday, batches[1].Date, "second batch skips the weekend")
}

func TestSpreadByCapacity_Empty(t *testing.T) {
	assert.Nil(t, SpreadByCapacity(nil, []*domain.Technician{weekdayOnly()}, monday))
}
