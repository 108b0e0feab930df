package scheduler

import (
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
)

// MaxLookaheadDays bounds how far ahead date-finding and capacity
// spreading will search for roster coverage.
const MaxLookaheadDays = 14

// NextAvailableDate returns the first day on or after from with at least
// one working technician. When no day within maxDays qualifies it falls
// back to from itself rather than refusing to plan.
func NextAvailableDate(roster []*domain.Technician, from time.Time, maxDays int) time.Time {
	for i := 0; i < maxDays; i++ {
		day := from.AddDate(0, 0, i)
		for _, t := range roster {
			if t.WorksOn(day.Weekday()) {
				return day
			}
		}
	}
	return from
}

// DayBatch is the slice of jobs destined for one calendar day.
type DayBatch struct {
	Date time.Time
	Jobs []*domain.Job
}

// SpreadByCapacity splits undated jobs across consecutive available days,
// filling each day up to the roster's combined job limit before rolling
// the remainder forward. Jobs still left after the lookahead window are
// appended to the final batch so nothing silently disappears.
func SpreadByCapacity(jobs []*domain.Job, roster []*domain.Technician, start time.Time) []DayBatch {
	if len(jobs) == 0 {
		return nil
	}

	capacity := 0
	for _, t := range roster {
		capacity += t.JobLimit()
	}
	if capacity <= 0 {
		return []DayBatch{{Date: start, Jobs: jobs}}
	}

	var batches []DayBatch
	remaining := jobs
	day := NextAvailableDate(roster, start, MaxLookaheadDays)
	for len(remaining) > 0 && len(batches) < MaxLookaheadDays {
		n := capacity
		if n > len(remaining) {
			n = len(remaining)
		}
		batch := append([]*domain.Job(nil), remaining[:n]...)
		batches = append(batches, DayBatch{Date: day, Jobs: batch})
		remaining = remaining[n:]
		day = NextAvailableDate(roster, day.AddDate(0, 0, 1), MaxLookaheadDays)
	}
	if len(remaining) > 0 {
		last := &batches[len(batches)-1]
		last.Jobs = append(last.Jobs, remaining...)
	}
	return batches
}
