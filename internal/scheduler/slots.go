package scheduler

import (
	"sort"
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
)

// SuggestTimeSlot finds the earliest "HH:MM" start in the technician's
// working window on date that fits the job without crowding an existing
// booking. Each booking keeps a trailing buffer before the next job can
// start; a job may run right up to a booking's start. Returns false when
// the technician is off that day or no gap is wide enough.
func SuggestTimeSlot(tech *domain.Technician, job *domain.Job, dayJobs []*domain.Job, date time.Time) (string, bool) {
	day := date.Weekday()
	if !tech.WorksOn(day) {
		return "", false
	}
	windowStart, windowEnd := tech.DayWindow(day)
	dur := ParseDuration(job.EstimatedDuration)
	buf := tech.BufferMinutes()

	type booking struct{ start, end int }
	var bookings []booking
	for _, dj := range dayJobs {
		if dj.ID == job.ID || !dj.AssignedTo(tech.ID) || dj.ScheduledTime == "" {
			continue
		}
		start := domain.ParseClock(dj.ScheduledTime, -1)
		if start < 0 {
			continue
		}
		bookings = append(bookings, booking{start, start + ParseDuration(dj.EstimatedDuration)})
	}
	sort.Slice(bookings, func(i, k int) bool { return bookings[i].start < bookings[k].start })

	cur := windowStart
	for _, b := range bookings {
		if cur+dur <= b.start {
			return domain.FormatClock(cur), true
		}
		if next := b.end + buf; next > cur {
			cur = next
		}
	}
	if cur+dur <= windowEnd {
		return domain.FormatClock(cur), true
	}
	return "", false
}
