package scheduler

import (
	"fmt"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
)

// CheckConflicts validates a candidate assignment of job to tech on date
// against the jobs already on the technician's schedule that day. Errors
// block an assignment in interactive flows; warnings only advise.
func CheckConflicts(tech *domain.Technician, job *domain.Job, dayJobs []*domain.Job, date time.Time, skills SkillMapper) contract.ConflictReport {
	if skills == nil {
		skills = DefaultCategories
	}

	var techJobs []*domain.Job
	for _, dj := range dayJobs {
		if dj.ID == job.ID || !dj.AssignedTo(tech.ID) {
			continue
		}
		techJobs = append(techJobs, dj)
	}
	bookedMin := AssignedDuration(techJobs)

	var report contract.ConflictReport
	add := func(code contract.ConflictCode, sev contract.ConflictSeverity, msg string) {
		report.Conflicts = append(report.Conflicts, contract.Conflict{Code: code, Severity: sev, Message: msg})
	}

	if !tech.WorksOn(date.Weekday()) {
		add(contract.ConflictDayOff, contract.SeverityError,
			fmt.Sprintf("%s does not work on %ss", tech.Name, date.Weekday()))
	}

	if len(techJobs) >= tech.JobLimit() {
		add(contract.ConflictMaxJobs, contract.SeverityError,
			fmt.Sprintf("%s is already at the daily limit of %d jobs", tech.Name, tech.JobLimit()))
	}

	dur := ParseDuration(job.EstimatedDuration)
	if bookedMin+dur > tech.HourLimit()*60 {
		add(contract.ConflictMaxHours, contract.SeverityWarning,
			fmt.Sprintf("Would put %s over %d hours for the day", tech.Name, tech.HourLimit()))
	}

	if required := skills.RequiredSkills(job.CategoryText()); !HasSkills(tech, required) {
		add(contract.ConflictSkills, contract.SeverityWarning,
			fmt.Sprintf("%s may not have the skills this job needs", tech.Name))
	}

	if job.ScheduledTime != "" {
		if c := timeConflict(tech, job, techJobs, dur); c != "" {
			add(contract.ConflictTime, contract.SeverityError, c)
		}
	}

	for _, c := range report.Conflicts {
		report.HasConflicts = true
		if c.Severity == contract.SeverityError {
			report.HasErrors = true
		} else {
			report.HasWarnings = true
		}
	}
	return report
}

// timeConflict checks the job's fixed start time against each existing
// booking, padded with the technician's buffer on both sides. Returns ""
// when the slot is clear.
func timeConflict(tech *domain.Technician, job *domain.Job, techJobs []*domain.Job, dur int) string {
	start := domain.ParseClock(job.ScheduledTime, -1)
	if start < 0 {
		return ""
	}
	end := start + dur
	buf := tech.BufferMinutes()

	for _, existing := range techJobs {
		if existing.ScheduledTime == "" {
			continue
		}
		eStart := domain.ParseClock(existing.ScheduledTime, -1)
		if eStart < 0 {
			continue
		}
		eEnd := eStart + ParseDuration(existing.EstimatedDuration)
		if start < eEnd+buf && end > eStart-buf {
			return fmt.Sprintf("Overlaps %q at %s (including %d min buffer)",
				existing.Title, existing.ScheduledTime, buf)
		}
	}
	return ""
}

// AssignedDuration sums the parsed durations of a technician's jobs,
// used by callers reporting day load.
func AssignedDuration(jobs []*domain.Job) int {
	total := 0
	for _, j := range jobs {
		total += ParseDuration(j.EstimatedDuration)
	}
	return total
}
