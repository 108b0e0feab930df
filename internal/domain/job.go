package domain

import "time"

// CrewMember is one technician on a multi-person job.
type CrewMember struct {
	TechID string   `json:"tech_id"`
	Role   CrewRole `json:"role"`
}

type Job struct {
	ID          string
	Title       string
	Category    string
	ServiceType string
	Description string

	// EstimatedDuration is free-form operator input: "2 hours", "45 min",
	// or a bare number of minutes. Parsed by the scheduler, never here.
	EstimatedDuration string

	CustomerAddress string
	ServiceAddress  string
	Zone            string

	// ScheduledDate is the target day; nil means the job still needs a
	// date assigned. ScheduledTime is an optional "HH:MM" start within
	// that day.
	ScheduledDate *time.Time
	ScheduledTime string

	AssignedTechID   string
	AssignedTechName string
	Crew             []CrewMember
	CrewRequired     int

	RequiredCerts []string

	Status  JobStatus
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address returns the best address for locating the job site.
func (j *Job) Address() string {
	if j.ServiceAddress != "" {
		return j.ServiceAddress
	}
	return j.CustomerAddress
}

// CategoryText returns the text used for skill inference, preferring the
// category and falling back to the service type.
func (j *Job) CategoryText() string {
	if j.Category != "" {
		return j.Category
	}
	return j.ServiceType
}

// AssignedTechIDs returns every technician reference on the job: the
// single assignee plus any crew members, deduplicated.
func (j *Job) AssignedTechIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	if j.AssignedTechID != "" {
		seen[j.AssignedTechID] = true
		ids = append(ids, j.AssignedTechID)
	}
	for _, m := range j.Crew {
		if m.TechID != "" && !seen[m.TechID] {
			seen[m.TechID] = true
			ids = append(ids, m.TechID)
		}
	}
	return ids
}

// AssignedTo reports whether the job references the given technician,
// either as the single assignee or as a crew member.
func (j *Job) AssignedTo(techID string) bool {
	if techID == "" {
		return false
	}
	if j.AssignedTechID == techID {
		return true
	}
	for _, m := range j.Crew {
		if m.TechID == techID {
			return true
		}
	}
	return false
}

// IsAssigned reports whether the job has at least one technician reference
// that exists in the current roster. A stale reference to a removed
// technician counts as unassigned, not as assigned.
func (j *Job) IsAssigned(roster map[string]bool) bool {
	for _, id := range j.AssignedTechIDs() {
		if roster[id] {
			return true
		}
	}
	return false
}

// ScheduledOn reports whether the job is scheduled on the given calendar day.
func (j *Job) ScheduledOn(day time.Time) bool {
	if j.ScheduledDate == nil {
		return false
	}
	y1, m1, d1 := j.ScheduledDate.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
