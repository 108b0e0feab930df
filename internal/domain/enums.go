package domain

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// Terminal reports whether the status ends the job lifecycle.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// Schedulable reports whether a job in this status may still be assigned.
func (s JobStatus) Schedulable() bool {
	return !s.Terminal()
}

// ValidJobStatuses is the canonical set of accepted job status strings.
var ValidJobStatuses = map[string]bool{
	"pending": true, "scheduled": true, "in_progress": true,
	"completed": true, "cancelled": true,
}

type CrewRole string

const (
	CrewLead   CrewRole = "lead"
	CrewHelper CrewRole = "helper"
)

type AssignmentAction string

const (
	ActionAssigned     AssignmentAction = "assigned"
	ActionCrewAssigned AssignmentAction = "crew_assigned"
	ActionUnassigned   AssignmentAction = "unassigned"
)
