package contract

import (
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
)

// SuggestRequest asks for a ranked list of technicians for one job.
type SuggestRequest struct {
	JobID string
	// Date overrides the job's scheduled date when set.
	Date *time.Time
}

// JobSuggestions ranks every roster technician for one job on one day,
// best first. Ties preserve roster order.
type JobSuggestions struct {
	JobID       string
	JobTitle    string
	Date        time.Time
	Suggestions []TechScore
	// TopPick is the highest-scoring suggestion, nil for an empty roster.
	TopPick *TechScore
	// HasGoodMatch is true when at least one suggestion is recommended.
	HasGoodMatch bool
}

// SlotRequest asks for the first open start time for a job in a
// technician's day.
type SlotRequest struct {
	JobID  string
	TechID string
	Date   *time.Time
}

// SlotResponse carries the suggested "HH:MM" start time; Found is false
// when no gap fits the job that day.
type SlotResponse struct {
	Slot  string
	Found bool
}

// ConflictRequest asks for conflict validation of a candidate assignment.
type ConflictRequest struct {
	JobID  string
	TechID string
	Date   *time.Time
}

// AssignRequest is a manual single-technician assignment.
type AssignRequest struct {
	JobID      string
	TechID     string
	AssignedBy string
	// Score is recorded in the audit log when the assignment came from a
	// planner run.
	Score *int
}

// CrewAssignRequest assigns a lead plus helpers to one job.
type CrewAssignRequest struct {
	JobID      string
	Members    []domain.CrewMember
	AssignedBy string
}

// BulkAssignResult reports one item of a bulk assignment independently:
// a failure on one job never blocks the rest of the batch.
type BulkAssignResult struct {
	JobID    string
	TechID   string
	TechName string
	OK       bool
	Err      string
}
