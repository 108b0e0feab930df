package contract

import (
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
)

// PlannedAssignment is one job's outcome in an auto-assignment plan.
// Failed entries carry a nil tech reference and a warning explaining why
// no technician could take the job; failure is an enumerated outcome of
// planning, never an error.
type PlannedAssignment struct {
	JobID    string
	JobTitle string
	TechID   string
	TechName string
	Score    int
	Date     time.Time
	Slot     string
	Reasons  []ScoreReason
	Warnings []ScoreReason
	Failed   bool
}

// PlanSummary counts the outcome of one planning run.
type PlanSummary struct {
	Total      int
	Assigned   int
	Unassigned int
}

// PlanResult is the full outcome of a greedy auto-assignment pass.
// Assignments holds every job in planning order; Successful and Failed
// partition it.
type PlanResult struct {
	Assignments []PlannedAssignment
	Successful  []PlannedAssignment
	Failed      []PlannedAssignment
	Summary     PlanSummary
}

// AutoAssignRequest drives a batch auto-assignment run.
type AutoAssignRequest struct {
	// Date is the target day; zero means today. Jobs without a scheduled
	// date are planned onto the first day with technician coverage.
	Date time.Time
	// Days bounds the planning horizon counted from Date. Zero means the
	// full lookahead window; jobs dated beyond the horizon wait for a
	// later run.
	Days int
	// DryRun plans without writing any assignment.
	DryRun bool
	// AssignedBy is recorded in the audit log for applied assignments.
	AssignedBy string
	// Now fixes the clock for deterministic planning in tests.
	Now *time.Time
}

// DayPlan is the plan for a single calendar day after capacity spreading.
type DayPlan struct {
	Date time.Time
	Plan PlanResult
}

// AutoAssignResponse aggregates per-day plans and, when applied, the
// per-item write results.
type AutoAssignResponse struct {
	GeneratedAt  time.Time
	Days         []DayPlan
	Summary      PlanSummary
	Applied      bool
	WriteResults []BulkAssignResult
}

// AutoAssignErrorCode enumerates auto-assign request failures.
type AutoAssignErrorCode string

const (
	ErrNoUnassignedJobs AutoAssignErrorCode = "NO_UNASSIGNED_JOBS"
	ErrEmptyRoster      AutoAssignErrorCode = "EMPTY_ROSTER"
)

// AutoAssignError is a request-level failure (distinct from per-job
// planning failures, which are regular PlannedAssignment outcomes).
type AutoAssignError struct {
	Code    AutoAssignErrorCode
	Message string
}

func (e *AutoAssignError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewAutoAssignRequest builds a request with defaults applied.
func NewAutoAssignRequest(date time.Time) AutoAssignRequest {
	return AutoAssignRequest{
		Date:       date,
		AssignedBy: "auto-assign",
	}
}

// RosterIDs builds the set of live technician IDs used to resolve stale
// job references.
func RosterIDs(techs []*domain.Technician) map[string]bool {
	ids := make(map[string]bool, len(techs))
	for _, t := range techs {
		ids[t.ID] = true
	}
	return ids
}
