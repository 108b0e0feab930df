package domain

import "time"

// AssignmentEvent is one append-only audit record of an assignment change.
type AssignmentEvent struct {
	ID         string
	JobID      string
	TechID     string
	TechName   string
	Action     AssignmentAction
	AssignedBy string
	// Score is the planner score when the assignment came from an
	// auto-assign run; nil for manual assignments.
	Score     *int
	Note      string
	CreatedAt time.Time
}
