package service

import (
	"context"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
)

type RosterService interface {
	Create(ctx context.Context, t *domain.Technician) error
	// Get resolves a technician by ID, falling back to a case-insensitive
	// name lookup so CLI users can say "ana" instead of a UUID.
	Get(ctx context.Context, ref string) (*domain.Technician, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error)
	Update(ctx context.Context, t *domain.Technician) error
	Deactivate(ctx context.Context, id string) error
}

type JobService interface {
	Create(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	// ListUnassigned returns schedulable jobs with no live technician
	// reference. A job pointing only at removed technicians counts as
	// unassigned.
	ListUnassigned(ctx context.Context) ([]*domain.Job, error)
	ListScheduledOn(ctx context.Context, day time.Time) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	SetStatus(ctx context.Context, id string, status domain.JobStatus) error
}

type SuggestService interface {
	SuggestForJob(ctx context.Context, req contract.SuggestRequest) (*contract.JobSuggestions, error)
	SuggestSlot(ctx context.Context, req contract.SlotRequest) (*contract.SlotResponse, error)
}

type ConflictService interface {
	Check(ctx context.Context, req contract.ConflictRequest) (*contract.ConflictReport, error)
}

type AssignService interface {
	Assign(ctx context.Context, req contract.AssignRequest) (*domain.Job, error)
	AssignCrew(ctx context.Context, req contract.CrewAssignRequest) (*domain.Job, error)
	Unassign(ctx context.Context, jobID, by string) (*domain.Job, error)
	// BulkAssign applies each request independently: one failure never
	// blocks the rest of the batch.
	BulkAssign(ctx context.Context, reqs []contract.AssignRequest) []contract.BulkAssignResult
	History(ctx context.Context, jobID string) ([]*domain.AssignmentEvent, error)
	// Recent returns the newest audit events across all jobs.
	Recent(ctx context.Context, limit int) ([]*domain.AssignmentEvent, error)
}

type AutoAssignService interface {
	Run(ctx context.Context, req contract.AutoAssignRequest) (*contract.AutoAssignResponse, error)
}
