package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned by compare-and-swap updates when the row
// changed underneath the caller. The caller should re-read and retry or
// surface the conflict.
var ErrVersionConflict = errors.New("version conflict")

type TechnicianRepo interface {
	Create(ctx context.Context, t *domain.Technician) error
	GetByID(ctx context.Context, id string) (*domain.Technician, error)
	GetByName(ctx context.Context, name string) (*domain.Technician, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error)
	Update(ctx context.Context, t *domain.Technician) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	ListByStatus(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error)
	// ListSchedulable returns jobs in a status that still accepts
	// assignment, regardless of whether a technician is already set.
	ListSchedulable(ctx context.Context) ([]*domain.Job, error)
	ListScheduledOn(ctx context.Context, day time.Time) ([]*domain.Job, error)
	// ListScheduledBetween returns non-terminal jobs scheduled on days in
	// [from, to).
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	// UpdateAssignment writes the assignment fields guarded by the job's
	// version. Returns ErrVersionConflict when the stored version moved,
	// and bumps j.Version on success.
	UpdateAssignment(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id string) error
}

type AssignmentEventRepo interface {
	Create(ctx context.Context, e *domain.AssignmentEvent) error
	ListByJob(ctx context.Context, jobID string) ([]*domain.AssignmentEvent, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AssignmentEvent, error)
}
