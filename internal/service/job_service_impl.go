package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/google/uuid"
)

type jobService struct {
	jobs  repository.JobRepo
	techs repository.TechnicianRepo
}

func NewJobService(jobs repository.JobRepo, techs repository.TechnicianRepo) JobService {
	return &jobService{jobs: jobs, techs: techs}
}

func (s *jobService) Create(ctx context.Context, j *domain.Job) error {
	if j.Title == "" {
		return fmt.Errorf("job title is required")
	}
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	if j.Status == "" {
		j.Status = domain.JobPending
	}
	if !domain.ValidJobStatuses[string(j.Status)] {
		return fmt.Errorf("invalid job status %q", j.Status)
	}
	if j.Version == 0 {
		j.Version = 1
	}
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	return s.jobs.Create(ctx, j)
}

func (s *jobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *jobService) List(ctx context.Context) ([]*domain.Job, error) {
	return s.jobs.List(ctx)
}

func (s *jobService) ListUnassigned(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.jobs.ListSchedulable(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := s.techs.List(ctx, false)
	if err != nil {
		return nil, err
	}
	live := contract.RosterIDs(roster)

	var unassigned []*domain.Job
	for _, j := range jobs {
		if !j.IsAssigned(live) {
			unassigned = append(unassigned, j)
		}
	}
	return unassigned, nil
}

func (s *jobService) ListScheduledOn(ctx context.Context, day time.Time) ([]*domain.Job, error) {
	return s.jobs.ListScheduledOn(ctx, day)
}

func (s *jobService) Update(ctx context.Context, j *domain.Job) error {
	if !domain.ValidJobStatuses[string(j.Status)] {
		return fmt.Errorf("invalid job status %q", j.Status)
	}
	return s.jobs.Update(ctx, j)
}

func (s *jobService) SetStatus(ctx context.Context, id string, status domain.JobStatus) error {
	if !domain.ValidJobStatuses[string(status)] {
		return fmt.Errorf("invalid job status %q", status)
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	job.Status = status
	return s.jobs.Update(ctx, job)
}
