package service

import (
	"context"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/fieldserve/dispatch/internal/scheduler"
)

type conflictService struct {
	jobs   repository.JobRepo
	techs  repository.TechnicianRepo
	skills scheduler.SkillMapper
}

func NewConflictService(jobs repository.JobRepo, techs repository.TechnicianRepo) ConflictService {
	return &conflictService{jobs: jobs, techs: techs, skills: scheduler.DefaultCategories}
}

func (s *conflictService) Check(ctx context.Context, req contract.ConflictRequest) (*contract.ConflictReport, error) {
	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	tech, err := s.techs.GetByID(ctx, req.TechID)
	if err != nil {
		return nil, err
	}
	date := resolveDate(req.Date, job)
	dayJobs, err := s.jobs.ListScheduledOn(ctx, date)
	if err != nil {
		return nil, err
	}

	report := scheduler.CheckConflicts(tech, job, dayJobs, date, s.skills)
	return &report, nil
}
