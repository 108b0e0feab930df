package service

import (
	"context"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/fieldserve/dispatch/internal/scheduler"
)

type suggestService struct {
	jobs     repository.JobRepo
	techs    repository.TechnicianRepo
	skills   scheduler.SkillMapper
	distance scheduler.DistanceEstimator
}

func NewSuggestService(jobs repository.JobRepo, techs repository.TechnicianRepo) SuggestService {
	return &suggestService{
		jobs:     jobs,
		techs:    techs,
		skills:   scheduler.DefaultCategories,
		distance: scheduler.ZipPrefixEstimator{},
	}
}

// resolveDate picks the effective scheduling day: an explicit override, the
// job's own date, or today.
func resolveDate(override *time.Time, job *domain.Job) time.Time {
	if override != nil {
		return *override
	}
	if job.ScheduledDate != nil {
		return *job.ScheduledDate
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *suggestService) SuggestForJob(ctx context.Context, req contract.SuggestRequest) (*contract.JobSuggestions, error) {
	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	roster, err := s.techs.List(ctx, false)
	if err != nil {
		return nil, err
	}
	date := resolveDate(req.Date, job)
	dayJobs, err := s.jobs.ListScheduledOn(ctx, date)
	if err != nil {
		return nil, err
	}

	out := scheduler.RankTechnicians(job, roster, dayJobs, date, s.skills, s.distance)
	return &out, nil
}

func (s *suggestService) SuggestSlot(ctx context.Context, req contract.SlotRequest) (*contract.SlotResponse, error) {
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

	slot, found := scheduler.SuggestTimeSlot(tech, job, dayJobs, date)
	return &contract.SlotResponse{Slot: slot, Found: found}, nil
}
