package service

import (
	"context"
	"sort"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/db"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/fieldserve/dispatch/internal/scheduler"
	"github.com/google/uuid"
)

type autoAssignService struct {
	jobs     repository.JobRepo
	techs    repository.TechnicianRepo
	uow      db.UnitOfWork
	skills   scheduler.SkillMapper
	distance scheduler.DistanceEstimator
	observer UseCaseObserver
}

func NewAutoAssignService(
	jobs repository.JobRepo,
	techs repository.TechnicianRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AutoAssignService {
	return &autoAssignService{
		jobs:     jobs,
		techs:    techs,
		uow:      uow,
		skills:   scheduler.DefaultCategories,
		distance: scheduler.ZipPrefixEstimator{},
		observer: useCaseObserverOrNoop(observers),
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *autoAssignService) Run(ctx context.Context, req contract.AutoAssignRequest) (*contract.AutoAssignResponse, error) {
	started := time.Now()
	resp, err := s.run(ctx, req)
	fields := map[string]any{"dry_run": req.DryRun}
	if resp != nil {
		fields["assigned"] = resp.Summary.Assigned
		fields["unassigned"] = resp.Summary.Unassigned
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "auto_assign",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
	return resp, err
}

func (s *autoAssignService) run(ctx context.Context, req contract.AutoAssignRequest) (*contract.AutoAssignResponse, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	roster, err := s.techs.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, &contract.AutoAssignError{
			Code:    contract.ErrEmptyRoster,
			Message: "no active technicians to assign jobs to",
		}
	}

	schedulable, err := s.jobs.ListSchedulable(ctx)
	if err != nil {
		return nil, err
	}
	live := contract.RosterIDs(roster)
	var unassigned []*domain.Job
	for _, j := range schedulable {
		if !j.IsAssigned(live) {
			unassigned = append(unassigned, j)
		}
	}
	if len(unassigned) == 0 {
		return nil, &contract.AutoAssignError{
			Code:    contract.ErrNoUnassignedJobs,
			Message: "every open job already has a technician",
		}
	}

	start := dateOf(now)
	if !req.Date.IsZero() {
		start = dateOf(req.Date)
	}
	horizon := scheduler.MaxLookaheadDays
	if req.Days > 0 && req.Days < horizon {
		horizon = req.Days
	}
	horizonEnd := start.AddDate(0, 0, horizon)

	// Jobs that already carry a date keep it; undated jobs are spread
	// across upcoming days by roster capacity. Anything dated past the
	// horizon waits for a later run.
	batches := map[time.Time][]*domain.Job{}
	var undated []*domain.Job
	for _, j := range unassigned {
		if j.ScheduledDate != nil {
			day := dateOf(*j.ScheduledDate)
			if !day.Before(horizonEnd) {
				continue
			}
			batches[day] = append(batches[day], j)
			continue
		}
		undated = append(undated, j)
	}
	for _, batch := range scheduler.SpreadByCapacity(undated, roster, start) {
		if !batch.Date.Before(horizonEnd) {
			continue
		}
		batches[batch.Date] = append(batches[batch.Date], batch.Jobs...)
	}

	days := make([]time.Time, 0, len(batches))
	for day := range batches {
		days = append(days, day)
	}
	sort.Slice(days, func(i, k int) bool { return days[i].Before(days[k]) })

	resp := &contract.AutoAssignResponse{GeneratedAt: now}
	if len(days) == 0 {
		return resp, nil
	}

	// One window query covers every planned day's existing bookings.
	existing, err := s.jobs.ListScheduledBetween(ctx, days[0], days[len(days)-1].AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	booked := map[time.Time][]*domain.Job{}
	for _, j := range existing {
		if j.ScheduledDate != nil {
			day := dateOf(*j.ScheduledDate)
			booked[day] = append(booked[day], j)
		}
	}

	for _, day := range days {
		plan := scheduler.PlanAssignments(scheduler.PlanInput{
			Jobs:     batches[day],
			Roster:   roster,
			Existing: booked[day],
			Date:     day,
			Skills:   s.skills,
			Distance: s.distance,
		})
		resp.Days = append(resp.Days, contract.DayPlan{Date: day, Plan: plan})
		resp.Summary.Total += plan.Summary.Total
		resp.Summary.Assigned += plan.Summary.Assigned
		resp.Summary.Unassigned += plan.Summary.Unassigned
	}

	if req.DryRun {
		return resp, nil
	}

	assignedBy := req.AssignedBy
	if assignedBy == "" {
		assignedBy = "auto-assign"
	}
	for _, day := range resp.Days {
		for _, planned := range day.Plan.Successful {
			resp.WriteResults = append(resp.WriteResults, s.apply(ctx, planned, assignedBy))
		}
	}
	resp.Applied = true
	return resp, nil
}

// apply writes one planned assignment in its own transaction so a conflict
// on one job never rolls back the rest of the batch.
func (s *autoAssignService) apply(ctx context.Context, planned contract.PlannedAssignment, assignedBy string) contract.BulkAssignResult {
	res := contract.BulkAssignResult{
		JobID:    planned.JobID,
		TechID:   planned.TechID,
		TechName: planned.TechName,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		txEvents := repository.NewSQLiteAssignmentEventRepo(tx)

		j, err := txJobs.GetByID(ctx, planned.JobID)
		if err != nil {
			return err
		}
		j.AssignedTechID = planned.TechID
		j.AssignedTechName = planned.TechName
		j.Crew = nil
		date := planned.Date
		j.ScheduledDate = &date
		if planned.Slot != "" {
			j.ScheduledTime = planned.Slot
		}
		if j.Status == domain.JobPending {
			j.Status = domain.JobScheduled
		}
		if err := txJobs.UpdateAssignment(ctx, j); err != nil {
			return err
		}

		score := planned.Score
		return txEvents.Create(ctx, &domain.AssignmentEvent{
			ID:         uuid.New().String(),
			JobID:      j.ID,
			TechID:     planned.TechID,
			TechName:   planned.TechName,
			Action:     domain.ActionAssigned,
			AssignedBy: assignedBy,
			Score:      &score,
			CreatedAt:  time.Now().UTC(),
		})
	})
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.OK = true
	return res
}
