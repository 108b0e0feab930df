package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/db"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/google/uuid"
)

type assignService struct {
	jobs     repository.JobRepo
	techs    repository.TechnicianRepo
	events   repository.AssignmentEventRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAssignService(
	jobs repository.JobRepo,
	techs repository.TechnicianRepo,
	events repository.AssignmentEventRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AssignService {
	return &assignService{
		jobs:     jobs,
		techs:    techs,
		events:   events,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *assignService) Assign(ctx context.Context, req contract.AssignRequest) (*domain.Job, error) {
	started := time.Now()
	job, err := s.assign(ctx, req)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "assign",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"job_id": req.JobID, "tech_id": req.TechID},
		StartedAt: started,
	})
	return job, err
}

func (s *assignService) assign(ctx context.Context, req contract.AssignRequest) (*domain.Job, error) {
	var job *domain.Job
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		txTechs := repository.NewSQLiteTechnicianRepo(tx)
		txEvents := repository.NewSQLiteAssignmentEventRepo(tx)

		j, err := txJobs.GetByID(ctx, req.JobID)
		if err != nil {
			return err
		}
		if !j.Status.Schedulable() {
			return fmt.Errorf("job %q is %s and cannot be assigned", j.Title, j.Status)
		}
		tech, err := txTechs.GetByID(ctx, req.TechID)
		if err != nil {
			return err
		}
		if !tech.Active {
			return fmt.Errorf("technician %q is inactive", tech.Name)
		}

		// A single assignment replaces any existing crew.
		j.AssignedTechID = tech.ID
		j.AssignedTechName = tech.Name
		j.Crew = nil
		if j.Status == domain.JobPending {
			j.Status = domain.JobScheduled
		}
		if err := txJobs.UpdateAssignment(ctx, j); err != nil {
			return err
		}

		if err := txEvents.Create(ctx, &domain.AssignmentEvent{
			ID:         uuid.New().String(),
			JobID:      j.ID,
			TechID:     tech.ID,
			TechName:   tech.Name,
			Action:     domain.ActionAssigned,
			AssignedBy: assignedByOrManual(req.AssignedBy),
			Score:      req.Score,
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return err
		}
		job = j
		return nil
	})
	return job, err
}

func (s *assignService) AssignCrew(ctx context.Context, req contract.CrewAssignRequest) (*domain.Job, error) {
	if len(req.Members) == 0 {
		return nil, fmt.Errorf("a crew needs at least one member")
	}
	var lead *domain.CrewMember
	for i := range req.Members {
		if req.Members[i].Role == domain.CrewLead {
			if lead != nil {
				return nil, fmt.Errorf("a crew can only have one lead")
			}
			lead = &req.Members[i]
		}
	}
	if lead == nil {
		return nil, fmt.Errorf("a crew needs a lead")
	}

	var job *domain.Job
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		txTechs := repository.NewSQLiteTechnicianRepo(tx)
		txEvents := repository.NewSQLiteAssignmentEventRepo(tx)

		j, err := txJobs.GetByID(ctx, req.JobID)
		if err != nil {
			return err
		}
		if !j.Status.Schedulable() {
			return fmt.Errorf("job %q is %s and cannot be assigned", j.Title, j.Status)
		}

		leadTech, err := txTechs.GetByID(ctx, lead.TechID)
		if err != nil {
			return err
		}
		for _, m := range req.Members {
			if _, err := txTechs.GetByID(ctx, m.TechID); err != nil {
				return fmt.Errorf("crew member %s: %w", m.TechID, err)
			}
		}
		if j.CrewRequired > 0 && len(req.Members) < j.CrewRequired {
			return fmt.Errorf("job needs a crew of %d, got %d", j.CrewRequired, len(req.Members))
		}

		j.Crew = req.Members
		j.AssignedTechID = leadTech.ID
		j.AssignedTechName = leadTech.Name
		if j.Status == domain.JobPending {
			j.Status = domain.JobScheduled
		}
		if err := txJobs.UpdateAssignment(ctx, j); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, m := range req.Members {
			tech, err := txTechs.GetByID(ctx, m.TechID)
			if err != nil {
				return err
			}
			if err := txEvents.Create(ctx, &domain.AssignmentEvent{
				ID:         uuid.New().String(),
				JobID:      j.ID,
				TechID:     tech.ID,
				TechName:   tech.Name,
				Action:     domain.ActionCrewAssigned,
				AssignedBy: assignedByOrManual(req.AssignedBy),
				Note:       string(m.Role),
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		}
		job = j
		return nil
	})
	return job, err
}

func (s *assignService) Unassign(ctx context.Context, jobID, by string) (*domain.Job, error) {
	var job *domain.Job
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		txEvents := repository.NewSQLiteAssignmentEventRepo(tx)

		j, err := txJobs.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		// Unassigning an unassigned job is a no-op, not an error.
		if j.AssignedTechID == "" && len(j.Crew) == 0 {
			job = j
			return nil
		}

		prevID, prevName := j.AssignedTechID, j.AssignedTechName
		j.AssignedTechID = ""
		j.AssignedTechName = ""
		j.Crew = nil
		if j.Status == domain.JobScheduled {
			j.Status = domain.JobPending
		}
		if err := txJobs.UpdateAssignment(ctx, j); err != nil {
			return err
		}

		if err := txEvents.Create(ctx, &domain.AssignmentEvent{
			ID:         uuid.New().String(),
			JobID:      j.ID,
			TechID:     prevID,
			TechName:   prevName,
			Action:     domain.ActionUnassigned,
			AssignedBy: assignedByOrManual(by),
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return err
		}
		job = j
		return nil
	})
	return job, err
}

func (s *assignService) BulkAssign(ctx context.Context, reqs []contract.AssignRequest) []contract.BulkAssignResult {
	results := make([]contract.BulkAssignResult, 0, len(reqs))
	for _, req := range reqs {
		res := contract.BulkAssignResult{JobID: req.JobID, TechID: req.TechID}
		job, err := s.Assign(ctx, req)
		if err != nil {
			res.Err = err.Error()
		} else {
			res.OK = true
			res.TechName = job.AssignedTechName
		}
		results = append(results, res)
	}
	return results
}

func (s *assignService) History(ctx context.Context, jobID string) ([]*domain.AssignmentEvent, error) {
	return s.events.ListByJob(ctx, jobID)
}

func (s *assignService) Recent(ctx context.Context, limit int) ([]*domain.AssignmentEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.events.ListRecent(ctx, limit)
}

func assignedByOrManual(by string) string {
	if by == "" {
		return "manual"
	}
	return by
}
