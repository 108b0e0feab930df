package service

import (
	"context"
	"errors"
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/google/uuid"
)

type rosterService struct {
	techs repository.TechnicianRepo
}

func NewRosterService(techs repository.TechnicianRepo) RosterService {
	return &rosterService{techs: techs}
}

func (s *rosterService) Create(ctx context.Context, t *domain.Technician) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.Active = true
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.techs.Create(ctx, t)
}

func (s *rosterService) Get(ctx context.Context, ref string) (*domain.Technician, error) {
	tech, err := s.techs.GetByID(ctx, ref)
	if err == nil {
		return tech, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.techs.GetByName(ctx, ref)
}

func (s *rosterService) List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error) {
	return s.techs.List(ctx, includeInactive)
}

func (s *rosterService) Update(ctx context.Context, t *domain.Technician) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.techs.Update(ctx, t)
}

func (s *rosterService) Deactivate(ctx context.Context, id string) error {
	return s.techs.Deactivate(ctx, id)
}
