package testutil

import (
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/google/uuid"
)

// Technician options
type TechOption func(*domain.Technician)

func WithSkills(skills ...string) TechOption {
	return func(t *domain.Technician) {
		t.Skills = skills
	}
}

func WithSpecialties(specialties ...string) TechOption {
	return func(t *domain.Technician) {
		t.Specialties = specialties
	}
}

func WithCertifications(certs ...string) TechOption {
	return func(t *domain.Technician) {
		t.Certifications = certs
	}
}

func WithWorkingHours(h domain.WorkingHours) TechOption {
	return func(t *domain.Technician) {
		t.WorkingHours = h
	}
}

func WithDayOff(days ...string) TechOption {
	return func(t *domain.Technician) {
		if t.WorkingHours == nil {
			t.WorkingHours = domain.WorkingHours{}
		}
		for _, d := range days {
			t.WorkingHours[d] = domain.DayHours{Enabled: false}
		}
	}
}

func WithMaxJobsPerDay(n int) TechOption {
	return func(t *domain.Technician) {
		t.MaxJobsPerDay = n
	}
}

func WithMaxHoursPerDay(n int) TechOption {
	return func(t *domain.Technician) {
		t.MaxHoursPerDay = n
	}
}

func WithHomeZip(zip string) TechOption {
	return func(t *domain.Technician) {
		t.HomeZip = zip
	}
}

func WithPreferredZones(zones ...string) TechOption {
	return func(t *domain.Technician) {
		t.PreferredZones = zones
	}
}

func WithInactive() TechOption {
	return func(t *domain.Technician) {
		t.Active = false
	}
}

func NewTestTech(name string, opts ...TechOption) *domain.Technician {
	now := time.Now().UTC()
	t := &domain.Technician{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Job options
type JobOption func(*domain.Job)

func WithCategory(c string) JobOption {
	return func(j *domain.Job) {
		j.Category = c
	}
}

func WithDuration(d string) JobOption {
	return func(j *domain.Job) {
		j.EstimatedDuration = d
	}
}

func WithServiceAddress(addr string) JobOption {
	return func(j *domain.Job) {
		j.ServiceAddress = addr
	}
}

func WithZone(z string) JobOption {
	return func(j *domain.Job) {
		j.Zone = z
	}
}

func WithScheduledDate(d time.Time) JobOption {
	return func(j *domain.Job) {
		j.ScheduledDate = &d
	}
}

func WithScheduledTime(hhmm string) JobOption {
	return func(j *domain.Job) {
		j.ScheduledTime = hhmm
	}
}

func WithAssignedTech(id, name string) JobOption {
	return func(j *domain.Job) {
		j.AssignedTechID = id
		j.AssignedTechName = name
	}
}

func WithCrew(members ...domain.CrewMember) JobOption {
	return func(j *domain.Job) {
		j.Crew = members
	}
}

func WithCrewRequired(n int) JobOption {
	return func(j *domain.Job) {
		j.CrewRequired = n
	}
}

func WithRequiredCerts(certs ...string) JobOption {
	return func(j *domain.Job) {
		j.RequiredCerts = certs
	}
}

func WithJobStatus(s domain.JobStatus) JobOption {
	return func(j *domain.Job) {
		j.Status = s
	}
}

// NewTestEvent builds an "assigned" audit event for the given job and tech.
func NewTestEvent(jobID, techID, techName string) *domain.AssignmentEvent {
	return &domain.AssignmentEvent{
		ID:         uuid.New().String(),
		JobID:      jobID,
		TechID:     techID,
		TechName:   techName,
		Action:     domain.ActionAssigned,
		AssignedBy: "test",
		CreatedAt:  time.Now().UTC(),
	}
}

func NewTestJob(title string, opts ...JobOption) *domain.Job {
	now := time.Now().UTC()
	j := &domain.Job{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.JobPending,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}
