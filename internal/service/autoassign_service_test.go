package service

import (
	"context"
	"testing"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/fieldserve/dispatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed clock for deterministic runs: Monday September 7 2026.
var autoNow = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

func TestAutoAssign_EmptyRoster(t *testing.T) {
	techs, jobs, _, uow := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, jobs.Create(ctx, testutil.NewTestJob("Fix furnace")))

	svc := NewAutoAssignService(jobs, techs, uow)
	_, err := svc.Run(ctx, contract.AutoAssignRequest{Now: &autoNow})
	require.Error(t, err)

	var aerr *contract.AutoAssignError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, contract.ErrEmptyRoster, aerr.Code)
}

func TestAutoAssign_NoUnassignedJobs(t *testing.T) {
	techs, jobs, _, uow := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana")
	require.NoError(t, techs.Create(ctx, tech))
	require.NoError(t, jobs.Create(ctx, testutil.NewTestJob("Fix furnace",
		testutil.WithAssignedTech(tech.ID, tech.Name),
		testutil.WithJobStatus(domain.JobScheduled),
	)))

	svc := NewAutoAssignService(jobs, techs, uow)
	_, err := svc.Run(ctx, contract.AutoAssignRequest{Now: &autoNow})
	require.Error(t, err)

	var aerr *contract.AutoAssignError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, contract.ErrNoUnassignedJobs, aerr.Code)
}

func TestAutoAssign_DryRunPlansWithoutWriting(t *testing.T) {
	techs, jobs, _, uow := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana")
	require.NoError(t, techs.Create(ctx, tech))
	job := testutil.NewTestJob("Fix furnace", testutil.WithDuration("60"))
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewAutoAssignService(jobs, techs, uow)
	resp, err := svc.Run(ctx, contract.AutoAssignRequest{DryRun: true, Now: &autoNow})
	require.NoError(t, err)

	assert.False(t, resp.Applied)
	assert.Empty(t, resp.WriteResults)
	assert.Equal(t, 1, resp.Summary.Assigned)
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Plan.Successful, 1)
	assert.Equal(t, tech.ID, resp.Days[0].Plan.Successful[0].TechID)

	stored, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.AssignedTechID, "dry run must leave the job untouched")
	assert.Equal(t, domain.JobPending, stored.Status)
	assert.Equal(t, 1, stored.Version)
}

func TestAutoAssign_ApplyWritesAssignmentSlotAndEvent(t *testing.T) {
	techs, jobs, events, uow := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana")
	require.NoError(t, techs.Create(ctx, tech))

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	booked := testutil.NewTestJob("Morning call",
		testutil.WithAssignedTech(tech.ID, tech.Name),
		testutil.WithScheduledDate(monday),
		testutil.WithScheduledTime("09:00"),
		testutil.WithDuration("60"),
		testutil.WithJobStatus(domain.JobScheduled),
	)
	require.NoError(t, jobs.Create(ctx, booked))
	job := testutil.NewTestJob("Fix furnace", testutil.WithDuration("60"))
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewAutoAssignService(jobs, techs, uow)
	resp, err := svc.Run(ctx, contract.AutoAssignRequest{Now: &autoNow})
	require.NoError(t, err)

	assert.True(t, resp.Applied)
	require.Len(t, resp.WriteResults, 1)
	assert.True(t, resp.WriteResults[0].OK)
	assert.Equal(t, job.ID, resp.WriteResults[0].JobID)

	stored, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, tech.ID, stored.AssignedTechID)
	assert.Equal(t, domain.JobScheduled, stored.Status)
	require.NotNil(t, stored.ScheduledDate)
	assert.True(t, stored.ScheduledDate.Equal(monday))
	assert.Equal(t, "08:00", stored.ScheduledTime, "the gap before the 09:00 booking fits a one hour job")
	assert.Equal(t, 2, stored.Version)

	history, err := events.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionAssigned, history[0].Action)
	assert.Equal(t, "auto-assign", history[0].AssignedBy)
	require.NotNil(t, history[0].Score)
	assert.Greater(t, *history[0].Score, 0)
}

func TestAutoAssign_DatedJobsKeepTheirDates(t *testing.T) {
	techs, jobs, _, uow := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana")
	require.NoError(t, techs.Create(ctx, tech))

	wednesday := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)
	dated := testutil.NewTestJob("Wednesday install", testutil.WithScheduledDate(wednesday))
	undated := testutil.NewTestJob("Whenever repair")
	require.NoError(t, jobs.Create(ctx, dated))
	require.NoError(t, jobs.Create(ctx, undated))

	svc := NewAutoAssignService(jobs, techs, uow)
	resp, err := svc.Run(ctx, contract.AutoAssignRequest{Now: &autoNow})
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assert.True(t, resp.Days[0].Date.Equal(monday), "undated work lands on the first available day")
	assert.True(t, resp.Days[1].Date.Equal(wednesday))
	assert.Equal(t, 2, resp.Summary.Assigned)

	storedDated, err := jobs.GetByID(ctx, dated.ID)
	require.NoError(t, err)
	require.NotNil(t, storedDated.ScheduledDate)
	assert.True(t, storedDated.ScheduledDate.Equal(wednesday), "a job with a date keeps it")

	storedUndated, err := jobs.GetByID(ctx, undated.ID)
	require.NoError(t, err)
	require.NotNil(t, storedUndated.ScheduledDate)
	assert.True(t, storedUndated.ScheduledDate.Equal(monday))
}

func TestAutoAssign_UnplaceableJobIsAnOutcomeNotAnError(t *testing.T) {
	techs, jobs, _, uow := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana", testutil.WithDayOff("sunday"))
	require.NoError(t, techs.Create(ctx, tech))

	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, jobs.Create(ctx, testutil.NewTestJob("Existing call",
			testutil.WithAssignedTech(tech.ID, tech.Name),
			testutil.WithScheduledDate(sunday),
			testutil.WithDuration("60"),
			testutil.WithJobStatus(domain.JobScheduled),
		)))
	}
	job := testutil.NewTestJob("Sunday emergency", testutil.WithScheduledDate(sunday))
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewAutoAssignService(jobs, techs, uow)
	resp, err := svc.Run(ctx, contract.AutoAssignRequest{Now: &autoNow})
	require.NoError(t, err, "an unplaceable job is reported in the plan, not returned as an error")

	assert.Equal(t, 1, resp.Summary.Unassigned)
	assert.Equal(t, 0, resp.Summary.Assigned)
	assert.Empty(t, resp.WriteResults)

	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Plan.Failed, 1)
	failed := resp.Days[0].Plan.Failed[0]
	assert.True(t, failed.Failed)
	require.NotEmpty(t, failed.Warnings)
	assert.Equal(t, contract.WarnNoSuitableTech, failed.Warnings[0].Code)

	stored, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.AssignedTechID)
	assert.Equal(t, domain.JobPending, stored.Status)
}

func TestAutoAssign_SpreadsOverflowAcrossDays(t *testing.T) {
	techs, jobs, _, uow := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana", testutil.WithMaxJobsPerDay(2))
	require.NoError(t, techs.Create(ctx, tech))
	for i := 0; i < 3; i++ {
		require.NoError(t, jobs.Create(ctx, testutil.NewTestJob("Backlog repair")))
	}

	svc := NewAutoAssignService(jobs, techs, uow)
	resp, err := svc.Run(ctx, contract.AutoAssignRequest{DryRun: true, Now: &autoNow})
	require.NoError(t, err)

	require.Len(t, resp.Days, 2, "three jobs against a two per day cap need two days")
	assert.Len(t, resp.Days[0].Plan.Assignments, 2)
	assert.Len(t, resp.Days[1].Plan.Assignments, 1)
	assert.Equal(t, 3, resp.Summary.Total)
}

func TestAutoAssign_DaysLimitsThePlanningHorizon(t *testing.T) {
	techs, jobs, _, uow := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana")
	require.NoError(t, techs.Create(ctx, tech))

	nextWeek := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	soon := testutil.NewTestJob("Today repair")
	later := testutil.NewTestJob("Next week install", testutil.WithScheduledDate(nextWeek))
	require.NoError(t, jobs.Create(ctx, soon))
	require.NoError(t, jobs.Create(ctx, later))

	svc := NewAutoAssignService(jobs, techs, uow)
	resp, err := svc.Run(ctx, contract.AutoAssignRequest{Days: 3, DryRun: true, Now: &autoNow})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1, "jobs dated past the horizon wait for a later run")
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assert.True(t, resp.Days[0].Date.Equal(monday))
	assert.Equal(t, 1, resp.Summary.Total)
}
