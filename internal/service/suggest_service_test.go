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

func TestSuggestForJob_SkilledTechRanksFirst(t *testing.T) {
	techs, jobs, _, _ := setupRepos(t)
	ctx := context.Background()

	hvac := testutil.NewTestTech("Ana", testutil.WithSkills("hvac"))
	plumber := testutil.NewTestTech("Ben", testutil.WithSkills("plumbing"))
	require.NoError(t, techs.Create(ctx, hvac))
	require.NoError(t, techs.Create(ctx, plumber))

	job := testutil.NewTestJob("AC down", testutil.WithCategory("HVAC Repair"))
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewSuggestService(jobs, techs)
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	out, err := svc.SuggestForJob(ctx, contract.SuggestRequest{JobID: job.ID, Date: &monday})
	require.NoError(t, err)

	require.Len(t, out.Suggestions, 2)
	require.NotNil(t, out.TopPick)
	assert.Equal(t, hvac.ID, out.TopPick.TechID)
	assert.Greater(t, out.Suggestions[0].Score, out.Suggestions[1].Score)
	assert.True(t, out.HasGoodMatch)
	assert.True(t, out.TopPick.IsRecommended)
}

func TestSuggestForJob_DefaultsToJobDate(t *testing.T) {
	techs, jobs, _, _ := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana", testutil.WithDayOff("saturday"))
	require.NoError(t, techs.Create(ctx, tech))

	saturday := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	job := testutil.NewTestJob("Weekend call", testutil.WithScheduledDate(saturday))
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewSuggestService(jobs, techs)
	out, err := svc.SuggestForJob(ctx, contract.SuggestRequest{JobID: job.ID})
	require.NoError(t, err)

	assert.True(t, out.Date.Equal(saturday))
	require.Len(t, out.Suggestions, 1)
	assert.True(t, out.Suggestions[0].HasWarnings, "day off on the job's own date should surface as a warning")
}

func TestSuggestSlot_FirstGapBeforeExistingBooking(t *testing.T) {
	techs, jobs, _, _ := setupRepos(t)
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

	svc := NewSuggestService(jobs, techs)
	out, err := svc.SuggestSlot(ctx, contract.SlotRequest{JobID: job.ID, TechID: tech.ID, Date: &monday})
	require.NoError(t, err)

	assert.True(t, out.Found)
	assert.Equal(t, "08:00", out.Slot, "a one hour job fits exactly before the 09:00 booking")
}

func TestSuggestSlot_NoRoomInTheDay(t *testing.T) {
	techs, jobs, _, _ := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana")
	require.NoError(t, techs.Create(ctx, tech))

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	for _, start := range []string{"08:00", "12:00"} {
		require.NoError(t, jobs.Create(ctx, testutil.NewTestJob("Long visit",
			testutil.WithAssignedTech(tech.ID, tech.Name),
			testutil.WithScheduledDate(monday),
			testutil.WithScheduledTime(start),
			testutil.WithDuration("4 hours"),
			testutil.WithJobStatus(domain.JobScheduled),
		)))
	}

	job := testutil.NewTestJob("One more", testutil.WithDuration("2 hours"))
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewSuggestService(jobs, techs)
	out, err := svc.SuggestSlot(ctx, contract.SlotRequest{JobID: job.ID, TechID: tech.ID, Date: &monday})
	require.NoError(t, err)

	assert.False(t, out.Found)
	assert.Empty(t, out.Slot)
}

func TestConflictCheck_DayOffAndTimeOverlap(t *testing.T) {
	techs, jobs, _, _ := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana", testutil.WithDayOff("sunday"))
	require.NoError(t, techs.Create(ctx, tech))

	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	booked := testutil.NewTestJob("Existing call",
		testutil.WithAssignedTech(tech.ID, tech.Name),
		testutil.WithScheduledDate(sunday),
		testutil.WithScheduledTime("10:00"),
		testutil.WithDuration("60"),
		testutil.WithJobStatus(domain.JobScheduled),
	)
	require.NoError(t, jobs.Create(ctx, booked))

	job := testutil.NewTestJob("Clashing call",
		testutil.WithScheduledDate(sunday),
		testutil.WithScheduledTime("10:30"),
		testutil.WithDuration("60"),
	)
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewConflictService(jobs, techs)
	report, err := svc.Check(ctx, contract.ConflictRequest{JobID: job.ID, TechID: tech.ID})
	require.NoError(t, err)

	assert.True(t, report.HasConflicts)
	assert.True(t, report.HasErrors)

	codes := map[contract.ConflictCode]bool{}
	for _, c := range report.Conflicts {
		codes[c.Code] = true
	}
	assert.True(t, codes[contract.ConflictDayOff])
	assert.True(t, codes[contract.ConflictTime])
}

func TestConflictCheck_CleanAssignment(t *testing.T) {
	techs, jobs, _, _ := setupRepos(t)
	ctx := context.Background()

	tech := testutil.NewTestTech("Ana")
	require.NoError(t, techs.Create(ctx, tech))
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	job := testutil.NewTestJob("Quiet day call",
		testutil.WithScheduledDate(monday),
		testutil.WithScheduledTime("09:00"),
	)
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewConflictService(jobs, techs)
	report, err := svc.Check(ctx, contract.ConflictRequest{JobID: job.ID, TechID: tech.ID})
	require.NoError(t, err)

	assert.False(t, report.HasConflicts)
	assert.Empty(t, report.Conflicts)
}
