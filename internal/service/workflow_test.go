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

// TestDispatcherWorkflow walks one dispatcher morning end to end: build the
// roster, intake jobs, hand-assign the urgent one after a suggestion and a
// conflict check, let auto-assign sweep the backlog, then undo one mistake
// and read the audit trail back.
func TestDispatcherWorkflow(t *testing.T) {
	techRepo, jobRepo, eventRepo, uow := setupRepos(t)
	ctx := context.Background()

	roster := NewRosterService(techRepo)
	jobSvc := NewJobService(jobRepo, techRepo)
	suggest := NewSuggestService(jobRepo, techRepo)
	conflicts := NewConflictService(jobRepo, techRepo)
	assign := NewAssignService(jobRepo, techRepo, eventRepo, uow)
	auto := NewAutoAssignService(jobRepo, techRepo, uow)

	// Two technicians: an HVAC specialist and a generalist.
	ana := &domain.Technician{Name: "Ana", Skills: []string{"hvac"}}
	ben := &domain.Technician{Name: "Ben"}
	require.NoError(t, roster.Create(ctx, ana))
	require.NoError(t, roster.Create(ctx, ben))

	// Morning intake: one urgent furnace call plus a small backlog.
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	urgent := testutil.NewTestJob("No heat, furnace dead",
		testutil.WithCategory("HVAC Repair"),
		testutil.WithDuration("2 hours"),
		testutil.WithScheduledDate(monday),
	)
	require.NoError(t, jobSvc.Create(ctx, urgent))
	for _, title := range []string{"Leaky faucet", "Dryer vent cleaning"} {
		require.NoError(t, jobSvc.Create(ctx, testutil.NewTestJob(title)))
	}

	open, err := jobSvc.ListUnassigned(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 3)

	// The suggester should put the specialist on top for the furnace call.
	sugg, err := suggest.SuggestForJob(ctx, contract.SuggestRequest{JobID: urgent.ID})
	require.NoError(t, err)
	require.NotNil(t, sugg.TopPick)
	assert.Equal(t, ana.ID, sugg.TopPick.TechID)

	report, err := conflicts.Check(ctx, contract.ConflictRequest{JobID: urgent.ID, TechID: ana.ID})
	require.NoError(t, err)
	assert.False(t, report.HasErrors)

	score := sugg.TopPick.Score
	_, err = assign.Assign(ctx, contract.AssignRequest{
		JobID:      urgent.ID,
		TechID:     ana.ID,
		AssignedBy: "dispatcher",
		Score:      &score,
	})
	require.NoError(t, err)

	// Auto-assign sweeps the remaining backlog.
	now := monday.Add(9 * time.Hour)
	resp, err := auto.Run(ctx, contract.AutoAssignRequest{Now: &now})
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, 2, resp.Summary.Assigned)
	for _, res := range resp.WriteResults {
		assert.True(t, res.OK, "write for %s: %s", res.JobID, res.Err)
	}

	open, err = jobSvc.ListUnassigned(ctx)
	require.NoError(t, err)
	assert.Empty(t, open, "nothing should be left unassigned")

	// The customer cancels the faucet visit; pull the technician back off.
	var faucet *domain.Job
	all, err := jobSvc.List(ctx)
	require.NoError(t, err)
	for _, j := range all {
		if j.Title == "Leaky faucet" {
			faucet = j
		}
	}
	require.NotNil(t, faucet)

	_, err = assign.Unassign(ctx, faucet.ID, "dispatcher")
	require.NoError(t, err)

	history, err := assign.History(ctx, faucet.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	byAction := map[domain.AssignmentAction]string{}
	for _, e := range history {
		byAction[e.Action] = e.AssignedBy
	}
	assert.Equal(t, "auto-assign", byAction[domain.ActionAssigned])
	assert.Equal(t, "dispatcher", byAction[domain.ActionUnassigned])
}
