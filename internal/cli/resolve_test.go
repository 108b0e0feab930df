package cli

import (
	"context"
	"testing"

	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/fieldserve/dispatch/internal/service"
	"github.com/fieldserve/dispatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, context.Context) {
	database := testutil.NewTestDB(t)
	techs := repository.NewSQLiteTechnicianRepo(database)
	jobs := repository.NewSQLiteJobRepo(database)
	return &App{
		Roster: service.NewRosterService(techs),
		Jobs:   service.NewJobService(jobs, techs),
	}, context.Background()
}

func TestResolveJob_ExactPrefixAndTitle(t *testing.T) {
	app, ctx := newTestApp(t)

	furnace := testutil.NewTestJob("Fix furnace")
	faucet := testutil.NewTestJob("Leaky faucet")
	require.NoError(t, app.Jobs.Create(ctx, furnace))
	require.NoError(t, app.Jobs.Create(ctx, faucet))

	got, err := resolveJob(ctx, app, furnace.ID)
	require.NoError(t, err)
	assert.Equal(t, furnace.ID, got.ID)

	got, err = resolveJob(ctx, app, furnace.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, furnace.ID, got.ID)

	got, err = resolveJob(ctx, app, "leaky faucet")
	require.NoError(t, err)
	assert.Equal(t, faucet.ID, got.ID)

	_, err = resolveJob(ctx, app, "no such job")
	require.Error(t, err)

	_, err = resolveJob(ctx, app, "")
	require.Error(t, err)
}

func TestParseHoursFlag(t *testing.T) {
	day, window, err := parseHoursFlag("Monday=08:00-16:30")
	require.NoError(t, err)
	assert.Equal(t, "monday", day)
	assert.Equal(t, domain.DayHours{Enabled: true, Start: "08:00", End: "16:30"}, window)

	_, _, err = parseHoursFlag("monday")
	require.Error(t, err)

	_, _, err = parseHoursFlag("monday=08:00")
	require.Error(t, err)
}

func TestParseDateFlag(t *testing.T) {
	d, err := parseDateFlag("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDateFlag("2026-09-07")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2026, d.Year())

	_, err = parseDateFlag("next tuesday")
	require.Error(t, err)
}
