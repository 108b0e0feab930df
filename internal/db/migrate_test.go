package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"technicians", "jobs", "assignment_events"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_technicians_active",
		"idx_jobs_scheduled_date",
		"idx_jobs_status",
		"idx_jobs_assigned_tech",
		"idx_assignment_events_job",
		"idx_assignment_events_created",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_JobStatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO jobs (id, title, status, created_at, updated_at)
		VALUES ('j1', 'Fix furnace', 'INVALID', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid job status should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO jobs (id, title, status, created_at, updated_at)
		VALUES ('j1', 'Fix furnace', 'pending', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_EventActionCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO jobs (id, title, created_at, updated_at)
		VALUES ('j1', 'Fix furnace', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO assignment_events (id, job_id, action, created_at)
		VALUES ('e1', 'j1', 'teleported', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown action should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO assignment_events (id, job_id, action, created_at)
		VALUES ('e1', 'j1', 'assigned', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_EventCascadesWithJob(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO jobs (id, title, created_at, updated_at)
		VALUES ('j1', 'Fix furnace', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO assignment_events (id, job_id, action, created_at)
		VALUES ('e1', 'j1', 'assigned', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM jobs WHERE id = 'j1'`)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM assignment_events WHERE job_id = 'j1'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "events should cascade with their job")
}

func TestMigrate_JobDefaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO jobs (id, title, created_at, updated_at)
		VALUES ('j1', 'Fix furnace', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	var status, crew string
	var version, crewRequired int
	err = db.QueryRow(`SELECT status, crew, version, crew_required FROM jobs WHERE id = 'j1'`).
		Scan(&status, &crew, &version, &crewRequired)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)
	assert.Equal(t, "[]", crew)
	assert.Equal(t, 1, version)
	assert.Equal(t, 0, crewRequired)
}
