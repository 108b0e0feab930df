package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_FirstCutToCurrentSchema simulates upgrading a
// database created before crew sizing and certification gating existed.
// Data inserted under the old schema must survive, and the new columns
// must arrive with their defaults.
func TestMigrate_UpgradePath_FirstCutToCurrentSchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	// First-cut jobs table: no crew_required, no required_certs.
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		id                 TEXT PRIMARY KEY,
		title              TEXT NOT NULL,
		category           TEXT NOT NULL DEFAULT '',
		service_type       TEXT NOT NULL DEFAULT '',
		description        TEXT NOT NULL DEFAULT '',
		estimated_duration TEXT NOT NULL DEFAULT '',
		customer_address   TEXT NOT NULL DEFAULT '',
		service_address    TEXT NOT NULL DEFAULT '',
		zone               TEXT NOT NULL DEFAULT '',
		scheduled_date     TEXT,
		scheduled_time     TEXT NOT NULL DEFAULT '',
		assigned_tech_id   TEXT NOT NULL DEFAULT '',
		assigned_tech_name TEXT NOT NULL DEFAULT '',
		crew               TEXT NOT NULL DEFAULT '[]',
		status             TEXT NOT NULL DEFAULT 'pending'
		                   CHECK(status IN ('pending','scheduled','in_progress','completed','cancelled')),
		version            INTEGER NOT NULL DEFAULT 1,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO jobs (id, title, category, estimated_duration, created_at, updated_at)
		VALUES ('j1', 'Water heater swap', 'Plumbing', '3 hours', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db), "migration on legacy schema should succeed")

	var title, certs string
	var crewRequired int
	err = db.QueryRow(`SELECT title, required_certs, crew_required FROM jobs WHERE id = 'j1'`).
		Scan(&title, &certs, &crewRequired)
	require.NoError(t, err)
	assert.Equal(t, "Water heater swap", title, "legacy data should survive migration")
	assert.Equal(t, "[]", certs)
	assert.Equal(t, 0, crewRequired)

	// Idempotency: a second run over the upgraded DB must not break.
	require.NoError(t, Migrate(db))
}
