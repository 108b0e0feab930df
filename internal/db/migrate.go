package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS technicians (
		id                     TEXT PRIMARY KEY,
		name                   TEXT NOT NULL,
		color                  TEXT NOT NULL DEFAULT '',
		working_hours          TEXT NOT NULL DEFAULT '{}',
		skills                 TEXT NOT NULL DEFAULT '[]',
		specialties            TEXT NOT NULL DEFAULT '[]',
		certifications         TEXT NOT NULL DEFAULT '[]',
		max_jobs_per_day       INTEGER NOT NULL DEFAULT 0,
		max_hours_per_day      INTEGER NOT NULL DEFAULT 0,
		default_buffer_minutes INTEGER NOT NULL DEFAULT 0,
		home_zip               TEXT NOT NULL DEFAULT '',
		max_travel_miles       INTEGER NOT NULL DEFAULT 0,
		preferred_zones        TEXT NOT NULL DEFAULT '[]',
		active                 INTEGER NOT NULL DEFAULT 1,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_technicians_active ON technicians(active)`,

	`CREATE TABLE IF NOT EXISTS jobs (
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
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_scheduled_date ON jobs(scheduled_date)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_assigned_tech ON jobs(assigned_tech_id)`,

	`CREATE TABLE IF NOT EXISTS assignment_events (
		id          TEXT PRIMARY KEY,
		job_id      TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		tech_id     TEXT NOT NULL DEFAULT '',
		tech_name   TEXT NOT NULL DEFAULT '',
		action      TEXT NOT NULL
		            CHECK(action IN ('assigned','crew_assigned','unassigned')),
		assigned_by TEXT NOT NULL DEFAULT '',
		score       INTEGER,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignment_events_job ON assignment_events(job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignment_events_created ON assignment_events(created_at)`,

	// Crew sizing and certification gating arrived after the first cut.
	`ALTER TABLE jobs ADD COLUMN crew_required INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE jobs ADD COLUMN required_certs TEXT NOT NULL DEFAULT '[]'`,
}
