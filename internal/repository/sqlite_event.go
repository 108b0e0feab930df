package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldserve/dispatch/internal/db"
	"github.com/fieldserve/dispatch/internal/domain"
)

const eventColumns = `id, job_id, tech_id, tech_name, action, assigned_by, score, note, created_at`

// SQLiteAssignmentEventRepo implements AssignmentEventRepo using a SQLite
// database. Events are append-only: there is no update or delete beyond the
// cascade when a job goes away.
type SQLiteAssignmentEventRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentEventRepo creates a new SQLiteAssignmentEventRepo.
func NewSQLiteAssignmentEventRepo(conn db.DBTX) *SQLiteAssignmentEventRepo {
	return &SQLiteAssignmentEventRepo{db: conn}
}

func (r *SQLiteAssignmentEventRepo) Create(ctx context.Context, e *domain.AssignmentEvent) error {
	query := `INSERT INTO assignment_events (id, job_id, tech_id, tech_name, action, assigned_by, score, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.JobID,
		e.TechID,
		e.TechName,
		string(e.Action),
		e.AssignedBy,
		nullableIntToValue(e.Score),
		e.Note,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment event: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentEventRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.AssignmentEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM assignment_events WHERE job_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing assignment events by job: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteAssignmentEventRepo) ListRecent(ctx context.Context, limit int) ([]*domain.AssignmentEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM assignment_events ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent assignment events: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteAssignmentEventRepo) scanEvents(rows *sql.Rows) ([]*domain.AssignmentEvent, error) {
	var events []*domain.AssignmentEvent
	for rows.Next() {
		var e domain.AssignmentEvent
		var actionStr, createdAtStr string
		var score sql.NullInt64

		err := rows.Scan(
			&e.ID, &e.JobID, &e.TechID, &e.TechName, &actionStr, &e.AssignedBy,
			&score, &e.Note, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment event row: %w", err)
		}
		e.Action = domain.AssignmentAction(actionStr)
		e.Score = parseNullableInt(score)

		var parseErr error
		e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignment events: %w", err)
	}
	return events, nil
}
