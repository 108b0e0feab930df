package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldserve/dispatch/internal/db"
	"github.com/fieldserve/dispatch/internal/domain"
)

// jobColumns is the canonical SELECT column list for jobs.
const jobColumns = `id, title, category, service_type, description, estimated_duration,
		customer_address, service_address, zone, scheduled_date, scheduled_time,
		assigned_tech_id, assigned_tech_name, crew, crew_required, required_certs,
		status, version, created_at, updated_at`

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(conn db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: conn}
}

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (id, title, category, service_type, description, estimated_duration,
		customer_address, service_address, zone, scheduled_date, scheduled_time,
		assigned_tech_id, assigned_tech_name, crew, crew_required, required_certs,
		status, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.ID,
		j.Title,
		j.Category,
		j.ServiceType,
		j.Description,
		j.EstimatedDuration,
		j.CustomerAddress,
		j.ServiceAddress,
		j.Zone,
		nullableTimeToString(j.ScheduledDate, dateLayout),
		j.ScheduledTime,
		j.AssignedTechID,
		j.AssignedTechName,
		crewToJSON(j.Crew),
		j.CrewRequired,
		stringsToJSON(j.RequiredCerts),
		string(j.Status),
		j.Version,
		j.CreatedAt.Format(time.RFC3339),
		j.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	return r.scanJob(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteJobRepo) List(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteJobRepo) ListByStatus(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("listing jobs by status: %w", err)
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

// ListSchedulable keeps every non-terminal status, matching
// domain.JobStatus.Schedulable: an in-progress job whose technician left
// still needs to show up for reassignment.
func (r *SQLiteJobRepo) ListSchedulable(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE status NOT IN ('completed', 'cancelled')
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schedulable jobs: %w", err)
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteJobRepo) ListScheduledOn(ctx context.Context, day time.Time) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE scheduled_date = ?
		  AND status NOT IN ('completed', 'cancelled')
		ORDER BY scheduled_time, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, day.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing jobs for %s: %w", day.Format(dateLayout), err)
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteJobRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE scheduled_date >= ? AND scheduled_date < ?
		  AND status NOT IN ('completed', 'cancelled')
		ORDER BY scheduled_date, scheduled_time, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing jobs between %s and %s: %w",
			from.Format(dateLayout), to.Format(dateLayout), err)
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteJobRepo) Update(ctx context.Context, j *domain.Job) error {
	j.UpdatedAt = time.Now().UTC()
	query := `UPDATE jobs SET title = ?, category = ?, service_type = ?, description = ?,
		estimated_duration = ?, customer_address = ?, service_address = ?, zone = ?,
		scheduled_date = ?, scheduled_time = ?, crew_required = ?, required_certs = ?,
		status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		j.Title,
		j.Category,
		j.ServiceType,
		j.Description,
		j.EstimatedDuration,
		j.CustomerAddress,
		j.ServiceAddress,
		j.Zone,
		nullableTimeToString(j.ScheduledDate, dateLayout),
		j.ScheduledTime,
		j.CrewRequired,
		stringsToJSON(j.RequiredCerts),
		string(j.Status),
		j.UpdatedAt.Format(time.RFC3339),
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s: %w", j.ID, ErrNotFound)
	}
	return nil
}

// UpdateAssignment writes assignment fields with optimistic locking on the
// version column. Two dispatchers racing to assign the same job cannot both
// win: the loser's guarded UPDATE matches zero rows and gets
// ErrVersionConflict.
func (r *SQLiteJobRepo) UpdateAssignment(ctx context.Context, j *domain.Job) error {
	j.UpdatedAt = time.Now().UTC()
	query := `UPDATE jobs SET assigned_tech_id = ?, assigned_tech_name = ?, crew = ?,
		scheduled_date = ?, scheduled_time = ?, status = ?,
		version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		j.AssignedTechID,
		j.AssignedTechName,
		crewToJSON(j.Crew),
		nullableTimeToString(j.ScheduledDate, dateLayout),
		j.ScheduledTime,
		string(j.Status),
		j.UpdatedAt.Format(time.RFC3339),
		j.ID,
		j.Version,
	)
	if err != nil {
		return fmt.Errorf("updating job assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking job assignment update: %w", err)
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE id = ?`, j.ID).Scan(&exists); err == nil && exists == 0 {
			return fmt.Errorf("job %s: %w", j.ID, ErrNotFound)
		}
		return fmt.Errorf("job %s: %w", j.ID, ErrVersionConflict)
	}
	j.Version++
	return nil
}

func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM jobs WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	return nil
}

// scanJob scans a single job from a *sql.Row.
func (r *SQLiteJobRepo) scanJob(row *sql.Row) (*domain.Job, error) {
	var j domain.Job
	var statusStr, crewStr, certsStr string
	var scheduledDateStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&j.ID, &j.Title, &j.Category, &j.ServiceType, &j.Description, &j.EstimatedDuration,
		&j.CustomerAddress, &j.ServiceAddress, &j.Zone, &scheduledDateStr, &j.ScheduledTime,
		&j.AssignedTechID, &j.AssignedTechName, &crewStr, &j.CrewRequired, &certsStr,
		&statusStr, &j.Version, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	return r.populateJob(&j, statusStr, crewStr, certsStr, scheduledDateStr, createdAtStr, updatedAtStr)
}

// scanJobs scans multiple jobs from *sql.Rows.
func (r *SQLiteJobRepo) scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	var jobs []*domain.Job
	for rows.Next() {
		var j domain.Job
		var statusStr, crewStr, certsStr string
		var scheduledDateStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&j.ID, &j.Title, &j.Category, &j.ServiceType, &j.Description, &j.EstimatedDuration,
			&j.CustomerAddress, &j.ServiceAddress, &j.Zone, &scheduledDateStr, &j.ScheduledTime,
			&j.AssignedTechID, &j.AssignedTechName, &crewStr, &j.CrewRequired, &certsStr,
			&statusStr, &j.Version, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		job, err := r.populateJob(&j, statusStr, crewStr, certsStr, scheduledDateStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

// populateJob fills in parsed fields on a Job after scanning raw values.
func (r *SQLiteJobRepo) populateJob(
	j *domain.Job,
	statusStr, crewStr, certsStr string,
	scheduledDateStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Job, error) {
	j.Status = domain.JobStatus(statusStr)
	j.Crew = jsonToCrew(crewStr)
	j.RequiredCerts = jsonToStrings(certsStr)
	j.ScheduledDate = parseNullableTime(scheduledDateStr, dateLayout)

	var parseErr error
	j.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	j.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return j, nil
}
