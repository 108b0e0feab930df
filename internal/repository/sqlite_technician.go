package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldserve/dispatch/internal/db"
	"github.com/fieldserve/dispatch/internal/domain"
)

// technicianColumns is the canonical SELECT column list for technicians.
const technicianColumns = `id, name, color, working_hours, skills, specialties, certifications,
		max_jobs_per_day, max_hours_per_day, default_buffer_minutes,
		home_zip, max_travel_miles, preferred_zones, active, created_at, updated_at`

// SQLiteTechnicianRepo implements TechnicianRepo using a SQLite database.
type SQLiteTechnicianRepo struct {
	db db.DBTX
}

// NewSQLiteTechnicianRepo creates a new SQLiteTechnicianRepo.
func NewSQLiteTechnicianRepo(conn db.DBTX) *SQLiteTechnicianRepo {
	return &SQLiteTechnicianRepo{db: conn}
}

func (r *SQLiteTechnicianRepo) Create(ctx context.Context, t *domain.Technician) error {
	query := `INSERT INTO technicians (id, name, color, working_hours, skills, specialties, certifications,
		max_jobs_per_day, max_hours_per_day, default_buffer_minutes,
		home_zip, max_travel_miles, preferred_zones, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Color,
		hoursToJSON(t.WorkingHours),
		stringsToJSON(t.Skills),
		stringsToJSON(t.Specialties),
		stringsToJSON(t.Certifications),
		t.MaxJobsPerDay,
		t.MaxHoursPerDay,
		t.DefaultBufferMinutes,
		t.HomeZip,
		t.MaxTravelMiles,
		stringsToJSON(t.PreferredZones),
		boolToInt(t.Active),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting technician: %w", err)
	}
	return nil
}

func (r *SQLiteTechnicianRepo) GetByID(ctx context.Context, id string) (*domain.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE id = ?`
	return r.scanTechnician(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTechnicianRepo) GetByName(ctx context.Context, name string) (*domain.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE LOWER(name) = LOWER(?)`
	return r.scanTechnician(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteTechnicianRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}
	defer rows.Close()
	return r.scanTechnicians(rows)
}

func (r *SQLiteTechnicianRepo) Update(ctx context.Context, t *domain.Technician) error {
	t.UpdatedAt = time.Now().UTC()
	query := `UPDATE technicians SET name = ?, color = ?, working_hours = ?, skills = ?,
		specialties = ?, certifications = ?, max_jobs_per_day = ?, max_hours_per_day = ?,
		default_buffer_minutes = ?, home_zip = ?, max_travel_miles = ?, preferred_zones = ?,
		active = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Color,
		hoursToJSON(t.WorkingHours),
		stringsToJSON(t.Skills),
		stringsToJSON(t.Specialties),
		stringsToJSON(t.Certifications),
		t.MaxJobsPerDay,
		t.MaxHoursPerDay,
		t.DefaultBufferMinutes,
		t.HomeZip,
		t.MaxTravelMiles,
		stringsToJSON(t.PreferredZones),
		boolToInt(t.Active),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating technician: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("technician %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTechnicianRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE technicians SET active = 0, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating technician: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("technician %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTechnicianRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM technicians WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting technician: %w", err)
	}
	return nil
}

// scanTechnician scans a single technician from a *sql.Row.
func (r *SQLiteTechnicianRepo) scanTechnician(row *sql.Row) (*domain.Technician, error) {
	var t domain.Technician
	var hoursStr, skillsStr, specialtiesStr, certsStr, zonesStr string
	var activeInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.Name, &t.Color, &hoursStr, &skillsStr, &specialtiesStr, &certsStr,
		&t.MaxJobsPerDay, &t.MaxHoursPerDay, &t.DefaultBufferMinutes,
		&t.HomeZip, &t.MaxTravelMiles, &zonesStr, &activeInt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("technician: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning technician: %w", err)
	}
	return r.populateTechnician(&t, hoursStr, skillsStr, specialtiesStr, certsStr, zonesStr, activeInt, createdAtStr, updatedAtStr)
}

// scanTechnicians scans multiple technicians from *sql.Rows.
func (r *SQLiteTechnicianRepo) scanTechnicians(rows *sql.Rows) ([]*domain.Technician, error) {
	var techs []*domain.Technician
	for rows.Next() {
		var t domain.Technician
		var hoursStr, skillsStr, specialtiesStr, certsStr, zonesStr string
		var activeInt int
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&t.ID, &t.Name, &t.Color, &hoursStr, &skillsStr, &specialtiesStr, &certsStr,
			&t.MaxJobsPerDay, &t.MaxHoursPerDay, &t.DefaultBufferMinutes,
			&t.HomeZip, &t.MaxTravelMiles, &zonesStr, &activeInt, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning technician row: %w", err)
		}
		tech, err := r.populateTechnician(&t, hoursStr, skillsStr, specialtiesStr, certsStr, zonesStr, activeInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		techs = append(techs, tech)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating technicians: %w", err)
	}
	return techs, nil
}

// populateTechnician fills in parsed fields after scanning raw values.
func (r *SQLiteTechnicianRepo) populateTechnician(
	t *domain.Technician,
	hoursStr, skillsStr, specialtiesStr, certsStr, zonesStr string,
	activeInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Technician, error) {
	t.WorkingHours = jsonToHours(hoursStr)
	t.Skills = jsonToStrings(skillsStr)
	t.Specialties = jsonToStrings(specialtiesStr)
	t.Certifications = jsonToStrings(certsStr)
	t.PreferredZones = jsonToStrings(zonesStr)
	t.Active = intToBool(activeInt)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
