package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkudelin/taskfolio/internal/models"
)

const defaultProjectLimit = 50

const projectColumns = `id, user_id, name, status, description, start_date, end_date, area_id, created_at, updated_at`

// PostgresProjectRepository implements project persistence operations
// against a PostgreSQL database.
type PostgresProjectRepository struct {
	DB *sql.DB
}

func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

func scanProject(s rowScanner) (*models.Project, error) {
	var (
		p           models.Project
		description sql.NullString
		startDate   sql.NullInt64
		endDate     sql.NullInt64
		areaID      sql.NullString
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Status, &description,
		&startDate, &endDate, &areaID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.StartDate = startDate.Int64
	p.EndDate = endDate.Int64
	p.AreaID = areaID.String
	return &p, nil
}

func collectProjects(rows *sql.Rows) ([]models.Project, error) {
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// GetByUserID fetches projects owned by the user, newest first, truncated
// to limit. A non-positive limit falls back to 50.
func (r *PostgresProjectRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = defaultProjectLimit
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return collectProjects(rows)
}

// GetByID fetches a single project for the given user, (nil, nil) on miss.
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return p, nil
}

// GetByAreaID fetches all owned projects referencing the given area.
func (r *PostgresProjectRepository) GetByAreaID(ctx context.Context, areaID, userID string) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE area_id = $1 AND user_id = $2
	`, areaID, userID)
	if err != nil {
		return nil, fmt.Errorf("GetByAreaID: %w", err)
	}
	return collectProjects(rows)
}

// GetActiveProjects fetches the user's projects in status "active".
func (r *PostgresProjectRepository) GetActiveProjects(ctx context.Context, userID string) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE user_id = $1 AND status = $2
	`, userID, models.ProjectActive)
	if err != nil {
		return nil, fmt.Errorf("GetActiveProjects: %w", err)
	}
	return collectProjects(rows)
}

// Create inserts a new project, assigning its id and timestamps.
func (r *PostgresProjectRepository) Create(ctx context.Context, input models.CreateProjectInput) (*models.Project, error) {
	status := input.Status
	if status == "" {
		status = models.ProjectPlanning
	}

	now := time.Now().Unix()
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+projectColumns+`
	`, uuid.NewString(), input.UserID, input.Name, status,
		nullString(input.Description), nullInt64(input.StartDate),
		nullInt64(input.EndDate), nullString(input.AreaID), now, now)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return p, nil
}

// Update applies the provided fields to an owned project and refreshes
// updated_at, (nil, nil) when no row matched.
func (r *PostgresProjectRepository) Update(ctx context.Context, id, userID string, updates models.UpdateProjectInput) (*models.Project, error) {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.Name != nil {
		add("name", *updates.Name)
	}
	if updates.Status != nil {
		add("status", *updates.Status)
	}
	if updates.Description != nil {
		add("description", nullString(*updates.Description))
	}
	if updates.StartDate != nil {
		add("start_date", nullInt64(*updates.StartDate))
	}
	if updates.EndDate != nil {
		add("end_date", nullInt64(*updates.EndDate))
	}
	if updates.AreaID != nil {
		add("area_id", nullString(*updates.AreaID))
	}
	add("updated_at", time.Now().Unix())

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), projectColumns)

	p, err := scanProject(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return p, nil
}

// Delete removes an owned project and reports whether a row was removed.
// Tasks referencing the project keep their dangling project_id.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return affected > 0, nil
}

// SearchByUserID matches the query case-insensitively as a substring of the
// project name or description, scoped to the owner and capped at limit.
func (r *PostgresProjectRepository) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE user_id = $1 AND (LOWER(name) LIKE '%' || LOWER($2) || '%' ESCAPE '\' OR LOWER(description) LIKE '%' || LOWER($2) || '%' ESCAPE '\')
		ORDER BY updated_at DESC LIMIT $3
	`, userID, escapeLike(query), limit)
	if err != nil {
		return nil, fmt.Errorf("SearchByUserID: %w", err)
	}
	return collectProjects(rows)
}
