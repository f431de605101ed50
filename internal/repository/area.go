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

const areaColumns = `id, user_id, name, theme_color, description, created_at, updated_at`

// PostgresAreaRepository implements area persistence operations against a
// PostgreSQL database. Areas carry no status: they never reach a terminal
// state.
type PostgresAreaRepository struct {
	DB *sql.DB
}

func NewPostgresAreaRepository(db *sql.DB) *PostgresAreaRepository {
	return &PostgresAreaRepository{DB: db}
}

func scanArea(s rowScanner) (*models.Area, error) {
	var (
		a           models.Area
		themeColor  sql.NullString
		description sql.NullString
	)
	if err := s.Scan(&a.ID, &a.UserID, &a.Name, &themeColor, &description,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ThemeColor = themeColor.String
	a.Description = description.String
	return &a, nil
}

func collectAreas(rows *sql.Rows) ([]models.Area, error) {
	defer rows.Close()

	var areas []models.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		areas = append(areas, *a)
	}
	return areas, rows.Err()
}

// GetByUserID fetches all areas owned by the user.
func (r *PostgresAreaRepository) GetByUserID(ctx context.Context, userID string) ([]models.Area, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+areaColumns+` FROM areas WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return collectAreas(rows)
}

// GetByID fetches a single area for the given user, (nil, nil) on miss.
func (r *PostgresAreaRepository) GetByID(ctx context.Context, id, userID string) (*models.Area, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+areaColumns+` FROM areas WHERE id = $1 AND user_id = $2
	`, id, userID)
	a, err := scanArea(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

// Create inserts a new area, assigning its id and timestamps.
func (r *PostgresAreaRepository) Create(ctx context.Context, input models.CreateAreaInput) (*models.Area, error) {
	now := time.Now().Unix()
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO areas (`+areaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+areaColumns+`
	`, uuid.NewString(), input.UserID, input.Name,
		nullString(input.ThemeColor), nullString(input.Description), now, now)

	a, err := scanArea(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return a, nil
}

// Update applies the provided fields to an owned area and refreshes
// updated_at, (nil, nil) when no row matched.
func (r *PostgresAreaRepository) Update(ctx context.Context, id, userID string, updates models.UpdateAreaInput) (*models.Area, error) {
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
	if updates.ThemeColor != nil {
		add("theme_color", nullString(*updates.ThemeColor))
	}
	if updates.Description != nil {
		add("description", nullString(*updates.Description))
	}
	add("updated_at", time.Now().Unix())

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE areas SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), areaColumns)

	a, err := scanArea(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return a, nil
}

// Delete removes an owned area and reports whether a row was removed.
// Tasks and projects referencing the area keep their dangling area_id.
func (r *PostgresAreaRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM areas WHERE id = $1 AND user_id = $2`, id, userID)
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
// area name or description, scoped to the owner and capped at limit.
func (r *PostgresAreaRepository) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Area, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+areaColumns+` FROM areas
		WHERE user_id = $1 AND (LOWER(name) LIKE '%' || LOWER($2) || '%' ESCAPE '\' OR LOWER(description) LIKE '%' || LOWER($2) || '%' ESCAPE '\')
		ORDER BY updated_at DESC LIMIT $3
	`, userID, escapeLike(query), limit)
	if err != nil {
		return nil, fmt.Errorf("SearchByUserID: %w", err)
	}
	return collectAreas(rows)
}
