// Package repository provides owner-scoped persistence for tasks, projects,
// areas, daily logs, and settings using a PostgreSQL database.
//
// Every predicate conjoins the target identifier with the caller's user id,
// so no row is ever readable, updatable, or deletable across users. Reads
// return nil (not an error) when no row matches; storage faults propagate
// wrapped and uncaught.
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

const defaultTaskLimit = 50

const taskColumns = `id, user_id, title, description, status, priority, due_date, do_date, effort, context, is_completed, project_id, area_id, created_at, updated_at`

// PostgresTaskRepository implements task persistence operations against a
// PostgreSQL database.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the
// provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*models.Task, error) {
	var (
		t           models.Task
		description sql.NullString
		dueDate     sql.NullInt64
		doDate      sql.NullInt64
		effort      sql.NullInt64
		tags        sql.NullString
		projectID   sql.NullString
		areaID      sql.NullString
	)
	if err := s.Scan(&t.ID, &t.UserID, &t.Title, &description, &t.Status, &t.Priority,
		&dueDate, &doDate, &effort, &tags, &t.IsCompleted, &projectID, &areaID,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Description = description.String
	t.DueDate = dueDate.Int64
	t.DoDate = doDate.Int64
	t.Effort = effort.Int64
	t.ProjectID = projectID.String
	t.AreaID = areaID.String

	decoded, err := decodeTags(tags)
	if err != nil {
		return nil, err
	}
	t.Context = decoded
	return &t, nil
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// GetByUserID fetches tasks owned by the user, newest first, truncated to
// limit. A non-positive limit falls back to 50.
func (r *PostgresTaskRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Task, error) {
	if limit <= 0 {
		limit = defaultTaskLimit
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return collectTasks(rows)
}

// GetByID fetches a single task by id for the given user. It returns
// (nil, nil) when no owned row matches, including when the id exists under
// a different owner.
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id, userID string) (*models.Task, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2
	`, id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return t, nil
}

// GetByProjectID fetches all owned tasks referencing the given project.
func (r *PostgresTaskRepository) GetByProjectID(ctx context.Context, projectID, userID string) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 AND user_id = $2
	`, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("GetByProjectID: %w", err)
	}
	return collectTasks(rows)
}

// GetByAreaID fetches all owned tasks referencing the given area.
func (r *PostgresTaskRepository) GetByAreaID(ctx context.Context, areaID, userID string) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE area_id = $1 AND user_id = $2
	`, areaID, userID)
	if err != nil {
		return nil, fmt.Errorf("GetByAreaID: %w", err)
	}
	return collectTasks(rows)
}

// GetTodaysTasks fetches tasks whose due date or do date falls within the
// UTC calendar day containing ref. The day interval is
// [floor(ref/86400)*86400, +86400) and the predicate runs in the query, so
// results are exhaustive.
func (r *PostgresTaskRepository) GetTodaysTasks(ctx context.Context, userID string, ref int64) ([]models.Task, error) {
	dayStart := ref / 86400 * 86400
	dayEnd := dayStart + 86400

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND ((due_date >= $2 AND due_date < $3) OR (do_date >= $2 AND do_date < $3))
	`, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("GetTodaysTasks: %w", err)
	}
	return collectTasks(rows)
}

// Create inserts a new task, assigning its id and timestamps. The context
// tag set is encoded to a single text value for storage.
func (r *PostgresTaskRepository) Create(ctx context.Context, input models.CreateTaskInput) (*models.Task, error) {
	tags, err := encodeTags(input.Context)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.StatusToDo
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := time.Now().Unix()
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+taskColumns+`
	`, uuid.NewString(), input.UserID, input.Title, nullString(input.Description),
		status, priority, nullInt64(input.DueDate), nullInt64(input.DoDate),
		nullInt64(input.Effort), tags, input.IsCompleted,
		nullString(input.ProjectID), nullString(input.AreaID), now, now)

	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return t, nil
}

// Update applies the provided fields to an owned task and refreshes
// updated_at. It returns (nil, nil) when no row matched, for a wrong id as
// well as a wrong owner.
func (r *PostgresTaskRepository) Update(ctx context.Context, id, userID string, updates models.UpdateTaskInput) (*models.Task, error) {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.Title != nil {
		add("title", *updates.Title)
	}
	if updates.Description != nil {
		add("description", nullString(*updates.Description))
	}
	if updates.Status != nil {
		add("status", *updates.Status)
	}
	if updates.Priority != nil {
		add("priority", *updates.Priority)
	}
	if updates.DueDate != nil {
		add("due_date", nullInt64(*updates.DueDate))
	}
	if updates.DoDate != nil {
		add("do_date", nullInt64(*updates.DoDate))
	}
	if updates.Effort != nil {
		add("effort", nullInt64(*updates.Effort))
	}
	if updates.Context != nil {
		tags, err := encodeTags(*updates.Context)
		if err != nil {
			return nil, fmt.Errorf("Update: %w", err)
		}
		add("context", tags)
	}
	if updates.IsCompleted != nil {
		add("is_completed", *updates.IsCompleted)
	}
	if updates.ProjectID != nil {
		add("project_id", nullString(*updates.ProjectID))
	}
	if updates.AreaID != nil {
		add("area_id", nullString(*updates.AreaID))
	}
	add("updated_at", time.Now().Unix())

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), taskColumns)

	t, err := scanTask(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return t, nil
}

// Delete removes an owned task and reports whether a row was removed.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return affected > 0, nil
}

// CompleteTask marks a task finished: is_completed and status = done are
// set together in a single update statement.
func (r *PostgresTaskRepository) CompleteTask(ctx context.Context, id, userID string) (*models.Task, error) {
	completed := true
	status := models.StatusDone
	return r.Update(ctx, id, userID, models.UpdateTaskInput{
		IsCompleted: &completed,
		Status:      &status,
	})
}

// CountByStatus counts the user's tasks in the given status, 0 when none.
func (r *PostgresTaskRepository) CountByStatus(ctx context.Context, userID string, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status = $2
	`, userID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountByStatus: %w", err)
	}
	return count, nil
}

// SearchByUserID matches the query case-insensitively as a substring of the
// task title or description, scoped to the owner and capped at limit.
func (r *PostgresTaskRepository) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND (LOWER(title) LIKE '%' || LOWER($2) || '%' ESCAPE '\' OR LOWER(description) LIKE '%' || LOWER($2) || '%' ESCAPE '\')
		ORDER BY updated_at DESC LIMIT $3
	`, userID, escapeLike(query), limit)
	if err != nil {
		return nil, fmt.Errorf("SearchByUserID: %w", err)
	}
	return collectTasks(rows)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt64(v int64) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}
