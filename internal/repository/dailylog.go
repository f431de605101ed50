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

const defaultDailyLogLimit = 30

const dailyLogColumns = `id, user_id, log_date, mood, sleep_hours, morning_routine, evening_routine, notes, created_at, updated_at`

// PostgresDailyLogRepository implements daily log persistence operations
// against a PostgreSQL database. One row per user per calendar day; rows
// are addressed by (user_id, log_date) rather than id.
type PostgresDailyLogRepository struct {
	DB *sql.DB
}

func NewPostgresDailyLogRepository(db *sql.DB) *PostgresDailyLogRepository {
	return &PostgresDailyLogRepository{DB: db}
}

func scanDailyLog(s rowScanner) (*models.DailyLog, error) {
	var (
		l          models.DailyLog
		mood       sql.NullString
		sleepHours sql.NullFloat64
		notes      sql.NullString
	)
	if err := s.Scan(&l.ID, &l.UserID, &l.LogDate, &mood, &sleepHours,
		&l.MorningRoutine, &l.EveningRoutine, &notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Mood = mood.String
	l.SleepHours = sleepHours.Float64
	l.Notes = notes.String
	return &l, nil
}

func collectDailyLogs(rows *sql.Rows) ([]models.DailyLog, error) {
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// GetByUserID fetches the user's log rows, most recent day first, truncated
// to limit. A non-positive limit falls back to 30.
func (r *PostgresDailyLogRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]models.DailyLog, error) {
	if limit <= 0 {
		limit = defaultDailyLogLimit
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+dailyLogColumns+` FROM daily_logs WHERE user_id = $1 ORDER BY log_date DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return collectDailyLogs(rows)
}

// GetByDate fetches the row for the given journal day, (nil, nil) on miss.
func (r *PostgresDailyLogRepository) GetByDate(ctx context.Context, userID string, logDate int64) (*models.DailyLog, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+dailyLogColumns+` FROM daily_logs WHERE user_id = $1 AND log_date = $2
	`, userID, logDate)
	l, err := scanDailyLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByDate: %w", err)
	}
	return l, nil
}

// GetLastNDays fetches every log row dated within the trailing days*86400
// second window. The date predicate runs in the query, so qualifying rows
// are never dropped by a candidate cap.
func (r *PostgresDailyLogRepository) GetLastNDays(ctx context.Context, userID string, days int) ([]models.DailyLog, error) {
	if days <= 0 {
		days = 7
	}
	start := time.Now().Unix() - int64(days)*86400

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+dailyLogColumns+` FROM daily_logs
		WHERE user_id = $1 AND log_date >= $2 ORDER BY log_date DESC
	`, userID, start)
	if err != nil {
		return nil, fmt.Errorf("GetLastNDays: %w", err)
	}
	return collectDailyLogs(rows)
}

// Create inserts a new log row, assigning its id and timestamps.
func (r *PostgresDailyLogRepository) Create(ctx context.Context, input models.CreateDailyLogInput) (*models.DailyLog, error) {
	now := time.Now().Unix()
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO daily_logs (`+dailyLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+dailyLogColumns+`
	`, uuid.NewString(), input.UserID, input.LogDate, nullString(input.Mood),
		nullFloat64(input.SleepHours), input.MorningRoutine, input.EveningRoutine,
		nullString(input.Notes), now, now)

	l, err := scanDailyLog(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return l, nil
}

// Update applies the provided fields to the row for the given journal day
// and refreshes updated_at, (nil, nil) when no row matched.
func (r *PostgresDailyLogRepository) Update(ctx context.Context, userID string, logDate int64, updates models.UpdateDailyLogInput) (*models.DailyLog, error) {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.Mood != nil {
		add("mood", nullString(*updates.Mood))
	}
	if updates.SleepHours != nil {
		add("sleep_hours", nullFloat64(*updates.SleepHours))
	}
	if updates.MorningRoutine != nil {
		add("morning_routine", *updates.MorningRoutine)
	}
	if updates.EveningRoutine != nil {
		add("evening_routine", *updates.EveningRoutine)
	}
	if updates.Notes != nil {
		add("notes", nullString(*updates.Notes))
	}
	add("updated_at", time.Now().Unix())

	args = append(args, userID, logDate)
	query := fmt.Sprintf(`UPDATE daily_logs SET %s WHERE user_id = $%d AND log_date = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), dailyLogColumns)

	l, err := scanDailyLog(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return l, nil
}

// Delete removes the row for the given journal day and reports whether a
// row was removed.
func (r *PostgresDailyLogRepository) Delete(ctx context.Context, userID string, logDate int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM daily_logs WHERE user_id = $1 AND log_date = $2`, userID, logDate)
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
// log notes or mood, scoped to the owner and capped at limit.
func (r *PostgresDailyLogRepository) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.DailyLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+dailyLogColumns+` FROM daily_logs
		WHERE user_id = $1 AND (LOWER(notes) LIKE '%' || LOWER($2) || '%' ESCAPE '\' OR LOWER(mood) LIKE '%' || LOWER($2) || '%' ESCAPE '\')
		ORDER BY updated_at DESC LIMIT $3
	`, userID, escapeLike(query), limit)
	if err != nil {
		return nil, fmt.Errorf("SearchByUserID: %w", err)
	}
	return collectDailyLogs(rows)
}

func nullFloat64(v float64) sql.NullFloat64 {
	if v == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
