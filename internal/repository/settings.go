package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mkudelin/taskfolio/internal/models"
)

const settingsColumns = `user_id, show_completed, compact_mode, notifications, created_at, updated_at`

// PostgresSettingsRepository implements per-user settings persistence
// against a PostgreSQL database. Exactly one row per user.
type PostgresSettingsRepository struct {
	DB *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{DB: db}
}

func scanSettings(s rowScanner) (*models.Settings, error) {
	var st models.Settings
	if err := s.Scan(&st.UserID, &st.ShowCompleted, &st.CompactMode,
		&st.Notifications, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetByUserID reads the user's settings row, inserting the defaults
// (show_completed=false, compact_mode=false, notifications=true) on first
// access. The conditional insert rides on ON CONFLICT DO NOTHING, so
// concurrent first requests for the same user cannot race a separate
// existence check.
func (r *PostgresSettingsRepository) GetByUserID(ctx context.Context, userID string) (*models.Settings, error) {
	now := time.Now().Unix()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO settings (user_id, created_at, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, now, now)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID insert: %w", err)
	}

	st, err := scanSettings(r.DB.QueryRowContext(ctx, `
		SELECT `+settingsColumns+` FROM settings WHERE user_id = $1
	`, userID))
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return st, nil
}

// Update applies the provided fields and refreshes updated_at. It returns
// (nil, nil) when no row exists; callers typically invoke GetByUserID first
// to guarantee existence.
func (r *PostgresSettingsRepository) Update(ctx context.Context, userID string, updates models.UpdateSettingsInput) (*models.Settings, error) {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.ShowCompleted != nil {
		add("show_completed", *updates.ShowCompleted)
	}
	if updates.CompactMode != nil {
		add("compact_mode", *updates.CompactMode)
	}
	if updates.Notifications != nil {
		add("notifications", *updates.Notifications)
	}
	add("updated_at", time.Now().Unix())

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE settings SET %s WHERE user_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), settingsColumns)

	st, err := scanSettings(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return st, nil
}
