package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Soft references (project_id, area_id) are plain text columns: deleting a
// parent leaves children pointing at the dead id, matching the documented
// last-write-wins, no-cascade model.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL DEFAULT 'to_do',
    priority TEXT NOT NULL DEFAULT 'medium',
    due_date BIGINT,
    do_date BIGINT,
    effort BIGINT,
    context TEXT,
    is_completed BOOLEAN NOT NULL DEFAULT FALSE,
    project_id TEXT,
    area_id TEXT,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks (user_id);

CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'planning',
    description TEXT,
    start_date BIGINT,
    end_date BIGINT,
    area_id TEXT,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_user ON projects (user_id);

CREATE TABLE IF NOT EXISTS areas (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    theme_color TEXT,
    description TEXT,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_areas_user ON areas (user_id);

CREATE TABLE IF NOT EXISTS daily_logs (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    log_date BIGINT NOT NULL,
    mood TEXT,
    sleep_hours DOUBLE PRECISION,
    morning_routine BOOLEAN NOT NULL DEFAULT FALSE,
    evening_routine BOOLEAN NOT NULL DEFAULT FALSE,
    notes TEXT,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_daily_logs_user_date ON daily_logs (user_id, log_date);

CREATE TABLE IF NOT EXISTS settings (
    user_id TEXT PRIMARY KEY,
    show_completed BOOLEAN NOT NULL DEFAULT FALSE,
    compact_mode BOOLEAN NOT NULL DEFAULT FALSE,
    notifications BOOLEAN NOT NULL DEFAULT TRUE,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
