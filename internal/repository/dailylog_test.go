package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkudelin/taskfolio/internal/models"
)

var dailyLogCols = []string{"id", "user_id", "log_date", "mood", "sleep_hours",
	"morning_routine", "evening_routine", "notes", "created_at", "updated_at"}

func setupDailyLogMock(t *testing.T) (*PostgresDailyLogRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresDailyLogRepository(db)
	return repo, mock, func() { db.Close() }
}

func dailyLogRow(id, userID string, logDate int64) *sqlmock.Rows {
	return sqlmock.NewRows(dailyLogCols).
		AddRow(id, userID, logDate, nil, nil, false, false, nil, int64(100), int64(100))
}

func TestDailyLogGetByDate(t *testing.T) {
	repo, mock, cleanup := setupDailyLogMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM daily_logs WHERE user_id = $1 AND log_date = $2`)).
		WithArgs("u1", int64(1728000000)).
		WillReturnRows(dailyLogRow("d1", "u1", 1728000000))

	log, err := repo.GetByDate(context.Background(), "u1", 1728000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log == nil || log.LogDate != 1728000000 {
		t.Errorf("unexpected log: %+v", log)
	}
}

func TestDailyLogGetByDate_WrongOwnerReturnsAbsent(t *testing.T) {
	repo, mock, cleanup := setupDailyLogMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM daily_logs WHERE user_id = $1 AND log_date = $2`)).
		WithArgs("intruder", int64(1728000000)).
		WillReturnRows(sqlmock.NewRows(dailyLogCols))

	log, err := repo.GetByDate(context.Background(), "intruder", 1728000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log != nil {
		t.Errorf("expected absent log, got %+v", log)
	}
}

func TestDailyLogGetLastNDays_PredicateInQuery(t *testing.T) {
	repo, mock, cleanup := setupDailyLogMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND log_date >= $2 ORDER BY log_date DESC`)).
		WithArgs("u1", sqlmock.AnyArg()).
		WillReturnRows(dailyLogRow("d1", "u1", 1728000000))

	logs, err := repo.GetLastNDays(context.Background(), "u1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected 1 log, got %d", len(logs))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDailyLogUpdate_KeyedByUserAndDate(t *testing.T) {
	repo, mock, cleanup := setupDailyLogMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(dailyLogCols).
		AddRow("d1", "u1", int64(1728000000), "4", nil, true, false, nil, int64(100), int64(101))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE daily_logs SET mood = $1, morning_routine = $2, updated_at = $3 WHERE user_id = $4 AND log_date = $5`)).
		WithArgs("4", true, sqlmock.AnyArg(), "u1", int64(1728000000)).
		WillReturnRows(rows)

	mood := "4"
	morning := true
	log, err := repo.Update(context.Background(), "u1", 1728000000, models.UpdateDailyLogInput{
		Mood:           &mood,
		MorningRoutine: &morning,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Mood != "4" || !log.MorningRoutine {
		t.Errorf("unexpected log: %+v", log)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDailyLogDelete(t *testing.T) {
	repo, mock, cleanup := setupDailyLogMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM daily_logs WHERE user_id = $1 AND log_date = $2`)).
		WithArgs("u1", int64(1728000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Delete(context.Background(), "u1", 1728000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Error("expected delete to report a removed row")
	}
}

func TestDailyLogSearchByUserID_MatchesNotesAndMood(t *testing.T) {
	repo, mock, cleanup := setupDailyLogMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(notes) LIKE '%' || LOWER($2) || '%' ESCAPE '\' OR LOWER(mood) LIKE '%' || LOWER($2) || '%' ESCAPE '\')`) +
		`\s+` + regexp.QuoteMeta(`ORDER BY updated_at DESC LIMIT $3`)).
		WithArgs("u1", "tired", 20).
		WillReturnRows(sqlmock.NewRows(dailyLogCols).
			AddRow("d1", "u1", int64(1728000000), "tired", nil, false, false, "slept badly", int64(100), int64(100)))

	logs, err := repo.SearchByUserID(context.Background(), "u1", "tired", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 || logs[0].Mood != "tired" {
		t.Errorf("unexpected results: %+v", logs)
	}
}
