package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkudelin/taskfolio/internal/models"
)

var areaCols = []string{"id", "user_id", "name", "theme_color", "description",
	"created_at", "updated_at"}

func setupAreaMock(t *testing.T) (*PostgresAreaRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresAreaRepository(db)
	return repo, mock, func() { db.Close() }
}

func TestAreaGetByID_WrongOwnerReturnsAbsent(t *testing.T) {
	repo, mock, cleanup := setupAreaMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM areas WHERE id = $1 AND user_id = $2`)).
		WithArgs("a1", "intruder").
		WillReturnRows(sqlmock.NewRows(areaCols))

	area, err := repo.GetByID(context.Background(), "a1", "intruder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area != nil {
		t.Errorf("expected absent area, got %+v", area)
	}
}

func TestAreaCreate(t *testing.T) {
	repo, mock, cleanup := setupAreaMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO areas`)).
		WithArgs(sqlmock.AnyArg(), "u1", "Errands", "#6C63FF", nil,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(areaCols).
			AddRow("a1", "u1", "Errands", "#6C63FF", nil, int64(100), int64(100)))

	area, err := repo.Create(context.Background(), models.CreateAreaInput{
		UserID:     "u1",
		Name:       "Errands",
		ThemeColor: "#6C63FF",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area.ID != "a1" || area.ThemeColor != "#6C63FF" {
		t.Errorf("unexpected area: %+v", area)
	}
}

func TestAreaDelete_WrongOwnerRemovesNothing(t *testing.T) {
	repo, mock, cleanup := setupAreaMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM areas WHERE id = $1 AND user_id = $2`)).
		WithArgs("a1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), "a1", "intruder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("wrong owner must not remove the row")
	}
}
