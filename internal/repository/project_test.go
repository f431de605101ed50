package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkudelin/taskfolio/internal/models"
)

var projectCols = []string{"id", "user_id", "name", "status", "description",
	"start_date", "end_date", "area_id", "created_at", "updated_at"}

func setupProjectMock(t *testing.T) (*PostgresProjectRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresProjectRepository(db)
	return repo, mock, func() { db.Close() }
}

func projectRow(id, userID, name, status string) *sqlmock.Rows {
	return sqlmock.NewRows(projectCols).
		AddRow(id, userID, name, status, nil, nil, nil, nil, int64(100), int64(100))
}

func TestProjectCreate_DefaultsToPlanning(t *testing.T) {
	repo, mock, cleanup := setupProjectMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO projects`)).
		WithArgs(sqlmock.AnyArg(), "u1", "Milk run", "planning", nil, nil, nil, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(projectRow("p1", "u1", "Milk run", "planning"))

	project, err := repo.Create(context.Background(), models.CreateProjectInput{
		UserID: "u1",
		Name:   "Milk run",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.Status != models.ProjectPlanning {
		t.Errorf("status = %q; want planning", project.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProjectGetActiveProjects(t *testing.T) {
	repo, mock, cleanup := setupProjectMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM projects WHERE user_id = $1 AND status = $2`)).
		WithArgs("u1", "active").
		WillReturnRows(projectRow("p1", "u1", "Milk run", "active"))

	projects, err := repo.GetActiveProjects(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].Status != models.ProjectActive {
		t.Errorf("unexpected projects: %+v", projects)
	}
}

func TestProjectGetByAreaID(t *testing.T) {
	repo, mock, cleanup := setupProjectMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM projects WHERE area_id = $1 AND user_id = $2`)).
		WithArgs("a1", "u1").
		WillReturnRows(projectRow("p1", "u1", "Milk run", "active"))

	projects, err := repo.GetByAreaID(context.Background(), "a1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("expected 1 project, got %d", len(projects))
	}
}

func TestProjectUpdate_WrongOwnerReturnsAbsent(t *testing.T) {
	repo, mock, cleanup := setupProjectMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE projects SET name = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`)).
		WithArgs("Renamed", sqlmock.AnyArg(), "p1", "intruder").
		WillReturnRows(sqlmock.NewRows(projectCols))

	name := "Renamed"
	project, err := repo.Update(context.Background(), "p1", "intruder", models.UpdateProjectInput{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project != nil {
		t.Errorf("expected absent project, got %+v", project)
	}
}

func TestProjectSearchByUserID(t *testing.T) {
	repo, mock, cleanup := setupProjectMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(name) LIKE '%' || LOWER($2) || '%' ESCAPE '\' OR LOWER(description) LIKE '%' || LOWER($2) || '%' ESCAPE '\')`) +
		`\s+` + regexp.QuoteMeta(`ORDER BY updated_at DESC LIMIT $3`)).
		WithArgs("u1", "milk", 20).
		WillReturnRows(projectRow("p1", "u1", "Milk run", "active"))

	projects, err := repo.SearchByUserID(context.Background(), "u1", "milk", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Milk run" {
		t.Errorf("unexpected results: %+v", projects)
	}
}
