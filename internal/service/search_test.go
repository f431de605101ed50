package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkudelin/taskfolio/internal/models"
	"github.com/mkudelin/taskfolio/internal/service"
)

type fakeTaskSearcher struct {
	limit  int
	result []models.Task
	err    error
}

func (f *fakeTaskSearcher) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Task, error) {
	f.limit = limit
	return f.result, f.err
}

type fakeProjectSearcher struct {
	limit  int
	result []models.Project
	err    error
}

func (f *fakeProjectSearcher) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Project, error) {
	f.limit = limit
	return f.result, f.err
}

type fakeAreaSearcher struct {
	limit  int
	result []models.Area
	err    error
}

func (f *fakeAreaSearcher) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Area, error) {
	f.limit = limit
	return f.result, f.err
}

type fakeLogSearcher struct {
	limit  int
	result []models.DailyLog
	err    error
}

func (f *fakeLogSearcher) SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.DailyLog, error) {
	f.limit = limit
	return f.result, f.err
}

func newService(tasks *fakeTaskSearcher, projects *fakeProjectSearcher, areas *fakeAreaSearcher, logs *fakeLogSearcher) *service.SearchService {
	return service.NewSearchService(tasks, projects, areas, logs)
}

func TestSearch_MilkScenario(t *testing.T) {
	// "milk" matches the task title and the project name but not the area.
	tasks := &fakeTaskSearcher{result: []models.Task{{ID: "t1", Title: "Buy milk", UpdatedAt: 100}}}
	projects := &fakeProjectSearcher{result: []models.Project{{ID: "p1", Name: "Milk run", UpdatedAt: 200}}}
	areas := &fakeAreaSearcher{}
	logs := &fakeLogSearcher{}

	resp, err := newService(tasks, projects, areas, logs).Search(context.Background(), "u1", "milk", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Total != 2 || len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].EntityType != "task" || resp.Results[0].EntityID != "t1" {
		t.Errorf("first result should be the task, got %+v", resp.Results[0])
	}
	if resp.Results[1].EntityType != "project" || resp.Results[1].Title != "Milk run" {
		t.Errorf("second result should be the project, got %+v", resp.Results[1])
	}
	if resp.Results[0].UpdatedAt != 100000 || resp.Results[1].UpdatedAt != 200000 {
		t.Errorf("timestamps must be milliseconds: %d, %d",
			resp.Results[0].UpdatedAt, resp.Results[1].UpdatedAt)
	}
}

func TestSearch_FixedConcatenationOrder(t *testing.T) {
	tasks := &fakeTaskSearcher{result: []models.Task{{ID: "t1", Title: "a"}}}
	projects := &fakeProjectSearcher{result: []models.Project{{ID: "p1", Name: "b"}}}
	areas := &fakeAreaSearcher{result: []models.Area{{ID: "a1", Name: "c"}}}
	logs := &fakeLogSearcher{result: []models.DailyLog{{ID: "d1", LogDate: 1728000000}}}

	resp, err := newService(tasks, projects, areas, logs).Search(context.Background(), "u1", "x", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"task", "project", "area", "daily_log"}
	for i, typ := range want {
		if resp.Results[i].EntityType != typ {
			t.Errorf("results[%d].EntityType = %q; want %q", i, resp.Results[i].EntityType, typ)
		}
	}
	if got := resp.Results[3].Title; got != "Daily Log: 2024-10-04" {
		t.Errorf("daily log title = %q", got)
	}
}

func TestSearch_PerTypeCap(t *testing.T) {
	tasks := &fakeTaskSearcher{}
	projects := &fakeProjectSearcher{}
	areas := &fakeAreaSearcher{}
	logs := &fakeLogSearcher{}
	svc := newService(tasks, projects, areas, logs)

	// No limit: the per-type cap is 20.
	if _, err := svc.Search(context.Background(), "u1", "x", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, got := range []int{tasks.limit, projects.limit, areas.limit, logs.limit} {
		if got != 20 {
			t.Errorf("per-type limit = %d; want 20", got)
		}
	}

	// A smaller overall limit caps each type at min(20, limit).
	if _, err := svc.Search(context.Background(), "u1", "x", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks.limit != 5 || logs.limit != 5 {
		t.Errorf("per-type limit = %d/%d; want 5", tasks.limit, logs.limit)
	}

	// A larger one does not raise the cap.
	if _, err := svc.Search(context.Background(), "u1", "x", 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks.limit != 20 {
		t.Errorf("per-type limit = %d; want 20", tasks.limit)
	}
}

func TestSearch_SnippetTruncation(t *testing.T) {
	long := strings.Repeat("a", 200)
	tasks := &fakeTaskSearcher{result: []models.Task{{ID: "t1", Title: "Long", Description: long}}}
	short := &fakeTaskSearcher{result: []models.Task{{ID: "t2", Title: "Short", Description: "  trimmed  "}}}
	projects := &fakeProjectSearcher{}
	areas := &fakeAreaSearcher{}
	logs := &fakeLogSearcher{}

	resp, err := newService(tasks, projects, areas, logs).Search(context.Background(), "u1", "x", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snippet := resp.Results[0].Snippet
	if len(snippet) != 143 || !strings.HasSuffix(snippet, "...") {
		t.Errorf("snippet length = %d, suffix ok = %v", len(snippet), strings.HasSuffix(snippet, "..."))
	}

	resp, err = newService(short, projects, areas, logs).Search(context.Background(), "u1", "x", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Results[0].Snippet != "trimmed" {
		t.Errorf("snippet = %q; want %q", resp.Results[0].Snippet, "trimmed")
	}
}

func TestSearch_DailyLogSnippetFallsBackToMood(t *testing.T) {
	logs := &fakeLogSearcher{result: []models.DailyLog{{ID: "d1", LogDate: 1728000000, Mood: "great"}}}

	resp, err := newService(&fakeTaskSearcher{}, &fakeProjectSearcher{}, &fakeAreaSearcher{}, logs).
		Search(context.Background(), "u1", "great", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Results[0].Snippet != "great" {
		t.Errorf("snippet = %q; want mood fallback", resp.Results[0].Snippet)
	}
}

func TestSearch_AnyFailureFailsTheWhole(t *testing.T) {
	wantErr := errors.New("db down")
	projects := &fakeProjectSearcher{err: wantErr}

	_, err := newService(&fakeTaskSearcher{}, projects, &fakeAreaSearcher{}, &fakeLogSearcher{}).
		Search(context.Background(), "u1", "x", 0)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Search error = %v; want %v", err, wantErr)
	}
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	_, err := newService(&fakeTaskSearcher{}, &fakeProjectSearcher{}, &fakeAreaSearcher{}, &fakeLogSearcher{}).
		Search(context.Background(), "u1", "", 0)
	if err == nil {
		t.Fatal("expected error for empty query")
	}
}
