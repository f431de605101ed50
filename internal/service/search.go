// Package service provides business logic composed on top of the
// repository layer.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/mkudelin/taskfolio/internal/models"
)

const (
	// perTypeCap is the result ceiling applied independently to each entity
	// type before merging. There is no combined cap: the total may reach
	// four times the requested limit.
	perTypeCap = 20
	// snippetMax is the character budget for free-text snippets.
	snippetMax = 140
)

// TaskSearcher finds tasks matching a query for one user.
type TaskSearcher interface {
	SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Task, error)
}

// ProjectSearcher finds projects matching a query for one user.
type ProjectSearcher interface {
	SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Project, error)
}

// AreaSearcher finds areas matching a query for one user.
type AreaSearcher interface {
	SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.Area, error)
}

// DailyLogSearcher finds daily log rows matching a query for one user.
type DailyLogSearcher interface {
	SearchByUserID(ctx context.Context, userID, query string, limit int) ([]models.DailyLog, error)
}

// SearchService fans a query out to all four entity repositories and merges
// the hits into one normalized result set.
type SearchService struct {
	tasks    TaskSearcher
	projects ProjectSearcher
	areas    AreaSearcher
	logs     DailyLogSearcher
}

// NewSearchService constructs a SearchService over the four entity
// searchers.
func NewSearchService(tasks TaskSearcher, projects ProjectSearcher, areas AreaSearcher, logs DailyLogSearcher) *SearchService {
	return &SearchService{tasks: tasks, projects: projects, areas: areas, logs: logs}
}

// Search runs the four entity searches concurrently, each capped at
// min(20, limit), and concatenates the normalized hits in fixed order:
// tasks, projects, areas, daily logs. If any one search fails the whole
// operation fails; there is no partial-result fallback.
func (s *SearchService) Search(ctx context.Context, userID, query string, limit int) (*models.SearchResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("search: empty query")
	}

	perType := perTypeCap
	if limit > 0 && limit < perType {
		perType = limit
	}

	var (
		tasks    []models.Task
		projects []models.Project
		areas    []models.Area
		logs     []models.DailyLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.SearchByUserID(gctx, userID, query, perType)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.projects.SearchByUserID(gctx, userID, query, perType)
		return err
	})
	g.Go(func() error {
		var err error
		areas, err = s.areas.SearchByUserID(gctx, userID, query, perType)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.logs.SearchByUserID(gctx, userID, query, perType)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]models.SearchResult, 0, len(tasks)+len(projects)+len(areas)+len(logs))
	for _, t := range tasks {
		results = append(results, models.SearchResult{
			EntityType: "task",
			EntityID:   t.ID,
			Title:      t.Title,
			Snippet:    buildSnippet(t.Description),
			Href:       "/ui/tasks",
			UpdatedAt:  toMillis(t.UpdatedAt),
		})
	}
	for _, p := range projects {
		results = append(results, models.SearchResult{
			EntityType: "project",
			EntityID:   p.ID,
			Title:      p.Name,
			Snippet:    buildSnippet(p.Description),
			Href:       "/ui/projects",
			UpdatedAt:  toMillis(p.UpdatedAt),
		})
	}
	for _, a := range areas {
		results = append(results, models.SearchResult{
			EntityType: "area",
			EntityID:   a.ID,
			Title:      a.Name,
			Snippet:    buildSnippet(a.Description),
			Href:       "/ui/areas",
			UpdatedAt:  toMillis(a.UpdatedAt),
		})
	}
	for _, l := range logs {
		snippet := l.Notes
		if snippet == "" {
			snippet = l.Mood
		}
		results = append(results, models.SearchResult{
			EntityType: "daily_log",
			EntityID:   l.ID,
			Title:      "Daily Log: " + time.Unix(l.LogDate, 0).UTC().Format("2006-01-02"),
			Snippet:    buildSnippet(snippet),
			Href:       "/ui/daily-log",
			UpdatedAt:  toMillis(l.UpdatedAt),
		})
	}

	return &models.SearchResponse{Query: query, Results: results, Total: len(results)}, nil
}

// buildSnippet trims the value and cuts anything longer than 140 characters
// down to 140 with an ellipsis marker.
func buildSnippet(value string) string {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) <= snippetMax {
		return trimmed
	}
	runes := []rune(trimmed)
	return strings.TrimSpace(string(runes[:snippetMax])) + "..."
}

// toMillis converts stored unix seconds to the millisecond representation
// used by search results.
func toMillis(sec int64) int64 {
	if sec == 0 {
		return 0
	}
	return sec * 1000
}
