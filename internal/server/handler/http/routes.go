package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mkudelin/taskfolio/internal/middleware"
	"github.com/mkudelin/taskfolio/internal/session"
)

// NewRouter constructs the HTTP handler serving the taskfolio API.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs each request
//  3. SessionAuth(sessions)                — resolves the session token to a
//     user id, 401 otherwise
//
// All routes are mounted under /api and require an authenticated user.
func NewRouter(
	tasks *TasksHandler,
	projects *ProjectsHandler,
	areas *AreasHandler,
	dailyLog *DailyLogHandler,
	settings *SettingsHandler,
	search *SearchHandler,
	sessions session.Store,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.SessionAuth(sessions))

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", tasks.List)
			r.Post("/", tasks.Create)
			r.Get("/today", tasks.Today)
			r.Get("/count", tasks.Count)
			r.Get("/{id}", tasks.Get)
			r.Put("/{id}", tasks.Update)
			r.Delete("/{id}", tasks.Delete)
			r.Post("/{id}/complete", tasks.Complete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.List)
			r.Post("/", projects.Create)
			r.Get("/active", projects.Active)
			r.Get("/{id}", projects.Get)
			r.Put("/{id}", projects.Update)
			r.Delete("/{id}", projects.Delete)
			r.Get("/{id}/tasks", projects.ListTasks)
		})

		r.Route("/areas", func(r chi.Router) {
			r.Get("/", areas.List)
			r.Post("/", areas.Create)
			r.Get("/{id}", areas.Get)
			r.Put("/{id}", areas.Update)
			r.Delete("/{id}", areas.Delete)
			r.Get("/{id}/tasks", areas.ListTasks)
			r.Get("/{id}/projects", areas.ListProjects)
		})

		r.Route("/daily-log", func(r chi.Router) {
			r.Get("/", dailyLog.List)
			r.Post("/", dailyLog.Create)
			r.Get("/recent", dailyLog.Recent)
			r.Get("/{date}", dailyLog.Get)
			r.Put("/{date}", dailyLog.Update)
			r.Delete("/{date}", dailyLog.Delete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settings.Get)
			r.Put("/", settings.Update)
		})

		r.Get("/search", search.Get)
	})

	return r
}
