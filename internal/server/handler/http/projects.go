package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mkudelin/taskfolio/internal/middleware"
	"github.com/mkudelin/taskfolio/internal/models"
)

// ProjectRepository defines the persistence operations needed by the
// project endpoints.
type ProjectRepository interface {
	GetByUserID(ctx context.Context, userID string, limit int) ([]models.Project, error)
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)
	GetActiveProjects(ctx context.Context, userID string) ([]models.Project, error)
	Create(ctx context.Context, input models.CreateProjectInput) (*models.Project, error)
	Update(ctx context.Context, id, userID string, updates models.UpdateProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// ProjectTaskLister lists the tasks referencing one project.
type ProjectTaskLister interface {
	GetByProjectID(ctx context.Context, projectID, userID string) ([]models.Task, error)
}

// ProjectsHandler handles HTTP requests for project CRUD and project
// queries.
type ProjectsHandler struct {
	Projects ProjectRepository
	Tasks    ProjectTaskLister
	Logger   *zap.Logger
}

// List handles GET /api/projects?limit=N.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	projects, err := h.Projects.GetByUserID(r.Context(), userID, limit)
	if err != nil {
		h.Logger.Error("list projects", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Active handles GET /api/projects/active.
func (h *ProjectsHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	projects, err := h.Projects.GetActiveProjects(r.Context(), userID)
	if err != nil {
		h.Logger.Error("active projects", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get handles GET /api/projects/{id}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	project, err := h.Projects.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("get project", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if project == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Tasks handles GET /api/projects/{id}/tasks.
func (h *ProjectsHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	tasks, err := h.Tasks.GetByProjectID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("project tasks", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var input models.CreateProjectInput
	if !decodeValid(w, r, &input) {
		return
	}
	input.UserID = userID

	project, err := h.Projects.Create(r.Context(), input)
	if err != nil {
		h.Logger.Error("create project", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// Update handles PUT /api/projects/{id} with a partial field set.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var updates models.UpdateProjectInput
	if !decodeValid(w, r, &updates) {
		return
	}

	project, err := h.Projects.Update(r.Context(), chi.URLParam(r, "id"), userID, updates)
	if err != nil {
		h.Logger.Error("update project", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if project == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{id}. Tasks keep their dangling
// project reference.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	removed, err := h.Projects.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("delete project", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
