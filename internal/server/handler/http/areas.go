package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mkudelin/taskfolio/internal/middleware"
	"github.com/mkudelin/taskfolio/internal/models"
)

// AreaRepository defines the persistence operations needed by the area
// endpoints.
type AreaRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]models.Area, error)
	GetByID(ctx context.Context, id, userID string) (*models.Area, error)
	Create(ctx context.Context, input models.CreateAreaInput) (*models.Area, error)
	Update(ctx context.Context, id, userID string, updates models.UpdateAreaInput) (*models.Area, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// AreaTaskLister lists the tasks referencing one area.
type AreaTaskLister interface {
	GetByAreaID(ctx context.Context, areaID, userID string) ([]models.Task, error)
}

// AreaProjectLister lists the projects referencing one area.
type AreaProjectLister interface {
	GetByAreaID(ctx context.Context, areaID, userID string) ([]models.Project, error)
}

// AreasHandler handles HTTP requests for area CRUD and child lookups.
type AreasHandler struct {
	Areas    AreaRepository
	Tasks    AreaTaskLister
	Projects AreaProjectLister
	Logger   *zap.Logger
}

// List handles GET /api/areas.
func (h *AreasHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	areas, err := h.Areas.GetByUserID(r.Context(), userID)
	if err != nil {
		h.Logger.Error("list areas", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// Get handles GET /api/areas/{id}.
func (h *AreasHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	area, err := h.Areas.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("get area", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if area == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, area)
}

// ListTasks handles GET /api/areas/{id}/tasks.
func (h *AreasHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	tasks, err := h.Tasks.GetByAreaID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("area tasks", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// ListProjects handles GET /api/areas/{id}/projects.
func (h *AreasHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	projects, err := h.Projects.GetByAreaID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("area projects", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Create handles POST /api/areas.
func (h *AreasHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var input models.CreateAreaInput
	if !decodeValid(w, r, &input) {
		return
	}
	input.UserID = userID

	area, err := h.Areas.Create(r.Context(), input)
	if err != nil {
		h.Logger.Error("create area", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, area)
}

// Update handles PUT /api/areas/{id} with a partial field set.
func (h *AreasHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var updates models.UpdateAreaInput
	if !decodeValid(w, r, &updates) {
		return
	}

	area, err := h.Areas.Update(r.Context(), chi.URLParam(r, "id"), userID, updates)
	if err != nil {
		h.Logger.Error("update area", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if area == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, area)
}

// Delete handles DELETE /api/areas/{id}. Children keep their dangling area
// reference.
func (h *AreasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	removed, err := h.Areas.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("delete area", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
