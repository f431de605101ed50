package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mkudelin/taskfolio/internal/middleware"
	"github.com/mkudelin/taskfolio/internal/models"
)

// TaskRepository defines the persistence operations needed by the task
// endpoints.
type TaskRepository interface {
	GetByUserID(ctx context.Context, userID string, limit int) ([]models.Task, error)
	GetByID(ctx context.Context, id, userID string) (*models.Task, error)
	GetTodaysTasks(ctx context.Context, userID string, ref int64) ([]models.Task, error)
	Create(ctx context.Context, input models.CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, id, userID string, updates models.UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	CompleteTask(ctx context.Context, id, userID string) (*models.Task, error)
	CountByStatus(ctx context.Context, userID string, status models.TaskStatus) (int64, error)
}

// TasksHandler handles HTTP requests for task CRUD and task queries.
type TasksHandler struct {
	Tasks  TaskRepository
	Logger *zap.Logger
}

// List handles GET /api/tasks?limit=N.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tasks, err := h.Tasks.GetByUserID(r.Context(), userID, limit)
	if err != nil {
		h.Logger.Error("list tasks", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	task, err := h.Tasks.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("get task", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if task == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Today handles GET /api/tasks/today: tasks due or planned within the
// current UTC day.
func (h *TasksHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	tasks, err := h.Tasks.GetTodaysTasks(r.Context(), userID, time.Now().Unix())
	if err != nil {
		h.Logger.Error("todays tasks", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Count handles GET /api/tasks/count?status=done.
func (h *TasksHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	status := models.TaskStatus(r.URL.Query().Get("status"))
	switch status {
	case models.StatusToDo, models.StatusInProgress, models.StatusWaiting, models.StatusDone, models.StatusArchived:
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	count, err := h.Tasks.CountByStatus(r.Context(), userID, status)
	if err != nil {
		h.Logger.Error("count tasks", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// Create handles POST /api/tasks.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var input models.CreateTaskInput
	if !decodeValid(w, r, &input) {
		return
	}
	input.UserID = userID

	task, err := h.Tasks.Create(r.Context(), input)
	if err != nil {
		h.Logger.Error("create task", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id} with a partial field set.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var updates models.UpdateTaskInput
	if !decodeValid(w, r, &updates) {
		return
	}

	task, err := h.Tasks.Update(r.Context(), chi.URLParam(r, "id"), userID, updates)
	if err != nil {
		h.Logger.Error("update task", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if task == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Complete handles POST /api/tasks/{id}/complete.
func (h *TasksHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	task, err := h.Tasks.CompleteTask(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("complete task", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if task == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	removed, err := h.Tasks.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.Logger.Error("delete task", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
