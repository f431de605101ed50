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

// DailyLogRepository defines the persistence operations needed by the
// daily log endpoints. Rows are addressed by (userID, logDate).
type DailyLogRepository interface {
	GetByUserID(ctx context.Context, userID string, limit int) ([]models.DailyLog, error)
	GetByDate(ctx context.Context, userID string, logDate int64) (*models.DailyLog, error)
	GetLastNDays(ctx context.Context, userID string, days int) ([]models.DailyLog, error)
	Create(ctx context.Context, input models.CreateDailyLogInput) (*models.DailyLog, error)
	Update(ctx context.Context, userID string, logDate int64, updates models.UpdateDailyLogInput) (*models.DailyLog, error)
	Delete(ctx context.Context, userID string, logDate int64) (bool, error)
}

// DailyLogHandler handles HTTP requests for journal rows.
type DailyLogHandler struct {
	Logs   DailyLogRepository
	Logger *zap.Logger
}

func logDateParam(r *http.Request) (int64, bool) {
	date, err := strconv.ParseInt(chi.URLParam(r, "date"), 10, 64)
	return date, err == nil
}

// List handles GET /api/daily-log?limit=N.
func (h *DailyLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.Logs.GetByUserID(r.Context(), userID, limit)
	if err != nil {
		h.Logger.Error("list daily logs", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// Recent handles GET /api/daily-log/recent?days=N.
func (h *DailyLogHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	logs, err := h.Logs.GetLastNDays(r.Context(), userID, days)
	if err != nil {
		h.Logger.Error("recent daily logs", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// Get handles GET /api/daily-log/{date}.
func (h *DailyLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	date, ok := logDateParam(r)
	if !ok {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	log, err := h.Logs.GetByDate(r.Context(), userID, date)
	if err != nil {
		h.Logger.Error("get daily log", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if log == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// Create handles POST /api/daily-log. One row per user per calendar day is
// a caller convention, not a database constraint.
func (h *DailyLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var input models.CreateDailyLogInput
	if !decodeValid(w, r, &input) {
		return
	}
	input.UserID = userID

	log, err := h.Logs.Create(r.Context(), input)
	if err != nil {
		h.Logger.Error("create daily log", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// Update handles PUT /api/daily-log/{date} with a partial field set.
func (h *DailyLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	date, ok := logDateParam(r)
	if !ok {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	var updates models.UpdateDailyLogInput
	if !decodeValid(w, r, &updates) {
		return
	}

	log, err := h.Logs.Update(r.Context(), userID, date, updates)
	if err != nil {
		h.Logger.Error("update daily log", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if log == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// Delete handles DELETE /api/daily-log/{date}.
func (h *DailyLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	date, ok := logDateParam(r)
	if !ok {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	removed, err := h.Logs.Delete(r.Context(), userID, date)
	if err != nil {
		h.Logger.Error("delete daily log", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
