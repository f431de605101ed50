package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkudelin/taskfolio/internal/middleware"
	"github.com/mkudelin/taskfolio/internal/models"
)

// SettingsRepository defines the persistence operations needed by the
// settings endpoints.
type SettingsRepository interface {
	// GetByUserID returns the user's settings row, creating it with default
	// values on first access.
	GetByUserID(ctx context.Context, userID string) (*models.Settings, error)
	Update(ctx context.Context, userID string, updates models.UpdateSettingsInput) (*models.Settings, error)
}

// SettingsHandler handles HTTP requests for per-user settings.
type SettingsHandler struct {
	Settings SettingsRepository
	Logger   *zap.Logger
}

// Get handles GET /api/settings with get-or-create semantics.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	settings, err := h.Settings.GetByUserID(r.Context(), userID)
	if err != nil {
		h.Logger.Error("get settings", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings with a partial field set. The row is
// created first if the user has never read their settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var updates models.UpdateSettingsInput
	if !decodeValid(w, r, &updates) {
		return
	}

	if _, err := h.Settings.GetByUserID(r.Context(), userID); err != nil {
		h.Logger.Error("ensure settings", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	settings, err := h.Settings.Update(r.Context(), userID, updates)
	if err != nil {
		h.Logger.Error("update settings", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if settings == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
