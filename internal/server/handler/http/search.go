package http

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mkudelin/taskfolio/internal/middleware"
	"github.com/mkudelin/taskfolio/internal/models"
)

// Searcher runs the federated search across all entity types.
type Searcher interface {
	Search(ctx context.Context, userID, query string, limit int) (*models.SearchResponse, error)
}

// SearchHandler handles GET /api/search.
type SearchHandler struct {
	Search Searcher
	Logger *zap.Logger
}

// Get handles GET /api/search?q=...&limit=N. The limit caps each entity
// type independently, not the merged total.
func (h *SearchHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	resp, err := h.Search.Search(r.Context(), userID, query, limit)
	if err != nil {
		h.Logger.Error("search", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
