package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"instiwise-api/internal/model"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db    healthChecker
	cache healthChecker
}

func NewHealthHandler(db healthChecker, cache healthChecker) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check pings both backends. A degraded dependency turns the whole
// report red so orchestrators take the instance out of rotation.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	healthy := true

	if err := h.db.Health(ctx); err != nil {
		status["database"] = "unavailable"
		healthy = false
	}
	if err := h.cache.Health(ctx); err != nil {
		status["cache"] = "unavailable"
		healthy = false
	}

	if !healthy {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(model.APIResponse{
			Success: false,
			Message: "Degraded",
			Data:    status,
			Error:   model.TagServerError,
		})
		return
	}

	writeSuccess(w, http.StatusOK, "All systems operational", status, nil)
}
