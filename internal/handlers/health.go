package handlers

import (
	"context"
	"net/http"
	"time"
)

type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db    HealthChecker
	redis HealthChecker
}

func NewHealthHandler(db, redis HealthChecker) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Health reports the state of each backing store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	services := map[string]string{
		"postgres": probe(ctx, h.db),
		"redis":    probe(ctx, h.redis),
	}

	status, code := "ok", http.StatusOK
	for _, state := range services {
		if state != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, HealthResponse{Status: status, Services: services})
}

// Ready succeeds only when both stores answer.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if probe(ctx, h.redis) != "ok" || probe(ctx, h.db) != "ok" {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "alive"})
}

func probe(ctx context.Context, checker HealthChecker) string {
	if checker == nil {
		return "unavailable"
	}
	if err := checker.Health(ctx); err != nil {
		return "unhealthy"
	}
	return "ok"
}
