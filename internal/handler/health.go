package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/employee-graphql/internal/apperror"
)

// Pinger is the slice of the database handle the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness probes, including a database reachability
// check.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HandleHealthz reports whether the process and its database are healthy.
//
// HTTP: GET /healthz
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("health check: database unreachable", slog.String("error", err.Error()))
		writeError(w, apperror.Dependency("database unreachable", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
