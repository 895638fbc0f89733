package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/haguru/kakashi/internal/models/dto"
)

const healthCheckTimeout = 2 * time.Second

// Health reports whether the database answers a ping.
func (r *Route) Health(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet, http.MethodHead) {
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()

	if err := r.DB.Ping(ctx); err != nil {
		r.Logger.Error("health check failed", "error", err)
		r.errorResponse(w, http.StatusServiceUnavailable, err, MsgDatabaseUnavailable)
		return
	}
	r.writeJSON(w, http.StatusOK, &dto.MessageResponseDTO{Message: MsgHealthy})
}
