package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	kafka_middleware "studiodesk/pkg/kafka/middleware"
	httputil "studiodesk/pkg/http"
	"studiodesk/pkg/logger"
)

const readyTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// EventStats reports domain event publishing counters.
type EventStats interface {
	Snapshot() kafka_middleware.Snapshot
}

type HealthResponse struct {
	Status   string                     `json:"status"`
	Database string                     `json:"database,omitempty"`
	Events   *kafka_middleware.Snapshot `json:"events,omitempty"`
}

type HealthHandler struct {
	db    Pinger
	stats EventStats
	log   *logger.Logger
}

// NewHealthHandler builds the /health and /ready endpoints. stats may be
// nil when domain events are disabled.
func NewHealthHandler(db Pinger, stats EventStats, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		stats: stats,
		log:   log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := HealthResponse{Status: "ok"}
	if h.stats != nil {
		snapshot := h.stats.Snapshot()
		resp.Events = &snapshot
	}

	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Database: "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
