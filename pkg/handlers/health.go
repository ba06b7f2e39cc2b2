package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/fretbase/guitar-registry/pkg/config"
)

// DatabasePinger reports database reachability for health checks.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse contains service status and database reachability.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	GoVersion   string `json:"go_version"`
	Environment string `json:"environment"`
}

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	cfg    *config.Config
	db     DatabasePinger
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config, db DatabasePinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.Health)
}

// Health handles GET /api/health. Reports degraded (but still 200) when the
// database does not answer a ping; load balancers care about process
// liveness, operators care about the database field.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health check database ping failed", zap.Error(err))
		dbStatus = "error"
	}

	response := HealthResponse{
		Status:      "healthy",
		Database:    dbStatus,
		Service:     "guitar-registry",
		Version:     h.cfg.Version,
		GoVersion:   runtime.Version(),
		Environment: h.cfg.Env,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write health response", zap.Error(err))
	}
}
