// Package health provides liveness and readiness endpoints.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/roster/internal/database/database"
)

const checkTimeout = 5 * time.Second

// Handler handles health check requests.
type Handler struct {
	db      *gorm.DB
	logger  *zap.SugaredLogger
	started time.Time
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:      db,
		logger:  logger,
		started: time.Now(),
	}
}

// DatabaseStatus describes the connection pool.
type DatabaseStatus struct {
	Status          string `json:"status"`
	OpenConnections int    `json:"openConnections"`
	InUse           int    `json:"inUse"`
	Idle            int    `json:"idle"`
}

// Response represents health check response.
type Response struct {
	Status   string          `json:"status"`
	Uptime   string          `json:"uptime"`
	Database *DatabaseStatus `json:"database,omitempty"`
}

// Register mounts GET /health and GET /health/live.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Check)
	r.GET("/health/live", h.Live)
}

// Live answers as long as the process serves HTTP.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Status: "ok", Uptime: h.uptime()})
}

// Check reports readiness: the database must answer a ping.
//
//	@Summary	Readiness check
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	Response
//	@Failure	503	{object}	Response
//	@Router		/health [get]
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Status:   "unhealthy",
			Uptime:   h.uptime(),
			Database: &DatabaseStatus{Status: "unavailable"},
		})
		return
	}

	dbStatus := &DatabaseStatus{Status: "ok"}
	if stats, err := database.GetStats(h.db); err == nil {
		dbStatus.OpenConnections = stats.OpenConnections
		dbStatus.InUse = stats.InUse
		dbStatus.Idle = stats.Idle
	}

	c.JSON(http.StatusOK, Response{
		Status:   "ok",
		Uptime:   h.uptime(),
		Database: dbStatus,
	})
}

func (h *Handler) uptime() string {
	return time.Since(h.started).Truncate(time.Second).String()
}
