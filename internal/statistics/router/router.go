// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/roster/internal/statistics/handler"
	"github.com/festy23/roster/internal/statistics/repository"
	"github.com/festy23/roster/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	stats := r.Group("/api/statistics")
	stats.GET("/teams", h.GetTeamStatistics)
	stats.GET("/positions", h.GetPositionStatistics)
}
