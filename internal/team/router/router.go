// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/roster/internal/team/handler"
	"github.com/festy23/roster/internal/team/repository"
	"github.com/festy23/roster/internal/team/service"
)

// RegisterRoutes wires the gorm-backed team stack and mounts it under
// /api/teams. The service is returned so callers can reuse it (seeding).
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) service.Service {
	svc := service.New(repository.New(db), logger)
	Register(r, svc, logger)
	return svc
}

// Register mounts the team endpoints for an already built service.
func Register(r gin.IRouter, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	teams := r.Group("/api/teams")
	teams.GET("", h.ListTeams)
	teams.GET("/:id", h.GetTeam)
	teams.POST("", h.CreateTeam)
	teams.PUT("/:id", h.UpdateTeam)
	teams.DELETE("/:id", h.DeleteTeam)
}
