// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/roster/internal/statistics/service"
	teamModel "github.com/festy23/roster/internal/team/model"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetTeamStatistics handles GET /api/statistics/teams request.
// @Summary Roster size of every team
// @Tags Statistics
// @Produce json
// @Success 200 {object} model.TeamsStatisticsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeamStatistics(c *gin.Context) {
	resp, err := h.service.GetTeamStatistics(c.Request.Context())
	if err != nil {
		h.fail(c, "team statistics", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPositionStatistics handles GET /api/statistics/positions request.
// @Summary Player count per position
// @Tags Statistics
// @Produce json
// @Success 200 {object} model.PositionsStatisticsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics/positions [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetPositionStatistics(c *gin.Context) {
	resp, err := h.service.GetPositionStatistics(c.Request.Context())
	if err != nil {
		h.fail(c, "position statistics", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.logger.Errorw("statistics request failed", "op", op, "error", err)
	e := teamModel.ErrInternal
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorBody{
			Code:    string(e.Code),
			Message: e.Message,
			Details: []string{},
		},
		Timestamp: time.Now().UTC(),
	})
}

// ErrorBody is the error part of ErrorResponse.
type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
