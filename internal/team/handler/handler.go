// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	teamModel "github.com/festy23/roster/internal/team/model"
	"github.com/festy23/roster/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListTeams handles GET /api/teams request.
// @Summary List all teams with their players
// @Tags Teams
// @Produce json
// @Success 200 {array} teamModel.TeamResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam handles GET /api/teams/:id request.
// @Summary Get a team with its players
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} teamModel.TeamResponse
// @Failure 400 {object} ErrorResponse "Invalid id (INVALID_REQUEST)"
// @Failure 404 {object} ErrorResponse "Team not found (TEAM_NOT_FOUND)"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeam(c *gin.Context) {
	id, ok := h.teamID(c)
	if !ok {
		return
	}

	team, err := h.service.GetTeam(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// CreateTeam handles POST /api/teams request.
// @Summary Create a team with its roster
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.TeamRequest true "Request"
// @Success 201 {object} teamModel.TeamResponse
// @Failure 400 {object} ErrorResponse "Validation failed (INVALID_REQUEST)"
// @Failure 409 {object} ErrorResponse "Name in use (DUPLICATE_TEAM_NAME)"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTeam(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// UpdateTeam handles PUT /api/teams/:id request.
// @Summary Rename a team and replace its roster
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body teamModel.TeamRequest true "Request"
// @Success 200 {object} teamModel.TeamResponse
// @Failure 400 {object} ErrorResponse "Validation failed (INVALID_REQUEST)"
// @Failure 404 {object} ErrorResponse "Team not found (TEAM_NOT_FOUND)"
// @Failure 409 {object} ErrorResponse "Name in use (DUPLICATE_TEAM_NAME)"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams/{id} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateTeam(c *gin.Context) {
	id, ok := h.teamID(c)
	if !ok {
		return
	}
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	team, err := h.service.UpdateTeam(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /api/teams/:id request.
// @Summary Delete a team and its players
// @Tags Teams
// @Param id path int true "Team ID"
// @Success 204
// @Failure 400 {object} ErrorResponse "Invalid id (INVALID_REQUEST)"
// @Failure 404 {object} ErrorResponse "Team not found (TEAM_NOT_FOUND)"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams/{id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteTeam(c *gin.Context) {
	id, ok := h.teamID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTeam(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) teamID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		h.fail(c, teamModel.NewValidationError("id: must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// bindRequest decodes the JSON body. Field rules are checked by the service.
func (h *Handler) bindRequest(c *gin.Context) (*teamModel.TeamRequest, bool) {
	var req teamModel.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, teamModel.NewValidationError(decodeDetail(err)))
		return nil, false
	}
	return &req, true
}

func decodeDetail(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "body: request body is required"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf("%s: must be a %s", typeErr.Field, typeErr.Type)
	default:
		return "body: malformed JSON"
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	e := teamModel.AsError(err)
	if e.Code == teamModel.CodeInternal {
		h.logger.Errorw("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", errors.Unwrap(e),
		)
	} else {
		h.logger.Warnw("request rejected",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", e.Code,
			"details", e.Details,
		)
	}
	errorResponse(c, e)
}
