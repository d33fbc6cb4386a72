package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	teamModel "github.com/festy23/roster/internal/team/model"
)

// ErrorResponse is the error envelope returned by every team endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// statusFor maps an error code to its HTTP status.
func statusFor(code teamModel.Code) int {
	switch code {
	case teamModel.CodeTeamNotFound:
		return http.StatusNotFound
	case teamModel.CodeDuplicateTeamName:
		return http.StatusConflict
	case teamModel.CodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes e with the status for its code. Details is always
// an array, possibly empty.
func errorResponse(c *gin.Context, e *teamModel.Error) {
	resp := ErrorResponse{Timestamp: time.Now().UTC()}
	resp.Error.Code = string(e.Code)
	resp.Error.Message = e.Message
	resp.Error.Details = e.Details
	if resp.Error.Details == nil {
		resp.Error.Details = []string{}
	}
	c.JSON(statusFor(e.Code), resp)
}
