// README: HTTP helper utilities for JSON and error mapping.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roam/internal/modules/community"
	"roam/internal/modules/user"
	"roam/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrEmailTaken), errors.Is(err, user.ErrUsernameTaken):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrTokenInvalid):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrInactive):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeCommunityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, community.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, community.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeChatError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrBadRequest) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}
