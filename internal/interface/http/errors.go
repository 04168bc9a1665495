package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/internal/application"
	"github.com/oksasatya/climate-action-backend/pkg/response"
	"github.com/oksasatya/climate-action-backend/pkg/validation"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrInvalidPostID), errors.Is(err, application.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrNotAuthor):
		return http.StatusForbidden
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrGoalNotFound),
		errors.Is(err, application.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response for a service error. Unexpected errors are logged and
// reported without internals.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error(c, status, "internal server error", nil)
		return
	}
	response.Error(c, status, err.Error(), nil)
}

func invalidPayload(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
