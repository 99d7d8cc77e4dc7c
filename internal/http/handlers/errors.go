package handlers

import (
	"errors"
	"net/http"

	"leavepanel/internal/domain"
	"leavepanel/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondUpstreamError maps a leave API failure onto the panel's policy per
// error class: 401 redirects to sign-in (session already cleared), 422 maps
// field errors back to the form, everything else becomes a generic payload.
// fallback is the resource-appropriate message for 4xx rejections.
func RespondUpstreamError(c *gin.Context, err error, fallback string) {
	reqID := middleware.GetRequestID(c)

	switch {
	case domain.IsUnauthorized(err):
		c.Redirect(http.StatusFound, middleware.SignInPath)
		c.Abort()

	case domain.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message":    "validation failed",
			"errors":     domain.ValidationFields(err),
			"request_id": reqID,
		})

	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"message":    fallback,
			"request_id": reqID,
		})

	case domain.IsConnectivity(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message":    "cannot reach the leave service, please try again",
			"request_id": reqID,
		})

	case domain.IsServerFault(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"message":    "the leave service reported an internal error",
			"request_id": reqID,
		})

	default:
		status := http.StatusBadRequest
		msg := fallback
		var reqErr domain.RequestError
		if errors.As(err, &reqErr) {
			if reqErr.Status != 0 {
				status = reqErr.Status
			}
			if reqErr.Msg != "" {
				msg = reqErr.Msg
			}
		}
		c.JSON(status, gin.H{
			"message":    msg,
			"request_id": reqID,
		})
	}
}
