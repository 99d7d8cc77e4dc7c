package handlers

import (
	"net/http"

	"leavepanel/internal/audit"
	"leavepanel/internal/config"
	"leavepanel/internal/http/middleware"
	"leavepanel/internal/session"
	"leavepanel/internal/upstream"
	"leavepanel/internal/utils"

	"github.com/gin-gonic/gin"
)

// Deps carries the shared collaborators into every handler. Nothing here is
// reached through a package global; consumers receive the reference.
type Deps struct {
	Env      config.Env
	Sessions *session.Manager
	API      *upstream.Client
	Audit    *audit.Logger
}

// apiFor binds the upstream client to the request's session. A 401 from the
// leave API invalidates the session and expires the cookie before the error
// reaches the handler.
func (d *Deps) apiFor(c *gin.Context) *upstream.Client {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return d.API
	}
	return d.API.Bind(sess.Token, func() {
		d.Sessions.Invalidate(c.Request.Context(), sess.ID)
		middleware.ClearSessionCookie(c)
	})
}

// actor names the requesting identity for the local action log.
func (d *Deps) actor(c *gin.Context) string {
	if sess, ok := middleware.CurrentSession(c); ok {
		if sess.Identity.Email != "" {
			return sess.Identity.Email
		}
		return sess.Identity.Name
	}
	return "anonymous"
}

func (d *Deps) logAction(c *gin.Context, action, target, outcome, detail string) {
	if d.Audit == nil {
		return
	}
	if err := d.Audit.Log(d.actor(c), action, target, outcome, detail); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "audit", action, err.Error())
	}
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
