package middleware

import (
	"net/http"
	"strings"

	"leavepanel/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "panelSession"

// SignInPath is where both gates send unauthenticated traffic.
const SignInPath = "/sign-in"

// UnauthorizedPath is where the role gate sends non-admin identities.
const UnauthorizedPath = "/unauthorized"

// RequireAuth is the authentication gate: a synchronous presence check on the
// session cookie, no network round trip and no signature verification.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || strings.TrimSpace(cookie) == "" {
			c.Redirect(http.StatusFound, SignInPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ResolveSession turns the session cookie into a resolved identity, asking
// the leave API to confirm the stored token. Resolution failure tears the
// session down and redirects to sign-in (fail closed).
func ResolveSession(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie == "" {
			c.Redirect(http.StatusFound, SignInPath)
			c.Abort()
			return
		}

		sess, err := mgr.Resolve(c.Request.Context(), cookie)
		if err != nil {
			ClearSessionCookie(c)
			c.Redirect(http.StatusFound, SignInPath)
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireAdmin is the role gate. It assumes ResolveSession already ran; a
// resolved non-admin identity is redirected to the unauthorized page, never
// to sign-in.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok || !sess.Identity.IsAdmin() {
			c.Redirect(http.StatusFound, UnauthorizedPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the resolved session placed by ResolveSession.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
