package handlers

import (
	"net/http"
	"strings"
	"time"

	"leavepanel/internal/domain"
	"leavepanel/internal/http/middleware"
	"leavepanel/internal/notice"
	"leavepanel/internal/session"

	"github.com/gin-gonic/gin"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInPage hands the sign-in view its pending notice (e.g. "signed out").
func (d *Deps) SignInPage(c *gin.Context) {
	payload := gin.H{"title": "Sign in"}
	if n := notice.ViewOf(notice.Pop(c), time.Now()); n != nil {
		payload["notice"] = n
	}
	c.JSON(http.StatusOK, payload)
}

// SignIn exchanges credentials for an upstream token, resolves the identity
// behind it and establishes the panel session.
func (d *Deps) SignIn(c *gin.Context) {
	var req signInRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ctx := c.Request.Context()
	token, err := d.API.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case domain.IsValidation(err):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": domain.ValidationFields(err)})
		case domain.IsUnauthorized(err):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Email or password is incorrect."})
		case domain.IsConnectivity(err):
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Cannot connect to the server."})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"message": "Something went wrong while signing in."})
		}
		return
	}

	// Resolution failure after an explicit login is an error the caller
	// sees, never a silent drop into a logged-out state.
	sess, err := d.Sessions.Login(ctx, token)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "Signed in, but your profile could not be resolved.", err)
		return
	}

	cookieValue, err := d.Sessions.CookieValue(sess)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to establish session", err)
		return
	}
	maxAge := int(time.Until(sess.ExpiresAt) / time.Second)
	c.SetCookie(session.CookieName, cookieValue, maxAge, "/", "", false, true)

	d.logAction(c, "sign_in", req.Email, "success", "")
	c.JSON(http.StatusOK, gin.H{"redirect": "/panel"})
}

// SignUp forwards registration to the leave API; accounts live there.
func (d *Deps) SignUp(c *gin.Context) {
	var fields map[string]string
	if !BindJSONOrError(c, &fields) {
		return
	}

	if err := d.API.Register(c.Request.Context(), fields); err != nil {
		RespondUpstreamError(c, err, "Sign up failed")
		return
	}

	notice.Set(c, "Account created. Please sign in.", notice.KindSuccess)
	c.JSON(http.StatusCreated, gin.H{"redirect": middleware.SignInPath})
}

// SignOut clears the session row and cookie synchronously.
func (d *Deps) SignOut(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil && strings.TrimSpace(cookie) != "" {
		d.Sessions.LogoutCookie(c.Request.Context(), cookie)
	}
	middleware.ClearSessionCookie(c)

	notice.Set(c, "You have been signed out.", notice.KindSuccess)
	c.Redirect(http.StatusFound, middleware.SignInPath)
}

// Me exposes the resolved identity to the panel shell.
func (d *Deps) Me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.SignInPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.Identity})
}

// PanelHome is the landing payload behind the authentication gate.
func (d *Deps) PanelHome(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	payload := gin.H{
		"title": "Panel",
		"user":  sess.Identity,
	}
	if n := notice.ViewOf(notice.Pop(c), time.Now()); n != nil {
		payload["notice"] = n
	}
	c.JSON(http.StatusOK, payload)
}
