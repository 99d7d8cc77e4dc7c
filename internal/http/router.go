package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "leavepanel/internal/config"
	h "leavepanel/internal/http/handlers"
	"leavepanel/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, deps *h.Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "page not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// Public surface
	r.GET("/", h.Home)
	r.GET("/healthz", h.Health)
	r.GET("/db-check", h.DBCheck)
	r.GET("/sign-in", deps.SignInPage)
	r.POST("/sign-in", deps.SignIn)
	r.POST("/sign-up", deps.SignUp)
	r.POST("/sign-out", deps.SignOut)
	r.GET("/unauthorized", h.Unauthorized)

	// Everything under /panel sits behind the authentication gate; the
	// role gate nests inside it and only ever redirects to /unauthorized.
	panel := r.Group("/panel", middleware.RequireAuth(), middleware.ResolveSession(deps.Sessions))
	panel.GET("", deps.PanelHome)
	panel.GET("/me", deps.Me)

	// Leave requests are open to every authenticated user.
	h.MountLeaveRequests(panel.Group("/leave-request"), deps)

	admin := panel.Group("", middleware.RequireAdmin())
	h.MountRoles(admin.Group("/role"), deps)
	h.MountUsers(admin.Group("/user"), deps)
	h.MountLeaveTypes(admin.Group("/leave-type"), deps)
	h.MountLeaveApprovals(admin.Group("/leave-approval"), deps)
	h.MountAudits(admin.Group("/audit"), deps)

	// Spreadsheet transfer is admin-gated uniformly, including for the
	// otherwise-open leave-request screen.
	h.MountLeaveRequestTransfer(admin.Group("/leave-request"), deps)

	return r
}

func corsMiddleware(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	return cors.New(cfg)
}
