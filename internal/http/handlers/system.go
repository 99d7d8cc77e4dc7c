package handlers

import (
	"net/http"
	"time"

	"leavepanel/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func DBCheck(c *gin.Context) {
	if err := config.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

// Home is the public landing payload.
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":     "leave panel",
		"sign_in": "/sign-in",
	})
}

// Unauthorized is where the role gate sends non-admin identities.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"message": "You do not have access to this page.",
	})
}
