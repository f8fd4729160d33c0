// controllers/health_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers load balancer health checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// APIRoot confirms the API is up.
func APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Zero Un Production API is running"})
}
