package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health returns service liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "commtrans-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
