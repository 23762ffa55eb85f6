package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// home godoc
// @Summary Service banner
// @Description Returns the service name, for uptime probes and humans.
// @Tags meta
// @Produce plain
// @Success 200 {string} string "agency-ops-backend"
// @Router / [get]
func home(c *gin.Context) {
	c.String(http.StatusOK, "agency-ops-backend")
}
