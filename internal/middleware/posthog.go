package middleware

import (
	"github.com/agenciahub/agency_ops_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogEventMiddleware captures one analytics event per authenticated mutating
// request. Read-only traffic is skipped to keep the event volume meaningful.
func PosthogEventMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		requester, ok := GetRequesterFromContext(c)
		if !ok {
			return
		}

		posthogClient.Enqueue(requester.ProfileID, "api_request", map[string]any{
			"method":          c.Request.Method,
			"path":            c.FullPath(),
			"status":          c.Writer.Status(),
			"organization_id": requester.OrganizationID,
		})
	}
}
