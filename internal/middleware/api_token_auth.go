package middleware

import (
	"log/slog"

	"github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APITokenAuth authenticates machine callers via the x-api-key header. When
// the key resolves, JWT auth is skipped for the request; when it does not,
// the request falls through to the regular bearer-token middleware.
func APITokenAuth(tokenSvc services.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := c.GetHeader("x-api-key")
		if rawToken == "" {
			c.Next()
			return
		}

		requester, err := tokenSvc.ValidateToken(c.Request.Context(), rawToken)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("API token validation failed", slog.String("error", err.Error()))
			c.Next()
			return
		}

		ctx := WithRequester(c.Request.Context(), *requester)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(requesterCtxKey), *requester)
		c.Set("authMethod", "api_token")
		c.Next()
	}
}
