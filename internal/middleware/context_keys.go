package middleware

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// requesterCtxKey stores the resolved caller identity in the request context.
const requesterCtxKey = contextKey("requester")

// WithRequester returns a context carrying the resolved requester identity.
func WithRequester(ctx context.Context, requester domain.Requester) context.Context {
	return context.WithValue(ctx, requesterCtxKey, requester)
}

// GetRequesterFromContext retrieves the requester placed by the auth
// middleware. The boolean is false when the request was not authenticated.
func GetRequesterFromContext(c *gin.Context) (domain.Requester, bool) {
	if v, ok := c.Get(string(requesterCtxKey)); ok {
		if requester, ok := v.(domain.Requester); ok {
			return requester, true
		}
	}
	if v := c.Request.Context().Value(requesterCtxKey); v != nil {
		if requester, ok := v.(domain.Requester); ok {
			return requester, true
		}
	}
	return domain.Requester{}, false
}
