package handlers

import (
	"github.com/agenciahub/agency_ops_app/cmd/docs"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/middleware"
	"github.com/agenciahub/agency_ops_app/internal/utils"
	"github.com/agenciahub/agency_ops_app/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", home)

	// The auth flow needs the narrow profile reader, not the full profile
	// service surface.
	profileReader := services.Profile.(portssvc.ProfileAuthReaderSvc)

	// Register public authentication routes
	authHandler := NewAuthHandler(profileReader, services.Token, cfg)
	registerAuthRoutes(r, cfg, authHandler)
	registerGoogleOAuthRoutes(r, services.GoogleOAuth, authHandler, profileReader)

	// Setup API v1 routes behind authentication
	setupAPIV1Routes(r, cfg, services, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
// API-token auth runs first so machine callers short-circuit the JWT check.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.APITokenAuth(services.APIToken),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.PosthogEventMiddleware(posthogClient),
	)

	registerOrganizationRoutes(v1, services.Organization)
	registerProfileRoutes(v1, services.Profile, services.Commission)
	registerClientRoutes(v1, services.Client)
	registerProjectRoutes(v1, services.Project)
	registerDealRoutes(v1, services.Deal)
	registerTransactionRoutes(v1, services.Transaction)
	registerTaskRoutes(v1, services.Task)
	registerAnalyticsRoutes(v1, services.Analytics, services.Deal)
	registerAPITokenRoutes(v1, services.APIToken)
	registerWebhookRoutes(v1, services.Commission)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
