package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/middleware"
	"github.com/agenciahub/agency_ops_app/internal/utils"
	"github.com/agenciahub/agency_ops_app/pkg/config"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	profileReader portssvc.ProfileAuthReaderSvc
	tokenService  portssvc.TokenSvcFacade
	cfg           *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(profileReader portssvc.ProfileAuthReaderSvc, tokenService portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		profileReader: profileReader,
		tokenService:  tokenService,
		cfg:           cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication. Login and
// register sit behind an IP rate limit.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, h *AuthHandler) {
	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// issueTokens generates the token pair, stores the refresh hash and sets the
// httpOnly cookie. The cookie value carries the profile id alongside the raw
// token so the refresh endpoint can validate without a bearer token.
func (h *AuthHandler) issueTokens(c *gin.Context, profileID string, login *dto.LoginResponse, profile dto.ProfileResponse) error {
	ctx := c.Request.Context()

	domainProfile, err := h.profileReader.GetProfileForToken(ctx, profileID)
	if err != nil {
		return err
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, domainProfile)
	if err != nil {
		return err
	}
	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, domainProfile)
	if err != nil {
		return err
	}
	if err := h.profileReader.StoreRefreshToken(ctx, profileID, utils.HashRefreshToken(refreshToken), &refreshExpiry); err != nil {
		return err
	}

	maxAge := int(time.Until(refreshExpiry).Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, profileID+":"+refreshToken, maxAge,
		h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	login.AccessToken = accessToken
	login.ExpiresAt = expiresAt
	login.Profile = profile
	return nil
}

// Login godoc
// @Summary Team member login
// @Description Authenticates a team member and returns an access token. The refresh token travels in an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	profile, err := h.profileReader.GetProfileByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, profile.PasswordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	var resp dto.LoginResponse
	if err := h.issueTokens(c, profile.ProfileID, &resp, dto.ToProfileResponse(profile)); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate tokens"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary Register an organization
// @Description Creates a new organization together with its first admin profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Organization and owner info"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.profileReader.RegisterOwnerWithOrganization(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register organization")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Exchanges the refresh-token cookie for a new token pair. Rotation: the old refresh token is invalidated.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}
	parts := strings.SplitN(cookie, ":", 2)
	if len(parts) != 2 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}
	profileID, rawToken := parts[0], parts[1]

	profile, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), profileID, rawToken)
	if err != nil {
		respondError(c, err, "Failed to validate refresh token")
		return
	}

	var resp dto.LoginResponse
	if err := h.issueTokens(c, profile.ProfileID, &resp, dto.ToProfileResponse(profile)); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to rotate tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate tokens"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout
// @Description Clears the stored refresh token and expires the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err == nil {
		parts := strings.SplitN(cookie, ":", 2)
		if len(parts) == 2 {
			// Best effort: clearing a token for an unknown profile is not an error.
			_ = h.profileReader.StoreRefreshToken(c.Request.Context(), parts[0], "", nil)
		}
	}
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.Status(http.StatusNoContent)
}
