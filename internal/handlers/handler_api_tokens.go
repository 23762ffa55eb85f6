package handlers

import (
	"net/http"

	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type apiTokenHandler struct {
	service portssvc.APITokenSvc
}

func registerAPITokenRoutes(rg *gin.RouterGroup, service portssvc.APITokenSvc) {
	h := &apiTokenHandler{service: service}
	tokens := rg.Group("/api-tokens")
	{
		tokens.POST("", h.create)
		tokens.GET("", h.list)
		tokens.DELETE("/:id", h.revoke)
	}
}

// create godoc
// @Summary Mint an API token
// @Description Creates a machine token for webhook callers. The raw token is returned exactly once.
// @Tags api-tokens
// @Accept json
// @Produce json
// @Param token body dto.CreateAPITokenRequest true "Token name and optional expiry"
// @Success 201 {object} dto.CreateAPITokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api-tokens [post]
func (h *apiTokenHandler) create(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	resp, err := h.service.CreateToken(c.Request.Context(), requester, req)
	if err != nil {
		respondError(c, err, "Failed to create API token")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// list godoc
// @Summary List API tokens
// @Description Lists the organization's API tokens without their secrets.
// @Tags api-tokens
// @Produce json
// @Success 200 {array} dto.APITokenResponse
// @Security BearerAuth
// @Router /api-tokens [get]
func (h *apiTokenHandler) list(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	tokens, err := h.service.ListTokens(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to list API tokens")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAPITokenResponse(tokens))
}

// revoke godoc
// @Summary Revoke an API token
// @Tags api-tokens
// @Param id path string true "Token ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api-tokens/{id} [delete]
func (h *apiTokenHandler) revoke(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	if err := h.service.RevokeToken(c.Request.Context(), requester, c.Param("id")); err != nil {
		respondError(c, err, "Failed to revoke API token")
		return
	}
	c.Status(http.StatusNoContent)
}
