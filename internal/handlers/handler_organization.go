package handlers

import (
	"net/http"

	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type organizationHandler struct {
	service portssvc.OrganizationSvcFacade
}

func registerOrganizationRoutes(rg *gin.RouterGroup, service portssvc.OrganizationSvcFacade) {
	h := &organizationHandler{service: service}
	org := rg.Group("/organization")
	{
		org.GET("", h.get)
		org.PUT("", h.update)
	}
}

// get godoc
// @Summary Get the requester's organization
// @Tags organization
// @Produce json
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization [get]
func (h *organizationHandler) get(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	org, err := h.service.GetOrganization(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to get organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// update godoc
// @Summary Update organization settings
// @Description Updates the organization name and financial targets. Admin only.
// @Tags organization
// @Accept json
// @Produce json
// @Param organization body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization [put]
func (h *organizationHandler) update(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	org, err := h.service.UpdateOrganization(c.Request.Context(), requester, req)
	if err != nil {
		respondError(c, err, "Failed to update organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}
