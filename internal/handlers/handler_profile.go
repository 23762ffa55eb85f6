package handlers

import (
	"net/http"

	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type profileHandler struct {
	service           portssvc.ProfileSvcFacade
	commissionService portssvc.CommissionSvcFacade
}

func registerProfileRoutes(rg *gin.RouterGroup, service portssvc.ProfileSvcFacade, commissionService portssvc.CommissionSvcFacade) {
	h := &profileHandler{service: service, commissionService: commissionService}
	profiles := rg.Group("/profiles")
	{
		profiles.POST("", h.create)
		profiles.GET("", h.list)
		profiles.GET("/:id", h.get)
		profiles.PUT("/:id", h.update)
		profiles.DELETE("/:id", h.deactivate)
		profiles.PATCH("/:id/commission-config", h.updateCommissionConfig)
	}
}

// create godoc
// @Summary Create a team member profile
// @Description Creates a profile in the requester's organization. Admin only.
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body dto.CreateProfileRequest true "Profile to create"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles [post]
func (h *profileHandler) create(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	profile, err := h.service.CreateProfile(c.Request.Context(), requester, req)
	if err != nil {
		respondError(c, err, "Failed to create profile")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// list godoc
// @Summary List team member profiles
// @Description Lists profiles in the organization. Members see hourly cost redacted.
// @Tags profiles
// @Produce json
// @Success 200 {array} dto.ProfileResponse
// @Security BearerAuth
// @Router /profiles [get]
func (h *profileHandler) list(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	profiles, err := h.service.ListProfiles(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to list profiles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProfileResponse(profiles))
}

// get godoc
// @Summary Get a profile by ID
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [get]
func (h *profileHandler) get(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	profile, err := h.service.GetProfileByID(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// update godoc
// @Summary Update a profile
// @Description Updates profile fields. Admin only, except members updating their own name.
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [put]
func (h *profileHandler) update(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	profile, err := h.service.UpdateProfile(c.Request.Context(), requester, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// deactivate godoc
// @Summary Deactivate a profile
// @Description Soft deletes a profile. Admin only; admins cannot deactivate themselves.
// @Tags profiles
// @Param id path string true "Profile ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [delete]
func (h *profileHandler) deactivate(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateProfile(c.Request.Context(), requester, c.Param("id")); err != nil {
		respondError(c, err, "Failed to deactivate profile")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateCommissionConfig godoc
// @Summary Update a member's commission configuration
// @Description Sets the commission percentage and basis. Not retroactive. Admin only.
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param config body dto.UpdateCommissionConfigRequest true "Commission configuration"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id}/commission-config [patch]
func (h *profileHandler) updateCommissionConfig(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.UpdateCommissionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	profile, err := h.commissionService.UpdateCommissionConfig(c.Request.Context(), requester, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update commission configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
