package handlers

import (
	"net/http"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type dealHandler struct {
	service portssvc.DealSvcFacade
}

func registerDealRoutes(rg *gin.RouterGroup, service portssvc.DealSvcFacade) {
	h := &dealHandler{service: service}
	deals := rg.Group("/deals")
	{
		deals.POST("", h.create)
		deals.GET("", h.list)
		deals.GET("/pipeline", h.pipeline)
		deals.GET("/:id", h.get)
		deals.PUT("/:id", h.update)
		deals.PATCH("/:id/stage", h.moveStage)
		deals.DELETE("/:id", h.delete)
	}
}

// create godoc
// @Summary Create a deal
// @Description Creates a deal in the prospecting stage.
// @Tags deals
// @Accept json
// @Produce json
// @Param deal body dto.CreateDealRequest true "Deal to create"
// @Success 201 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals [post]
func (h *dealHandler) create(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	deal, err := h.service.CreateDeal(c.Request.Context(), requester, req)
	if err != nil {
		respondError(c, err, "Failed to create deal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDealResponse(deal))
}

// list godoc
// @Summary List deals
// @Tags deals
// @Produce json
// @Param stage query string false "Filter by stage"
// @Param salespersonID query string false "Filter by salesperson"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.DealResponse
// @Security BearerAuth
// @Router /deals [get]
func (h *dealHandler) list(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var params dto.ListDealsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	deals, err := h.service.ListDeals(c.Request.Context(), requester, params)
	if err != nil {
		respondError(c, err, "Failed to list deals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDealResponse(deals))
}

// pipeline godoc
// @Summary Pipeline valuation
// @Description Summarizes open deals per stage with raw and probability-weighted totals.
// @Tags deals
// @Produce json
// @Success 200 {object} dto.PipelineResponse
// @Security BearerAuth
// @Router /deals/pipeline [get]
func (h *dealHandler) pipeline(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	summary, err := h.service.PipelineSummary(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to compute pipeline summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToPipelineResponse(summary))
}

// get godoc
// @Summary Get a deal by ID
// @Tags deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [get]
func (h *dealHandler) get(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	deal, err := h.service.GetDealByID(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// update godoc
// @Summary Update a deal
// @Description Updates deal fields. Stage changes go through the stage endpoint.
// @Tags deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param deal body dto.UpdateDealRequest true "Fields to update"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [put]
func (h *dealHandler) update(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	deal, err := h.service.UpdateDeal(c.Request.Context(), requester, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// moveStage godoc
// @Summary Move a deal to another stage
// @Description The kanban move. Crossing into closed_won provisions the salesperson's commission once.
// @Tags deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param stage body dto.MoveDealStageRequest true "Target stage"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/stage [patch]
func (h *dealHandler) moveStage(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.MoveDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	deal, err := h.service.MoveDealStage(c.Request.Context(), requester, c.Param("id"), domain.DealStage(req.Stage))
	if err != nil {
		respondError(c, err, "Failed to move deal stage")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// delete godoc
// @Summary Delete a deal
// @Description Soft deletes a deal. Admin only.
// @Tags deals
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [delete]
func (h *dealHandler) delete(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	if err := h.service.DeleteDeal(c.Request.Context(), requester, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete deal")
		return
	}
	c.Status(http.StatusNoContent)
}
