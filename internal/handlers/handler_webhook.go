package handlers

import (
	"net/http"

	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type webhookHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func registerWebhookRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := &webhookHandler{commissionService: commissionService}
	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/deal-closed", h.dealClosed)
	}
}

// DealClosedRequest identifies the deal an external system reports as won.
type DealClosedRequest struct {
	DealID string `json:"dealID" binding:"required"`
}

// dealClosed godoc
// @Summary Deal-closed notification
// @Description Provisions the commission for a closed_won deal. Safe to deliver more than once: a deal's commission is provisioned at most one time.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param notification body DealClosedRequest true "Closed deal reference"
// @Success 200 {object} dto.TransactionResponse
// @Success 204 "No commission to provision"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /webhooks/deal-closed [post]
func (h *webhookHandler) dealClosed(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req DealClosedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	txn, err := h.commissionService.ProvisionForDeal(c.Request.Context(), requester, req.DealID)
	if err != nil {
		respondError(c, err, "Failed to provision commission")
		return
	}
	if txn == nil {
		// Already provisioned, or the salesperson has no commission configured.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
