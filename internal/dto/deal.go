package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// CreateDealRequest defines the data needed to open a deal.
type CreateDealRequest struct {
	Company       string  `json:"company" binding:"required"`
	Contact       string  `json:"contact"`
	ValueCents    int64   `json:"valueCents" binding:"required,gt=0"`
	Probability   int     `json:"probability" binding:"gte=0,lte=100"`
	SalespersonID string  `json:"salespersonID" binding:"required"`
	ProjectID     *string `json:"projectID"`
	Notes         string  `json:"notes"`
}

// UpdateDealRequest defines the fields allowed for updating a deal. Stage
// moves go through MoveDealStageRequest instead.
type UpdateDealRequest struct {
	Company       *string `json:"company"`
	Contact       *string `json:"contact"`
	ValueCents    *int64  `json:"valueCents" binding:"omitempty,gt=0"`
	Probability   *int    `json:"probability" binding:"omitempty,gte=0,lte=100"`
	SalespersonID *string `json:"salespersonID"`
	ProjectID     *string `json:"projectID"`
	Notes         *string `json:"notes"`
}

// MoveDealStageRequest moves a deal across the kanban. Moving into closed_won
// triggers commission provisioning on the transition edge.
type MoveDealStageRequest struct {
	Stage domain.DealStage `json:"stage" binding:"required,oneof=prospecting proposal negotiation closed_won closed_lost"`
}

// DealResponse mirrors domain.Deal plus its weighted value.
type DealResponse struct {
	DealID             string           `json:"dealID"`
	Company            string           `json:"company"`
	Contact            string           `json:"contact"`
	ValueCents         int64            `json:"valueCents"`
	Probability        int              `json:"probability"`
	WeightedValueCents int64            `json:"weightedValueCents"`
	Stage              domain.DealStage `json:"stage"`
	SalespersonID      string           `json:"salespersonID"`
	ProjectID          *string          `json:"projectID"`
	Notes              string           `json:"notes"`
	CreatedAt          time.Time        `json:"createdAt"`
	LastUpdatedAt      time.Time        `json:"lastUpdatedAt"`
}

// ToDealResponse converts a domain.Deal to its DTO.
func ToDealResponse(d *domain.Deal) DealResponse {
	return DealResponse{
		DealID:             d.DealID,
		Company:            d.Company,
		Contact:            d.Contact,
		ValueCents:         d.ValueCents,
		Probability:        d.Probability,
		WeightedValueCents: d.WeightedValueCents(),
		Stage:              d.Stage,
		SalespersonID:      d.SalespersonID,
		ProjectID:          d.ProjectID,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
		LastUpdatedAt:      d.LastUpdatedAt,
	}
}

// ToListDealResponse converts a slice of domain.Deal to DTOs.
func ToListDealResponse(deals []domain.Deal) []DealResponse {
	res := make([]DealResponse, len(deals))
	for i := range deals {
		res[i] = ToDealResponse(&deals[i])
	}
	return res
}

// ListDealsParams defines query parameters for listing deals.
type ListDealsParams struct {
	Stage         string `form:"stage"`
	SalespersonID string `form:"salespersonID"`
	Limit         int    `form:"limit,default=50"`
	Offset        int    `form:"offset,default=0"`
}
