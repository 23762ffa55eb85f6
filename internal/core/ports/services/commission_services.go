package services

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// CommissionSvcFacade provisions sales commissions and manages per-member
// commission configuration.
type CommissionSvcFacade interface {
	// ProvisionForDeal creates the commission expense transaction for a
	// closed_won deal. It is a no-op (nil, nil) when the salesperson has no
	// commission percentage configured, and equally a no-op when a commission
	// for the deal already exists, so repeated triggering is safe.
	ProvisionForDeal(ctx context.Context, requester domain.Requester, dealID string) (*domain.Transaction, error)

	// UpdateCommissionConfig changes a profile's commission percentage and
	// basis. Not retroactive: provisioned commissions keep their amounts.
	UpdateCommissionConfig(ctx context.Context, requester domain.Requester, profileID string, req dto.UpdateCommissionConfigRequest) (*domain.Profile, error)
}
