package services_test

import (
	"context"
	"testing"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/core/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CommissionServiceTestSuite struct {
	suite.Suite
	mockDealRepo    *MockDealRepository
	mockProfileRepo *MockProfileRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.CommissionSvcFacade
	requester       domain.Requester
}

func (suite *CommissionServiceTestSuite) SetupTest() {
	suite.mockDealRepo = new(MockDealRepository)
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewCommissionService(
		suite.mockDealRepo,
		suite.mockProfileRepo,
		suite.mockTxnRepo,
		cache.New(0),
	)
	suite.requester = domain.Requester{
		ProfileID:      "admin-1",
		OrganizationID: "org-1",
		Roles:          []string{"admin"},
	}
}

func (suite *CommissionServiceTestSuite) closedWonDeal() *domain.Deal {
	projID := "proj-1"
	return &domain.Deal{
		DealID:         "deal-1",
		OrganizationID: "org-1",
		Company:        "Acme",
		ValueCents:     100000,
		Stage:          domain.StageClosedWon,
		SalespersonID:  "sp-1",
		ProjectID:      &projID,
	}
}

func (suite *CommissionServiceTestSuite) salesperson(percent int64) *domain.Profile {
	return &domain.Profile{
		ProfileID:         "sp-1",
		OrganizationID:    "org-1",
		Name:              "Ana",
		CommissionPercent: decimal.NewFromInt(percent),
		CommissionBasis:   domain.BasisSobreFaturamento,
	}
}

func (suite *CommissionServiceTestSuite) TestProvisionForDeal_Success() {
	ctx := context.Background()
	deal := suite.closedWonDeal()

	suite.mockDealRepo.On("FindDealByID", ctx, "org-1", "deal-1").Return(deal, nil).Once()
	suite.mockTxnRepo.On("FindCommissionByDealID", ctx, "org-1", "deal-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, "org-1", "sp-1").Return(suite.salesperson(10), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.ValueCents == 10000 &&
			t.Type == domain.Despesa &&
			t.Category == domain.CategoryComissoes &&
			t.CostType == domain.CostVariavel &&
			t.Status == domain.StatusPendente &&
			t.DealID != nil && *t.DealID == "deal-1" &&
			t.SalespersonID != nil && *t.SalespersonID == "sp-1" &&
			t.ProjectID != nil && *t.ProjectID == "proj-1"
	})).Return(nil).Once()

	txn, err := suite.service.ProvisionForDeal(ctx, suite.requester, "deal-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(int64(10000), txn.ValueCents, "10% of R$ 1.000,00")
	suite.Contains(txn.Description, "Acme")
	suite.Contains(txn.Description, "Ana")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestProvisionForDeal_NotClosedWonRejected() {
	ctx := context.Background()
	deal := suite.closedWonDeal()
	deal.Stage = domain.StageNegotiation
	suite.mockDealRepo.On("FindDealByID", ctx, "org-1", "deal-1").Return(deal, nil).Once()

	txn, err := suite.service.ProvisionForDeal(ctx, suite.requester, "deal-1")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestProvisionForDeal_AlreadyProvisionedIsNoOp() {
	ctx := context.Background()
	existing := &domain.Transaction{TransactionID: "txn-1"}

	suite.mockDealRepo.On("FindDealByID", ctx, "org-1", "deal-1").Return(suite.closedWonDeal(), nil).Once()
	suite.mockTxnRepo.On("FindCommissionByDealID", ctx, "org-1", "deal-1").Return(existing, nil).Once()

	txn, err := suite.service.ProvisionForDeal(ctx, suite.requester, "deal-1")

	suite.Require().NoError(err)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "FindProfileByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestProvisionForDeal_ZeroPercentIsNoOp() {
	ctx := context.Background()

	suite.mockDealRepo.On("FindDealByID", ctx, "org-1", "deal-1").Return(suite.closedWonDeal(), nil).Once()
	suite.mockTxnRepo.On("FindCommissionByDealID", ctx, "org-1", "deal-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, "org-1", "sp-1").Return(suite.salesperson(0), nil).Once()

	txn, err := suite.service.ProvisionForDeal(ctx, suite.requester, "deal-1")

	suite.Require().NoError(err)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestProvisionForDeal_MissingSalespersonAborts() {
	ctx := context.Background()

	suite.mockDealRepo.On("FindDealByID", ctx, "org-1", "deal-1").Return(suite.closedWonDeal(), nil).Once()
	suite.mockTxnRepo.On("FindCommissionByDealID", ctx, "org-1", "deal-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, "org-1", "sp-1").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.ProvisionForDeal(ctx, suite.requester, "deal-1")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestProvisionForDeal_LostRaceIsNoOp() {
	ctx := context.Background()

	suite.mockDealRepo.On("FindDealByID", ctx, "org-1", "deal-1").Return(suite.closedWonDeal(), nil).Once()
	suite.mockTxnRepo.On("FindCommissionByDealID", ctx, "org-1", "deal-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, "org-1", "sp-1").Return(suite.salesperson(10), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(apperrors.ErrDuplicate).Once()

	txn, err := suite.service.ProvisionForDeal(ctx, suite.requester, "deal-1")

	suite.Require().NoError(err, "a concurrent provisioning already booked the commission")
	suite.Nil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestUpdateCommissionConfig_AdminOnly() {
	ctx := context.Background()
	member := domain.Requester{ProfileID: "m-1", OrganizationID: "org-1", Roles: []string{"member"}}

	profile, err := suite.service.UpdateCommissionConfig(ctx, member, "sp-1", dto.UpdateCommissionConfigRequest{
		CommissionPercent: decimal.NewFromInt(10),
		CommissionBasis:   domain.BasisSobreFaturamento,
	})

	suite.Require().Error(err)
	suite.Nil(profile)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "UpdateCommissionConfig",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestUpdateCommissionConfig_PercentRange() {
	ctx := context.Background()

	_, err := suite.service.UpdateCommissionConfig(ctx, suite.requester, "sp-1", dto.UpdateCommissionConfigRequest{
		CommissionPercent: decimal.NewFromInt(101),
		CommissionBasis:   domain.BasisSobreFaturamento,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateCommissionConfig(ctx, suite.requester, "sp-1", dto.UpdateCommissionConfigRequest{
		CommissionPercent: decimal.NewFromInt(-1),
		CommissionBasis:   domain.BasisSobreFaturamento,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CommissionServiceTestSuite) TestUpdateCommissionConfig_Success() {
	ctx := context.Background()
	percent := decimal.NewFromFloat(12.5)
	updated := suite.salesperson(0)
	updated.CommissionPercent = percent
	updated.CommissionBasis = domain.BasisSobreMargem

	suite.mockProfileRepo.On("UpdateCommissionConfig", ctx, "org-1", "sp-1", percent, domain.BasisSobreMargem, "admin-1").
		Return(nil).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, "org-1", "sp-1").Return(updated, nil).Once()

	profile, err := suite.service.UpdateCommissionConfig(ctx, suite.requester, "sp-1", dto.UpdateCommissionConfigRequest{
		CommissionPercent: percent,
		CommissionBasis:   domain.BasisSobreMargem,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(profile)
	suite.True(percent.Equal(profile.CommissionPercent))
	suite.Equal(domain.BasisSobreMargem, profile.CommissionBasis)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestProvisionForDeal_DealLookupError() {
	ctx := context.Background()
	suite.mockDealRepo.On("FindDealByID", ctx, "org-1", "deal-1").Return(nil, assert.AnError).Once()

	txn, err := suite.service.ProvisionForDeal(ctx, suite.requester, "deal-1")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, assert.AnError)
}

func TestCommissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionServiceTestSuite))
}
