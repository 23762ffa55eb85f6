package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/core/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockProfileRepository
	service    portssvc.ProfileSvcFacade
	authReader portssvc.ProfileAuthReaderSvc
	admin      domain.Requester
	member     domain.Requester
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProfileRepository)
	svc := services.NewProfileService(suite.mockRepo, cache.New(time.Minute))
	suite.service = svc
	suite.authReader = svc
	suite.admin = domain.Requester{
		ProfileID:      "admin-1",
		OrganizationID: "org-1",
		Roles:          []string{"admin"},
	}
	suite.member = domain.Requester{
		ProfileID:      "member-1",
		OrganizationID: "org-1",
		Roles:          []string{"member"},
	}
}

func (suite *ProfileServiceTestSuite) TestGetProfileByID_NonAdminReadsRedactedProjection() {
	ctx := context.Background()
	redacted := &domain.Profile{ProfileID: "member-2", OrganizationID: "org-1", Name: "Bia"}
	suite.mockRepo.On("FindProfileByIDRedacted", ctx, "org-1", "member-2").Return(redacted, nil).Once()

	profile, err := suite.service.GetProfileByID(ctx, suite.member, "member-2")

	suite.Require().NoError(err)
	suite.Nil(profile.HourlyCostCents)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindProfileByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestGetProfileByID_AdminReadsFullProjection() {
	ctx := context.Background()
	cost := int64(15000)
	full := &domain.Profile{ProfileID: "member-2", OrganizationID: "org-1", Name: "Bia", HourlyCostCents: &cost}
	suite.mockRepo.On("FindProfileByID", ctx, "org-1", "member-2").Return(full, nil).Once()

	profile, err := suite.service.GetProfileByID(ctx, suite.admin, "member-2")

	suite.Require().NoError(err)
	suite.Require().NotNil(profile.HourlyCostCents)
	suite.Equal(int64(15000), *profile.HourlyCostCents)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindProfileByIDRedacted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestGetProfileByID_SelfReadIsFull() {
	ctx := context.Background()
	cost := int64(9000)
	own := &domain.Profile{ProfileID: "member-1", OrganizationID: "org-1", Name: "Caio", HourlyCostCents: &cost}
	suite.mockRepo.On("FindProfileByID", ctx, "org-1", "member-1").Return(own, nil).Once()

	profile, err := suite.service.GetProfileByID(ctx, suite.member, "member-1")

	suite.Require().NoError(err)
	suite.NotNil(profile.HourlyCostCents)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindProfileByIDRedacted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestRegisterOwnerWithOrganization_SingleAtomicWrite() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		OrganizationName: "Studio Pixel",
		Name:             "Ana",
		Email:            "ana@studiopixel.com",
		Password:         "s3cret-pass",
	}
	suite.mockRepo.On("CreateOwnerWithOrganization", ctx,
		mock.MatchedBy(func(org domain.Organization) bool {
			return org.Name == "Studio Pixel" && org.OrganizationID != ""
		}),
		mock.MatchedBy(func(p domain.Profile) bool {
			return p.Role == domain.RoleAdmin && p.Email == "ana@studiopixel.com" && p.PasswordHash != "s3cret-pass"
		}),
	).Return(nil).Once()

	profile, err := suite.authReader.RegisterOwnerWithOrganization(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, profile.Role)
	suite.NotEmpty(profile.OrganizationID)
	// Registration must go through the transactional write, never the
	// independent inserts that could leave an orphan organization.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestRegisterOwnerWithOrganization_WriteFailureSurfaces() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		OrganizationName: "Studio Pixel",
		Name:             "Ana",
		Email:            "ana@studiopixel.com",
		Password:         "s3cret-pass",
	}
	suite.mockRepo.On("CreateOwnerWithOrganization", ctx, mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	profile, err := suite.authReader.RegisterOwnerWithOrganization(ctx, req)

	suite.Error(err)
	suite.Nil(profile)
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
