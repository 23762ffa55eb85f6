package services

import (
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/agenciahub/agency_ops_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The aggregate cache is shared: analytics services read through
// it and every mutating service invalidates the entity kinds it touches.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	aggCache := cache.New(cfg.AnalyticsCacheMaxAge)

	container := &portssvc.ServiceContainer{}

	profileSvc := NewProfileService(repos.ProfileRepo, aggCache)
	container.Profile = profileSvc

	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	container.Client = NewClientService(repos.ClientRepo, aggCache)
	container.Project = NewProjectService(repos.ProjectRepo, repos.ClientRepo, aggCache)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.ProjectRepo, aggCache)
	container.Task = NewTaskService(repos.TaskRepo, repos.ProjectRepo, repos.ProfileRepo, aggCache)

	// Commission before deal: the stage-move edge triggers provisioning.
	container.Commission = NewCommissionService(repos.DealRepo, repos.ProfileRepo, repos.TransactionRepo, aggCache)
	container.Deal = NewDealService(repos.DealRepo, repos.ProfileRepo, container.Commission, aggCache)

	container.Analytics = NewAnalyticsService(
		repos.TransactionRepo,
		repos.ClientRepo,
		repos.ProjectRepo,
		repos.ProfileRepo,
		repos.DealRepo,
		repos.TaskRepo,
		aggCache,
	)

	container.Token = NewTokenService(cfg, profileSvc)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, repos.ProfileRepo)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
