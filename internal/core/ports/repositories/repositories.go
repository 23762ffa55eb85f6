package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	ProfileRepo      ProfileRepositoryFacade
	ClientRepo       ClientRepositoryFacade
	ProjectRepo      ProjectRepositoryFacade
	DealRepo         DealRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	TaskRepo         TaskRepositoryFacade
	APITokenRepo     APITokenRepositoryFacade
}
