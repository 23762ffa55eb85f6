package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	Profile      ProfileSvcFacade
	Client       ClientSvcFacade
	Project      ProjectSvcFacade
	Deal         DealSvcFacade
	Transaction  TransactionSvcFacade
	Task         TaskSvcFacade
	Analytics    AnalyticsSvcFacade
	Commission   CommissionSvcFacade
	Token        TokenSvcFacade
	APIToken     APITokenSvc
	GoogleOAuth  GoogleOAuthHandlerSvcFacade
}
