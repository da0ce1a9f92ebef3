package services

// ServiceContainer groups every service facade for handler wiring.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Reporting ReportingSvcFacade
}
