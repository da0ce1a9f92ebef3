package services

import (
	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
	portssvc "github.com/ozgurkara/erp-ledger/internal/core/ports/services"
	"github.com/ozgurkara/erp-ledger/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, cfg.EntryNoPrefix)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, container.Account)

	return container
}
