package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres repositories into the provider
// the service container consumes.
func NewRepositoryProvider(dbPool *pgxpool.Pool, entryNoPrefix string) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, entryNoPrefix)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		ReportingRepo: reportingRepo,
	}
}
