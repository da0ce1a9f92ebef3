package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAllAccounts retrieves the full flat account set for tree building.
	ListAllAccounts(ctx context.Context) ([]domain.Account, error)

	// CountAccounts returns the total number of accounts.
	CountAccounts(ctx context.Context) (int64, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists a batch of accounts in a single transaction.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Hard delete; callers must have
	// verified that no journal lines reference the account.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountAggregator defines the balance aggregation queries behind the
// sign-convention calculations.
type AccountAggregator interface {
	// CountLinesByAccount counts journal lines (any entry status)
	// referencing the account.
	CountLinesByAccount(ctx context.Context, accountID string) (int64, error)

	// PeriodTotals sums posted debit and credit activity for an account,
	// up to and including asOf when it is non-nil.
	PeriodTotals(ctx context.Context, accountID string, asOf *time.Time) (debit, credit decimal.Decimal, err error)

	// DetailTotalsByCodePrefix returns opening and posted period totals for
	// every detail account whose code starts with prefix.
	DetailTotalsByCodePrefix(ctx context.Context, prefix string, asOf *time.Time) ([]domain.AccountPeriodTotals, error)
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountAggregator
}
