package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	"github.com/ozgurkara/erp-ledger/internal/dto"
)

// AccountReaderSvc defines read operations on the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by id.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves a specific account by chart code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountTree builds the nested chart-of-accounts hierarchy from the
	// flat account set.
	GetAccountTree(ctx context.Context) ([]*domain.AccountNode, error)

	// ListAccounts retrieves a paginated flat list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations on the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies a whitelisted field patch to an account.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount hard-deletes an account with no journal lines.
	DeleteAccount(ctx context.Context, accountID string) error

	// SeedStandardChart bulk-creates the built-in chart. No-op when any
	// account already exists; returns the number of accounts created.
	SeedStandardChart(ctx context.Context, userID string) (int, error)
}

// AccountBalanceSvc defines the sign-convention balance computations every
// report goes through.
type AccountBalanceSvc interface {
	// CalculateAccountBalance computes an account's balance from opening
	// columns plus posted activity up to asOf (all activity when nil).
	CalculateAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// SumByCodePrefix sums the signed balances of all detail accounts
	// whose code starts with prefix.
	SumByCodePrefix(ctx context.Context, prefix string, asOf *time.Time) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountBalanceSvc
}
