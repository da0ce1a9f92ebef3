package services

import (
	"context"
	"time"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

// ReportingSvcFacade defines the read-only reporting operations. All
// reports are computed from posted entries only.
type ReportingSvcFacade interface {
	// GetLedger builds the account statement for one account over an
	// optional date range, with running balances.
	GetLedger(ctx context.Context, accountID string, from, to *time.Time) (*domain.LedgerReport, error)

	// GetTrialBalance builds the trial balance as of a date.
	GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// GetBalanceSheet builds the balance sheet as of a date.
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
}
