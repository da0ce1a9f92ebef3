package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

// ReportingRepository provides the read-only aggregate queries behind the
// reports. Only POSTED entries are ever considered.
type ReportingRepository interface {
	// GetOpeningTotals sums posted debit and credit for an account over
	// entries dated strictly before the given date.
	GetOpeningTotals(ctx context.Context, accountID string, before time.Time) (debit, credit decimal.Decimal, err error)

	// GetLedgerRows returns an account's posted movements within the
	// optional date range, ordered by (entry_date, entry_no, line_order).
	// The running balance column is left for the caller to fill.
	GetLedgerRows(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerRow, error)

	// GetTrialBalanceData returns opening and posted period totals for
	// every active detail account, with entry dates up to asOf inclusive.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.AccountPeriodTotals, error)
}
