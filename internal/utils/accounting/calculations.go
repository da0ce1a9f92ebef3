package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

// IsDebitNormal reports whether accounts of type t grow on the debit side.
// Asset, expense and cost accounts are debit-normal; liability, equity and
// revenue accounts are credit-normal.
func IsDebitNormal(t domain.AccountType) bool {
	switch t {
	case domain.Asset, domain.Expense, domain.Cost:
		return true
	}
	return false
}

// AccountBalance is the single authoritative sign-convention function.
// Every report (ledger, trial balance, balance sheet) computes balances
// through here rather than re-deriving the sign logic.
//
// Debit-normal:  (openingDebit − openingCredit) + (periodDebit − periodCredit)
// Credit-normal: (openingCredit − openingDebit) + (periodCredit − periodDebit)
func AccountBalance(t domain.AccountType, openingDebit, openingCredit, periodDebit, periodCredit decimal.Decimal) (decimal.Decimal, error) {
	if !t.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", t)
	}
	if IsDebitNormal(t) {
		return openingDebit.Sub(openingCredit).Add(periodDebit.Sub(periodCredit)), nil
	}
	return openingCredit.Sub(openingDebit).Add(periodCredit.Sub(periodDebit)), nil
}

// LineDelta returns the signed effect of a single debit/credit movement on
// an account's balance, under the same convention as AccountBalance.
func LineDelta(t domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	if !t.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", t)
	}
	if IsDebitNormal(t) {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

// ValidateLineAmounts checks the one-sided line invariant: both amounts
// non-negative and exactly one of them positive.
func ValidateLineAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("line amounts must not be negative (debit %s, credit %s)", debit.String(), credit.String())
	}
	if debit.IsPositive() && credit.IsPositive() {
		return fmt.Errorf("line must be either a debit or a credit, not both (debit %s, credit %s)", debit.String(), credit.String())
	}
	if debit.IsZero() && credit.IsZero() {
		return fmt.Errorf("line must carry a debit or a credit amount")
	}
	return nil
}
