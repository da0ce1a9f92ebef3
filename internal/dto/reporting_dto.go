package dto

import "github.com/ozgurkara/erp-ledger/internal/core/domain"

// Report responses expose the domain report types directly; they are already
// shaped for presentation and carry JSON tags.

// LedgerResponse is the payload of the per-account ledger report.
type LedgerResponse = domain.LedgerReport

// TrialBalanceResponse is the payload of the trial balance report.
type TrialBalanceResponse = domain.TrialBalanceReport

// BalanceSheetResponse is the payload of the balance sheet report.
type BalanceSheetResponse = domain.BalanceSheetReport
