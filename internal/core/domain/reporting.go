package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow is one movement of a per-account ledger, with the running
// balance after the movement.
type LedgerRow struct {
	EntryID     string          `json:"entryID"`
	EntryNo     string          `json:"entryNo"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerReport is the ledger of a single account over a date range.
type LedgerReport struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	From           *time.Time      `json:"from,omitempty"`
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Rows           []LedgerRow     `json:"rows"`
}

// TrialBalanceRow is one detail account's position in a trial balance.
// Closing debit and credit are netted: at most one of them is nonzero.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
}

// TrialBalanceReport lists every active detail account's net position.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// BalanceSheetGroup is one code-prefix grouping of the balance sheet.
type BalanceSheetGroup struct {
	CodePrefix string          `json:"codePrefix"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// BalanceSheetReport groups balances into assets, liabilities and equity as
// of a date. Liability and equity amounts are presented as positive
// magnitudes. Difference is assets − (liabilities + equity), exact.
type BalanceSheetReport struct {
	AsOf             time.Time           `json:"asOf"`
	Assets           []BalanceSheetGroup `json:"assets"`
	Liabilities      []BalanceSheetGroup `json:"liabilities"`
	Equity           []BalanceSheetGroup `json:"equity"`
	TotalAssets      decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal     `json:"totalEquity"`
	Difference       decimal.Decimal     `json:"difference"`
	Balanced         bool                `json:"balanced"`
}

// AccountPeriodTotals carries the raw per-account sums a report needs:
// the opening columns plus posted debit/credit activity up to a date.
type AccountPeriodTotals struct {
	AccountID     string
	Code          string
	Name          string
	AccountType   AccountType
	IsDetail      bool
	OpeningDebit  decimal.Decimal
	OpeningCredit decimal.Decimal
	PeriodDebit   decimal.Decimal
	PeriodCredit  decimal.Decimal
}
