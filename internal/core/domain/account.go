package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	Cost      AccountType = "COST"
)

// AccountTypes lists every valid account type.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense, Cost}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense, Cost:
		return true
	}
	return false
}

// Account levels in the chart of accounts.
const (
	LevelGroup    = 1
	LevelSubgroup = 2
	LevelDetail   = 3
)

// Account is a node in the chart of accounts. Group accounts (IsDetail false)
// are pure aggregation nodes; only detail accounts may receive postings.
type Account struct {
	AccountID       string          `json:"accountID"` // Primary key (UUID)
	Code            string          `json:"code"`      // Unique, hierarchical by convention (e.g. "100", "320.01")
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID"` // Nullable self-reference; parent must pre-exist
	Level           int             `json:"level"`           // 1=group, 2=subgroup, 3=detail
	IsDetail        bool            `json:"isDetail"`
	OpeningDebit    decimal.Decimal `json:"openingDebit"`  // Independent of OpeningCredit, never pre-netted
	OpeningCredit   decimal.Decimal `json:"openingCredit"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// AccountNode is an Account projected into the nested chart-of-accounts tree.
type AccountNode struct {
	AccountID   string         `json:"accountID"`
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	AccountType AccountType    `json:"accountType"`
	Level       int            `json:"level"`
	IsDetail    bool           `json:"isDetail"`
	Children    []*AccountNode `json:"children"`
}
