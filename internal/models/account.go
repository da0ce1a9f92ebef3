package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account is the database row shape for the accounts table.
type Account struct {
	AccountID       string
	Code            string
	Name            string
	AccountType     AccountType
	ParentAccountID *string
	Level           int
	IsDetail        bool
	OpeningDebit    decimal.Decimal
	OpeningCredit   decimal.Decimal
	Description     string
	IsActive        bool
	AuditFields
}

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
