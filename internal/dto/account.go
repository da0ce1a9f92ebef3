package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code          string             `json:"code" binding:"required,max=20,acctcode"`
	Name          string             `json:"name" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE COST"`
	ParentID      *string            `json:"parentID"`   // Optional, by id
	ParentCode    *string            `json:"parentCode"` // Optional, by code; id wins when both set
	Level         int                `json:"level" binding:"omitempty,min=1,max=3"`
	IsDetail      bool               `json:"isDetail"`
	OpeningDebit  decimal.Decimal    `json:"openingDebit"`
	OpeningCredit decimal.Decimal    `json:"openingCredit"`
	Description   string             `json:"description"`
}

// UpdateAccountRequest enumerates exactly the mutable account fields.
// Pointer fields distinguish "not provided" from a zero value; anything not
// listed here cannot be patched.
type UpdateAccountRequest struct {
	Code        *string             `json:"code" binding:"omitempty,max=20,acctcode"`
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE COST"`
	ParentID    *string             `json:"parentID"`
	Level       *int                `json:"level" binding:"omitempty,min=1,max=3"`
	IsDetail    *bool               `json:"isDetail"`
	IsActive    *bool               `json:"isActive"`
	Description *string             `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	ParentID      string             `json:"parentID,omitempty"`
	Level         int                `json:"level"`
	IsDetail      bool               `json:"isDetail"`
	OpeningDebit  decimal.Decimal    `json:"openingDebit"`
	OpeningCredit decimal.Decimal    `json:"openingCredit"`
	Description   string             `json:"description,omitempty"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	parentID := ""
	if acc.ParentAccountID != nil {
		parentID = *acc.ParentAccountID
	}
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		ParentID:      parentID,
		Level:         acc.Level,
		IsDetail:      acc.IsDetail,
		OpeningDebit:  acc.OpeningDebit,
		OpeningCredit: acc.OpeningCredit,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
}

// SeedChartResponse reports how many accounts the bulk seed created.
type SeedChartResponse struct {
	SeededCount int `json:"seededCount"`
}

// AccountTreeResponse wraps the nested chart of accounts.
type AccountTreeResponse struct {
	Roots []*domain.AccountNode `json:"roots"`
}
