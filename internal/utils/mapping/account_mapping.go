package mapping

import (
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	"github.com/ozgurkara/erp-ledger/internal/models"
)

// ToModelAccount converts a domain Account to its database row shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		ParentAccountID: d.ParentAccountID,
		Level:           d.Level,
		IsDetail:        d.IsDetail,
		OpeningDebit:    d.OpeningDebit,
		OpeningCredit:   d.OpeningCredit,
		Description:     d.Description,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts an account row to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		Level:           m.Level,
		IsDetail:        m.IsDetail,
		OpeningDebit:    m.OpeningDebit,
		OpeningCredit:   m.OpeningCredit,
		Description:     m.Description,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
