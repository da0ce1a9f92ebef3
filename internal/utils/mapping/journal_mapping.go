package mapping

import (
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	"github.com/ozgurkara/erp-ledger/internal/models"
)

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToModelJournalEntry converts a domain JournalEntry to its row shape.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		EntryNo:       d.EntryNo,
		EntryDate:     d.EntryDate,
		Description:   d.Description,
		Status:        models.EntryStatus(d.Status),
		ReferenceType: ptrOrNil(d.ReferenceType),
		ReferenceID:   ptrOrNil(d.ReferenceID),
		ReferenceNo:   ptrOrNil(d.ReferenceNo),
		PostedBy:      d.PostedBy,
		PostedAt:      d.PostedAt,
		CancelledBy:   d.CancelledBy,
		CancelledAt:   d.CancelledAt,
		CancelReason:  ptrOrNil(d.CancelReason),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts an entry row to the domain shape.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		EntryNo:       m.EntryNo,
		EntryDate:     m.EntryDate,
		Description:   m.Description,
		Status:        domain.EntryStatus(m.Status),
		ReferenceType: strOrEmpty(m.ReferenceType),
		ReferenceID:   strOrEmpty(m.ReferenceID),
		ReferenceNo:   strOrEmpty(m.ReferenceNo),
		PostedBy:      m.PostedBy,
		PostedAt:      m.PostedAt,
		CancelledBy:   m.CancelledBy,
		CancelledAt:   m.CancelledAt,
		CancelReason:  strOrEmpty(m.CancelReason),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its row shape.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: ptrOrNil(d.Description),
		LineOrder:   d.LineOrder,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a line row to the domain shape.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: strOrEmpty(m.Description),
		LineOrder:   m.LineOrder,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of line rows.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
