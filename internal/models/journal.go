package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the persistence layer.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// JournalEntry is the database row shape for the journal_entries table.
type JournalEntry struct {
	EntryID       string
	EntryNo       string
	EntryDate     time.Time
	Description   string
	Status        EntryStatus
	ReferenceType *string
	ReferenceID   *string
	ReferenceNo   *string
	PostedBy      *string
	PostedAt      *time.Time
	CancelledBy   *string
	CancelledAt   *time.Time
	CancelReason  *string
	AuditFields
}

// JournalLine is the database row shape for the journal_entry_lines table.
type JournalLine struct {
	LineID      string
	EntryID     string
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description *string
	LineOrder   int
	AuditFields
}
