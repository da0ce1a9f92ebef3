package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// CanTransitionTo reports whether the status machine allows moving from s to
// next. Draft may post or cancel; Posted may only cancel; Cancelled is
// terminal. Nothing ever returns to Draft.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	switch s {
	case Draft:
		return next == Posted || next == Cancelled
	case Posted:
		return next == Cancelled
	}
	return false
}

// JournalEntry is one posting transaction (a voucher). It owns its ordered
// lines; the lines are only mutable while the entry is still a draft.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`  // Primary key (UUID)
	EntryNo     string      `json:"entryNo"`  // Unique, "PREFIX-YEAR-NNNNN"
	EntryDate   time.Time   `json:"entryDate"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`

	// Soft pointer to the originating business document in another module
	// (e.g. an invoice). Never a structural foreign key.
	ReferenceType string `json:"referenceType,omitempty"`
	ReferenceID   string `json:"referenceID,omitempty"`
	ReferenceNo   string `json:"referenceNo,omitempty"`

	PostedBy     *string    `json:"postedBy,omitempty"`
	PostedAt     *time.Time `json:"postedAt,omitempty"`
	CancelledBy  *string    `json:"cancelledBy,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// TotalDebit sums the debit column over the entry's lines.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit column over the entry's lines.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether debit and credit totals are exactly equal.
// Comparison is exact fixed-point, never a float approximation.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// JournalLine is one debit-or-credit movement within an entry. Exactly one
// of Debit and Credit is nonzero; a line is never both sides at once.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary key (UUID)
	EntryID     string          `json:"entryID"` // Owning entry
	AccountID   string          `json:"accountID"` // Must reference a detail account
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	LineOrder   int             `json:"lineOrder"` // Preserves entry order for display and tie-breaking
	AuditFields
}
