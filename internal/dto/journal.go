package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

// EntryLineRequest defines one line of a journal entry being created or
// edited. Exactly one of debit and credit must be positive; the service
// enforces that invariant beyond what binding can express.
type EntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the data needed to create a draft entry.
// No balance check applies at creation; a draft may be incomplete.
type CreateEntryRequest struct {
	EntryDate     time.Time          `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Description   string             `json:"description" binding:"required"`
	ReferenceType string             `json:"referenceType" binding:"max=30"`
	ReferenceID   string             `json:"referenceID"`
	ReferenceNo   string             `json:"referenceNo"`
	Lines         []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest patches a draft entry. Providing Lines replaces the
// entire line set. Only drafts can be updated.
type UpdateEntryRequest struct {
	EntryDate     *time.Time          `json:"entryDate"`
	Description   *string             `json:"description"`
	ReferenceType *string             `json:"referenceType" binding:"omitempty,max=30"`
	ReferenceID   *string             `json:"referenceID"`
	ReferenceNo   *string             `json:"referenceNo"`
	Lines         *[]EntryLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// CancelEntryRequest carries the mandatory cancellation reason.
type CancelEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	LineOrder   int             `json:"lineOrder"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID       string              `json:"entryID"`
	EntryNo       string              `json:"entryNo"`
	EntryDate     time.Time           `json:"entryDate"`
	Description   string              `json:"description"`
	Status        domain.EntryStatus  `json:"status"`
	ReferenceType string              `json:"referenceType,omitempty"`
	ReferenceID   string              `json:"referenceID,omitempty"`
	ReferenceNo   string              `json:"referenceNo,omitempty"`
	TotalDebit    decimal.Decimal     `json:"totalDebit"`
	TotalCredit   decimal.Decimal     `json:"totalCredit"`
	PostedBy      *string             `json:"postedBy,omitempty"`
	PostedAt      *time.Time          `json:"postedAt,omitempty"`
	CancelledBy   *string             `json:"cancelledBy,omitempty"`
	CancelledAt   *time.Time          `json:"cancelledAt,omitempty"`
	CancelReason  string              `json:"cancelReason,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	Lines         []EntryLineResponse `json:"lines,omitempty"`
}

// ToEntryLineResponse converts a domain line.
func ToEntryLineResponse(l *domain.JournalLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
		LineOrder:   l.LineOrder,
	}
}

// ToEntryResponse converts a domain entry, including its lines when loaded.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:       e.EntryID,
		EntryNo:       e.EntryNo,
		EntryDate:     e.EntryDate,
		Description:   e.Description,
		Status:        e.Status,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		ReferenceNo:   e.ReferenceNo,
		TotalDebit:    e.TotalDebit(),
		TotalCredit:   e.TotalCredit(),
		PostedBy:      e.PostedBy,
		PostedAt:      e.PostedAt,
		CancelledBy:   e.CancelledBy,
		CancelledAt:   e.CancelledAt,
		CancelReason:  e.CancelReason,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	From      *string `form:"from"` // YYYY-MM-DD
	To        *string `form:"to"`   // YYYY-MM-DD
}

// ListEntriesResponse wraps a page of entries with the next cursor.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
