package services

import (
	"context"
	"time"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	"github.com/ozgurkara/erp-ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// GetEntryByNo retrieves an entry with its lines by entry number.
	GetEntryByNo(ctx context.Context, entryNo string) (*domain.JournalEntry, error)

	// ListEntries retrieves a cursor-paginated page of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListEntriesByReference retrieves entries created for a business
	// document owned by another module.
	ListEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines the entry lifecycle operations.
type JournalWriterSvc interface {
	// CreateEntry persists a new draft entry with its lines atomically.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry patches a draft's header and optionally replaces
	// its lines. Fails on posted or cancelled entries.
	UpdateDraftEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraftEntry removes a draft entry entirely.
	DeleteDraftEntry(ctx context.Context, entryID string) error

	// PostEntry transitions a balanced draft to Posted.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// CancelEntry transitions a draft or posted entry to Cancelled.
	CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error)
}

// EntryNumberSvc exposes entry number allocation.
type EntryNumberSvc interface {
	// NextEntryNumber allocates the next number for the entry date's year.
	NextEntryNumber(ctx context.Context, entryDate time.Time) (string, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	EntryNumberSvc
}
