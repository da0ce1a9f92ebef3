package repositories

import (
	"context"
	"time"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

// EntryListFilter narrows ListEntries results.
type EntryListFilter struct {
	Status *domain.EntryStatus
	From   *time.Time
	To     *time.Time
}

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindEntryByID retrieves an entry header by id.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByNo retrieves an entry header by its entry number.
	FindEntryByNo(ctx context.Context, entryNo string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a page of entry headers ordered by
	// (entry_date, entry_no) descending, with an opaque continuation token.
	ListEntries(ctx context.Context, limit int, nextToken *string, filter EntryListFilter) ([]domain.JournalEntry, *string, error)

	// FindEntriesByReference retrieves entries pointing at a business
	// document in another module.
	FindEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data. Every method is
// all-or-nothing: no entry is ever observable with only part of its lines,
// and no status change is observable without its audit stamp.
type JournalWriter interface {
	// SaveEntry allocates the entry number from the per-(prefix, year)
	// counter and inserts the header and all lines in one transaction.
	// On success entry.EntryNo is populated.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error

	// ReplaceDraftEntry rewrites a draft's header fields and replaces its
	// full line set atomically. Fails if the entry is not a draft.
	ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteDraftEntry removes a draft entry and its lines. Fails if the
	// entry is not a draft.
	DeleteDraftEntry(ctx context.Context, entryID string) error

	// MarkEntryPosted transitions Draft -> Posted. The status is re-read
	// under a row lock and the debit/credit totals re-verified inside the
	// transaction, guarding against concurrent edits or a double post.
	MarkEntryPosted(ctx context.Context, entryID string, userID string, at time.Time) error

	// MarkEntryCancelled transitions Draft/Posted -> Cancelled with the
	// reason, under the same row-lock re-read discipline.
	MarkEntryCancelled(ctx context.Context, entryID string, reason string, userID string, at time.Time) error
}

// EntryNumberAllocator hands out per-(prefix, year) sequence numbers from a
// transactionally-isolated counter.
type EntryNumberAllocator interface {
	// NextEntryNumber allocates and returns the next sequence number.
	NextEntryNumber(ctx context.Context, prefix string, year int) (int64, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryNumberAllocator
}
