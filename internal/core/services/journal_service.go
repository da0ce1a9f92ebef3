package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ozgurkara/erp-ledger/internal/apperrors"
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
	portssvc "github.com/ozgurkara/erp-ledger/internal/core/ports/services"
	"github.com/ozgurkara/erp-ledger/internal/dto"
	"github.com/ozgurkara/erp-ledger/internal/utils/accounting"
)

// journalService provides the journal entry lifecycle.
type journalService struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryFacade
	accountRepo   portsrepo.AccountReader
	entryNoPrefix string
}

// NewJournalService creates a new journal service. entryNoPrefix is the
// company prefix used in entry numbers (e.g. "YV").
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, entryNoPrefix string) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
		entryNoPrefix: entryNoPrefix,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines validates line requests and converts them into domain lines.
// Each line must reference an active detail account and carry exactly one
// positive amount. Balance is deliberately NOT checked here; drafts may be
// saved incomplete and are only verified at posting time.
func (s *journalService) buildLines(ctx context.Context, entryID string, reqs []dto.EntryLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	accountIDs := make([]string, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, lr := range reqs {
		if _, ok := seen[lr.AccountID]; !ok {
			seen[lr.AccountID] = struct{}{}
			accountIDs = append(accountIDs, lr.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "failed to load accounts for entry lines")
		return nil, err
	}

	lines := make([]domain.JournalLine, 0, len(reqs))
	for i, lr := range reqs {
		account, ok := accounts[lr.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found (line %d)", apperrors.ErrValidation, lr.AccountID, i+1)
		}
		if !account.IsDetail {
			return nil, fmt.Errorf("%w: account %s is a group account and cannot receive postings (line %d)", apperrors.ErrValidation, account.Code, i+1)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive (line %d)", apperrors.ErrValidation, account.Code, i+1)
		}
		if err := accounting.ValidateLineAmounts(lr.Debit, lr.Credit); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", apperrors.ErrValidation, i+1, err)
		}

		lines = append(lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
			LineOrder:   i + 1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return lines, nil
}

// CreateEntry persists a new draft entry with its lines atomically.
// Implements portssvc.JournalWriterSvc
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := time.Now()
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, entryID, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		EntryDate:     req.EntryDate,
		Description:   req.Description,
		Status:        domain.Draft,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		ReferenceNo:   req.ReferenceNo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, &entry, lines); err != nil {
		s.LogError(ctx, err, "failed to save journal entry")
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_no", entry.EntryNo))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
// Implements portssvc.JournalReaderSvc
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "failed to load journal lines", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// GetEntryByNo retrieves an entry with its lines by entry number.
// Implements portssvc.JournalReaderSvc
func (s *journalService) GetEntryByNo(ctx context.Context, entryNo string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByNo(ctx, entryNo)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		s.LogError(ctx, err, "failed to load journal lines", slog.String("entry_no", entryNo))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a cursor-paginated page of entries.
// Implements portssvc.JournalReaderSvc
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var filter portsrepo.EntryListFilter
	if params.Status != nil && *params.Status != "" {
		status := domain.EntryStatus(*params.Status)
		filter.Status = &status
	}
	if params.From != nil && *params.From != "" {
		from, err := time.Parse("2006-01-02", *params.From)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, *params.From)
		}
		filter.From = &from
	}
	if params.To != nil && *params.To != "" {
		to, err := time.Parse("2006-01-02", *params.To)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, *params.To)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: to date precedes from date", apperrors.ErrValidation)
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to list journal entries")
		return nil, err
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return &resp, nil
}

// ListEntriesByReference retrieves entries created for a business document
// owned by another module.
// Implements portssvc.JournalReaderSvc
func (s *journalService) ListEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, error) {
	if referenceType == "" || referenceID == "" {
		return nil, fmt.Errorf("%w: reference type and id are required", apperrors.ErrValidation)
	}
	entries, err := s.journalRepo.FindEntriesByReference(ctx, referenceType, referenceID)
	if err != nil {
		s.LogError(ctx, err, "failed to list entries by reference", slog.String("reference_type", referenceType), slog.String("reference_id", referenceID))
		return nil, err
	}
	return entries, nil
}

// UpdateDraftEntry patches a draft's header and optionally replaces its lines.
// Implements portssvc.JournalWriterSvc
func (s *journalService) UpdateDraftEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s and can no longer be edited", apperrors.ErrConflict, entry.EntryNo, entry.Status)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.ReferenceType != nil {
		entry.ReferenceType = *req.ReferenceType
	}
	if req.ReferenceID != nil {
		entry.ReferenceID = *req.ReferenceID
	}
	if req.ReferenceNo != nil {
		entry.ReferenceNo = *req.ReferenceNo
	}

	now := time.Now()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	var lines []domain.JournalLine
	if req.Lines != nil {
		lines, err = s.buildLines(ctx, entryID, *req.Lines, userID, now)
		if err != nil {
			return nil, err
		}
	} else {
		lines, err = s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.journalRepo.ReplaceDraftEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "failed to update draft entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "draft entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteDraftEntry removes a draft entry entirely.
// Implements portssvc.JournalWriterSvc
func (s *journalService) DeleteDraftEntry(ctx context.Context, entryID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s; only drafts can be deleted", apperrors.ErrConflict, entry.EntryNo, entry.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "failed to delete draft entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "draft entry deleted", slog.String("entry_id", entryID), slog.String("entry_no", entry.EntryNo))
	return nil
}

// PostEntry transitions a balanced draft to Posted. The repository re-reads
// the status under a row lock and re-verifies totals inside the transaction;
// the checks here exist to fail fast with a precise error.
// Implements portssvc.JournalWriterSvc
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanTransitionTo(domain.Posted) {
		return nil, fmt.Errorf("%w: entry %s is %s and cannot be posted", apperrors.ErrConflict, entry.EntryNo, entry.Status)
	}
	if len(entry.Lines) < 2 {
		return nil, fmt.Errorf("%w: entry must have at least two lines to post", apperrors.ErrValidation)
	}
	if !entry.IsBalanced() {
		return nil, &apperrors.ImbalancedEntryError{
			TotalDebit:  entry.TotalDebit(),
			TotalCredit: entry.TotalCredit(),
		}
	}

	now := time.Now()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, userID, now); err != nil {
		s.LogError(ctx, err, "failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedBy = &userID
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "journal entry posted", slog.String("entry_id", entryID), slog.String("entry_no", entry.EntryNo))
	return entry, nil
}

// CancelEntry transitions a draft or posted entry to Cancelled. Cancelling a
// posted entry withdraws its ledger effect without a reversal entry; the
// warning below flags these for review.
// Implements portssvc.JournalWriterSvc
func (s *journalService) CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanTransitionTo(domain.Cancelled) {
		return nil, fmt.Errorf("%w: entry %s is already cancelled", apperrors.ErrConflict, entry.EntryNo)
	}

	if entry.Status == domain.Posted {
		s.LogWarn(ctx, "cancelling a posted entry; its amounts vanish from reports without a reversal",
			slog.String("entry_id", entryID), slog.String("entry_no", entry.EntryNo))
	}

	now := time.Now()
	if err := s.journalRepo.MarkEntryCancelled(ctx, entryID, reason, userID, now); err != nil {
		s.LogError(ctx, err, "failed to cancel journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.Cancelled
	entry.CancelledBy = &userID
	entry.CancelledAt = &now
	entry.CancelReason = reason
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "journal entry cancelled", slog.String("entry_id", entryID), slog.String("entry_no", entry.EntryNo))
	return entry, nil
}

// NextEntryNumber allocates the next number for the entry date's year.
// Implements portssvc.EntryNumberSvc
func (s *journalService) NextEntryNumber(ctx context.Context, entryDate time.Time) (string, error) {
	seq, err := s.journalRepo.NextEntryNumber(ctx, s.entryNoPrefix, entryDate.Year())
	if err != nil {
		s.LogError(ctx, err, "failed to allocate entry number", slog.Int("year", entryDate.Year()))
		return "", err
	}
	return accounting.FormatEntryNumber(s.entryNoPrefix, entryDate.Year(), seq), nil
}
