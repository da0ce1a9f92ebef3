package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/apperrors"
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
	"github.com/ozgurkara/erp-ledger/internal/models"
	"github.com/ozgurkara/erp-ledger/internal/utils/accounting"
	"github.com/ozgurkara/erp-ledger/internal/utils/mapping"
	"github.com/ozgurkara/erp-ledger/internal/utils/pagination"
)

const entryColumns = `
	entry_id, entry_no, entry_date, description, status,
	reference_type, reference_id, reference_no,
	posted_by, posted_at, cancelled_by, cancelled_at, cancel_reason,
	created_at, created_by, last_updated_at, last_updated_by
`

const lineColumns = `
	line_id, entry_id, account_id, debit, credit, description, line_order,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxJournalRepository struct {
	BaseRepository
	entryNoPrefix string
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, entryNoPrefix string) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		entryNoPrefix:  entryNoPrefix,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// nextSeqInTx advances the per-(prefix, year) counter inside the caller's
// transaction. The counter row is created on first use, seeded from the
// highest already-issued entry number for that prefix and year so numbering
// continues seamlessly on databases predating the counter table.
func (r *PgxJournalRepository) nextSeqInTx(ctx context.Context, tx pgx.Tx, prefix string, year int) (int64, error) {
	var seq int64
	err := tx.QueryRow(ctx, `
		UPDATE entry_sequences
		SET last_seq = last_seq + 1
		WHERE prefix = $1 AND year = $2
		RETURNING last_seq;
	`, prefix, year).Scan(&seq)
	if err == nil {
		return seq, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.NewAppError(500, "failed to advance entry sequence", err)
	}

	// First allocation for this prefix/year: seed from the max existing
	// entry number. Fixed-width zero padding makes MAX() order correctly.
	var maxEntryNo *string
	err = tx.QueryRow(ctx, `
		SELECT MAX(entry_no) FROM journal_entries
		WHERE entry_no LIKE $1;
	`, prefix+"-"+strconv.Itoa(year)+"-%").Scan(&maxEntryNo)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to seed entry sequence", err)
	}

	var seed int64
	if maxEntryNo != nil {
		if parsed, ok := accounting.ParseEntrySequence(*maxEntryNo); ok {
			seed = parsed
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO entry_sequences (prefix, year, last_seq)
		VALUES ($1, $2, $3)
		ON CONFLICT (prefix, year) DO UPDATE SET last_seq = entry_sequences.last_seq + 1
		RETURNING last_seq;
	`, prefix, year, seed+1).Scan(&seq)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to initialize entry sequence", err)
	}
	return seq, nil
}

// NextEntryNumber allocates and returns the next sequence number in its own
// transaction.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context, prefix string, year int) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	seq, err := r.nextSeqInTx(ctx, tx, prefix, year)
	if err != nil {
		return 0, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return seq, nil
}

const insertEntryQuery = `
	INSERT INTO journal_entries (
		entry_id, entry_no, entry_date, description, status,
		reference_type, reference_id, reference_no,
		posted_by, posted_at, cancelled_by, cancelled_at, cancel_reason,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`

const insertLineQuery = `
	INSERT INTO journal_entry_lines (
		line_id, entry_id, account_id, debit, credit, description, line_order,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.LineOrder,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveEntry allocates the entry number and inserts the header with all lines
// in one transaction. On success entry.EntryNo is populated.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	year := entry.EntryDate.Year()
	seq, err := r.nextSeqInTx(ctx, tx, r.entryNoPrefix, year)
	if err != nil {
		return err
	}
	entry.EntryNo = accounting.FormatEntryNumber(r.entryNoPrefix, year, seq)

	m := mapping.ToModelJournalEntry(*entry)
	_, err = tx.Exec(ctx, insertEntryQuery,
		m.EntryID,
		m.EntryNo,
		m.EntryDate,
		m.Description,
		m.Status,
		m.ReferenceType,
		m.ReferenceID,
		m.ReferenceNo,
		m.PostedBy,
		m.PostedAt,
		m.CancelledBy,
		m.CancelledAt,
		m.CancelReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line insert batch for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// lockEntryStatus re-reads an entry's status under FOR UPDATE so concurrent
// lifecycle transitions serialize on the row.
func (r *PgxJournalRepository) lockEntryStatus(ctx context.Context, tx pgx.Tx, entryID string) (models.EntryStatus, error) {
	var status models.EntryStatus
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock journal entry "+entryID, err)
	}
	return status, nil
}

// ReplaceDraftEntry rewrites a draft's header fields and replaces its full
// line set atomically.
func (r *PgxJournalRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := r.lockEntryStatus(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if status != models.Draft {
		return apperrors.ErrConflict
	}

	m := mapping.ToModelJournalEntry(entry)
	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $2, description = $3,
		    reference_type = $4, reference_id = $5, reference_no = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.ReferenceType,
		m.ReferenceID,
		m.ReferenceNo,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete old lines for entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line insert batch for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a draft entry and its lines.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := r.lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != models.Draft {
		return apperrors.ErrConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkEntryPosted transitions Draft -> Posted. The totals are re-verified
// from the stored lines inside the transaction, so a concurrent draft edit
// can never slip an imbalanced entry past the posting check.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, userID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := r.lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != models.Draft {
		return apperrors.ErrConflict
	}

	var totalDebit, totalCredit decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_entry_lines WHERE entry_id = $1;
	`, entryID).Scan(&totalDebit, &totalCredit)
	if err != nil {
		return apperrors.NewAppError(500, "failed to verify totals for entry "+entryID, err)
	}
	if !totalDebit.Equal(totalCredit) || totalDebit.IsZero() {
		return &apperrors.ImbalancedEntryError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, posted_by = $3, posted_at = $4,
		    last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1;
	`, entryID, models.Posted, userID, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry posted "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkEntryCancelled transitions Draft/Posted -> Cancelled with the reason.
func (r *PgxJournalRepository) MarkEntryCancelled(ctx context.Context, entryID string, reason string, userID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := r.lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status == models.Cancelled {
		return apperrors.ErrConflict
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, cancelled_by = $3, cancelled_at = $4, cancel_reason = $5,
		    last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1;
	`, entryID, models.Cancelled, userID, at, reason)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry cancelled "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNo,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.ReferenceNo,
		&m.PostedBy,
		&m.PostedAt,
		&m.CancelledBy,
		&m.CancelledAt,
		&m.CancelReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves an entry header by id.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}
	d := mapping.ToDomainJournalEntry(*m)
	return &d, nil
}

// FindEntryByNo retrieves an entry header by its entry number.
func (r *PgxJournalRepository) FindEntryByNo(ctx context.Context, entryNo string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_no = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by number "+entryNo, err)
	}
	d := mapping.ToDomainJournalEntry(*m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_order;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.LineOrder,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries retrieves a page of entry headers ordered by
// (entry_date, entry_no) descending, with an opaque continuation token.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, filter portsrepo.EntryListFilter) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastEntryNo, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastEntryNo)
		query += ` AND (entry_date, entry_no) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, entry_no DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	headers := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryNo)
		nextTokenVal = &token
		headers = headers[:limit]
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, m := range headers {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// FindEntriesByReference retrieves entries pointing at a business document
// in another module.
func (r *PgxJournalRepository) FindEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY entry_date, entry_no;`
	rows, err := r.Pool.Query(ctx, query, referenceType, referenceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries by reference", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}
