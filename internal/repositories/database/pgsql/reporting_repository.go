package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/apperrors"
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for the report queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetOpeningTotals sums posted debit and credit for an account over entries
// dated strictly before the given date.
func (r *PgxReportingRepository) GetOpeningTotals(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.status = 'POSTED' AND e.entry_date < $2;
	`, accountID, before).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum opening totals for account "+accountID, err)
	}
	return debit, credit, nil
}

// GetLedgerRows returns an account's posted movements within the optional
// date range, ordered by (entry_date, entry_no, line_order). Line-level
// descriptions win over the entry description when present.
func (r *PgxReportingRepository) GetLedgerRows(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerRow, error) {
	query := `
		SELECT e.entry_id, e.entry_no, e.entry_date,
		       COALESCE(NULLIF(l.description, ''), e.description),
		       l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.status = 'POSTED'
	`
	args := []interface{}{accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND e.entry_date >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND e.entry_date <= $3`
		} else {
			query += ` AND e.entry_date <= $2`
		}
	}
	query += ` ORDER BY e.entry_date, e.entry_no, l.line_order;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger rows for account "+accountID, err)
	}
	defer rows.Close()

	ledgerRows := []domain.LedgerRow{}
	for rows.Next() {
		var lr domain.LedgerRow
		err := rows.Scan(
			&lr.EntryID,
			&lr.EntryNo,
			&lr.EntryDate,
			&lr.Description,
			&lr.Debit,
			&lr.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, err)
		}
		ledgerRows = append(ledgerRows, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows for account "+accountID, err)
	}
	return ledgerRows, nil
}

// GetTrialBalanceData returns opening and posted period totals for every
// active detail account, with entry dates up to asOf inclusive.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.AccountPeriodTotals, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT a.account_id, a.code, a.name, a.account_type, a.is_detail,
		       a.opening_debit, a.opening_credit,
		       COALESCE(SUM(p.debit), 0), COALESCE(SUM(p.credit), 0)
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.status = 'POSTED' AND e.entry_date <= $1
		) p ON p.account_id = a.account_id
		WHERE a.is_detail AND a.is_active
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.is_detail, a.opening_debit, a.opening_credit
		ORDER BY a.code;
	`, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	return collectPeriodTotals(rows)
}
