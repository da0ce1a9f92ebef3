package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/apperrors"
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
	portssvc "github.com/ozgurkara/erp-ledger/internal/core/ports/services"
	"github.com/ozgurkara/erp-ledger/internal/utils/accounting"
)

// balanceSheetGroups maps code prefixes to balance sheet sections. The
// numbering convention of the chart drives the grouping.
var balanceSheetGroups = []struct {
	Prefix  string
	Name    string
	Section string
}{
	{"1", "Current Assets", "assets"},
	{"2", "Fixed Assets", "assets"},
	{"3", "Short-Term Liabilities", "liabilities"},
	{"4", "Long-Term Liabilities", "liabilities"},
	{"5", "Equity", "equity"},
}

// reportingService builds the read-only reports from posted entries.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	balanceSvc    portssvc.AccountBalanceSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, balanceSvc portssvc.AccountBalanceSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		balanceSvc:    balanceSvc,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetLedger builds the account statement for one account over an optional
// date range. The opening balance folds the account's opening columns
// together with posted activity dated before the range, so re-running the
// report over a later window always starts where the previous one ended.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetLedger(ctx context.Context, accountID string, from, to *time.Time) (*domain.LedgerReport, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: to date precedes from date", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	preDebit, preCredit := decimal.Zero, decimal.Zero
	if from != nil {
		preDebit, preCredit, err = s.reportingRepo.GetOpeningTotals(ctx, accountID, *from)
		if err != nil {
			s.LogError(ctx, err, "failed to load ledger opening totals", slog.String("account_id", accountID))
			return nil, err
		}
	}
	opening, err := accounting.AccountBalance(account.AccountType, account.OpeningDebit, account.OpeningCredit, preDebit, preCredit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
	}

	rows, err := s.reportingRepo.GetLedgerRows(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to load ledger rows", slog.String("account_id", accountID))
		return nil, err
	}

	balance := opening
	for i := range rows {
		delta, err := accounting.LineDelta(account.AccountType, rows[i].Debit, rows[i].Credit)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
		}
		balance = balance.Add(delta)
		rows[i].Balance = balance
	}

	return &domain.LedgerReport{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		AccountType:    account.AccountType,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: balance,
		Rows:           rows,
	}, nil
}

// GetTrialBalance builds the trial balance as of a date. Accounts with no
// opening balance and no activity are dropped from the listing; closing
// columns are netted so at most one side is nonzero per row.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	data, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to load trial balance data")
		return nil, err
	}

	report := domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(data)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, t := range data {
		closing, err := accounting.AccountBalance(t.AccountType, t.OpeningDebit, t.OpeningCredit, t.PeriodDebit, t.PeriodCredit)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
		}

		// Skip rows with no period activity and a zero closing balance,
		// including accounts whose opening columns net to zero.
		if t.PeriodDebit.IsZero() && t.PeriodCredit.IsZero() && closing.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{
			AccountID:     t.AccountID,
			AccountCode:   t.Code,
			AccountName:   t.Name,
			AccountType:   t.AccountType,
			OpeningDebit:  t.OpeningDebit,
			OpeningCredit: t.OpeningCredit,
			PeriodDebit:   t.PeriodDebit,
			PeriodCredit:  t.PeriodCredit,
			ClosingDebit:  decimal.Zero,
			ClosingCredit: decimal.Zero,
		}
		// The closing balance lands on the account's normal side when
		// positive and flips to the opposite column when negative.
		if accounting.IsDebitNormal(t.AccountType) {
			if closing.IsNegative() {
				row.ClosingCredit = closing.Neg()
			} else {
				row.ClosingDebit = closing
			}
		} else {
			if closing.IsNegative() {
				row.ClosingDebit = closing.Neg()
			} else {
				row.ClosingCredit = closing
			}
		}

		report.TotalDebit = report.TotalDebit.Add(row.ClosingDebit)
		report.TotalCredit = report.TotalCredit.Add(row.ClosingCredit)
		report.Rows = append(report.Rows, row)
	}

	report.Balanced = report.TotalDebit.Equal(report.TotalCredit)
	if !report.Balanced {
		s.LogWarn(ctx, "trial balance does not balance",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}
	return &report, nil
}

// GetBalanceSheet builds the balance sheet as of a date by summing detail
// account balances per code prefix. Balances already carry each type's
// normal-side sign, so liabilities and equity come out as positive
// magnitudes without further negation.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	report := domain.BalanceSheetReport{
		AsOf:             asOf,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, g := range balanceSheetGroups {
		amount, err := s.balanceSvc.SumByCodePrefix(ctx, g.Prefix, &asOf)
		if err != nil {
			s.LogError(ctx, err, "failed to sum balance sheet group", slog.String("prefix", g.Prefix))
			return nil, err
		}
		group := domain.BalanceSheetGroup{CodePrefix: g.Prefix, Name: g.Name, Amount: amount}
		switch g.Section {
		case "assets":
			report.Assets = append(report.Assets, group)
			report.TotalAssets = report.TotalAssets.Add(amount)
		case "liabilities":
			report.Liabilities = append(report.Liabilities, group)
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
		case "equity":
			report.Equity = append(report.Equity, group)
			report.TotalEquity = report.TotalEquity.Add(amount)
		}
	}

	report.Difference = report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))
	report.Balanced = report.Difference.IsZero()
	if !report.Balanced {
		s.LogWarn(ctx, "balance sheet does not balance", slog.String("difference", report.Difference.String()))
	}
	return &report, nil
}
