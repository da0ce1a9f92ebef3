package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozgurkara/erp-ledger/internal/apperrors"
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
	portssvc "github.com/ozgurkara/erp-ledger/internal/core/ports/services"
	"github.com/ozgurkara/erp-ledger/internal/dto"
	"github.com/ozgurkara/erp-ledger/internal/utils/accounting"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// resolveParent resolves the optional parent reference from the create
// request. ParentID wins when both id and code are provided.
func (s *accountService) resolveParent(ctx context.Context, parentID, parentCode *string) (*domain.Account, error) {
	if parentID != nil && *parentID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *parentID)
			}
			return nil, err
		}
		return parent, nil
	}
	if parentCode != nil && *parentCode != "" {
		parent, err := s.accountRepo.FindAccountByCode(ctx, *parentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account with code %s", apperrors.ErrNotFound, *parentCode)
			}
			return nil, err
		}
		return parent, nil
	}
	return nil, nil
}

// checkNotDescendant walks the ancestor chain of a candidate parent and
// rejects it when the chain reaches the account being reparented, which
// would make the hierarchy cyclic.
func (s *accountService) checkNotDescendant(ctx context.Context, accountID string, parent *domain.Account) error {
	for ancestor := parent; ancestor != nil; {
		if ancestor.AccountID == accountID {
			return fmt.Errorf("%w: account %s cannot be reparented under its own descendant", apperrors.ErrValidation, accountID)
		}
		if ancestor.ParentAccountID == nil {
			return nil
		}
		next, err := s.accountRepo.FindAccountByID(ctx, *ancestor.ParentAccountID)
		if err != nil {
			return err
		}
		ancestor = next
	}
	return nil
}

// CreateAccount validates and persists a new account.
// Implements portssvc.AccountWriterSvc
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.OpeningDebit.IsNegative() || req.OpeningCredit.IsNegative() {
		return nil, fmt.Errorf("%w: opening balances must not be negative", apperrors.ErrValidation)
	}

	// Code uniqueness is also enforced by the database; checking here gives
	// the caller a cleaner error before the insert.
	if existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, err
	}

	parent, err := s.resolveParent(ctx, req.ParentID, req.ParentCode)
	if err != nil {
		return nil, err
	}

	level := req.Level
	if level == 0 {
		level = domain.LevelGroup
		if parent != nil {
			level = parent.Level + 1
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Code:          req.Code,
		Name:          req.Name,
		AccountType:   req.AccountType,
		Level:         level,
		IsDetail:      req.IsDetail,
		OpeningDebit:  req.OpeningDebit,
		OpeningCredit: req.OpeningCredit,
		Description:   req.Description,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if parent != nil {
		account.ParentAccountID = &parent.AccountID
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific account by id.
// Implements portssvc.AccountReaderSvc
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves a specific account by chart code.
// Implements portssvc.AccountReaderSvc
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated flat list of accounts.
// Implements portssvc.AccountReaderSvc
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// GetAccountTree builds the nested chart-of-accounts hierarchy.
// Implements portssvc.AccountReaderSvc
func (s *accountService) GetAccountTree(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to load accounts for tree")
		return nil, err
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		acc := &accounts[i]
		nodes[acc.AccountID] = &domain.AccountNode{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Level:       acc.Level,
			IsDetail:    acc.IsDetail,
		}
	}

	var roots []*domain.AccountNode
	for i := range accounts {
		acc := &accounts[i]
		node := nodes[acc.AccountID]
		if acc.ParentAccountID != nil {
			if parent, ok := nodes[*acc.ParentAccountID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
			// Orphaned parent reference; surface the node at the root so
			// it stays visible instead of silently disappearing.
			s.LogWarn(ctx, "account references missing parent", slog.String("account_id", acc.AccountID), slog.String("parent_id", *acc.ParentAccountID))
		}
		roots = append(roots, node)
	}

	sortAccountNodes(roots)
	return roots, nil
}

func sortAccountNodes(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
	for _, n := range nodes {
		if len(n.Children) > 0 {
			sortAccountNodes(n.Children)
		}
	}
}

// UpdateAccount applies a whitelisted field patch to an account.
// Implements portssvc.AccountWriterSvc
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != account.Code {
		if existing, err := s.accountRepo.FindAccountByCode(ctx, *req.Code); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, *req.Code)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		account.Code = *req.Code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		if !req.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			account.ParentAccountID = nil
		} else {
			if *req.ParentID == account.AccountID {
				return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
			}
			parent, err := s.resolveParent(ctx, req.ParentID, nil)
			if err != nil {
				return nil, err
			}
			if err := s.checkNotDescendant(ctx, account.AccountID, parent); err != nil {
				return nil, err
			}
			account.ParentAccountID = &parent.AccountID
		}
	}
	if req.Level != nil {
		account.Level = *req.Level
	}
	if req.IsDetail != nil {
		account.IsDetail = *req.IsDetail
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.Description != nil {
		account.Description = *req.Description
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount hard-deletes an account with no journal lines.
// Implements portssvc.AccountWriterSvc
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountLinesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "failed to count journal lines for account", slog.String("account_id", accountID))
		return err
	}
	if count > 0 {
		return &apperrors.DeletionBlockedError{AccountID: accountID, LineCount: count}
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "account deleted", slog.String("account_id", accountID))
	return nil
}

// SeedStandardChart bulk-creates the built-in chart. No-op when any account
// already exists.
// Implements portssvc.AccountWriterSvc
func (s *accountService) SeedStandardChart(ctx context.Context, userID string) (int, error) {
	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to count accounts before seeding")
		return 0, err
	}
	if count > 0 {
		s.LogInfo(ctx, "chart of accounts already populated, skipping seed", slog.Int64("existing_accounts", count))
		return 0, nil
	}

	now := time.Now()
	idsByCode := make(map[string]string, len(domain.StandardChart))
	accounts := make([]domain.Account, 0, len(domain.StandardChart))
	for _, entry := range domain.StandardChart {
		account := domain.Account{
			AccountID:     uuid.NewString(),
			Code:          entry.Code,
			Name:          entry.Name,
			AccountType:   entry.Type,
			Level:         entry.Level,
			IsDetail:      entry.IsDetail,
			OpeningDebit:  decimal.Zero,
			OpeningCredit: decimal.Zero,
			IsActive:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if entry.ParentCode != "" {
			parentID, ok := idsByCode[entry.ParentCode]
			if !ok {
				return 0, fmt.Errorf("%w: seed chart parent code %s missing", apperrors.ErrInternal, entry.ParentCode)
			}
			account.ParentAccountID = &parentID
		}
		idsByCode[entry.Code] = account.AccountID
		accounts = append(accounts, account)
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		s.LogError(ctx, err, "failed to seed standard chart")
		return 0, err
	}

	s.LogInfo(ctx, "standard chart seeded", slog.Int("accounts", len(accounts)))
	return len(accounts), nil
}

// CalculateAccountBalance computes an account's balance from opening columns
// plus posted activity up to asOf.
// Implements portssvc.AccountBalanceSvc
func (s *accountService) CalculateAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	periodDebit, periodCredit, err := s.accountRepo.PeriodTotals(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to load period totals", slog.String("account_id", accountID))
		return decimal.Zero, err
	}

	balance, err := accounting.AccountBalance(account.AccountType, account.OpeningDebit, account.OpeningCredit, periodDebit, periodCredit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
	}
	return balance, nil
}

// SumByCodePrefix sums the signed balances of all detail accounts whose code
// starts with prefix. Only detail accounts contribute so that group
// aggregation nodes never double-count their children.
// Implements portssvc.AccountBalanceSvc
func (s *accountService) SumByCodePrefix(ctx context.Context, prefix string, asOf *time.Time) (decimal.Decimal, error) {
	totals, err := s.accountRepo.DetailTotalsByCodePrefix(ctx, prefix, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to load totals by code prefix", slog.String("prefix", prefix))
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, t := range totals {
		balance, err := accounting.AccountBalance(t.AccountType, t.OpeningDebit, t.OpeningCredit, t.PeriodDebit, t.PeriodCredit)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
		}
		sum = sum.Add(balance)
	}
	return sum, nil
}
