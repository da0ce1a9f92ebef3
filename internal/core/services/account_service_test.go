package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ozgurkara/erp-ledger/internal/apperrors"
	"github.com/ozgurkara/erp-ledger/internal/core/domain"
	portssvc "github.com/ozgurkara/erp-ledger/internal/core/ports/services"
	"github.com/ozgurkara/erp-ledger/internal/core/services"
	"github.com/ozgurkara/erp-ledger/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:        "100",
		Name:        "Cash",
		AccountType: domain.Asset,
		Level:       domain.LevelGroup,
		IsDetail:    true,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "100").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdAccount)
	suite.NotEmpty(createdAccount.AccountID)
	suite.Equal(req.Code, createdAccount.Code)
	suite.Equal(req.Name, createdAccount.Name)
	suite.Equal(req.AccountType, createdAccount.AccountType)
	suite.True(createdAccount.IsActive)
	suite.True(createdAccount.IsDetail)
	suite.Equal(creatorUserID, createdAccount.CreatedBy)
	suite.Equal(creatorUserID, createdAccount.LastUpdatedBy)
	suite.WithinDuration(time.Now(), createdAccount.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "100"}

	suite.mockRepo.On("FindAccountByCode", ctx, "100").Return(existing, nil).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:        "100",
		Name:        "Cash",
		AccountType: domain.Asset,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(createdAccount)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentByCode() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Account{AccountID: parentID, Code: "320", Level: domain.LevelGroup}
	parentCode := "320"

	suite.mockRepo.On("FindAccountByCode", ctx, "320.01").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, "320").Return(parent, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:        "320.01",
		Name:        "Domestic Suppliers",
		AccountType: domain.Liability,
		ParentCode:  &parentCode,
		IsDetail:    true,
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(createdAccount.ParentAccountID)
	suite.Equal(parentID, *createdAccount.ParentAccountID)
	// Level defaults to one below the parent when not provided.
	suite.Equal(domain.LevelSubgroup, createdAccount.Level)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingParent() {
	ctx := context.Background()
	parentCode := "999"

	suite.mockRepo.On("FindAccountByCode", ctx, "999.01").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, "999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:        "999.01",
		Name:        "Orphan",
		AccountType: domain.Asset,
		ParentCode:  &parentCode,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByLines() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "100.01"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("CountLinesByAccount", ctx, accountID).Return(int64(3), nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	var blocked *apperrors.DeletionBlockedError
	suite.Require().ErrorAs(err, &blocked)
	suite.Equal(int64(3), blocked.LineCount)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "255"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("CountLinesByAccount", ctx, accountID).Return(int64(0), nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Whitelist() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:   accountID,
		Code:        "770",
		Name:        "General Administrative Expenses",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	newName := "Administrative Expenses"
	inactive := false

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{
		Name:     &newName,
		IsActive: &inactive,
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.False(updated.IsActive)
	// Untouched fields survive the patch.
	suite.Equal("770", updated.Code)
	suite.Equal(domain.Expense, updated.AccountType)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsDescendantParent() {
	ctx := context.Background()
	parentID := uuid.NewString()
	childID := uuid.NewString()
	parent := &domain.Account{
		AccountID:   parentID,
		Code:        "100",
		Name:        "Cash and Equivalents",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	child := &domain.Account{
		AccountID:       childID,
		Code:            "100.01",
		Name:            "Cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
		IsActive:        true,
	}

	// Reparenting 100 under its own child 100.01 would close a cycle.
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil)
	suite.mockRepo.On("FindAccountByID", ctx, childID).Return(child, nil)

	_, err := suite.service.UpdateAccount(ctx, parentID, dto.UpdateAccountRequest{
		ParentID: &childID,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSeedStandardChart_SkipsWhenPopulated() {
	ctx := context.Background()

	suite.mockRepo.On("CountAccounts", ctx).Return(int64(12), nil).Once()

	count, err := suite.service.SeedStandardChart(ctx, uuid.NewString())

	suite.Require().NoError(err)
	suite.Zero(count)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSeedStandardChart_SeedsEmptyDatabase() {
	ctx := context.Background()

	suite.mockRepo.On("CountAccounts", ctx).Return(int64(0), nil).Once()
	suite.mockRepo.On("SaveAccounts", ctx, mock.AnythingOfType("[]domain.Account")).Return(nil).Once()

	count, err := suite.service.SeedStandardChart(ctx, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(len(domain.StandardChart), count)

	// Child entries must point at their parents by generated id.
	saved := suite.mockRepo.Calls[1].Arguments.Get(1).([]domain.Account)
	byCode := make(map[string]domain.Account, len(saved))
	for _, a := range saved {
		byCode[a.Code] = a
	}
	child, ok := byCode["320.01"]
	suite.Require().True(ok)
	suite.Require().NotNil(child.ParentAccountID)
	suite.Equal(byCode["320"].AccountID, *child.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccountTree() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: childID, Code: "120.01", Name: "Domestic Customers", AccountType: domain.Asset, ParentAccountID: &rootID, Level: domain.LevelSubgroup, IsDetail: true},
		{AccountID: rootID, Code: "120", Name: "Trade Receivables", AccountType: domain.Asset, Level: domain.LevelGroup},
		{AccountID: uuid.NewString(), Code: "100", Name: "Cash", AccountType: domain.Asset, Level: domain.LevelGroup, IsDetail: true},
	}

	suite.mockRepo.On("ListAllAccounts", ctx).Return(accounts, nil).Once()

	roots, err := suite.service.GetAccountTree(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(roots, 2)
	suite.Equal("100", roots[0].Code)
	suite.Equal("120", roots[1].Code)
	suite.Require().Len(roots[1].Children, 1)
	suite.Equal("120.01", roots[1].Children[0].Code)
}

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance_DebitNormal() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:     accountID,
		Code:          "100.01",
		AccountType:   domain.Asset,
		OpeningDebit:  decimal.NewFromInt(500),
		OpeningCredit: decimal.Zero,
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("PeriodTotals", ctx, accountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(300), decimal.NewFromInt(100), nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, accountID, nil)

	suite.Require().NoError(err)
	// (500 - 0) + (300 - 100) = 700
	suite.True(balance.Equal(decimal.NewFromInt(700)), "got %s", balance)
}

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance_CreditNormal() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:     accountID,
		Code:          "320.01",
		AccountType:   domain.Liability,
		OpeningDebit:  decimal.Zero,
		OpeningCredit: decimal.NewFromInt(200),
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("PeriodTotals", ctx, accountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(50), decimal.NewFromInt(400), nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, accountID, nil)

	suite.Require().NoError(err)
	// (200 - 0) + (400 - 50) = 550 on the credit side
	suite.True(balance.Equal(decimal.NewFromInt(550)), "got %s", balance)
}

func (suite *AccountServiceTestSuite) TestSumByCodePrefix() {
	ctx := context.Background()
	totals := []domain.AccountPeriodTotals{
		{AccountID: uuid.NewString(), Code: "100.01", AccountType: domain.Asset, IsDetail: true,
			OpeningDebit: decimal.NewFromInt(100), PeriodDebit: decimal.NewFromInt(50)},
		{AccountID: uuid.NewString(), Code: "120.01", AccountType: domain.Asset, IsDetail: true,
			OpeningDebit: decimal.NewFromInt(20), PeriodCredit: decimal.NewFromInt(10)},
	}

	suite.mockRepo.On("DetailTotalsByCodePrefix", ctx, "1", (*time.Time)(nil)).Return(totals, nil).Once()

	sum, err := suite.service.SumByCodePrefix(ctx, "1", nil)

	suite.Require().NoError(err)
	// 150 + 10 = 160
	suite.True(sum.Equal(decimal.NewFromInt(160)), "got %s", sum)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
