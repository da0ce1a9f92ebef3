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
	portsrepo "github.com/ozgurkara/erp-ledger/internal/core/ports/repositories"
	portssvc "github.com/ozgurkara/erp-ledger/internal/core/ports/services"
	"github.com/ozgurkara/erp-ledger/internal/core/services"
	"github.com/ozgurkara/erp-ledger/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade

	cashID string
	bankID string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, "YV")

	suite.cashID = uuid.NewString()
	suite.bankID = uuid.NewString()
}

// detailAccounts returns the account map the line validation loads.
func (suite *JournalServiceTestSuite) detailAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashID: {AccountID: suite.cashID, Code: "100.01", AccountType: domain.Asset, IsDetail: true, IsActive: true},
		suite.bankID: {AccountID: suite.bankID, Code: "102.01", AccountType: domain.Asset, IsDetail: true, IsActive: true},
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash deposit to bank",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.bankID, Debit: decimal.NewFromInt(1000)},
			{AccountID: suite.cashID, Credit: decimal.NewFromInt(1000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.detailAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.JournalEntry)
			entry.EntryNo = "YV-2026-00001"
		}).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal("YV-2026-00001", entry.EntryNo)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineOrder)
	suite.Equal(2, entry.Lines[1].LineOrder)
	suite.Equal(creatorUserID, entry.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AllowsImbalancedDraft() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Incomplete draft",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.bankID, Debit: decimal.NewFromInt(500)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.detailAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.False(entry.IsBalanced())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RejectsGroupAccount() {
	ctx := context.Background()
	groupID := uuid.NewString()
	accounts := map[string]domain.Account{
		groupID: {AccountID: groupID, Code: "120", AccountType: domain.Asset, IsDetail: false, IsActive: true},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Posting to group account",
		Lines:       []dto.EntryLineRequest{{AccountID: groupID, Debit: decimal.NewFromInt(10)}},
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RejectsTwoSidedLine() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.detailAccounts(), nil).Once()

	_, err := suite.service.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Two-sided line",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashID, Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)},
		},
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	userID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID: entryID,
		EntryNo: "YV-2026-00007",
		Status:  domain.Draft,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.bankID, Debit: decimal.NewFromInt(250), LineOrder: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashID, Credit: decimal.NewFromInt(250), LineOrder: 2},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, entryID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, entryID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.PostedBy)
	suite.Equal(userID, *posted.PostedBy)
	suite.NotNil(posted.PostedAt)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Imbalanced() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNo: "YV-2026-00002", Status: domain.Draft}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.bankID, Debit: decimal.NewFromInt(500), LineOrder: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashID, Credit: decimal.NewFromInt(400), LineOrder: 2},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	var imbalanced *apperrors.ImbalancedEntryError
	suite.Require().ErrorAs(err, &imbalanced)
	suite.True(imbalanced.Difference().Equal(decimal.NewFromInt(100)), "got %s", imbalanced.Difference())
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	now := time.Now()
	userID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:  entryID,
		EntryNo:  "YV-2026-00003",
		Status:   domain.Posted,
		PostedBy: &userID,
		PostedAt: &now,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestCancelEntry_Draft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	userID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNo: "YV-2026-00004", Status: domain.Draft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()
	suite.mockJournalRepo.On("MarkEntryCancelled", ctx, entryID, "duplicate voucher", userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := suite.service.CancelEntry(ctx, entryID, "duplicate voucher", userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Cancelled, cancelled.Status)
	suite.Equal("duplicate voucher", cancelled.CancelReason)
	suite.Require().NotNil(cancelled.CancelledBy)
	suite.Equal(userID, *cancelled.CancelledBy)
}

func (suite *JournalServiceTestSuite) TestCancelEntry_RequiresReason() {
	ctx := context.Background()

	_, err := suite.service.CancelEntry(ctx, uuid.NewString(), "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntryByID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCancelEntry_AlreadyCancelled() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNo: "YV-2026-00005", Status: domain.Cancelled}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.CancelEntry(ctx, entryID, "again", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestUpdateDraftEntry_RejectsPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNo: "YV-2026-00006", Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	newDesc := "edited"
	_, err := suite.service.UpdateDraftEntry(ctx, entryID, dto.UpdateEntryRequest{Description: &newDesc}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReplaceDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateDraftEntry_ReplacesLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNo: "YV-2026-00008", Status: domain.Draft, Description: "before"}
	newLines := []dto.EntryLineRequest{
		{AccountID: suite.cashID, Debit: decimal.NewFromInt(75)},
		{AccountID: suite.bankID, Credit: decimal.NewFromInt(75)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.detailAccounts(), nil).Once()
	suite.mockJournalRepo.On("ReplaceDraftEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	updated, err := suite.service.UpdateDraftEntry(ctx, entryID, dto.UpdateEntryRequest{Lines: &newLines}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(updated.Lines, 2)
	suite.True(updated.IsBalanced())
	// Lines were rebuilt, not fetched.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteDraftEntry_RejectsPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNo: "YV-2026-00009", Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	err := suite.service.DeleteDraftEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestListEntries_ParsesFilters() {
	ctx := context.Background()
	status := "POSTED"
	from := "2026-01-01"
	to := "2026-03-31"

	suite.mockJournalRepo.On("ListEntries", ctx, 20, (*string)(nil), mock.MatchedBy(func(f portsrepo.EntryListFilter) bool {
		return f.Status != nil && *f.Status == domain.Posted &&
			f.From != nil && f.From.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To != nil && f.To.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{
		Limit:  20,
		Status: &status,
		From:   &from,
		To:     &to,
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestListEntries_RejectsInvertedRange() {
	ctx := context.Background()
	from := "2026-03-31"
	to := "2026-01-01"

	_, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{From: &from, To: &to})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestNextEntryNumber_Format() {
	ctx := context.Background()
	entryDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	suite.mockJournalRepo.On("NextEntryNumber", ctx, "YV", 2026).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, "YV", 2026).Return(int64(2), nil).Once()

	first, err := suite.service.NextEntryNumber(ctx, entryDate)
	suite.Require().NoError(err)
	second, err := suite.service.NextEntryNumber(ctx, entryDate)
	suite.Require().NoError(err)

	suite.Equal("YV-2026-00001", first)
	suite.Equal("YV-2026-00002", second)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
