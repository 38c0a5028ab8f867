package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	"github.com/playforge/wallet_marketplace_app/internal/core/services"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
	"github.com/playforge/wallet_marketplace_app/internal/utils"
)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

// Ensure MockWalletRepository implements portsrepo.WalletRepositoryFacade
var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) DeactivateWallet(ctx context.Context, address string, expectedVersion int64, userID string, now time.Time) error {
	args := m.Called(ctx, address, expectedVersion, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) ApplyLedgerChanges(ctx context.Context, changes []portsrepo.BalanceChange, entries []domain.LedgerEntry, userID string, now time.Time) error {
	args := m.Called(ctx, changes, entries, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) ApplyLedgerChangesInTx(ctx context.Context, tx pgx.Tx, changes []portsrepo.BalanceChange, entries []domain.LedgerEntry, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, entries, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) FindEntryByReference(ctx context.Context, walletAddress string, kind domain.EntryKind, externalReference string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, walletAddress, kind, externalReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletRepository) ListEntriesByWallet(ctx context.Context, walletAddress string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, walletAddress, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

// --- Mock FeeService ---
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) NetworkFee(ctx context.Context, networkCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, networkCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFeeService) ListNetworks(ctx context.Context) ([]domain.Network, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Network), args.Error(1)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockFeeSvc     *MockFeeService
	service        *services.LedgerService
	userID         string
	pin            string
	sender         *domain.Wallet
	recipient      *domain.Wallet
	collector      *domain.Wallet
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockFeeSvc = new(MockFeeService)
	suite.service = services.NewLedgerService(suite.mockWalletRepo, suite.mockFeeSvc)

	suite.userID = uuid.NewString()
	suite.pin = "1234"
	pinHash, err := utils.HashSecret(suite.pin)
	suite.Require().NoError(err)

	suite.sender = &domain.Wallet{
		Address:    "gwsender0000000000000000000000000000000001",
		UserID:     suite.userID,
		Balance:    decimal.RequireFromString("100.00"),
		IsActive:   true,
		Credential: domain.WalletCredential{PINHash: pinHash},
		Version:    3,
	}
	suite.recipient = &domain.Wallet{
		Address:  "gwrecipient00000000000000000000000000000002",
		UserID:   uuid.NewString(),
		Balance:  decimal.Zero,
		IsActive: true,
		Version:  1,
	}
	suite.collector = &domain.Wallet{
		Address:  domain.FeeCollectorAddress,
		UserID:   "system",
		Balance:  decimal.RequireFromString("10.00"),
		IsActive: true,
		Version:  7,
	}
}

// --- Deposit ---

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	req := dto.DepositRequest{
		WalletAddress:     suite.sender.Address,
		Amount:            decimal.RequireFromString("25.00"),
		ExternalReference: "pay_abc123",
	}

	suite.mockWalletRepo.On("FindEntryByReference", ctx, req.WalletAddress, domain.EntryDeposit, req.ExternalReference).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Once()

	var gotChanges []portsrepo.BalanceChange
	var gotEntries []domain.LedgerEntry
	suite.mockWalletRepo.On("ApplyLedgerChanges", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(1).([]portsrepo.BalanceChange)
			gotEntries = args.Get(2).([]domain.LedgerEntry)
		}).
		Return(nil).Once()

	entry, err := suite.service.Deposit(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.EntryDeposit, entry.Kind)
	suite.True(entry.Amount.Equal(req.Amount))
	suite.Equal(req.ExternalReference, entry.ExternalReference)
	suite.Equal(domain.EntryCompleted, entry.Status)

	suite.Require().Len(gotChanges, 1)
	suite.True(gotChanges[0].NewBalance.Equal(decimal.RequireFromString("125.00")))
	suite.Equal(suite.sender.Version, gotChanges[0].ExpectedVersion)
	suite.Require().Len(gotEntries, 1)

	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeposit_ReplayReturnsOriginalEntry() {
	ctx := context.Background()
	req := dto.DepositRequest{
		WalletAddress:     suite.sender.Address,
		Amount:            decimal.RequireFromString("25.00"),
		ExternalReference: "pay_abc123",
	}
	original := &domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		WalletAddress:     suite.sender.Address,
		Kind:              domain.EntryDeposit,
		Amount:            req.Amount,
		ExternalReference: req.ExternalReference,
		Status:            domain.EntryCompleted,
	}

	suite.mockWalletRepo.On("FindEntryByReference", ctx, req.WalletAddress, domain.EntryDeposit, req.ExternalReference).
		Return(original, nil).Once()

	entry, err := suite.service.Deposit(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(original.EntryID, entry.EntryID)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyLedgerChanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_RetriesOnVersionRace() {
	ctx := context.Background()
	req := dto.DepositRequest{
		WalletAddress:     suite.sender.Address,
		Amount:            decimal.RequireFromString("5.00"),
		ExternalReference: "pay_retry",
	}

	suite.mockWalletRepo.On("FindEntryByReference", ctx, req.WalletAddress, domain.EntryDeposit, req.ExternalReference).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Times(3)
	suite.mockWalletRepo.On("ApplyLedgerChanges", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict).Twice()
	suite.mockWalletRepo.On("ApplyLedgerChanges", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	entry, err := suite.service.Deposit(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeposit_GivesUpAfterRepeatedRaces() {
	ctx := context.Background()
	req := dto.DepositRequest{
		WalletAddress:     suite.sender.Address,
		Amount:            decimal.RequireFromString("5.00"),
		ExternalReference: "pay_hot",
	}

	suite.mockWalletRepo.On("FindEntryByReference", ctx, req.WalletAddress, domain.EntryDeposit, req.ExternalReference).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Times(3)
	suite.mockWalletRepo.On("ApplyLedgerChanges", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict).Times(3)

	_, err := suite.service.Deposit(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestDeposit_RejectsSubCentAmount() {
	ctx := context.Background()
	req := dto.DepositRequest{
		WalletAddress:     suite.sender.Address,
		Amount:            decimal.RequireFromString("0.001"),
		ExternalReference: "pay_tiny",
	}

	_, err := suite.service.Deposit(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "FindEntryByReference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_InactiveWallet() {
	ctx := context.Background()
	suite.sender.IsActive = false
	req := dto.DepositRequest{
		WalletAddress:     suite.sender.Address,
		Amount:            decimal.RequireFromString("5.00"),
		ExternalReference: "pay_closed",
	}

	suite.mockWalletRepo.On("FindEntryByReference", ctx, req.WalletAddress, domain.EntryDeposit, req.ExternalReference).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Once()

	_, err := suite.service.Deposit(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrWalletInactive)
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_InternalWithFee() {
	ctx := context.Background()
	req := dto.TransferRequest{
		ToAddress: suite.recipient.Address,
		Amount:    decimal.RequireFromString("30.00"),
		Network:   "polygon",
		PIN:       suite.pin,
	}
	fee := decimal.RequireFromString("1.50")

	suite.mockFeeSvc.On("NetworkFee", ctx, "polygon").Return(fee, nil).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil)
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.recipient.Address).Return(suite.recipient, nil)
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, domain.FeeCollectorAddress).Return(suite.collector, nil)

	var gotChanges []portsrepo.BalanceChange
	var gotEntries []domain.LedgerEntry
	suite.mockWalletRepo.On("ApplyLedgerChanges", ctx, mock.Anything, mock.Anything, suite.userID, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(1).([]portsrepo.BalanceChange)
			gotEntries = args.Get(2).([]domain.LedgerEntry)
		}).
		Return(nil).Once()

	entry, err := suite.service.Transfer(ctx, suite.sender.Address, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.EntryTransferOut, entry.Kind)
	suite.True(entry.Amount.Equal(decimal.RequireFromString("-30.00")))
	suite.NotEmpty(entry.ExternalReference)

	// Sender pays amount plus fee, recipient gets amount, fee pool gets fee.
	suite.Require().Len(gotChanges, 3)
	byAddress := map[string]portsrepo.BalanceChange{}
	for _, ch := range gotChanges {
		byAddress[ch.Address] = ch
	}
	suite.True(byAddress[suite.sender.Address].NewBalance.Equal(decimal.RequireFromString("68.50")))
	suite.True(byAddress[suite.recipient.Address].NewBalance.Equal(decimal.RequireFromString("30.00")))
	suite.True(byAddress[domain.FeeCollectorAddress].NewBalance.Equal(decimal.RequireFromString("11.50")))

	// Four entries sharing one tx hash, summing to zero.
	suite.Require().Len(gotEntries, 4)
	sum := decimal.Zero
	for _, e := range gotEntries {
		sum = sum.Add(e.Amount)
		suite.Equal(entry.ExternalReference, e.ExternalReference)
	}
	suite.True(sum.IsZero())

	suite.mockWalletRepo.AssertExpectations(suite.T())
	suite.mockFeeSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_ExternalOmitsCreditSide() {
	ctx := context.Background()
	external := "0xexternaladdress000000000000000000000001"
	req := dto.TransferRequest{
		ToAddress: external,
		Amount:    decimal.RequireFromString("10.00"),
		Network:   "ethereum",
		PIN:       suite.pin,
	}
	fee := decimal.RequireFromString("4.00")

	suite.mockFeeSvc.On("NetworkFee", ctx, "ethereum").Return(fee, nil).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, external).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil)
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, domain.FeeCollectorAddress).Return(suite.collector, nil)

	var gotChanges []portsrepo.BalanceChange
	var gotEntries []domain.LedgerEntry
	suite.mockWalletRepo.On("ApplyLedgerChanges", ctx, mock.Anything, mock.Anything, suite.userID, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(1).([]portsrepo.BalanceChange)
			gotEntries = args.Get(2).([]domain.LedgerEntry)
		}).
		Return(nil).Once()

	entry, err := suite.service.Transfer(ctx, suite.sender.Address, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryTransferOut, entry.Kind)

	// No recipient change and no TRANSFER_IN entry; the fee is still collected.
	suite.Require().Len(gotChanges, 2)
	suite.Require().Len(gotEntries, 3)
	for _, e := range gotEntries {
		suite.NotEqual(domain.EntryTransferIn, e.Kind)
	}
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFunds() {
	ctx := context.Background()
	req := dto.TransferRequest{
		ToAddress: suite.recipient.Address,
		Amount:    decimal.RequireFromString("99.00"),
		Network:   "polygon",
		PIN:       suite.pin,
	}
	fee := decimal.RequireFromString("1.50")

	suite.mockFeeSvc.On("NetworkFee", ctx, "polygon").Return(fee, nil).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.recipient.Address).Return(suite.recipient, nil).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Once()

	_, err := suite.service.Transfer(ctx, suite.sender.Address, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyLedgerChanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SelfTransfer() {
	ctx := context.Background()
	req := dto.TransferRequest{
		ToAddress: suite.sender.Address,
		Amount:    decimal.RequireFromString("1.00"),
		Network:   "polygon",
		PIN:       suite.pin,
	}

	_, err := suite.service.Transfer(ctx, suite.sender.Address, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSelfTransfer)
	suite.mockFeeSvc.AssertNotCalled(suite.T(), "NetworkFee", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ToFeeCollectorRejected() {
	ctx := context.Background()
	req := dto.TransferRequest{
		ToAddress: domain.FeeCollectorAddress,
		Amount:    decimal.RequireFromString("1.00"),
		Network:   "polygon",
		PIN:       suite.pin,
	}

	_, err := suite.service.Transfer(ctx, suite.sender.Address, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Addressing the collector directly would put two balance changes for
	// the same wallet into one commit; nothing may reach the repository.
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyLedgerChanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_UnknownNetwork() {
	ctx := context.Background()
	req := dto.TransferRequest{
		ToAddress: suite.recipient.Address,
		Amount:    decimal.RequireFromString("1.00"),
		Network:   "dogenet",
		PIN:       suite.pin,
	}

	suite.mockFeeSvc.On("NetworkFee", ctx, "dogenet").Return(decimal.Zero, apperrors.ErrUnknownNetwork).Once()

	_, err := suite.service.Transfer(ctx, suite.sender.Address, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownNetwork)
}

func (suite *LedgerServiceTestSuite) TestTransfer_WrongPIN() {
	ctx := context.Background()
	req := dto.TransferRequest{
		ToAddress: suite.recipient.Address,
		Amount:    decimal.RequireFromString("1.00"),
		Network:   "polygon",
		PIN:       "9999",
	}

	suite.mockFeeSvc.On("NetworkFee", ctx, "polygon").Return(decimal.RequireFromString("1.50"), nil).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.recipient.Address).Return(suite.recipient, nil).Once()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Once()

	_, err := suite.service.Transfer(ctx, suite.sender.Address, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyLedgerChanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestGetBalance() {
	ctx := context.Background()
	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.sender.Address)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("100.00")))
}

func (suite *LedgerServiceTestSuite) TestGetHistory_PassesPaginationThrough() {
	ctx := context.Background()
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), WalletAddress: suite.sender.Address, Kind: domain.EntryDeposit, Amount: decimal.RequireFromString("25.00")},
	}
	token := "opaque-token"

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, suite.sender.Address).Return(suite.sender, nil).Once()
	suite.mockWalletRepo.On("ListEntriesByWallet", ctx, suite.sender.Address, 10, (*string)(nil)).
		Return(entries, token, nil).Once()

	page, err := suite.service.GetHistory(ctx, suite.sender.Address, dto.ListEntriesParams{Limit: 10})

	suite.Require().NoError(err)
	suite.Require().Len(page.Entries, 1)
	suite.Require().NotNil(page.NextToken)
	suite.Equal(token, *page.NextToken)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
