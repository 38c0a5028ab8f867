package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
	"github.com/playforge/wallet_marketplace_app/internal/handlers"
	"github.com/playforge/wallet_marketplace_app/pkg/config"
)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

func (m *MockWalletService) GetWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) GetWalletForUser(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) CreateWallet(ctx context.Context, userID string, pin string) (*domain.Wallet, string, error) {
	args := m.Called(ctx, userID, pin)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Wallet), args.String(1), args.Error(2)
}

func (m *MockWalletService) DeactivateWallet(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockWalletService) VerifyPIN(ctx context.Context, userID string, pin string) error {
	args := m.Called(ctx, userID, pin)
	return args.Error(0)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) Deposit(ctx context.Context, req dto.DepositRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromAddress string, req dto.TransferRequest, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, fromAddress, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) GetHistory(ctx context.Context, address string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, address, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

// --- Mock MarketplaceService ---
type MockMarketplaceService struct {
	mock.Mock
}

var _ portssvc.MarketplaceSvcFacade = (*MockMarketplaceService)(nil)

func (m *MockMarketplaceService) Mint(ctx context.Context, req dto.MintAssetRequest) (*domain.Asset, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockMarketplaceService) GetAsset(ctx context.Context, tokenID string) (*domain.Asset, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockMarketplaceService) BrowseListings(ctx context.Context, params dto.ListListingsParams) (*dto.ListListingsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListListingsResponse), args.Error(1)
}

func (m *MockMarketplaceService) GetInventory(ctx context.Context, ownerAddress string) ([]domain.Asset, error) {
	args := m.Called(ctx, ownerAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockMarketplaceService) List(ctx context.Context, tokenID string, sellerAddress string, price decimal.Decimal, userID string) error {
	args := m.Called(ctx, tokenID, sellerAddress, price, userID)
	return args.Error(0)
}

func (m *MockMarketplaceService) Unlist(ctx context.Context, tokenID string, sellerAddress string, userID string) error {
	args := m.Called(ctx, tokenID, sellerAddress, userID)
	return args.Error(0)
}

func (m *MockMarketplaceService) Buy(ctx context.Context, tokenID string, buyerAddress string, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tokenID, buyerAddress, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock FeeService ---
type MockFeeService struct {
	mock.Mock
}

var _ portssvc.FeeSvcFacade = (*MockFeeService)(nil)

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

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateAccessToken(user *domain.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockReportingService) GetMarketplaceActivity(ctx context.Context, from, to time.Time) (*domain.MarketplaceActivity, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketplaceActivity), args.Error(1)
}

// --- Test Suite Setup ---
type MarketplaceHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	cfg             *config.Config
	mockWalletSvc   *MockWalletService
	mockLedgerSvc   *MockLedgerService
	mockMarketSvc   *MockMarketplaceService
	mockFeeSvc      *MockFeeService
	mockUserSvc     *MockUserService
	mockTokenSvc    *MockTokenService
	mockReportSvc   *MockReportingService
	userID          string
	wallet          *domain.Wallet
	authHeaderValue string
}

func (suite *MarketplaceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		JWTSecret:     "test-secret",
		IsProduction:  true, // skip swagger routes
		WebhookAPIKey: "test-webhook-key",
	}

	suite.mockWalletSvc = new(MockWalletService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockMarketSvc = new(MockMarketplaceService)
	suite.mockFeeSvc = new(MockFeeService)
	suite.mockUserSvc = new(MockUserService)
	suite.mockTokenSvc = new(MockTokenService)
	suite.mockReportSvc = new(MockReportingService)

	services := &portssvc.ServiceContainer{
		Wallet:      suite.mockWalletSvc,
		Ledger:      suite.mockLedgerSvc,
		Marketplace: suite.mockMarketSvc,
		Fee:         suite.mockFeeSvc,
		User:        suite.mockUserSvc,
		Token:       suite.mockTokenSvc,
		Reporting:   suite.mockReportSvc,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, services)

	suite.userID = uuid.NewString()
	suite.wallet = &domain.Wallet{
		Address:  "gwbuyer000000000000000000000000000000000001",
		UserID:   suite.userID,
		Balance:  decimal.RequireFromString("100.00"),
		IsActive: true,
	}

	claims := jwt.RegisteredClaims{
		Subject:   suite.userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.cfg.JWTSecret))
	suite.Require().NoError(err)
	suite.authHeaderValue = "Bearer " + token
}

func (suite *MarketplaceHandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.authHeaderValue)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MarketplaceHandlerTestSuite) TestBuy_Success() {
	tokenID := "tok-dragon-001"
	entry := &domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		WalletAddress: suite.wallet.Address,
		Kind:          domain.EntrySaleDebit,
		Amount:        decimal.RequireFromString("-30.00"),
	}
	asset := &domain.Asset{
		TokenID:      tokenID,
		Metadata:     domain.AssetMetadata{Name: "Ember Dragon", Rarity: domain.RarityEpic},
		OwnerAddress: suite.wallet.Address,
	}

	suite.mockWalletSvc.On("GetWalletForUser", mock.Anything, suite.userID).Return(suite.wallet, nil).Once()
	suite.mockMarketSvc.On("Buy", mock.Anything, tokenID, suite.wallet.Address, suite.userID).Return(entry, nil).Once()
	suite.mockMarketSvc.On("GetAsset", mock.Anything, tokenID).Return(asset, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/marketplace/purchases", dto.BuyAssetRequest{TokenID: tokenID})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PurchaseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal(suite.wallet.Address, resp.Asset.OwnerAddress)
	suite.mockMarketSvc.AssertExpectations(suite.T())
}

func (suite *MarketplaceHandlerTestSuite) TestBuy_ListingChangedMapsToConflict() {
	tokenID := "tok-dragon-001"

	suite.mockWalletSvc.On("GetWalletForUser", mock.Anything, suite.userID).Return(suite.wallet, nil).Once()
	suite.mockMarketSvc.On("Buy", mock.Anything, tokenID, suite.wallet.Address, suite.userID).
		Return(nil, apperrors.ErrListingChanged).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/marketplace/purchases", dto.BuyAssetRequest{TokenID: tokenID})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *MarketplaceHandlerTestSuite) TestBuy_InsufficientFundsMapsToUnprocessable() {
	tokenID := "tok-dragon-001"

	suite.mockWalletSvc.On("GetWalletForUser", mock.Anything, suite.userID).Return(suite.wallet, nil).Once()
	suite.mockMarketSvc.On("Buy", mock.Anything, tokenID, suite.wallet.Address, suite.userID).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/marketplace/purchases", dto.BuyAssetRequest{TokenID: tokenID})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *MarketplaceHandlerTestSuite) TestBuy_RequiresAuth() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/marketplace/purchases", bytes.NewBufferString(`{"tokenID":"tok-dragon-001"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMarketSvc.AssertNotCalled(suite.T(), "Buy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MarketplaceHandlerTestSuite) TestDeposit_WithAPIKeyReturnsEntry() {
	depositReq := dto.DepositRequest{
		WalletAddress:     suite.wallet.Address,
		Amount:            decimal.RequireFromString("25.00"),
		ExternalReference: "pay_abc123",
	}
	entry := &domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		WalletAddress:     suite.wallet.Address,
		Kind:              domain.EntryDeposit,
		Amount:            depositReq.Amount,
		ExternalReference: depositReq.ExternalReference,
	}

	suite.mockLedgerSvc.On("Deposit", mock.Anything, mock.AnythingOfType("dto.DepositRequest")).Return(entry, nil).Once()

	// The provider is not a logged-in player; it authenticates with the
	// shared key rather than a bearer token.
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(depositReq))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", suite.cfg.WebhookAPIKey)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
}

func (suite *MarketplaceHandlerTestSuite) TestDeposit_RequiresAPIKey() {
	depositReq := dto.DepositRequest{
		WalletAddress:     suite.wallet.Address,
		Amount:            decimal.RequireFromString("25.00"),
		ExternalReference: "pay_abc123",
	}

	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(depositReq))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything)
}

func (suite *MarketplaceHandlerTestSuite) TestMint_RejectsWrongAPIKey() {
	mintReq := dto.MintAssetRequest{
		TokenID:      "tok-dragon-001",
		Name:         "Ember Dragon",
		Rarity:       "EPIC",
		OwnerAddress: suite.wallet.Address,
	}

	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(mintReq))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", "not-the-configured-key")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMarketSvc.AssertNotCalled(suite.T(), "Mint", mock.Anything, mock.Anything)
}

func (suite *MarketplaceHandlerTestSuite) TestUnlist_NotListedMapsToBadRequest() {
	tokenID := "tok-shield-002"

	suite.mockWalletSvc.On("GetWalletForUser", mock.Anything, suite.userID).Return(suite.wallet, nil).Once()
	suite.mockMarketSvc.On("Unlist", mock.Anything, tokenID, suite.wallet.Address, suite.userID).
		Return(apperrors.ErrNotListed).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/marketplace/listings/"+tokenID, nil)
	req.Header.Set("Authorization", suite.authHeaderValue)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestMarketplaceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceHandlerTestSuite))
}
