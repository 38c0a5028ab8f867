package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/playforge/wallet_marketplace_app/internal/core/services"
)

// --- Mock NetworkRepository ---
type MockNetworkRepository struct {
	mock.Mock
}

func (m *MockNetworkRepository) FindNetworkByCode(ctx context.Context, code string) (*domain.Network, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Network), args.Error(1)
}

func (m *MockNetworkRepository) ListNetworks(ctx context.Context) ([]domain.Network, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Network), args.Error(1)
}

type FeeServiceTestSuite struct {
	suite.Suite
	mockNetworkRepo *MockNetworkRepository
	service         *services.FeeService
}

func (suite *FeeServiceTestSuite) SetupTest() {
	suite.mockNetworkRepo = new(MockNetworkRepository)
	suite.service = services.NewFeeService(suite.mockNetworkRepo, 2*time.Second)
}

func (suite *FeeServiceTestSuite) TestNetworkFee_Known() {
	network := &domain.Network{Code: "polygon", Name: "Polygon", Fee: decimal.RequireFromString("1.50"), Enabled: true}
	suite.mockNetworkRepo.On("FindNetworkByCode", mock.Anything, "polygon").Return(network, nil).Once()

	fee, err := suite.service.NetworkFee(context.Background(), "polygon")

	suite.Require().NoError(err)
	suite.True(fee.Equal(decimal.RequireFromString("1.50")))
}

func (suite *FeeServiceTestSuite) TestNetworkFee_Unknown() {
	suite.mockNetworkRepo.On("FindNetworkByCode", mock.Anything, "dogenet").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.NetworkFee(context.Background(), "dogenet")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownNetwork)
}

func (suite *FeeServiceTestSuite) TestNetworkFee_Disabled() {
	network := &domain.Network{Code: "ethereum", Name: "Ethereum", Fee: decimal.RequireFromString("4.00"), Enabled: false}
	suite.mockNetworkRepo.On("FindNetworkByCode", mock.Anything, "ethereum").Return(network, nil).Once()

	_, err := suite.service.NetworkFee(context.Background(), "ethereum")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownNetwork)
}

func (suite *FeeServiceTestSuite) TestNetworkFee_TimeoutFailsClosed() {
	suite.mockNetworkRepo.On("FindNetworkByCode", mock.Anything, "polygon").Return(nil, context.DeadlineExceeded).Once()

	_, err := suite.service.NetworkFee(context.Background(), "polygon")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExternalTimeout)
}

func (suite *FeeServiceTestSuite) TestListNetworks() {
	networks := []domain.Network{
		{Code: "polygon", Fee: decimal.RequireFromString("1.50"), Enabled: true},
		{Code: "solana", Fee: decimal.RequireFromString("0.50"), Enabled: true},
	}
	suite.mockNetworkRepo.On("ListNetworks", mock.Anything).Return(networks, nil).Once()

	got, err := suite.service.ListNetworks(context.Background())

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestFeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeeServiceTestSuite))
}
