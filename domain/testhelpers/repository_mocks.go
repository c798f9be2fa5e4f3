package testhelpers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/events"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username string, initialBalance decimal.Decimal) (*entities.User, error) {
	args := m.Called(ctx, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Debit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockUserRepository) Credit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// MockHoldingRepository is a mock implementation of HoldingRepository
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) Increase(ctx context.Context, userID int64, asset entities.AssetRef, qty int64) (int64, error) {
	args := m.Called(ctx, userID, asset, qty)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHoldingRepository) Decrease(ctx context.Context, userID int64, asset entities.AssetRef, qty int64) (int64, error) {
	args := m.Called(ctx, userID, asset, qty)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHoldingRepository) Quantity(ctx context.Context, userID int64, asset entities.AssetRef) (int64, error) {
	args := m.Called(ctx, userID, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHoldingRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Holding), args.Error(1)
}

// MockAssetTransactionRepository is a mock implementation of AssetTransactionRepository
type MockAssetTransactionRepository struct {
	mock.Mock
}

func (m *MockAssetTransactionRepository) Record(ctx context.Context, txn *entities.AssetTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockAssetTransactionRepository) AverageAcquisitionPrice(ctx context.Context, userID int64, asset entities.AssetRef) (*decimal.Decimal, error) {
	args := m.Called(ctx, userID, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*decimal.Decimal), args.Error(1)
}

func (m *MockAssetTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.AssetTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AssetTransaction), args.Error(1)
}

func (m *MockAssetTransactionRepository) RealizedPerformance(ctx context.Context, userID int64) ([]*entities.AssetPerformance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AssetPerformance), args.Error(1)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, gameID int64) (*entities.Game, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) ListByStatus(ctx context.Context, status entities.GameStatus) ([]*entities.Game, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Game), args.Error(1)
}

func (m *MockGameRepository) MarkCompleted(ctx context.Context, gameID int64, homeScore, awayScore int) (bool, error) {
	args := m.Called(ctx, gameID, homeScore, awayScore)
	return args.Bool(0), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, betID int64) (*entities.Bet, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Bet, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetPendingByGame(ctx context.Context, gameID int64) ([]*entities.Bet, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) MarkSettled(ctx context.Context, betID int64, status entities.BetStatus) (bool, error) {
	args := m.Called(ctx, betID, status)
	return args.Bool(0), args.Error(1)
}

// MockParlayRepository is a mock implementation of ParlayRepository
type MockParlayRepository struct {
	mock.Mock
}

func (m *MockParlayRepository) CreateWithLegs(ctx context.Context, parlay *entities.Parlay, legs []*entities.ParlayLeg) error {
	args := m.Called(ctx, parlay, legs)
	return args.Error(0)
}

func (m *MockParlayRepository) GetDetailByID(ctx context.Context, parlayID int64) (*entities.ParlayDetail, error) {
	args := m.Called(ctx, parlayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ParlayDetail), args.Error(1)
}

func (m *MockParlayRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ParlayDetail, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ParlayDetail), args.Error(1)
}

func (m *MockParlayRepository) GetPendingLegsByGame(ctx context.Context, gameID int64) ([]*entities.ParlayLeg, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ParlayLeg), args.Error(1)
}

func (m *MockParlayRepository) GetLegs(ctx context.Context, parlayID int64) ([]*entities.ParlayLeg, error) {
	args := m.Called(ctx, parlayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ParlayLeg), args.Error(1)
}

func (m *MockParlayRepository) MarkLegSettled(ctx context.Context, legID int64, status entities.BetStatus) (bool, error) {
	args := m.Called(ctx, legID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockParlayRepository) MarkSettled(ctx context.Context, parlayID int64, status entities.BetStatus) (bool, error) {
	args := m.Called(ctx, parlayID, status)
	return args.Bool(0), args.Error(1)
}

// MockTradeOfferRepository is a mock implementation of TradeOfferRepository
type MockTradeOfferRepository struct {
	mock.Mock
}

func (m *MockTradeOfferRepository) CreateWithItems(ctx context.Context, offer *entities.TradeOffer, items []*entities.TradeOfferItem) error {
	args := m.Called(ctx, offer, items)
	return args.Error(0)
}

func (m *MockTradeOfferRepository) GetDetailByID(ctx context.Context, offerID int64) (*entities.TradeOfferDetail, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TradeOfferDetail), args.Error(1)
}

func (m *MockTradeOfferRepository) GetForUser(ctx context.Context, userID int64) ([]*entities.TradeOfferDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TradeOfferDetail), args.Error(1)
}

func (m *MockTradeOfferRepository) MarkAccepted(ctx context.Context, offerID int64, acceptorID int64) (bool, error) {
	args := m.Called(ctx, offerID, acceptorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTradeOfferRepository) UpdateStatusIfPending(ctx context.Context, offerID int64, status entities.TradeOfferStatus) (bool, error) {
	args := m.Called(ctx, offerID, status)
	return args.Bool(0), args.Error(1)
}

// MockAssetPriceRepository is a mock implementation of AssetPriceRepository.
// It also satisfies PriceSource.
type MockAssetPriceRepository struct {
	mock.Mock
}

func (m *MockAssetPriceRepository) GetPrice(ctx context.Context, asset entities.AssetRef) (*entities.AssetPrice, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AssetPrice), args.Error(1)
}

func (m *MockAssetPriceRepository) ListPrices(ctx context.Context) ([]*entities.AssetPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AssetPrice), args.Error(1)
}

func (m *MockAssetPriceRepository) UpsertPrice(ctx context.Context, price *entities.AssetPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
