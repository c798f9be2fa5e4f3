package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/testhelpers"
)

type tradingServiceMocks struct {
	userRepo             *testhelpers.MockUserRepository
	holdingRepo          *testhelpers.MockHoldingRepository
	assetTransactionRepo *testhelpers.MockAssetTransactionRepository
	eventPublisher       *testhelpers.MockEventPublisher
}

func newTradingService(t *testing.T) (*tradingServiceMocks, *tradingService) {
	t.Helper()
	m := &tradingServiceMocks{
		userRepo:             new(testhelpers.MockUserRepository),
		holdingRepo:          new(testhelpers.MockHoldingRepository),
		assetTransactionRepo: new(testhelpers.MockAssetTransactionRepository),
		eventPublisher:       new(testhelpers.MockEventPublisher),
	}
	svc := NewTradingService(m.userRepo, m.holdingRepo, m.assetTransactionRepo, m.eventPublisher).(*tradingService)
	return m, svc
}

func (m *tradingServiceMocks) assertExpectations(t *testing.T) {
	m.userRepo.AssertExpectations(t)
	m.holdingRepo.AssertExpectations(t)
	m.assetTransactionRepo.AssertExpectations(t)
	m.eventPublisher.AssertExpectations(t)
}

func TestExecuteTrade_Buy(t *testing.T) {
	ctx := context.Background()
	asset := playerAsset("Jalen Reed")

	m, svc := newTradingService(t)

	// 3 shares at 12.50 costs 37.50
	m.userRepo.On("Debit", ctx, int64(1), dec("37.50")).Return(dec("262.50"), nil)
	m.holdingRepo.On("Increase", ctx, int64(1), asset, int64(3)).Return(int64(3), nil)
	m.assetTransactionRepo.On("Record", ctx, mock.MatchedBy(func(txn *entities.AssetTransaction) bool {
		return txn.Kind == entities.TransactionKindBuy &&
			txn.UnitPrice.Equal(dec("12.50")) &&
			txn.Quantity == 3 &&
			txn.CostBasis.Equal(dec("12.50")) &&
			txn.ProfitLoss.IsZero()
	})).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	result, err := svc.ExecuteTrade(ctx, 1, asset, entities.TradeSideBuy, dec("12.50"), 3)
	require.NoError(t, err)
	assert.True(t, result.NewBalance.Equal(dec("262.50")))
	assert.Equal(t, entities.TransactionKindBuy, result.Transaction.Kind)
	m.assertExpectations(t)
}

func TestExecuteTrade_BuyInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	asset := playerAsset("Jalen Reed")

	m, svc := newTradingService(t)

	// Debit fails before any holdings or log mutation
	m.userRepo.On("Debit", ctx, int64(1), dec("500.00")).
		Return(decimal.Zero, domain.ErrInsufficientFunds)

	_, err := svc.ExecuteTrade(ctx, 1, asset, entities.TradeSideBuy, dec("50.00"), 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	m.holdingRepo.AssertNotCalled(t, "Increase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assetTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	m.eventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
	m.assertExpectations(t)
}

func TestExecuteTrade_SellRealizesProfit(t *testing.T) {
	ctx := context.Background()
	asset := playerAsset("Jalen Reed")

	m, svc := newTradingService(t)

	// Two prior buys at 10 and 20 average to 15; selling 1 at 30 realizes 15
	avg := dec("15")
	m.holdingRepo.On("Decrease", ctx, int64(1), asset, int64(1)).Return(int64(1), nil)
	m.assetTransactionRepo.On("AverageAcquisitionPrice", ctx, int64(1), asset).Return(&avg, nil)
	m.userRepo.On("Credit", ctx, int64(1), dec("30.00")).Return(dec("330.00"), nil)
	m.assetTransactionRepo.On("Record", ctx, mock.MatchedBy(func(txn *entities.AssetTransaction) bool {
		return txn.Kind == entities.TransactionKindSell &&
			txn.CostBasis.Equal(dec("15.00")) &&
			txn.ProfitLoss.Equal(dec("15.00"))
	})).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	result, err := svc.ExecuteTrade(ctx, 1, asset, entities.TradeSideSell, dec("30.00"), 1)
	require.NoError(t, err)
	assert.True(t, result.Transaction.ProfitLoss.Equal(dec("15.00")))
	assert.True(t, result.NewBalance.Equal(dec("330.00")))
	m.assertExpectations(t)
}

func TestExecuteTrade_SellWithoutPricedHistory(t *testing.T) {
	ctx := context.Background()
	asset := playerAsset("Jalen Reed")

	m, svc := newTradingService(t)

	// Asset acquired purely by barter: cost basis falls back to the sale
	// price and realized profit is zero.
	m.holdingRepo.On("Decrease", ctx, int64(1), asset, int64(2)).Return(int64(0), nil)
	m.assetTransactionRepo.On("AverageAcquisitionPrice", ctx, int64(1), asset).
		Return(nil, nil)
	m.userRepo.On("Credit", ctx, int64(1), dec("25.00")).Return(dec("325.00"), nil)
	m.assetTransactionRepo.On("Record", ctx, mock.MatchedBy(func(txn *entities.AssetTransaction) bool {
		return txn.CostBasis.Equal(dec("12.50")) && txn.ProfitLoss.IsZero()
	})).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	_, err := svc.ExecuteTrade(ctx, 1, asset, entities.TradeSideSell, dec("12.50"), 2)
	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestExecuteTrade_SellInsufficientHoldings(t *testing.T) {
	ctx := context.Background()
	asset := playerAsset("Jalen Reed")

	m, svc := newTradingService(t)

	m.holdingRepo.On("Decrease", ctx, int64(1), asset, int64(5)).
		Return(int64(0), domain.ErrInsufficientHoldings)

	_, err := svc.ExecuteTrade(ctx, 1, asset, entities.TradeSideSell, dec("10.00"), 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientHoldings)

	m.userRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	m.assetTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestExecuteTrade_Validation(t *testing.T) {
	ctx := context.Background()
	asset := playerAsset("Jalen Reed")

	_, svc := newTradingService(t)

	tests := []struct {
		name  string
		asset entities.AssetRef
		side  entities.TradeSide
		price decimal.Decimal
		qty   int64
	}{
		{"unknown asset type", entities.AssetRef{Type: "coach", Name: "x"}, entities.TradeSideBuy, dec("10"), 1},
		{"empty asset name", entities.AssetRef{Type: entities.AssetTypePlayer}, entities.TradeSideBuy, dec("10"), 1},
		{"invalid side", asset, entities.TradeSide("short"), dec("10"), 1},
		{"zero quantity", asset, entities.TradeSideBuy, dec("10"), 0},
		{"negative quantity", asset, entities.TradeSideSell, dec("10"), -2},
		{"zero price", asset, entities.TradeSideBuy, decimal.Zero, 1},
		{"negative price", asset, entities.TradeSideBuy, dec("-1"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ExecuteTrade(ctx, 1, tt.asset, tt.side, tt.price, tt.qty)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
