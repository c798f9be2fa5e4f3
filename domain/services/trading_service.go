package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/events"
	"playbook/ledger-service/domain/interfaces"
)

type tradingService struct {
	userRepo             interfaces.UserRepository
	holdingRepo          interfaces.HoldingRepository
	assetTransactionRepo interfaces.AssetTransactionRepository
	eventPublisher       interfaces.EventPublisher
}

// NewTradingService creates a new trading service
func NewTradingService(
	userRepo interfaces.UserRepository,
	holdingRepo interfaces.HoldingRepository,
	assetTransactionRepo interfaces.AssetTransactionRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.TradingService {
	return &tradingService{
		userRepo:             userRepo,
		holdingRepo:          holdingRepo,
		assetTransactionRepo: assetTransactionRepo,
		eventPublisher:       eventPublisher,
	}
}

// ExecuteTrade performs a buy or sell of qty shares at the quoted unit
// price. The caller runs it inside a unit of work so the balance change,
// holding change, and log row commit together.
func (s *tradingService) ExecuteTrade(ctx context.Context, userID int64, asset entities.AssetRef, side entities.TradeSide, unitPrice decimal.Decimal, qty int64) (*entities.TradeResult, error) {
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !side.IsValid() {
		return nil, fmt.Errorf("%w: invalid trade side: %s", domain.ErrValidation, side)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrValidation, qty)
	}
	if !unitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit price must be positive, got %s", domain.ErrValidation, unitPrice)
	}

	total := unitPrice.Mul(decimal.NewFromInt(qty))

	var result *entities.TradeResult
	var err error
	switch side {
	case entities.TradeSideBuy:
		result, err = s.executeBuy(ctx, userID, asset, unitPrice, qty, total)
	case entities.TradeSideSell:
		result, err = s.executeSell(ctx, userID, asset, unitPrice, qty, total)
	}
	if err != nil {
		return nil, err
	}

	txn := result.Transaction
	if err := s.eventPublisher.Publish(events.TradeExecutedEvent{
		UserID:     userID,
		Side:       side,
		AssetType:  asset.Type,
		AssetName:  asset.Name,
		UnitPrice:  unitPrice,
		Quantity:   qty,
		ProfitLoss: txn.ProfitLoss,
	}); err != nil {
		log.WithError(err).Error("Failed to publish trade executed event")
	}

	if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:     userID,
		OldBalance: result.NewBalance.Sub(txn.CashDelta()),
		NewBalance: result.NewBalance,
		Change:     txn.CashDelta(),
		Reason:     fmt.Sprintf("trade_%s", side),
	}); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	log.WithFields(log.Fields{
		"userID":    userID,
		"asset":     asset.String(),
		"side":      side,
		"quantity":  qty,
		"unitPrice": unitPrice.String(),
	}).Info("Executed trade")

	return result, nil
}

func (s *tradingService) executeBuy(ctx context.Context, userID int64, asset entities.AssetRef, unitPrice decimal.Decimal, qty int64, total decimal.Decimal) (*entities.TradeResult, error) {
	newBalance, err := s.userRepo.Debit(ctx, userID, total)
	if err != nil {
		return nil, err
	}

	if _, err := s.holdingRepo.Increase(ctx, userID, asset, qty); err != nil {
		return nil, err
	}

	txn := &entities.AssetTransaction{
		UserID:    userID,
		Kind:      entities.TransactionKindBuy,
		AssetType: asset.Type,
		AssetName: asset.Name,
		UnitPrice: unitPrice,
		Quantity:  qty,
		CostBasis: unitPrice,
	}
	if err := s.assetTransactionRepo.Record(ctx, txn); err != nil {
		return nil, err
	}

	return &entities.TradeResult{Transaction: txn, NewBalance: newBalance}, nil
}

func (s *tradingService) executeSell(ctx context.Context, userID int64, asset entities.AssetRef, unitPrice decimal.Decimal, qty int64, total decimal.Decimal) (*entities.TradeResult, error) {
	if _, err := s.holdingRepo.Decrease(ctx, userID, asset, qty); err != nil {
		return nil, err
	}

	// Cost basis is the mean of prior priced acquisitions; an asset with no
	// priced history (acquired purely by barter) falls back to the current
	// market price, making the realized profit zero.
	avgCost, err := s.assetTransactionRepo.AverageAcquisitionPrice(ctx, userID, asset)
	if err != nil {
		return nil, err
	}
	costBasis := unitPrice
	if avgCost != nil {
		costBasis = avgCost.Round(2)
	}
	profit := unitPrice.Sub(costBasis).Mul(decimal.NewFromInt(qty)).Round(2)

	newBalance, err := s.userRepo.Credit(ctx, userID, total)
	if err != nil {
		return nil, err
	}

	txn := &entities.AssetTransaction{
		UserID:     userID,
		Kind:       entities.TransactionKindSell,
		AssetType:  asset.Type,
		AssetName:  asset.Name,
		UnitPrice:  unitPrice,
		Quantity:   qty,
		CostBasis:  costBasis,
		ProfitLoss: profit,
	}
	if err := s.assetTransactionRepo.Record(ctx, txn); err != nil {
		return nil, err
	}

	return &entities.TradeResult{Transaction: txn, NewBalance: newBalance}, nil
}
