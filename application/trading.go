package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/services"
	"playbook/ledger-service/infrastructure/observability"
)

// ExecuteTrade performs a buy or sell of qty shares at the quoted unit
// price. Balance, holding, and ownership log move in one transaction.
func (a *App) ExecuteTrade(ctx context.Context, userID int64, asset entities.AssetRef, side entities.TradeSide, unitPrice decimal.Decimal, qty int64) (*entities.TradeResult, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tradingService := services.NewTradingService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		uow.EventBus(),
	)
	result, err := tradingService.ExecuteTrade(ctx, userID, asset, side, unitPrice, qty)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	observability.GetMetrics().RecordTradeExecuted(string(side))
	return result, nil
}
