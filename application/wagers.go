package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/services"
	"playbook/ledger-service/infrastructure/observability"
)

// PlaceBet stakes a single wager on a scheduled game, debiting the stake up
// front
func (a *App) PlaceBet(ctx context.Context, userID, gameID int64, betType entities.BetType, pick entities.BetPick, stake decimal.Decimal) (*entities.Bet, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	bettingService := services.NewBettingService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.BetRepository(),
		uow.EventBus(),
	)
	bet, err := bettingService.PlaceBet(ctx, userID, gameID, betType, pick, stake)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	observability.GetMetrics().RecordBetPlaced(string(betType))
	return bet, nil
}

// GetBet retrieves a single bet by ID
func (a *App) GetBet(ctx context.Context, betID int64) (*entities.Bet, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bettingService := services.NewBettingService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.BetRepository(),
		uow.EventBus(),
	)
	return bettingService.GetBet(ctx, betID)
}

// ListUserBets returns a user's bets, newest first
func (a *App) ListUserBets(ctx context.Context, userID int64, limit int) ([]*entities.Bet, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bettingService := services.NewBettingService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.BetRepository(),
		uow.EventBus(),
	)
	return bettingService.ListUserBets(ctx, userID, limit)
}

// CreateParlay stakes a multi-leg wager whose combined odds multiply across
// legs
func (a *App) CreateParlay(ctx context.Context, userID int64, legs []entities.ParlayLegInput, stake decimal.Decimal) (*entities.ParlayDetail, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	parlayService := services.NewParlayService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.ParlayRepository(),
		uow.EventBus(),
	)
	detail, err := parlayService.CreateParlay(ctx, userID, legs, stake)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	observability.GetMetrics().RecordParlayCreated(len(legs))
	return detail, nil
}

// GetParlay retrieves a parlay with its legs
func (a *App) GetParlay(ctx context.Context, parlayID int64) (*entities.ParlayDetail, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	parlayService := services.NewParlayService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.ParlayRepository(),
		uow.EventBus(),
	)
	return parlayService.GetParlay(ctx, parlayID)
}

// ListUserParlays returns a user's parlays with legs, newest first
func (a *App) ListUserParlays(ctx context.Context, userID int64, limit int) ([]*entities.ParlayDetail, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	parlayService := services.NewParlayService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.ParlayRepository(),
		uow.EventBus(),
	)
	return parlayService.ListUserParlays(ctx, userID, limit)
}
