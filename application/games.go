package application

import (
	"context"
	"fmt"
	"time"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/services"
	"playbook/ledger-service/infrastructure/observability"
)

// CreateGame registers a scheduled game with its betting lines
func (a *App) CreateGame(ctx context.Context, game *entities.Game) (*entities.Game, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	gameService := services.NewGameService(uow.GameRepository())
	created, err := gameService.CreateGame(ctx, game)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// GetGame retrieves a game by ID
func (a *App) GetGame(ctx context.Context, gameID int64) (*entities.Game, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	gameService := services.NewGameService(uow.GameRepository())
	return gameService.GetGame(ctx, gameID)
}

// ListGames returns games filtered by status
func (a *App) ListGames(ctx context.Context, status entities.GameStatus) ([]*entities.Game, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	gameService := services.NewGameService(uow.GameRepository())
	return gameService.ListGames(ctx, status)
}

// SettleGame records the final score and resolves every open wager on the
// game in a single transaction
func (a *App) SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*entities.SettlementSummary, error) {
	start := time.Now()

	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	settlementService := services.NewSettlementService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.BetRepository(),
		uow.ParlayRepository(),
		uow.EventBus(),
	)
	summary, err := settlementService.SettleGame(ctx, gameID, homeScore, awayScore)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics := observability.GetMetrics()
	metrics.RecordGameSettled(time.Since(start))
	metrics.RecordBetsResolved(int64(summary.BetsResolved))
	return summary, nil
}
