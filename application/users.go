package application

import (
	"context"
	"fmt"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/services"
)

// GetOrCreateUser looks up a user by username, creating the account with
// the configured initial balance on first sight
func (a *App) GetOrCreateUser(ctx context.Context, username string) (*entities.User, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	userService := services.NewUserService(uow.UserRepository(), uow.EventBus())
	user, err := userService.GetOrCreateUser(ctx, username)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	userService := services.NewUserService(uow.UserRepository(), uow.EventBus())
	return userService.GetUser(ctx, userID)
}

// ListUsers returns all users
func (a *App) ListUsers(ctx context.Context) ([]*entities.User, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	userService := services.NewUserService(uow.UserRepository(), uow.EventBus())
	return userService.ListUsers(ctx)
}

// GetPortfolio returns the user's cash balance and priced positions
func (a *App) GetPortfolio(ctx context.Context, userID int64) (*entities.Portfolio, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	portfolioService := services.NewPortfolioService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		a.prices,
	)
	return portfolioService.GetPortfolio(ctx, userID)
}

// GetPerformance returns the user's realized profit/loss by asset
func (a *App) GetPerformance(ctx context.Context, userID int64) (*entities.Performance, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	portfolioService := services.NewPortfolioService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		a.prices,
	)
	return portfolioService.GetPerformance(ctx, userID)
}

// GetTransactionHistory returns the user's ownership log, newest first
func (a *App) GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*entities.AssetTransaction, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	portfolioService := services.NewPortfolioService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		a.prices,
	)
	return portfolioService.GetTransactionHistory(ctx, userID, limit)
}
