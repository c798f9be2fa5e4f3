package application

import (
	"context"
	"fmt"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/services"
	"playbook/ledger-service/infrastructure/observability"
)

// CreateOffer opens a pending trade offer from the initiator
func (a *App) CreateOffer(ctx context.Context, initiatorID int64, counterpartyID *int64, offered, requested []entities.TradeOfferItemInput) (*entities.TradeOfferDetail, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	offerService := services.NewTradeOfferService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		uow.TradeOfferRepository(),
		uow.EventBus(),
	)
	detail, err := offerService.CreateOffer(ctx, initiatorID, counterpartyID, offered, requested)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return detail, nil
}

// GetOffer retrieves an offer with its items
func (a *App) GetOffer(ctx context.Context, offerID int64) (*entities.TradeOfferDetail, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	offerService := services.NewTradeOfferService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		uow.TradeOfferRepository(),
		uow.EventBus(),
	)
	return offerService.GetOffer(ctx, offerID)
}

// AcceptOffer re-validates both sides and swaps the assets atomically
func (a *App) AcceptOffer(ctx context.Context, offerID, acceptorID int64) (*entities.TradeOfferDetail, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	offerService := services.NewTradeOfferService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		uow.TradeOfferRepository(),
		uow.EventBus(),
	)
	detail, err := offerService.AcceptOffer(ctx, offerID, acceptorID)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	observability.GetMetrics().RecordTradeOfferAccepted()
	return detail, nil
}

// RejectOffer declines a pending offer
func (a *App) RejectOffer(ctx context.Context, offerID, userID int64) error {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	offerService := services.NewTradeOfferService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		uow.TradeOfferRepository(),
		uow.EventBus(),
	)
	if err := offerService.RejectOffer(ctx, offerID, userID); err != nil {
		uow.Rollback()
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CancelOffer withdraws a pending offer the user initiated
func (a *App) CancelOffer(ctx context.Context, offerID, userID int64) error {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	offerService := services.NewTradeOfferService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		uow.TradeOfferRepository(),
		uow.EventBus(),
	)
	if err := offerService.CancelOffer(ctx, offerID, userID); err != nil {
		uow.Rollback()
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListOffersForUser returns offers the user initiated or can respond to
func (a *App) ListOffersForUser(ctx context.Context, userID int64) ([]*entities.TradeOfferDetail, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	offerService := services.NewTradeOfferService(
		uow.UserRepository(),
		uow.HoldingRepository(),
		uow.AssetTransactionRepository(),
		uow.TradeOfferRepository(),
		uow.EventBus(),
	)
	return offerService.ListOffersForUser(ctx, userID)
}
