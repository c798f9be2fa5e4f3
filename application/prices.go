package application

import (
	"context"
	"fmt"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
)

// ListPrices returns the current quote for every asset the feed has priced
func (a *App) ListPrices(ctx context.Context) ([]*entities.AssetPrice, error) {
	return a.prices.ListPrices(ctx)
}

// UpsertPrice records a quote from the market-data feed. Prices live outside
// the transactional ledger, so this writes straight through the price source.
func (a *App) UpsertPrice(ctx context.Context, price *entities.AssetPrice) error {
	if err := price.Asset().Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !price.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", domain.ErrValidation, price.Price)
	}
	return a.prices.UpsertPrice(ctx, price)
}
