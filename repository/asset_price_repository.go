package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"playbook/ledger-service/database"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/interfaces"
)

type assetPriceRepository struct {
	q Queryable
}

// NewAssetPriceRepository creates a new asset price repository
func NewAssetPriceRepository(db *database.DB) interfaces.AssetPriceRepository {
	return &assetPriceRepository{q: db.Pool}
}

// newAssetPriceRepository creates a new asset price repository bound to a
// transaction
func newAssetPriceRepository(tx Queryable) interfaces.AssetPriceRepository {
	return &assetPriceRepository{q: tx}
}

func (r *assetPriceRepository) GetPrice(ctx context.Context, asset entities.AssetRef) (*entities.AssetPrice, error) {
	query := `
		SELECT asset_type, asset_name, price::TEXT, updated_at
		FROM asset_prices
		WHERE asset_type = $1 AND asset_name = $2`

	var price entities.AssetPrice
	var value string
	err := r.q.QueryRow(ctx, query, asset.Type, asset.Name).Scan(
		&price.AssetType,
		&price.AssetName,
		&value,
		&price.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price for %s: %w", asset, err)
	}

	if price.Price, err = decimal.NewFromString(value); err != nil {
		return nil, fmt.Errorf("failed to parse price %q: %w", value, err)
	}

	return &price, nil
}

func (r *assetPriceRepository) ListPrices(ctx context.Context) ([]*entities.AssetPrice, error) {
	query := `
		SELECT asset_type, asset_name, price::TEXT, updated_at
		FROM asset_prices
		ORDER BY asset_type, asset_name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset prices: %w", err)
	}
	defer rows.Close()

	var prices []*entities.AssetPrice
	for rows.Next() {
		var price entities.AssetPrice
		var value string
		err := rows.Scan(&price.AssetType, &price.AssetName, &value, &price.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset price: %w", err)
		}
		if price.Price, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("failed to parse price %q: %w", value, err)
		}
		prices = append(prices, &price)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset prices: %w", err)
	}

	return prices, nil
}

func (r *assetPriceRepository) UpsertPrice(ctx context.Context, price *entities.AssetPrice) error {
	query := `
		INSERT INTO asset_prices (asset_type, asset_name, price, updated_at)
		VALUES ($1, $2, $3::NUMERIC, NOW())
		ON CONFLICT (asset_type, asset_name)
		DO UPDATE SET price = EXCLUDED.price, updated_at = NOW()
		RETURNING updated_at`

	err := r.q.QueryRow(ctx, query,
		price.AssetType,
		price.AssetName,
		price.Price.String(),
	).Scan(&price.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert price for %s/%s: %w", price.AssetType, price.AssetName, err)
	}

	return nil
}
