package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"playbook/ledger-service/database"
	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/interfaces"
)

type holdingRepository struct {
	q Queryable
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *database.DB) interfaces.HoldingRepository {
	return &holdingRepository{q: db.Pool}
}

// newHoldingRepository creates a new holding repository bound to a transaction
func newHoldingRepository(tx Queryable) interfaces.HoldingRepository {
	return &holdingRepository{q: tx}
}

func (r *holdingRepository) Increase(ctx context.Context, userID int64, asset entities.AssetRef, qty int64) (int64, error) {
	query := `
		INSERT INTO holdings (user_id, asset_type, asset_name, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, asset_type, asset_name)
		DO UPDATE SET quantity = holdings.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING quantity`

	var quantity int64
	err := r.q.QueryRow(ctx, query, userID, asset.Type, asset.Name, qty).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to increase holding %s for user %d: %w", asset, userID, err)
	}

	return quantity, nil
}

// Decrease removes qty shares. The sufficiency guard lives in the UPDATE so
// concurrent sells cannot take a holding negative; rows reaching zero are
// deleted to keep the registry free of empty positions.
func (r *holdingRepository) Decrease(ctx context.Context, userID int64, asset entities.AssetRef, qty int64) (int64, error) {
	query := `
		UPDATE holdings
		SET quantity = quantity - $4, updated_at = NOW()
		WHERE user_id = $1 AND asset_type = $2 AND asset_name = $3 AND quantity >= $4
		RETURNING quantity`

	var quantity int64
	err := r.q.QueryRow(ctx, query, userID, asset.Type, asset.Name, qty).Scan(&quantity)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("remove %d of %s from user %d: %w", qty, asset, userID, domain.ErrInsufficientHoldings)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to decrease holding %s for user %d: %w", asset, userID, err)
	}

	if quantity == 0 {
		deleteQuery := `
			DELETE FROM holdings
			WHERE user_id = $1 AND asset_type = $2 AND asset_name = $3 AND quantity = 0`
		if _, err := r.q.Exec(ctx, deleteQuery, userID, asset.Type, asset.Name); err != nil {
			return 0, fmt.Errorf("failed to prune empty holding %s for user %d: %w", asset, userID, err)
		}
	}

	return quantity, nil
}

func (r *holdingRepository) Quantity(ctx context.Context, userID int64, asset entities.AssetRef) (int64, error) {
	query := `
		SELECT quantity
		FROM holdings
		WHERE user_id = $1 AND asset_type = $2 AND asset_name = $3`

	var quantity int64
	err := r.q.QueryRow(ctx, query, userID, asset.Type, asset.Name).Scan(&quantity)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get holding %s for user %d: %w", asset, userID, err)
	}

	return quantity, nil
}

func (r *holdingRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.Holding, error) {
	query := `
		SELECT id, user_id, asset_type, asset_name, quantity, created_at, updated_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY asset_type, asset_name`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings for user %d: %w", userID, err)
	}
	defer rows.Close()

	var holdings []*entities.Holding
	for rows.Next() {
		var holding entities.Holding
		err := rows.Scan(
			&holding.ID,
			&holding.UserID,
			&holding.AssetType,
			&holding.AssetName,
			&holding.Quantity,
			&holding.CreatedAt,
			&holding.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, &holding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}
