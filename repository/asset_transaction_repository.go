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

type assetTransactionRepository struct {
	q Queryable
}

// NewAssetTransactionRepository creates a new asset transaction repository
func NewAssetTransactionRepository(db *database.DB) interfaces.AssetTransactionRepository {
	return &assetTransactionRepository{q: db.Pool}
}

// newAssetTransactionRepository creates a new asset transaction repository
// bound to a transaction
func newAssetTransactionRepository(tx Queryable) interfaces.AssetTransactionRepository {
	return &assetTransactionRepository{q: tx}
}

func (r *assetTransactionRepository) Record(ctx context.Context, txn *entities.AssetTransaction) error {
	query := `
		INSERT INTO asset_transactions (user_id, kind, asset_type, asset_name, unit_price, quantity, cost_basis, profit_loss)
		VALUES ($1, $2, $3, $4, $5::NUMERIC, $6, $7::NUMERIC, $8::NUMERIC)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		txn.UserID,
		txn.Kind,
		txn.AssetType,
		txn.AssetName,
		txn.UnitPrice.String(),
		txn.Quantity,
		txn.CostBasis.String(),
		txn.ProfitLoss.String(),
	).Scan(&txn.ID, &txn.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record asset transaction: %w", err)
	}

	return nil
}

// AverageAcquisitionPrice averages the unit price of the user's prior buy
// and trade-in rows for the asset. Zero-priced rows are barter acquisitions
// and carry no price signal, so they are excluded from the mean.
func (r *assetTransactionRepository) AverageAcquisitionPrice(ctx context.Context, userID int64, asset entities.AssetRef) (*decimal.Decimal, error) {
	query := `
		SELECT AVG(unit_price)::TEXT
		FROM asset_transactions
		WHERE user_id = $1 AND asset_type = $2 AND asset_name = $3
		  AND kind IN ('buy', 'trade_in')
		  AND unit_price > 0`

	var avg *string
	err := r.q.QueryRow(ctx, query, userID, asset.Type, asset.Name).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to get average acquisition price of %s for user %d: %w", asset, userID, err)
	}

	if avg == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(*avg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse average price %q: %w", *avg, err)
	}

	return &price, nil
}

func (r *assetTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.AssetTransaction, error) {
	query := `
		SELECT id, user_id, kind, asset_type, asset_name, unit_price::TEXT, quantity, cost_basis::TEXT, profit_loss::TEXT, created_at
		FROM asset_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var txns []*entities.AssetTransaction
	for rows.Next() {
		txn, err := scanAssetTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset transactions: %w", err)
	}

	return txns, nil
}

func (r *assetTransactionRepository) RealizedPerformance(ctx context.Context, userID int64) ([]*entities.AssetPerformance, error) {
	query := `
		SELECT asset_type, asset_name, COUNT(*), COALESCE(SUM(profit_loss), 0)::TEXT
		FROM asset_transactions
		WHERE user_id = $1 AND kind = 'sell'
		GROUP BY asset_type, asset_name
		ORDER BY SUM(profit_loss) DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query realized performance for user %d: %w", userID, err)
	}
	defer rows.Close()

	var results []*entities.AssetPerformance
	for rows.Next() {
		var perf entities.AssetPerformance
		var realized string
		err := rows.Scan(&perf.AssetType, &perf.AssetName, &perf.SellCount, &realized)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset performance: %w", err)
		}
		perf.RealizedPL, err = decimal.NewFromString(realized)
		if err != nil {
			return nil, fmt.Errorf("failed to parse realized profit %q: %w", realized, err)
		}
		results = append(results, &perf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset performance: %w", err)
	}

	return results, nil
}

func scanAssetTransaction(rows pgx.Rows) (*entities.AssetTransaction, error) {
	var txn entities.AssetTransaction
	var unitPrice, costBasis, profitLoss string
	err := rows.Scan(
		&txn.ID,
		&txn.UserID,
		&txn.Kind,
		&txn.AssetType,
		&txn.AssetName,
		&unitPrice,
		&txn.Quantity,
		&costBasis,
		&profitLoss,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.UnitPrice, err = decimal.NewFromString(unitPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unit price %q: %w", unitPrice, err)
	}
	txn.CostBasis, err = decimal.NewFromString(costBasis)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cost basis %q: %w", costBasis, err)
	}
	txn.ProfitLoss, err = decimal.NewFromString(profitLoss)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profit/loss %q: %w", profitLoss, err)
	}

	return &txn, nil
}
