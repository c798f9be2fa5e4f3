package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"playbook/ledger-service/database"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/interfaces"
)

type tradeOfferRepository struct {
	q Queryable
}

// NewTradeOfferRepository creates a new trade offer repository
func NewTradeOfferRepository(db *database.DB) interfaces.TradeOfferRepository {
	return &tradeOfferRepository{q: db.Pool}
}

// newTradeOfferRepository creates a new trade offer repository bound to a
// transaction
func newTradeOfferRepository(tx Queryable) interfaces.TradeOfferRepository {
	return &tradeOfferRepository{q: tx}
}

const tradeOfferColumns = `id, initiator_id, counterparty_id, status, created_at, updated_at`

func (r *tradeOfferRepository) CreateWithItems(ctx context.Context, offer *entities.TradeOffer, items []*entities.TradeOfferItem) error {
	offerQuery := `
		INSERT INTO trade_offers (initiator_id, counterparty_id)
		VALUES ($1, $2)
		RETURNING id, status, created_at, updated_at`

	err := r.q.QueryRow(ctx, offerQuery,
		offer.InitiatorID,
		offer.CounterpartyID,
	).Scan(&offer.ID, &offer.Status, &offer.CreatedAt, &offer.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create trade offer: %w", err)
	}

	itemQuery := `
		INSERT INTO trade_offer_items (offer_id, side, asset_type, asset_name, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for _, item := range items {
		item.OfferID = offer.ID
		err := r.q.QueryRow(ctx, itemQuery,
			item.OfferID,
			item.Side,
			item.AssetType,
			item.AssetName,
			item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create trade offer item: %w", err)
		}
	}

	return nil
}

func (r *tradeOfferRepository) GetDetailByID(ctx context.Context, offerID int64) (*entities.TradeOfferDetail, error) {
	query := `
		SELECT ` + tradeOfferColumns + `
		FROM trade_offers
		WHERE id = $1`

	offer, err := scanTradeOffer(r.q.QueryRow(ctx, query, offerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade offer %d: %w", offerID, err)
	}

	items, err := r.getItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	return &entities.TradeOfferDetail{Offer: offer, Items: items}, nil
}

// GetForUser returns offers visible to the user: ones they initiated, ones
// addressed to them, and open offers anyone may accept.
func (r *tradeOfferRepository) GetForUser(ctx context.Context, userID int64) ([]*entities.TradeOfferDetail, error) {
	query := `
		SELECT ` + tradeOfferColumns + `
		FROM trade_offers
		WHERE initiator_id = $1 OR counterparty_id = $1 OR counterparty_id IS NULL
		ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade offers for user %d: %w", userID, err)
	}
	defer rows.Close()

	var offers []*entities.TradeOffer
	for rows.Next() {
		offer, err := scanTradeOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade offer: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trade offers: %w", err)
	}
	rows.Close()

	details := make([]*entities.TradeOfferDetail, 0, len(offers))
	for _, offer := range offers {
		items, err := r.getItems(ctx, offer.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, &entities.TradeOfferDetail{Offer: offer, Items: items})
	}

	return details, nil
}

// MarkAccepted transitions a pending offer to accepted and pins the acceptor
// as counterparty. The pending guard means two simultaneous acceptances
// resolve to exactly one winner.
func (r *tradeOfferRepository) MarkAccepted(ctx context.Context, offerID int64, acceptorID int64) (bool, error) {
	query := `
		UPDATE trade_offers
		SET status = 'accepted', counterparty_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.q.Exec(ctx, query, offerID, acceptorID)
	if err != nil {
		return false, fmt.Errorf("failed to accept trade offer %d: %w", offerID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *tradeOfferRepository) UpdateStatusIfPending(ctx context.Context, offerID int64, status entities.TradeOfferStatus) (bool, error) {
	query := `
		UPDATE trade_offers
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.q.Exec(ctx, query, offerID, status)
	if err != nil {
		return false, fmt.Errorf("failed to update trade offer %d to %s: %w", offerID, status, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *tradeOfferRepository) getItems(ctx context.Context, offerID int64) ([]*entities.TradeOfferItem, error) {
	query := `
		SELECT id, offer_id, side, asset_type, asset_name, quantity
		FROM trade_offer_items
		WHERE offer_id = $1
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for trade offer %d: %w", offerID, err)
	}
	defer rows.Close()

	var items []*entities.TradeOfferItem
	for rows.Next() {
		var item entities.TradeOfferItem
		err := rows.Scan(
			&item.ID,
			&item.OfferID,
			&item.Side,
			&item.AssetType,
			&item.AssetName,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade offer item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trade offer items: %w", err)
	}

	return items, nil
}

func scanTradeOffer(row pgx.Row) (*entities.TradeOffer, error) {
	var offer entities.TradeOffer
	err := row.Scan(
		&offer.ID,
		&offer.InitiatorID,
		&offer.CounterpartyID,
		&offer.Status,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &offer, nil
}
