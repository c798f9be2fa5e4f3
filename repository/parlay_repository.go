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

type parlayRepository struct {
	q Queryable
}

// NewParlayRepository creates a new parlay repository
func NewParlayRepository(db *database.DB) interfaces.ParlayRepository {
	return &parlayRepository{q: db.Pool}
}

// newParlayRepository creates a new parlay repository bound to a transaction
func newParlayRepository(tx Queryable) interfaces.ParlayRepository {
	return &parlayRepository{q: tx}
}

const parlayColumns = `id, user_id, stake::TEXT, total_odds::TEXT, potential_payout::TEXT, status, created_at, settled_at`

const parlayLegColumns = `id, parlay_id, game_id, bet_type, pick, odds::TEXT, status, created_at, settled_at`

func (r *parlayRepository) CreateWithLegs(ctx context.Context, parlay *entities.Parlay, legs []*entities.ParlayLeg) error {
	parlayQuery := `
		INSERT INTO parlays (user_id, stake, total_odds, potential_payout)
		VALUES ($1, $2::NUMERIC, $3::NUMERIC, $4::NUMERIC)
		RETURNING id, status, created_at`

	err := r.q.QueryRow(ctx, parlayQuery,
		parlay.UserID,
		parlay.Stake.String(),
		parlay.TotalOdds.String(),
		parlay.PotentialPayout.String(),
	).Scan(&parlay.ID, &parlay.Status, &parlay.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create parlay: %w", err)
	}

	legQuery := `
		INSERT INTO parlay_legs (parlay_id, game_id, bet_type, pick, odds)
		VALUES ($1, $2, $3, $4, $5::NUMERIC)
		RETURNING id, status, created_at`

	for _, leg := range legs {
		leg.ParlayID = parlay.ID
		err := r.q.QueryRow(ctx, legQuery,
			leg.ParlayID,
			leg.GameID,
			leg.BetType,
			leg.Pick,
			leg.Odds.String(),
		).Scan(&leg.ID, &leg.Status, &leg.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create parlay leg: %w", err)
		}
	}

	return nil
}

func (r *parlayRepository) GetDetailByID(ctx context.Context, parlayID int64) (*entities.ParlayDetail, error) {
	query := `
		SELECT ` + parlayColumns + `
		FROM parlays
		WHERE id = $1`

	parlay, err := scanParlay(r.q.QueryRow(ctx, query, parlayID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parlay %d: %w", parlayID, err)
	}

	legs, err := r.GetLegs(ctx, parlayID)
	if err != nil {
		return nil, err
	}

	return &entities.ParlayDetail{Parlay: parlay, Legs: legs}, nil
}

func (r *parlayRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ParlayDetail, error) {
	query := `
		SELECT ` + parlayColumns + `
		FROM parlays
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query parlays for user %d: %w", userID, err)
	}
	defer rows.Close()

	var parlays []*entities.Parlay
	for rows.Next() {
		parlay, err := scanParlay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parlay: %w", err)
		}
		parlays = append(parlays, parlay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parlays: %w", err)
	}
	rows.Close()

	details := make([]*entities.ParlayDetail, 0, len(parlays))
	for _, parlay := range parlays {
		legs, err := r.GetLegs(ctx, parlay.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, &entities.ParlayDetail{Parlay: parlay, Legs: legs})
	}

	return details, nil
}

// GetPendingLegsByGame returns pending legs on the game whose parent parlay
// is itself still pending. Legs of a parlay already decided (a prior leg
// lost) are skipped so settlement never touches dead slips.
func (r *parlayRepository) GetPendingLegsByGame(ctx context.Context, gameID int64) ([]*entities.ParlayLeg, error) {
	query := `
		SELECT l.id, l.parlay_id, l.game_id, l.bet_type, l.pick, l.odds::TEXT, l.status, l.created_at, l.settled_at
		FROM parlay_legs l
		JOIN parlays p ON p.id = l.parlay_id
		WHERE l.game_id = $1 AND l.status = 'pending' AND p.status = 'pending'
		ORDER BY l.id`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending legs for game %d: %w", gameID, err)
	}
	defer rows.Close()

	return collectParlayLegs(rows)
}

func (r *parlayRepository) GetLegs(ctx context.Context, parlayID int64) ([]*entities.ParlayLeg, error) {
	query := `
		SELECT ` + parlayLegColumns + `
		FROM parlay_legs
		WHERE parlay_id = $1
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, parlayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query legs for parlay %d: %w", parlayID, err)
	}
	defer rows.Close()

	return collectParlayLegs(rows)
}

func (r *parlayRepository) MarkLegSettled(ctx context.Context, legID int64, status entities.BetStatus) (bool, error) {
	query := `
		UPDATE parlay_legs
		SET status = $2, settled_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.q.Exec(ctx, query, legID, status)
	if err != nil {
		return false, fmt.Errorf("failed to settle parlay leg %d: %w", legID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *parlayRepository) MarkSettled(ctx context.Context, parlayID int64, status entities.BetStatus) (bool, error) {
	query := `
		UPDATE parlays
		SET status = $2, settled_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.q.Exec(ctx, query, parlayID, status)
	if err != nil {
		return false, fmt.Errorf("failed to settle parlay %d: %w", parlayID, err)
	}

	return result.RowsAffected() > 0, nil
}

func scanParlay(row pgx.Row) (*entities.Parlay, error) {
	var parlay entities.Parlay
	var stake, totalOdds, payout string
	err := row.Scan(
		&parlay.ID,
		&parlay.UserID,
		&stake,
		&totalOdds,
		&payout,
		&parlay.Status,
		&parlay.CreatedAt,
		&parlay.SettledAt,
	)
	if err != nil {
		return nil, err
	}

	if parlay.Stake, err = decimal.NewFromString(stake); err != nil {
		return nil, fmt.Errorf("failed to parse stake %q: %w", stake, err)
	}
	if parlay.TotalOdds, err = decimal.NewFromString(totalOdds); err != nil {
		return nil, fmt.Errorf("failed to parse total odds %q: %w", totalOdds, err)
	}
	if parlay.PotentialPayout, err = decimal.NewFromString(payout); err != nil {
		return nil, fmt.Errorf("failed to parse potential payout %q: %w", payout, err)
	}

	return &parlay, nil
}

func collectParlayLegs(rows pgx.Rows) ([]*entities.ParlayLeg, error) {
	var legs []*entities.ParlayLeg
	for rows.Next() {
		var leg entities.ParlayLeg
		var odds string
		err := rows.Scan(
			&leg.ID,
			&leg.ParlayID,
			&leg.GameID,
			&leg.BetType,
			&leg.Pick,
			&odds,
			&leg.Status,
			&leg.CreatedAt,
			&leg.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parlay leg: %w", err)
		}
		if leg.Odds, err = decimal.NewFromString(odds); err != nil {
			return nil, fmt.Errorf("failed to parse leg odds %q: %w", odds, err)
		}
		legs = append(legs, &leg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parlay legs: %w", err)
	}

	return legs, nil
}
