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

type betRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) interfaces.BetRepository {
	return &betRepository{q: db.Pool}
}

// newBetRepository creates a new bet repository bound to a transaction
func newBetRepository(tx Queryable) interfaces.BetRepository {
	return &betRepository{q: tx}
}

const betColumns = `id, user_id, game_id, bet_type, pick,
		stake::TEXT, odds::TEXT, potential_payout::TEXT, status, created_at, settled_at`

func (r *betRepository) Create(ctx context.Context, bet *entities.Bet) error {
	query := `
		INSERT INTO bets (user_id, game_id, bet_type, pick, stake, odds, potential_payout)
		VALUES ($1, $2, $3, $4, $5::NUMERIC, $6::NUMERIC, $7::NUMERIC)
		RETURNING id, status, created_at`

	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.GameID,
		bet.BetType,
		bet.Pick,
		bet.Stake.String(),
		bet.Odds.String(),
		bet.PotentialPayout.String(),
	).Scan(&bet.ID, &bet.Status, &bet.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

func (r *betRepository) GetByID(ctx context.Context, betID int64) (*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE id = $1`

	bet, err := scanBet(r.q.QueryRow(ctx, query, betID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", betID, err)
	}

	return bet, nil
}

func (r *betRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets for user %d: %w", userID, err)
	}
	defer rows.Close()

	return collectBets(rows)
}

func (r *betRepository) GetPendingByGame(ctx context.Context, gameID int64) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE game_id = $1 AND status = 'pending'
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending bets for game %d: %w", gameID, err)
	}
	defer rows.Close()

	return collectBets(rows)
}

// MarkSettled applies a terminal status. The pending guard makes a raced
// double-settlement a detectable no-op rather than a double payout.
func (r *betRepository) MarkSettled(ctx context.Context, betID int64, status entities.BetStatus) (bool, error) {
	query := `
		UPDATE bets
		SET status = $2, settled_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.q.Exec(ctx, query, betID, status)
	if err != nil {
		return false, fmt.Errorf("failed to settle bet %d: %w", betID, err)
	}

	return result.RowsAffected() > 0, nil
}

func scanBet(row pgx.Row) (*entities.Bet, error) {
	var bet entities.Bet
	var stake, odds, payout string
	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.GameID,
		&bet.BetType,
		&bet.Pick,
		&stake,
		&odds,
		&payout,
		&bet.Status,
		&bet.CreatedAt,
		&bet.SettledAt,
	)
	if err != nil {
		return nil, err
	}

	if bet.Stake, err = decimal.NewFromString(stake); err != nil {
		return nil, fmt.Errorf("failed to parse stake %q: %w", stake, err)
	}
	if bet.Odds, err = decimal.NewFromString(odds); err != nil {
		return nil, fmt.Errorf("failed to parse odds %q: %w", odds, err)
	}
	if bet.PotentialPayout, err = decimal.NewFromString(payout); err != nil {
		return nil, fmt.Errorf("failed to parse potential payout %q: %w", payout, err)
	}

	return &bet, nil
}

func collectBets(rows pgx.Rows) ([]*entities.Bet, error) {
	var bets []*entities.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}
