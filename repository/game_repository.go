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

type gameRepository struct {
	q Queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) interfaces.GameRepository {
	return &gameRepository{q: db.Pool}
}

// newGameRepository creates a new game repository bound to a transaction
func newGameRepository(tx Queryable) interfaces.GameRepository {
	return &gameRepository{q: tx}
}

const gameColumns = `id, home_team, away_team, scheduled_at,
		home_odds::TEXT, away_odds::TEXT, spread::TEXT, total_line::TEXT,
		status, home_score, away_score, created_at, updated_at`

func (r *gameRepository) Create(ctx context.Context, game *entities.Game) error {
	query := `
		INSERT INTO games (home_team, away_team, scheduled_at, home_odds, away_odds, spread, total_line)
		VALUES ($1, $2, $3, $4::NUMERIC, $5::NUMERIC, $6::NUMERIC, $7::NUMERIC)
		RETURNING id, status, created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		game.HomeTeam,
		game.AwayTeam,
		game.ScheduledAt,
		game.HomeOdds.String(),
		game.AwayOdds.String(),
		game.Spread.String(),
		game.TotalLine.String(),
	).Scan(&game.ID, &game.Status, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

func (r *gameRepository) GetByID(ctx context.Context, gameID int64) (*entities.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE id = $1`

	game, err := scanGame(r.q.QueryRow(ctx, query, gameID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", gameID, err)
	}

	return game, nil
}

func (r *gameRepository) ListByStatus(ctx context.Context, status entities.GameStatus) ([]*entities.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE status = $1
		ORDER BY scheduled_at`

	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query games with status %s: %w", status, err)
	}
	defer rows.Close()

	var games []*entities.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// MarkCompleted transitions a scheduled game to completed. The status guard
// in the WHERE clause makes the transition happen at most once even under
// concurrent settlement attempts.
func (r *gameRepository) MarkCompleted(ctx context.Context, gameID int64, homeScore, awayScore int) (bool, error) {
	query := `
		UPDATE games
		SET status = 'completed', home_score = $2, away_score = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'scheduled'`

	result, err := r.q.Exec(ctx, query, gameID, homeScore, awayScore)
	if err != nil {
		return false, fmt.Errorf("failed to mark game %d completed: %w", gameID, err)
	}

	return result.RowsAffected() > 0, nil
}

func scanGame(row pgx.Row) (*entities.Game, error) {
	var game entities.Game
	var homeOdds, awayOdds, spread, totalLine string
	var homeScore, awayScore *int
	err := row.Scan(
		&game.ID,
		&game.HomeTeam,
		&game.AwayTeam,
		&game.ScheduledAt,
		&homeOdds,
		&awayOdds,
		&spread,
		&totalLine,
		&game.Status,
		&homeScore,
		&awayScore,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Scores are NULL until settlement
	if homeScore != nil {
		game.HomeScore = *homeScore
	}
	if awayScore != nil {
		game.AwayScore = *awayScore
	}

	if game.HomeOdds, err = decimal.NewFromString(homeOdds); err != nil {
		return nil, fmt.Errorf("failed to parse home odds %q: %w", homeOdds, err)
	}
	if game.AwayOdds, err = decimal.NewFromString(awayOdds); err != nil {
		return nil, fmt.Errorf("failed to parse away odds %q: %w", awayOdds, err)
	}
	if game.Spread, err = decimal.NewFromString(spread); err != nil {
		return nil, fmt.Errorf("failed to parse spread %q: %w", spread, err)
	}
	if game.TotalLine, err = decimal.NewFromString(totalLine); err != nil {
		return nil, fmt.Errorf("failed to parse total line %q: %w", totalLine, err)
	}

	return &game, nil
}
