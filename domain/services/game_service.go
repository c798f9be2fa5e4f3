package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/interfaces"
)

type gameService struct {
	gameRepo interfaces.GameRepository
}

// NewGameService creates a new game service
func NewGameService(gameRepo interfaces.GameRepository) interfaces.GameService {
	return &gameService{gameRepo: gameRepo}
}

func (s *gameService) CreateGame(ctx context.Context, game *entities.Game) (*entities.Game, error) {
	if game.HomeTeam == "" || game.AwayTeam == "" {
		return nil, fmt.Errorf("%w: both team names are required", domain.ErrValidation)
	}
	if game.HomeTeam == game.AwayTeam {
		return nil, fmt.Errorf("%w: a team cannot play itself", domain.ErrValidation)
	}
	if game.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: scheduled time is required", domain.ErrValidation)
	}
	if !game.HomeOdds.IsPositive() || !game.AwayOdds.IsPositive() {
		return nil, fmt.Errorf("%w: moneyline odds must be positive", domain.ErrValidation)
	}
	if game.TotalLine.IsNegative() {
		return nil, fmt.Errorf("%w: total line cannot be negative", domain.ErrValidation)
	}

	game.Status = entities.GameStatusScheduled
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"gameID":   game.ID,
		"homeTeam": game.HomeTeam,
		"awayTeam": game.AwayTeam,
	}).Info("Created game")

	return game, nil
}

func (s *gameService) GetGame(ctx context.Context, gameID int64) (*entities.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, domain.ErrNotFound)
	}

	return game, nil
}

func (s *gameService) ListGames(ctx context.Context, status entities.GameStatus) ([]*entities.Game, error) {
	if status != entities.GameStatusScheduled && status != entities.GameStatusCompleted {
		return nil, fmt.Errorf("%w: unknown game status: %s", domain.ErrValidation, status)
	}
	return s.gameRepo.ListByStatus(ctx, status)
}
