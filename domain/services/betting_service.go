package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"playbook/ledger-service/config"
	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/events"
	"playbook/ledger-service/domain/interfaces"
)

type bettingService struct {
	userRepo       interfaces.UserRepository
	gameRepo       interfaces.GameRepository
	betRepo        interfaces.BetRepository
	eventPublisher interfaces.EventPublisher
}

// NewBettingService creates a new betting service
func NewBettingService(
	userRepo interfaces.UserRepository,
	gameRepo interfaces.GameRepository,
	betRepo interfaces.BetRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.BettingService {
	return &bettingService{
		userRepo:       userRepo,
		gameRepo:       gameRepo,
		betRepo:        betRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *bettingService) PlaceBet(ctx context.Context, userID, gameID int64, betType entities.BetType, pick entities.BetPick, stake decimal.Decimal) (*entities.Bet, error) {
	if !betType.IsValid() {
		return nil, fmt.Errorf("%w: invalid bet type: %s", domain.ErrValidation, betType)
	}
	if err := pick.ValidateFor(betType); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	cfg := config.Get()
	if !stake.IsPositive() || stake.LessThan(cfg.MinimumStake) {
		return nil, fmt.Errorf("stake %s is below the minimum of %s: %w", stake, cfg.MinimumStake, domain.ErrInvalidStake)
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, domain.ErrNotFound)
	}
	if !game.IsOpenForBetting(time.Now()) {
		return nil, fmt.Errorf("game %d: %w", gameID, domain.ErrBettingClosed)
	}

	odds, err := lockOdds(game, betType, pick, cfg.SpreadTotalOdds)
	if err != nil {
		return nil, err
	}

	newBalance, err := s.userRepo.Debit(ctx, userID, stake)
	if err != nil {
		return nil, err
	}

	bet := &entities.Bet{
		UserID:          userID,
		GameID:          gameID,
		BetType:         betType,
		Pick:            pick,
		Stake:           stake,
		Odds:            odds,
		PotentialPayout: stake.Mul(odds).Round(2),
	}
	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, err
	}

	if err := s.eventPublisher.Publish(events.BetPlacedEvent{
		BetID:           bet.ID,
		UserID:          userID,
		GameID:          gameID,
		BetType:         betType,
		Pick:            pick,
		Stake:           stake,
		PotentialPayout: bet.PotentialPayout,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet placed event")
	}

	if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:     userID,
		OldBalance: newBalance.Add(stake),
		NewBalance: newBalance,
		Change:     stake.Neg(),
		Reason:     "bet_placed",
	}); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	log.WithFields(log.Fields{
		"betID":   bet.ID,
		"userID":  userID,
		"gameID":  gameID,
		"betType": betType,
		"pick":    pick,
		"stake":   stake.String(),
		"odds":    odds.String(),
	}).Info("Placed bet")

	return bet, nil
}

func (s *bettingService) GetBet(ctx context.Context, betID int64) (*entities.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, err
	}
	if bet == nil {
		return nil, fmt.Errorf("bet %d: %w", betID, domain.ErrNotFound)
	}

	return bet, nil
}

func (s *bettingService) ListUserBets(ctx context.Context, userID int64, limit int) ([]*entities.Bet, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.betRepo.GetByUser(ctx, userID, limit)
}

// lockOdds returns the odds a wager locks at placement: the game's quoted
// moneyline for moneyline picks, the standard line odds for spread and total.
func lockOdds(game *entities.Game, betType entities.BetType, pick entities.BetPick, spreadTotalOdds decimal.Decimal) (decimal.Decimal, error) {
	if betType.UsesGameOdds() {
		return game.MoneylineOdds(pick)
	}
	return spreadTotalOdds, nil
}

// defaultHistoryLimit caps listing queries when the caller gives no limit
const defaultHistoryLimit = 50
