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

type parlayService struct {
	userRepo       interfaces.UserRepository
	gameRepo       interfaces.GameRepository
	parlayRepo     interfaces.ParlayRepository
	eventPublisher interfaces.EventPublisher
}

// NewParlayService creates a new parlay service
func NewParlayService(
	userRepo interfaces.UserRepository,
	gameRepo interfaces.GameRepository,
	parlayRepo interfaces.ParlayRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.ParlayService {
	return &parlayService{
		userRepo:       userRepo,
		gameRepo:       gameRepo,
		parlayRepo:     parlayRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *parlayService) CreateParlay(ctx context.Context, userID int64, legInputs []entities.ParlayLegInput, stake decimal.Decimal) (*entities.ParlayDetail, error) {
	if len(legInputs) < 2 {
		return nil, fmt.Errorf("%w: a parlay requires at least 2 legs, got %d", domain.ErrValidation, len(legInputs))
	}

	cfg := config.Get()
	if !stake.IsPositive() || stake.LessThan(cfg.MinimumStake) {
		return nil, fmt.Errorf("stake %s is below the minimum of %s: %w", stake, cfg.MinimumStake, domain.ErrInvalidStake)
	}

	// Validate every leg and lock its odds before touching the ledger
	now := time.Now()
	totalOdds := decimal.NewFromInt(1)
	legs := make([]*entities.ParlayLeg, 0, len(legInputs))
	seen := make(map[string]bool, len(legInputs))

	for _, input := range legInputs {
		if !input.BetType.IsValid() {
			return nil, fmt.Errorf("%w: invalid bet type: %s", domain.ErrValidation, input.BetType)
		}
		if err := input.Pick.ValidateFor(input.BetType); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		key := fmt.Sprintf("%d/%s", input.GameID, input.BetType)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate %s leg on game %d", domain.ErrValidation, input.BetType, input.GameID)
		}
		seen[key] = true

		game, err := s.gameRepo.GetByID(ctx, input.GameID)
		if err != nil {
			return nil, err
		}
		if game == nil {
			return nil, fmt.Errorf("game %d: %w", input.GameID, domain.ErrNotFound)
		}
		if !game.IsOpenForBetting(now) {
			return nil, fmt.Errorf("game %d: %w", input.GameID, domain.ErrBettingClosed)
		}

		odds, err := lockOdds(game, input.BetType, input.Pick, cfg.SpreadTotalOdds)
		if err != nil {
			return nil, err
		}

		totalOdds = totalOdds.Mul(odds)
		legs = append(legs, &entities.ParlayLeg{
			GameID:  input.GameID,
			BetType: input.BetType,
			Pick:    input.Pick,
			Odds:    odds,
		})
	}

	newBalance, err := s.userRepo.Debit(ctx, userID, stake)
	if err != nil {
		return nil, err
	}

	parlay := &entities.Parlay{
		UserID:          userID,
		Stake:           stake,
		TotalOdds:       totalOdds,
		PotentialPayout: stake.Mul(totalOdds).Round(2),
	}
	if err := s.parlayRepo.CreateWithLegs(ctx, parlay, legs); err != nil {
		return nil, err
	}

	if err := s.eventPublisher.Publish(events.ParlayCreatedEvent{
		ParlayID:        parlay.ID,
		UserID:          userID,
		LegCount:        len(legs),
		Stake:           stake,
		TotalOdds:       totalOdds,
		PotentialPayout: parlay.PotentialPayout,
	}); err != nil {
		log.WithError(err).Error("Failed to publish parlay created event")
	}

	if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:     userID,
		OldBalance: newBalance.Add(stake),
		NewBalance: newBalance,
		Change:     stake.Neg(),
		Reason:     "parlay_created",
	}); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	log.WithFields(log.Fields{
		"parlayID":  parlay.ID,
		"userID":    userID,
		"legCount":  len(legs),
		"stake":     stake.String(),
		"totalOdds": totalOdds.String(),
	}).Info("Created parlay")

	return &entities.ParlayDetail{Parlay: parlay, Legs: legs}, nil
}

func (s *parlayService) GetParlay(ctx context.Context, parlayID int64) (*entities.ParlayDetail, error) {
	detail, err := s.parlayRepo.GetDetailByID(ctx, parlayID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("parlay %d: %w", parlayID, domain.ErrNotFound)
	}

	return detail, nil
}

func (s *parlayService) ListUserParlays(ctx context.Context, userID int64, limit int) ([]*entities.ParlayDetail, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.parlayRepo.GetByUser(ctx, userID, limit)
}
