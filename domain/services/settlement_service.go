package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/events"
	"playbook/ledger-service/domain/interfaces"
)

type settlementService struct {
	userRepo       interfaces.UserRepository
	gameRepo       interfaces.GameRepository
	betRepo        interfaces.BetRepository
	parlayRepo     interfaces.ParlayRepository
	eventPublisher interfaces.EventPublisher
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	userRepo interfaces.UserRepository,
	gameRepo interfaces.GameRepository,
	betRepo interfaces.BetRepository,
	parlayRepo interfaces.ParlayRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.SettlementService {
	return &settlementService{
		userRepo:       userRepo,
		gameRepo:       gameRepo,
		betRepo:        betRepo,
		parlayRepo:     parlayRepo,
		eventPublisher: eventPublisher,
	}
}

// SettleGame records the final score and resolves every wager on the game.
// The scheduled->completed transition is guarded in SQL, so of two racing
// settlement calls exactly one proceeds; the loser sees ErrAlreadySettled
// and its transaction mutates nothing.
func (s *settlementService) SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*entities.SettlementSummary, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("%w: scores cannot be negative", domain.ErrValidation)
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, domain.ErrNotFound)
	}

	applied, err := s.gameRepo.MarkCompleted(ctx, gameID, homeScore, awayScore)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("game %d: %w", gameID, domain.ErrAlreadySettled)
	}

	// Grade against the post-transition state
	game.Status = entities.GameStatusCompleted
	game.HomeScore = homeScore
	game.AwayScore = awayScore

	summary := &entities.SettlementSummary{Game: game}

	if err := s.resolveBets(ctx, game, summary); err != nil {
		return nil, err
	}

	touched, err := s.resolveLegs(ctx, game, summary)
	if err != nil {
		return nil, err
	}

	for _, parlayID := range touched {
		if err := s.recomputeParlay(ctx, parlayID, summary); err != nil {
			return nil, err
		}
	}

	if err := s.eventPublisher.Publish(events.GameSettledEvent{
		GameID:          gameID,
		HomeScore:       homeScore,
		AwayScore:       awayScore,
		BetsResolved:    summary.BetsResolved,
		LegsResolved:    summary.LegsResolved,
		ParlaysResolved: summary.ParlaysResolved,
	}); err != nil {
		log.WithError(err).Error("Failed to publish game settled event")
	}

	log.WithFields(log.Fields{
		"gameID":          gameID,
		"homeScore":       homeScore,
		"awayScore":       awayScore,
		"betsResolved":    summary.BetsResolved,
		"legsResolved":    summary.LegsResolved,
		"parlaysResolved": summary.ParlaysResolved,
	}).Info("Settled game")

	return summary, nil
}

// resolveBets grades and settles every pending single bet on the game,
// crediting winners and refunding pushes.
func (s *settlementService) resolveBets(ctx context.Context, game *entities.Game, summary *entities.SettlementSummary) error {
	bets, err := s.betRepo.GetPendingByGame(ctx, game.ID)
	if err != nil {
		return err
	}

	for _, bet := range bets {
		status, err := game.Grade(bet.BetType, bet.Pick)
		if err != nil {
			return fmt.Errorf("failed to grade bet %d: %w", bet.ID, err)
		}

		applied, err := s.betRepo.MarkSettled(ctx, bet.ID, status)
		if err != nil {
			return err
		}
		if !applied {
			// Already terminal; never pay twice
			continue
		}

		payout := bet.PayoutFor(status)
		if payout.IsPositive() {
			newBalance, err := s.userRepo.Credit(ctx, bet.UserID, payout)
			if err != nil {
				return err
			}
			if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
				UserID:     bet.UserID,
				OldBalance: newBalance.Sub(payout),
				NewBalance: newBalance,
				Change:     payout,
				Reason:     fmt.Sprintf("bet_%s", status),
			}); err != nil {
				log.WithError(err).Error("Failed to publish balance change event")
			}
		}

		if err := s.eventPublisher.Publish(events.BetResolvedEvent{
			BetID:  bet.ID,
			UserID: bet.UserID,
			GameID: bet.GameID,
			Status: status,
			Payout: payout,
		}); err != nil {
			log.WithError(err).Error("Failed to publish bet resolved event")
		}

		summary.BetsResolved++
		switch status {
		case entities.BetStatusWon:
			summary.BetsWon++
		case entities.BetStatusPush:
			summary.BetsPushed++
		}
	}

	return nil
}

// resolveLegs grades every pending parlay leg on the game and returns the
// IDs of the parlays touched, in first-seen order.
func (s *settlementService) resolveLegs(ctx context.Context, game *entities.Game, summary *entities.SettlementSummary) ([]int64, error) {
	legs, err := s.parlayRepo.GetPendingLegsByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	var touched []int64
	seen := make(map[int64]bool)
	for _, leg := range legs {
		status, err := game.Grade(leg.BetType, leg.Pick)
		if err != nil {
			return nil, fmt.Errorf("failed to grade parlay leg %d: %w", leg.ID, err)
		}

		applied, err := s.parlayRepo.MarkLegSettled(ctx, leg.ID, status)
		if err != nil {
			return nil, err
		}
		if applied {
			summary.LegsResolved++
		}

		if !seen[leg.ParlayID] {
			seen[leg.ParlayID] = true
			touched = append(touched, leg.ParlayID)
		}
	}

	return touched, nil
}

// recomputeParlay re-derives a parlay's status from its legs and, when the
// slip has reached a terminal state, settles it and pays a winner.
func (s *settlementService) recomputeParlay(ctx context.Context, parlayID int64, summary *entities.SettlementSummary) error {
	detail, err := s.parlayRepo.GetDetailByID(ctx, parlayID)
	if err != nil {
		return err
	}
	if detail == nil {
		return fmt.Errorf("parlay %d: %w", parlayID, domain.ErrNotFound)
	}

	status := entities.DeriveParlayStatus(detail.Legs)
	if status == entities.BetStatusPending {
		return nil
	}

	applied, err := s.parlayRepo.MarkSettled(ctx, parlayID, status)
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	parlay := detail.Parlay
	payout := parlay.PayoutFor(status)
	if payout.IsPositive() {
		newBalance, err := s.userRepo.Credit(ctx, parlay.UserID, payout)
		if err != nil {
			return err
		}
		if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
			UserID:     parlay.UserID,
			OldBalance: newBalance.Sub(payout),
			NewBalance: newBalance,
			Change:     payout,
			Reason:     fmt.Sprintf("parlay_%s", status),
		}); err != nil {
			log.WithError(err).Error("Failed to publish balance change event")
		}
	}

	if err := s.eventPublisher.Publish(events.ParlayResolvedEvent{
		ParlayID: parlayID,
		UserID:   parlay.UserID,
		Status:   status,
		Payout:   payout,
	}); err != nil {
		log.WithError(err).Error("Failed to publish parlay resolved event")
	}

	summary.ParlaysResolved++
	if status == entities.BetStatusWon {
		summary.ParlaysWon++
	}

	return nil
}
