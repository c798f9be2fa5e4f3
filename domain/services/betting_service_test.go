package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/testhelpers"
)

type bettingServiceMocks struct {
	userRepo       *testhelpers.MockUserRepository
	gameRepo       *testhelpers.MockGameRepository
	betRepo        *testhelpers.MockBetRepository
	eventPublisher *testhelpers.MockEventPublisher
}

func newBettingService(t *testing.T) (*bettingServiceMocks, *bettingService) {
	t.Helper()
	setupTestConfig(t)
	m := &bettingServiceMocks{
		userRepo:       new(testhelpers.MockUserRepository),
		gameRepo:       new(testhelpers.MockGameRepository),
		betRepo:        new(testhelpers.MockBetRepository),
		eventPublisher: new(testhelpers.MockEventPublisher),
	}
	svc := NewBettingService(m.userRepo, m.gameRepo, m.betRepo, m.eventPublisher).(*bettingService)
	return m, svc
}

func TestPlaceBet_MoneylineLocksGameOdds(t *testing.T) {
	ctx := context.Background()
	m, svc := newBettingService(t)

	m.gameRepo.On("GetByID", ctx, int64(10)).Return(scheduledGame(10), nil)
	m.userRepo.On("Debit", ctx, int64(1), dec("10.00")).Return(dec("290.00"), nil)
	m.betRepo.On("Create", ctx, mock.MatchedBy(func(bet *entities.Bet) bool {
		return bet.Odds.Equal(dec("1.91")) && bet.PotentialPayout.Equal(dec("19.10"))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Bet).ID = 77
	}).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	bet, err := svc.PlaceBet(ctx, 1, 10, entities.BetTypeMoneyline, entities.BetPickHome, dec("10.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(77), bet.ID)
	assert.True(t, bet.PotentialPayout.Equal(dec("19.10")))

	m.userRepo.AssertExpectations(t)
	m.gameRepo.AssertExpectations(t)
	m.betRepo.AssertExpectations(t)
}

func TestPlaceBet_SpreadUsesStandardOdds(t *testing.T) {
	ctx := context.Background()
	m, svc := newBettingService(t)

	m.gameRepo.On("GetByID", ctx, int64(10)).Return(scheduledGame(10), nil)
	m.userRepo.On("Debit", ctx, int64(1), dec("20.00")).Return(dec("280.00"), nil)
	m.betRepo.On("Create", ctx, mock.MatchedBy(func(bet *entities.Bet) bool {
		return bet.BetType == entities.BetTypeSpread &&
			bet.Odds.Equal(dec("1.91")) &&
			bet.PotentialPayout.Equal(dec("38.20"))
	})).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	_, err := svc.PlaceBet(ctx, 1, 10, entities.BetTypeSpread, entities.BetPickAway, dec("20.00"))
	require.NoError(t, err)
	m.betRepo.AssertExpectations(t)
}

func TestPlaceBet_StakeBelowMinimum(t *testing.T) {
	ctx := context.Background()
	m, svc := newBettingService(t)

	for _, stake := range []decimal.Decimal{dec("4.99"), decimal.Zero, dec("-5")} {
		_, err := svc.PlaceBet(ctx, 1, 10, entities.BetTypeMoneyline, entities.BetPickHome, stake)
		assert.ErrorIs(t, err, domain.ErrInvalidStake, stake.String())
	}

	m.userRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceBet_UnknownGame(t *testing.T) {
	ctx := context.Background()
	m, svc := newBettingService(t)

	m.gameRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	_, err := svc.PlaceBet(ctx, 1, 404, entities.BetTypeMoneyline, entities.BetPickHome, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlaceBet_BettingClosed(t *testing.T) {
	ctx := context.Background()
	m, svc := newBettingService(t)

	t.Run("game already started", func(t *testing.T) {
		started := scheduledGame(10)
		started.ScheduledAt = time.Now().Add(-time.Hour)
		m.gameRepo.On("GetByID", ctx, int64(10)).Return(started, nil).Once()

		_, err := svc.PlaceBet(ctx, 1, 10, entities.BetTypeMoneyline, entities.BetPickHome, dec("10.00"))
		assert.ErrorIs(t, err, domain.ErrBettingClosed)
	})

	t.Run("game completed", func(t *testing.T) {
		completed := scheduledGame(11)
		completed.Status = entities.GameStatusCompleted
		m.gameRepo.On("GetByID", ctx, int64(11)).Return(completed, nil).Once()

		_, err := svc.PlaceBet(ctx, 1, 11, entities.BetTypeMoneyline, entities.BetPickHome, dec("10.00"))
		assert.ErrorIs(t, err, domain.ErrBettingClosed)
	})

	m.userRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceBet_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	m, svc := newBettingService(t)

	m.gameRepo.On("GetByID", ctx, int64(10)).Return(scheduledGame(10), nil)
	m.userRepo.On("Debit", ctx, int64(1), dec("100.00")).
		Return(decimal.Zero, domain.ErrInsufficientFunds)

	_, err := svc.PlaceBet(ctx, 1, 10, entities.BetTypeMoneyline, entities.BetPickHome, dec("100.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	m.betRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceBet_InvalidTypeAndPick(t *testing.T) {
	ctx := context.Background()
	_, svc := newBettingService(t)

	_, err := svc.PlaceBet(ctx, 1, 10, entities.BetType("teaser"), entities.BetPickHome, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.PlaceBet(ctx, 1, 10, entities.BetTypeMoneyline, entities.BetPickOver, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetBet(t *testing.T) {
	ctx := context.Background()
	m, svc := newBettingService(t)

	stored := &entities.Bet{ID: 5, UserID: 1, Status: entities.BetStatusPending}
	m.betRepo.On("GetByID", ctx, int64(5)).Return(stored, nil)
	m.betRepo.On("GetByID", ctx, int64(6)).Return(nil, nil)

	bet, err := svc.GetBet(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, stored, bet)

	_, err = svc.GetBet(ctx, 6)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
