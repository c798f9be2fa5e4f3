package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/testhelpers"
)

type parlayServiceMocks struct {
	userRepo       *testhelpers.MockUserRepository
	gameRepo       *testhelpers.MockGameRepository
	parlayRepo     *testhelpers.MockParlayRepository
	eventPublisher *testhelpers.MockEventPublisher
}

func newParlayService(t *testing.T) (*parlayServiceMocks, *parlayService) {
	t.Helper()
	setupTestConfig(t)
	m := &parlayServiceMocks{
		userRepo:       new(testhelpers.MockUserRepository),
		gameRepo:       new(testhelpers.MockGameRepository),
		parlayRepo:     new(testhelpers.MockParlayRepository),
		eventPublisher: new(testhelpers.MockEventPublisher),
	}
	svc := NewParlayService(m.userRepo, m.gameRepo, m.parlayRepo, m.eventPublisher).(*parlayService)
	return m, svc
}

func twoLegInputs() []entities.ParlayLegInput {
	return []entities.ParlayLegInput{
		{GameID: 10, BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome},
		{GameID: 11, BetType: entities.BetTypeSpread, Pick: entities.BetPickAway},
	}
}

func TestCreateParlay_LocksOddsAndMultipliesPayout(t *testing.T) {
	ctx := context.Background()
	m, svc := newParlayService(t)

	m.gameRepo.On("GetByID", ctx, int64(10)).Return(scheduledGame(10), nil)
	m.gameRepo.On("GetByID", ctx, int64(11)).Return(scheduledGame(11), nil)
	m.userRepo.On("Debit", ctx, int64(1), dec("10.00")).Return(dec("290.00"), nil)

	// moneyline home 1.91 x spread 1.91 = 3.6481; payout 10 x 3.6481 = 36.48
	m.parlayRepo.On("CreateWithLegs", ctx,
		mock.MatchedBy(func(parlay *entities.Parlay) bool {
			return parlay.TotalOdds.Equal(dec("3.6481")) &&
				parlay.PotentialPayout.Equal(dec("36.48"))
		}),
		mock.MatchedBy(func(legs []*entities.ParlayLeg) bool {
			return len(legs) == 2 &&
				legs[0].Odds.Equal(dec("1.91")) &&
				legs[1].Odds.Equal(dec("1.91"))
		}),
	).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Parlay).ID = 42
	}).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	detail, err := svc.CreateParlay(ctx, 1, twoLegInputs(), dec("10.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), detail.Parlay.ID)
	assert.Len(t, detail.Legs, 2)

	m.userRepo.AssertExpectations(t)
	m.parlayRepo.AssertExpectations(t)
}

func TestCreateParlay_RequiresTwoLegs(t *testing.T) {
	ctx := context.Background()
	m, svc := newParlayService(t)

	single := []entities.ParlayLegInput{
		{GameID: 10, BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome},
	}

	_, err := svc.CreateParlay(ctx, 1, single, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateParlay(ctx, 1, nil, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	m.userRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateParlay_RejectsDuplicateLegs(t *testing.T) {
	ctx := context.Background()
	_, svc := newParlayService(t)

	dupes := []entities.ParlayLegInput{
		{GameID: 10, BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome},
		{GameID: 10, BetType: entities.BetTypeMoneyline, Pick: entities.BetPickAway},
	}

	_, err := svc.CreateParlay(ctx, 1, dupes, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateParlay_AllGamesMustBeOpen(t *testing.T) {
	ctx := context.Background()
	m, svc := newParlayService(t)

	completed := scheduledGame(11)
	completed.Status = entities.GameStatusCompleted

	m.gameRepo.On("GetByID", ctx, int64(10)).Return(scheduledGame(10), nil)
	m.gameRepo.On("GetByID", ctx, int64(11)).Return(completed, nil)

	_, err := svc.CreateParlay(ctx, 1, twoLegInputs(), dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrBettingClosed)

	m.userRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	m.parlayRepo.AssertNotCalled(t, "CreateWithLegs", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateParlay_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	m, svc := newParlayService(t)

	m.gameRepo.On("GetByID", ctx, int64(10)).Return(scheduledGame(10), nil)
	m.gameRepo.On("GetByID", ctx, int64(11)).Return(scheduledGame(11), nil)
	m.userRepo.On("Debit", ctx, int64(1), dec("50.00")).
		Return(decimal.Zero, domain.ErrInsufficientFunds)

	_, err := svc.CreateParlay(ctx, 1, twoLegInputs(), dec("50.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	m.parlayRepo.AssertNotCalled(t, "CreateWithLegs", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetParlay_NotFound(t *testing.T) {
	ctx := context.Background()
	m, svc := newParlayService(t)

	m.parlayRepo.On("GetDetailByID", ctx, int64(99)).Return(nil, nil)

	_, err := svc.GetParlay(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
