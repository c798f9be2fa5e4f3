package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/testhelpers"
)

type settlementServiceMocks struct {
	userRepo       *testhelpers.MockUserRepository
	gameRepo       *testhelpers.MockGameRepository
	betRepo        *testhelpers.MockBetRepository
	parlayRepo     *testhelpers.MockParlayRepository
	eventPublisher *testhelpers.MockEventPublisher
}

func newSettlementService(t *testing.T) (*settlementServiceMocks, *settlementService) {
	t.Helper()
	m := &settlementServiceMocks{
		userRepo:       new(testhelpers.MockUserRepository),
		gameRepo:       new(testhelpers.MockGameRepository),
		betRepo:        new(testhelpers.MockBetRepository),
		parlayRepo:     new(testhelpers.MockParlayRepository),
		eventPublisher: new(testhelpers.MockEventPublisher),
	}
	svc := NewSettlementService(m.userRepo, m.gameRepo, m.betRepo, m.parlayRepo, m.eventPublisher).(*settlementService)
	return m, svc
}

func TestSettleGame_ResolvesBets(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	game := scheduledGame(10)
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(game, nil)
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 24, 20).Return(true, nil)

	// Final 24-20, home laying 3.5, total 45.5: moneyline home wins;
	// home covers (20.5 > 20) so the away spread pick loses; under hits
	homeML := &entities.Bet{ID: 1, UserID: 1, GameID: 10,
		BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome,
		Stake: dec("10.00"), Odds: dec("1.91"), PotentialPayout: dec("19.10"),
		Status: entities.BetStatusPending}
	awaySpread := &entities.Bet{ID: 2, UserID: 2, GameID: 10,
		BetType: entities.BetTypeSpread, Pick: entities.BetPickAway,
		Stake: dec("20.00"), Odds: dec("1.91"), PotentialPayout: dec("38.20"),
		Status: entities.BetStatusPending}
	underBet := &entities.Bet{ID: 3, UserID: 3, GameID: 10,
		BetType: entities.BetTypeOverUnder, Pick: entities.BetPickUnder,
		Stake: dec("5.00"), Odds: dec("1.91"), PotentialPayout: dec("9.55"),
		Status: entities.BetStatusPending}

	m.betRepo.On("GetPendingByGame", ctx, int64(10)).
		Return([]*entities.Bet{homeML, awaySpread, underBet}, nil)
	m.betRepo.On("MarkSettled", ctx, int64(1), entities.BetStatusWon).Return(true, nil)
	m.betRepo.On("MarkSettled", ctx, int64(2), entities.BetStatusLost).Return(true, nil)
	m.betRepo.On("MarkSettled", ctx, int64(3), entities.BetStatusWon).Return(true, nil)

	// Only the two winners are credited
	m.userRepo.On("Credit", ctx, int64(1), dec("19.10")).Return(dec("319.10"), nil)
	m.userRepo.On("Credit", ctx, int64(3), dec("9.55")).Return(dec("309.55"), nil)

	m.parlayRepo.On("GetPendingLegsByGame", ctx, int64(10)).Return([]*entities.ParlayLeg{}, nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	summary, err := svc.SettleGame(ctx, 10, 24, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.BetsResolved)
	assert.Equal(t, 2, summary.BetsWon)
	assert.Equal(t, 0, summary.BetsPushed)

	m.userRepo.AssertExpectations(t)
	m.betRepo.AssertExpectations(t)
}

func TestSettleGame_PushRefundsStake(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	game := scheduledGame(10)
	game.Spread = dec("-4")
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(game, nil)
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 24, 20).Return(true, nil)

	// Home wins by exactly 4 against a -4 line: push, stake comes back
	spreadBet := &entities.Bet{ID: 1, UserID: 1, GameID: 10,
		BetType: entities.BetTypeSpread, Pick: entities.BetPickHome,
		Stake: dec("25.00"), Odds: dec("1.91"), PotentialPayout: dec("47.75"),
		Status: entities.BetStatusPending}

	m.betRepo.On("GetPendingByGame", ctx, int64(10)).Return([]*entities.Bet{spreadBet}, nil)
	m.betRepo.On("MarkSettled", ctx, int64(1), entities.BetStatusPush).Return(true, nil)
	m.userRepo.On("Credit", ctx, int64(1), dec("25.00")).Return(dec("300.00"), nil)

	m.parlayRepo.On("GetPendingLegsByGame", ctx, int64(10)).Return([]*entities.ParlayLeg{}, nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	summary, err := svc.SettleGame(ctx, 10, 24, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BetsPushed)
	m.userRepo.AssertExpectations(t)
}

func TestSettleGame_AlreadySettled(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	completed := scheduledGame(10)
	completed.Status = entities.GameStatusCompleted
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(completed, nil)
	// The guarded transition applies zero rows on the second call
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 24, 20).Return(false, nil)

	_, err := svc.SettleGame(ctx, 10, 24, 20)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)

	m.betRepo.AssertNotCalled(t, "GetPendingByGame", mock.Anything, mock.Anything)
	m.userRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettleGame_UnknownGame(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	m.gameRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	_, err := svc.SettleGame(ctx, 404, 24, 20)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettleGame_NegativeScores(t *testing.T) {
	ctx := context.Background()
	_, svc := newSettlementService(t)

	_, err := svc.SettleGame(ctx, 10, -1, 20)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSettleGame_RacedBetResolutionPaysNothing(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	game := scheduledGame(10)
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(game, nil)
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 24, 20).Return(true, nil)

	winner := &entities.Bet{ID: 1, UserID: 1, GameID: 10,
		BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome,
		Stake: dec("10.00"), Odds: dec("1.91"), PotentialPayout: dec("19.10"),
		Status: entities.BetStatusPending}

	m.betRepo.On("GetPendingByGame", ctx, int64(10)).Return([]*entities.Bet{winner}, nil)
	// Another sweep settled the bet first: the guarded update is a no-op
	m.betRepo.On("MarkSettled", ctx, int64(1), entities.BetStatusWon).Return(false, nil)

	m.parlayRepo.On("GetPendingLegsByGame", ctx, int64(10)).Return([]*entities.ParlayLeg{}, nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	summary, err := svc.SettleGame(ctx, 10, 24, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.BetsResolved)

	m.userRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettleGame_ParlayLostImmediately(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	game := scheduledGame(10)
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(game, nil)
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 20, 24).Return(true, nil)
	m.betRepo.On("GetPendingByGame", ctx, int64(10)).Return([]*entities.Bet{}, nil)

	// Home moneyline leg loses 20-24; the sibling leg is still pending,
	// but one lost leg loses the whole slip without waiting.
	leg := &entities.ParlayLeg{ID: 1, ParlayID: 5, GameID: 10,
		BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome,
		Odds: dec("1.91"), Status: entities.BetStatusPending}
	m.parlayRepo.On("GetPendingLegsByGame", ctx, int64(10)).Return([]*entities.ParlayLeg{leg}, nil)
	m.parlayRepo.On("MarkLegSettled", ctx, int64(1), entities.BetStatusLost).Return(true, nil)

	settledLeg := &entities.ParlayLeg{ID: 1, ParlayID: 5, GameID: 10, Status: entities.BetStatusLost}
	pendingLeg := &entities.ParlayLeg{ID: 2, ParlayID: 5, GameID: 11, Status: entities.BetStatusPending}
	m.parlayRepo.On("GetDetailByID", ctx, int64(5)).Return(&entities.ParlayDetail{
		Parlay: &entities.Parlay{ID: 5, UserID: 1, Stake: dec("10.00"),
			TotalOdds: dec("3.6481"), PotentialPayout: dec("36.48"),
			Status: entities.BetStatusPending},
		Legs: []*entities.ParlayLeg{settledLeg, pendingLeg},
	}, nil)
	m.parlayRepo.On("MarkSettled", ctx, int64(5), entities.BetStatusLost).Return(true, nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	summary, err := svc.SettleGame(ctx, 10, 20, 24)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LegsResolved)
	assert.Equal(t, 1, summary.ParlaysResolved)
	assert.Equal(t, 0, summary.ParlaysWon)

	m.userRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	m.parlayRepo.AssertExpectations(t)
}

func TestSettleGame_ParlayStaysPendingUntilAllLegsDecided(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	game := scheduledGame(10)
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(game, nil)
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 24, 20).Return(true, nil)
	m.betRepo.On("GetPendingByGame", ctx, int64(10)).Return([]*entities.Bet{}, nil)

	leg := &entities.ParlayLeg{ID: 1, ParlayID: 5, GameID: 10,
		BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome,
		Odds: dec("1.91"), Status: entities.BetStatusPending}
	m.parlayRepo.On("GetPendingLegsByGame", ctx, int64(10)).Return([]*entities.ParlayLeg{leg}, nil)
	m.parlayRepo.On("MarkLegSettled", ctx, int64(1), entities.BetStatusWon).Return(true, nil)

	wonLeg := &entities.ParlayLeg{ID: 1, ParlayID: 5, GameID: 10, Status: entities.BetStatusWon}
	pendingLeg := &entities.ParlayLeg{ID: 2, ParlayID: 5, GameID: 11, Status: entities.BetStatusPending}
	m.parlayRepo.On("GetDetailByID", ctx, int64(5)).Return(&entities.ParlayDetail{
		Parlay: &entities.Parlay{ID: 5, UserID: 1, Stake: dec("10.00"),
			TotalOdds: dec("3.6481"), PotentialPayout: dec("36.48"),
			Status: entities.BetStatusPending},
		Legs: []*entities.ParlayLeg{wonLeg, pendingLeg},
	}, nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	summary, err := svc.SettleGame(ctx, 10, 24, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ParlaysResolved)

	// The slip must not settle while a leg is open
	m.parlayRepo.AssertNotCalled(t, "MarkSettled", mock.Anything, mock.Anything, mock.Anything)
	m.userRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettleGame_ParlayWonCreditsPayout(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	game := scheduledGame(10)
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(game, nil)
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 24, 20).Return(true, nil)
	m.betRepo.On("GetPendingByGame", ctx, int64(10)).Return([]*entities.Bet{}, nil)

	leg := &entities.ParlayLeg{ID: 2, ParlayID: 5, GameID: 10,
		BetType: entities.BetTypeMoneyline, Pick: entities.BetPickHome,
		Odds: dec("1.91"), Status: entities.BetStatusPending}
	m.parlayRepo.On("GetPendingLegsByGame", ctx, int64(10)).Return([]*entities.ParlayLeg{leg}, nil)
	m.parlayRepo.On("MarkLegSettled", ctx, int64(2), entities.BetStatusWon).Return(true, nil)

	// The earlier game already graded the first leg Won; this was the last
	// open leg, so the parlay wins stake x total odds.
	m.parlayRepo.On("GetDetailByID", ctx, int64(5)).Return(&entities.ParlayDetail{
		Parlay: &entities.Parlay{ID: 5, UserID: 1, Stake: dec("10.00"),
			TotalOdds: dec("3.6481"), PotentialPayout: dec("36.48"),
			Status: entities.BetStatusPending},
		Legs: []*entities.ParlayLeg{
			{ID: 1, ParlayID: 5, GameID: 9, Status: entities.BetStatusWon},
			{ID: 2, ParlayID: 5, GameID: 10, Status: entities.BetStatusWon},
		},
	}, nil)
	m.parlayRepo.On("MarkSettled", ctx, int64(5), entities.BetStatusWon).Return(true, nil)
	m.userRepo.On("Credit", ctx, int64(1), dec("36.48")).Return(dec("336.48"), nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	summary, err := svc.SettleGame(ctx, 10, 24, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ParlaysResolved)
	assert.Equal(t, 1, summary.ParlaysWon)
	m.userRepo.AssertExpectations(t)
}

func TestSettleGame_PushedLegIsNeutral(t *testing.T) {
	ctx := context.Background()
	m, svc := newSettlementService(t)

	// Home wins by exactly 4 against a -4 line: the spread leg pushes
	game := scheduledGame(10)
	game.Spread = dec("-4")
	m.gameRepo.On("GetByID", ctx, int64(10)).Return(game, nil)
	m.gameRepo.On("MarkCompleted", ctx, int64(10), 24, 20).Return(true, nil)
	m.betRepo.On("GetPendingByGame", ctx, int64(10)).Return([]*entities.Bet{}, nil)

	leg := &entities.ParlayLeg{ID: 2, ParlayID: 5, GameID: 10,
		BetType: entities.BetTypeSpread, Pick: entities.BetPickHome,
		Odds: dec("1.91"), Status: entities.BetStatusPending}
	m.parlayRepo.On("GetPendingLegsByGame", ctx, int64(10)).Return([]*entities.ParlayLeg{leg}, nil)
	m.parlayRepo.On("MarkLegSettled", ctx, int64(2), entities.BetStatusPush).Return(true, nil)

	// A pushed leg counts as decided and pays at the locked odds: the
	// parlay wins its full potential payout, not a recomputed one.
	m.parlayRepo.On("GetDetailByID", ctx, int64(5)).Return(&entities.ParlayDetail{
		Parlay: &entities.Parlay{ID: 5, UserID: 1, Stake: dec("10.00"),
			TotalOdds: dec("3.6481"), PotentialPayout: dec("36.48"),
			Status: entities.BetStatusPending},
		Legs: []*entities.ParlayLeg{
			{ID: 1, ParlayID: 5, GameID: 9, Status: entities.BetStatusWon},
			{ID: 2, ParlayID: 5, GameID: 10, Status: entities.BetStatusPush},
		},
	}, nil)
	m.parlayRepo.On("MarkSettled", ctx, int64(5), entities.BetStatusWon).Return(true, nil)
	m.userRepo.On("Credit", ctx, int64(1), dec("36.48")).Return(dec("336.48"), nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	summary, err := svc.SettleGame(ctx, 10, 24, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ParlaysWon)
	m.userRepo.AssertExpectations(t)
}
