package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBetPickValidateFor(t *testing.T) {
	assert.NoError(t, BetPickHome.ValidateFor(BetTypeMoneyline))
	assert.NoError(t, BetPickAway.ValidateFor(BetTypeSpread))
	assert.NoError(t, BetPickOver.ValidateFor(BetTypeOverUnder))
	assert.NoError(t, BetPickUnder.ValidateFor(BetTypeOverUnder))

	assert.Error(t, BetPickOver.ValidateFor(BetTypeMoneyline))
	assert.Error(t, BetPickHome.ValidateFor(BetTypeOverUnder))
	assert.Error(t, BetPickHome.ValidateFor(BetType("teaser")))
}

func TestBetPayoutFor(t *testing.T) {
	bet := &Bet{
		Stake:           decimal.NewFromFloat(10.00),
		Odds:            decimal.NewFromFloat(1.91),
		PotentialPayout: decimal.NewFromFloat(19.10),
	}

	assert.True(t, bet.PayoutFor(BetStatusWon).Equal(decimal.NewFromFloat(19.10)))
	assert.True(t, bet.PayoutFor(BetStatusPush).Equal(decimal.NewFromFloat(10.00)))
	assert.True(t, bet.PayoutFor(BetStatusLost).IsZero())
	assert.True(t, bet.PayoutFor(BetStatusCancelled).IsZero())
}

func TestBetNetProfit(t *testing.T) {
	bet := &Bet{
		Stake:           decimal.NewFromFloat(10.00),
		PotentialPayout: decimal.NewFromFloat(19.10),
	}

	bet.Status = BetStatusWon
	assert.True(t, bet.NetProfit().Equal(decimal.NewFromFloat(9.10)))

	bet.Status = BetStatusLost
	assert.True(t, bet.NetProfit().Equal(decimal.NewFromFloat(-10.00)))

	bet.Status = BetStatusPush
	assert.True(t, bet.NetProfit().IsZero())
}

func TestBetStatusIsTerminal(t *testing.T) {
	assert.False(t, BetStatusPending.IsTerminal())
	for _, status := range []BetStatus{BetStatusWon, BetStatusLost, BetStatusPush, BetStatusCancelled} {
		assert.True(t, status.IsTerminal(), string(status))
	}
}
