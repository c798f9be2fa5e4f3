package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Parlay represents an all-or-nothing combination wager over two or more
// legs. Odds are locked per leg at creation; the combined payout is
// stake x the product of every leg's odds.
type Parlay struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	Stake           decimal.Decimal `db:"stake"`
	TotalOdds       decimal.Decimal `db:"total_odds"`
	PotentialPayout decimal.Decimal `db:"potential_payout"`
	Status          BetStatus       `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
	SettledAt       *time.Time      `db:"settled_at"`
}

// IsPending returns true while any leg is still undecided
func (p *Parlay) IsPending() bool {
	return p.Status == BetStatusPending
}

// PayoutFor returns the credit owed when the parlay settles with the given
// status: the full payout on a win, the stake back on a push, zero otherwise
func (p *Parlay) PayoutFor(status BetStatus) decimal.Decimal {
	switch status {
	case BetStatusWon:
		return p.PotentialPayout
	case BetStatusPush:
		return p.Stake
	default:
		return decimal.Zero
	}
}

// ParlayLeg is one constituent wager inside a parlay. Legs settle
// independently as their games complete; the parlay derives its status
// from them.
type ParlayLeg struct {
	ID        int64           `db:"id"`
	ParlayID  int64           `db:"parlay_id"`
	GameID    int64           `db:"game_id"`
	BetType   BetType         `db:"bet_type"`
	Pick      BetPick         `db:"pick"`
	Odds      decimal.Decimal `db:"odds"`
	Status    BetStatus       `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
	SettledAt *time.Time      `db:"settled_at"`
}

// IsPending returns true while the leg's game has not settled
func (l *ParlayLeg) IsPending() bool {
	return l.Status == BetStatusPending
}

// ParlayDetail bundles a parlay with its legs
type ParlayDetail struct {
	Parlay *Parlay
	Legs   []*ParlayLeg
}

// ParlayLegInput describes one requested leg at parlay creation time.
// Odds are resolved and locked by the engine, never supplied by the caller.
type ParlayLegInput struct {
	GameID  int64   `json:"game_id"`
	BetType BetType `json:"bet_type"`
	Pick    BetPick `json:"pick"`
}

// DeriveParlayStatus computes the parlay-level status from its legs: any
// lost leg loses the whole parlay immediately; otherwise the parlay stays
// pending until every leg is decided, then wins. A pushed leg is neutral:
// it counts as decided and does not block the win, and the locked combined
// odds are not recomputed.
func DeriveParlayStatus(legs []*ParlayLeg) BetStatus {
	pending := false
	for _, leg := range legs {
		switch leg.Status {
		case BetStatusLost:
			return BetStatusLost
		case BetStatusPending:
			pending = true
		}
	}
	if pending {
		return BetStatusPending
	}
	return BetStatusWon
}
