package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BetType represents the market a wager is placed on
type BetType string

const (
	BetTypeMoneyline BetType = "moneyline"
	BetTypeSpread    BetType = "spread"
	BetTypeOverUnder BetType = "over_under"
)

// IsValid returns true for a known bet type
func (bt BetType) IsValid() bool {
	return bt == BetTypeMoneyline || bt == BetTypeSpread || bt == BetTypeOverUnder
}

// UsesGameOdds returns true if odds come from the game's quoted moneyline
// rather than the standard spread/total multiplier.
func (bt BetType) UsesGameOdds() bool {
	return bt == BetTypeMoneyline
}

// BetPick is the side of a market the user backs
type BetPick string

const (
	BetPickHome  BetPick = "home"
	BetPickAway  BetPick = "away"
	BetPickOver  BetPick = "over"
	BetPickUnder BetPick = "under"
)

// ValidateFor checks that the pick is legal for the given bet type
func (bp BetPick) ValidateFor(betType BetType) error {
	switch betType {
	case BetTypeMoneyline, BetTypeSpread:
		if bp == BetPickHome || bp == BetPickAway {
			return nil
		}
	case BetTypeOverUnder:
		if bp == BetPickOver || bp == BetPickUnder {
			return nil
		}
	default:
		return fmt.Errorf("unknown bet type: %s", betType)
	}
	return fmt.Errorf("invalid pick %q for bet type %s", bp, betType)
}

// BetStatus is the lifecycle state of a wager or parlay leg
type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusPush      BetStatus = "push"
	BetStatusCancelled BetStatus = "cancelled"
)

// IsTerminal returns true once the status can no longer change
func (bs BetStatus) IsTerminal() bool {
	return bs != BetStatusPending
}

// IsPayable returns true if reaching this status moves money back to the
// user: a win pays the potential payout, a push refunds the stake.
func (bs BetStatus) IsPayable() bool {
	return bs == BetStatusWon || bs == BetStatusPush
}

// Bet represents a single fixed-odds wager on one game. The stake is
// debited at placement; settlement assigns exactly one terminal status.
type Bet struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	GameID          int64           `db:"game_id"`
	BetType         BetType         `db:"bet_type"`
	Pick            BetPick         `db:"pick"`
	Stake           decimal.Decimal `db:"stake"`
	Odds            decimal.Decimal `db:"odds"`
	PotentialPayout decimal.Decimal `db:"potential_payout"`
	Status          BetStatus       `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
	SettledAt       *time.Time      `db:"settled_at"`
}

// IsPending returns true while the bet awaits settlement
func (b *Bet) IsPending() bool {
	return b.Status == BetStatusPending
}

// PayoutFor returns the credit due when the bet reaches the given terminal
// status: the potential payout on a win, the stake back on a push, zero
// otherwise.
func (b *Bet) PayoutFor(status BetStatus) decimal.Decimal {
	switch status {
	case BetStatusWon:
		return b.PotentialPayout
	case BetStatusPush:
		return b.Stake
	default:
		return decimal.Zero
	}
}

// NetProfit returns the realized profit or loss of a settled bet
func (b *Bet) NetProfit() decimal.Decimal {
	switch b.Status {
	case BetStatusWon:
		return b.PotentialPayout.Sub(b.Stake)
	case BetStatusLost:
		return b.Stake.Neg()
	default:
		return decimal.Zero
	}
}
