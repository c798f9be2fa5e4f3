package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusCompleted GameStatus = "completed"
)

// Game represents one scheduled or completed matchup with its betting lines.
// Games are created by the schedule feed and transition scheduled->completed
// exactly once, at settlement.
type Game struct {
	ID          int64           `db:"id"`
	HomeTeam    string          `db:"home_team"`
	AwayTeam    string          `db:"away_team"`
	ScheduledAt time.Time       `db:"scheduled_at"`
	HomeOdds    decimal.Decimal `db:"home_odds"`
	AwayOdds    decimal.Decimal `db:"away_odds"`
	Spread      decimal.Decimal `db:"spread"`
	TotalLine   decimal.Decimal `db:"total_line"`
	Status      GameStatus      `db:"status"`
	HomeScore   int             `db:"home_score"`
	AwayScore   int             `db:"away_score"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// IsScheduled returns true while the game awaits settlement
func (g *Game) IsScheduled() bool {
	return g.Status == GameStatusScheduled
}

// IsCompleted returns true once the game has been settled
func (g *Game) IsCompleted() bool {
	return g.Status == GameStatusCompleted
}

// IsOpenForBetting returns true if bets may still be placed: the game must
// be scheduled and its start time must not have passed.
func (g *Game) IsOpenForBetting(now time.Time) bool {
	return g.IsScheduled() && g.ScheduledAt.After(now)
}

// MoneylineOdds returns the quoted odds for a moneyline pick
func (g *Game) MoneylineOdds(pick BetPick) (decimal.Decimal, error) {
	switch pick {
	case BetPickHome:
		return g.HomeOdds, nil
	case BetPickAway:
		return g.AwayOdds, nil
	default:
		return decimal.Zero, fmt.Errorf("invalid moneyline pick: %s", pick)
	}
}

// HomeWon reports the moneyline outcome. Moneyline is a pure score
// comparison with no push: a tie grades the home side as not winning.
func (g *Game) HomeWon() bool {
	return g.HomeScore > g.AwayScore
}

// TotalPoints returns the combined final score
func (g *Game) TotalPoints() int {
	return g.HomeScore + g.AwayScore
}

// HomeCovered reports the spread outcome: home covers iff home score plus
// the spread strictly exceeds the away score. The bool result is only
// meaningful when push is false.
func (g *Game) HomeCovered() (covered bool, push bool) {
	adjusted := decimal.NewFromInt(int64(g.HomeScore)).Add(g.Spread)
	away := decimal.NewFromInt(int64(g.AwayScore))
	if adjusted.Equal(away) {
		return false, true
	}
	return adjusted.GreaterThan(away), false
}

// OverHit reports the total outcome: over iff the combined score strictly
// exceeds the line. The bool result is only meaningful when push is false.
func (g *Game) OverHit() (over bool, push bool) {
	total := decimal.NewFromInt(int64(g.TotalPoints()))
	if total.Equal(g.TotalLine) {
		return false, true
	}
	return total.GreaterThan(g.TotalLine), false
}

// Grade evaluates a bet type and pick against the final score, returning
// the terminal status the wager should take. Only valid on a completed game.
func (g *Game) Grade(betType BetType, pick BetPick) (BetStatus, error) {
	if !g.IsCompleted() {
		return "", fmt.Errorf("game %d is not completed", g.ID)
	}
	if err := pick.ValidateFor(betType); err != nil {
		return "", err
	}

	switch betType {
	case BetTypeMoneyline:
		won := g.HomeWon()
		if pick == BetPickAway {
			won = !won
		}
		return gradeBool(won), nil

	case BetTypeSpread:
		covered, push := g.HomeCovered()
		if push {
			return BetStatusPush, nil
		}
		if pick == BetPickAway {
			covered = !covered
		}
		return gradeBool(covered), nil

	case BetTypeOverUnder:
		over, push := g.OverHit()
		if push {
			return BetStatusPush, nil
		}
		if pick == BetPickUnder {
			over = !over
		}
		return gradeBool(over), nil

	default:
		return "", fmt.Errorf("unknown bet type: %s", betType)
	}
}

func gradeBool(won bool) BetStatus {
	if won {
		return BetStatusWon
	}
	return BetStatusLost
}
