package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/config"
	"playbook/ledger-service/domain/entities"
)

// setupTestConfig installs the standard test configuration (300.00 initial
// balance, 5.00 minimum stake, 1.91 spread/total odds) and restores the
// global config when the test finishes.
func setupTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewTestConfig()
	config.SetTestConfig(cfg)
	t.Cleanup(config.ResetConfig)
	return cfg
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// scheduledGame builds a game open for betting with typical lines
func scheduledGame(id int64) *entities.Game {
	return &entities.Game{
		ID:          id,
		HomeTeam:    "Hawks",
		AwayTeam:    "Wolves",
		ScheduledAt: time.Now().Add(24 * time.Hour),
		HomeOdds:    dec("1.91"),
		AwayOdds:    dec("2.05"),
		Spread:      dec("-3.5"),
		TotalLine:   dec("45.5"),
		Status:      entities.GameStatusScheduled,
	}
}

// playerAsset builds a player asset reference
func playerAsset(name string) entities.AssetRef {
	return entities.AssetRef{Type: entities.AssetTypePlayer, Name: name}
}
