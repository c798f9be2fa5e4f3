package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

// PlayerAsset builds a player asset reference
func PlayerAsset(name string) entities.AssetRef {
	return entities.AssetRef{Type: entities.AssetTypePlayer, Name: name}
}

// TeamFundAsset builds a team fund asset reference
func TeamFundAsset(name string) entities.AssetRef {
	return entities.AssetRef{Type: entities.AssetTypeTeamFund, Name: name}
}

// CreateTestGame builds a scheduled game starting tomorrow with typical lines
func CreateTestGame(homeTeam, awayTeam string) *entities.Game {
	return &entities.Game{
		HomeTeam:    homeTeam,
		AwayTeam:    awayTeam,
		ScheduledAt: time.Now().Add(24 * time.Hour).Truncate(time.Second),
		HomeOdds:    decimal.NewFromFloat(1.85),
		AwayOdds:    decimal.NewFromFloat(2.10),
		Spread:      decimal.NewFromFloat(-3.5),
		TotalLine:   decimal.NewFromFloat(45.5),
		Status:      entities.GameStatusScheduled,
	}
}

// CreateTestGameStartingAt builds a scheduled game with an explicit start time
func CreateTestGameStartingAt(homeTeam, awayTeam string, at time.Time) *entities.Game {
	game := CreateTestGame(homeTeam, awayTeam)
	game.ScheduledAt = at
	return game
}

// CreateTestBet builds a pending moneyline bet on the home side
func CreateTestBet(userID, gameID int64) *entities.Bet {
	stake := decimal.NewFromFloat(10.00)
	odds := decimal.NewFromFloat(1.85)
	return &entities.Bet{
		UserID:          userID,
		GameID:          gameID,
		BetType:         entities.BetTypeMoneyline,
		Pick:            entities.BetPickHome,
		Stake:           stake,
		Odds:            odds,
		PotentialPayout: stake.Mul(odds).Round(2),
		Status:          entities.BetStatusPending,
	}
}

// CreateTestParlay builds a pending parlay shell; legs are built separately
func CreateTestParlay(userID int64, totalOdds decimal.Decimal) *entities.Parlay {
	stake := decimal.NewFromFloat(10.00)
	return &entities.Parlay{
		UserID:          userID,
		Stake:           stake,
		TotalOdds:       totalOdds,
		PotentialPayout: stake.Mul(totalOdds).Round(2),
		Status:          entities.BetStatusPending,
	}
}

// CreateTestParlayLeg builds a pending moneyline leg on the home side
func CreateTestParlayLeg(gameID int64, odds decimal.Decimal) *entities.ParlayLeg {
	return &entities.ParlayLeg{
		GameID:  gameID,
		BetType: entities.BetTypeMoneyline,
		Pick:    entities.BetPickHome,
		Odds:    odds,
		Status:  entities.BetStatusPending,
	}
}

// CreateTestOffer builds a pending offer shell between two users. Pass nil
// for counterpartyID to build an open offer.
func CreateTestOffer(initiatorID int64, counterpartyID *int64) *entities.TradeOffer {
	return &entities.TradeOffer{
		InitiatorID:    initiatorID,
		CounterpartyID: counterpartyID,
		Status:         entities.TradeOfferStatusPending,
	}
}

// CreateTestOfferItem builds one asset line of an offer
func CreateTestOfferItem(side entities.TradeOfferItemSide, asset entities.AssetRef, qty int64) *entities.TradeOfferItem {
	return &entities.TradeOfferItem{
		Side:      side,
		AssetType: asset.Type,
		AssetName: asset.Name,
		Quantity:  qty,
	}
}

// CreateTestPrice builds a feed quote for an asset
func CreateTestPrice(asset entities.AssetRef, price decimal.Decimal) *entities.AssetPrice {
	return &entities.AssetPrice{
		AssetType: asset.Type,
		AssetName: asset.Name,
		Price:     price,
		UpdatedAt: time.Now(),
	}
}
