package entities

import "github.com/shopspring/decimal"

// Position is one holding enriched with the latest market price
type Position struct {
	AssetType    AssetType       `json:"asset_type"`
	AssetName    string          `json:"asset_name"`
	Quantity     int64           `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MarketValue  decimal.Decimal `json:"market_value"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	UnrealizedPL decimal.Decimal `json:"unrealized_pl"`
}

// Portfolio is a user's cash balance plus every priced position
type Portfolio struct {
	UserID        int64           `json:"user_id"`
	CashBalance   decimal.Decimal `json:"cash_balance"`
	Positions     []*Position     `json:"positions"`
	PositionValue decimal.Decimal `json:"position_value"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// AssetPerformance aggregates realized profit/loss for one asset
type AssetPerformance struct {
	AssetType  AssetType       `json:"asset_type"`
	AssetName  string          `json:"asset_name"`
	SellCount  int64           `json:"sell_count"`
	RealizedPL decimal.Decimal `json:"realized_pl"`
}

// Performance summarizes a user's realized trading results
type Performance struct {
	UserID          int64               `json:"user_id"`
	ByAsset         []*AssetPerformance `json:"by_asset"`
	TotalRealizedPL decimal.Decimal     `json:"total_realized_pl"`
}

// TradeResult reports an executed trade back to the caller
type TradeResult struct {
	Transaction *AssetTransaction `json:"transaction"`
	NewBalance  decimal.Decimal   `json:"new_balance"`
}

// SettlementSummary reports the effects of settling one game
type SettlementSummary struct {
	Game            *Game `json:"game"`
	BetsResolved    int   `json:"bets_resolved"`
	BetsWon         int   `json:"bets_won"`
	BetsPushed      int   `json:"bets_pushed"`
	LegsResolved    int   `json:"legs_resolved"`
	ParlaysResolved int   `json:"parlays_resolved"`
	ParlaysWon      int   `json:"parlays_won"`
}
