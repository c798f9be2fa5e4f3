package application

import (
	"context"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

// AccountOperations groups account lifecycle and read-side reporting
type AccountOperations interface {
	GetOrCreateUser(ctx context.Context, username string) (*entities.User, error)
	GetUser(ctx context.Context, userID int64) (*entities.User, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
	GetPortfolio(ctx context.Context, userID int64) (*entities.Portfolio, error)
	GetPerformance(ctx context.Context, userID int64) (*entities.Performance, error)
	GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*entities.AssetTransaction, error)
}

// TradingOperations groups cash-settled share trading
type TradingOperations interface {
	ExecuteTrade(ctx context.Context, userID int64, asset entities.AssetRef, side entities.TradeSide, unitPrice decimal.Decimal, qty int64) (*entities.TradeResult, error)
}

// GameOperations groups schedule ingestion and settlement
type GameOperations interface {
	CreateGame(ctx context.Context, game *entities.Game) (*entities.Game, error)
	GetGame(ctx context.Context, gameID int64) (*entities.Game, error)
	ListGames(ctx context.Context, status entities.GameStatus) ([]*entities.Game, error)
	SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*entities.SettlementSummary, error)
}

// WagerOperations groups single bets and parlays
type WagerOperations interface {
	PlaceBet(ctx context.Context, userID, gameID int64, betType entities.BetType, pick entities.BetPick, stake decimal.Decimal) (*entities.Bet, error)
	GetBet(ctx context.Context, betID int64) (*entities.Bet, error)
	ListUserBets(ctx context.Context, userID int64, limit int) ([]*entities.Bet, error)
	CreateParlay(ctx context.Context, userID int64, legs []entities.ParlayLegInput, stake decimal.Decimal) (*entities.ParlayDetail, error)
	GetParlay(ctx context.Context, parlayID int64) (*entities.ParlayDetail, error)
	ListUserParlays(ctx context.Context, userID int64, limit int) ([]*entities.ParlayDetail, error)
}

// OfferOperations groups peer-to-peer trade offers
type OfferOperations interface {
	CreateOffer(ctx context.Context, initiatorID int64, counterpartyID *int64, offered, requested []entities.TradeOfferItemInput) (*entities.TradeOfferDetail, error)
	GetOffer(ctx context.Context, offerID int64) (*entities.TradeOfferDetail, error)
	AcceptOffer(ctx context.Context, offerID, acceptorID int64) (*entities.TradeOfferDetail, error)
	RejectOffer(ctx context.Context, offerID, userID int64) error
	CancelOffer(ctx context.Context, offerID, userID int64) error
	ListOffersForUser(ctx context.Context, userID int64) ([]*entities.TradeOfferDetail, error)
}

// PriceOperations groups the feed-facing price table
type PriceOperations interface {
	ListPrices(ctx context.Context) ([]*entities.AssetPrice, error)
	UpsertPrice(ctx context.Context, price *entities.AssetPrice) error
}
