package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

// UserService defines the interface for account lifecycle operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user by username or creates a
	// new one with the configured initial balance
	GetOrCreateUser(ctx context.Context, username string) (*entities.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, userID int64) (*entities.User, error)

	// ListUsers returns all users
	ListUsers(ctx context.Context) ([]*entities.User, error)
}

// TradingService defines the interface for cash-settled buy/sell execution
type TradingService interface {
	// ExecuteTrade performs a buy or sell of qty shares at the quoted
	// unit price. The debit/credit, holding change, and log append commit
	// or roll back together.
	ExecuteTrade(ctx context.Context, userID int64, asset entities.AssetRef, side entities.TradeSide, unitPrice decimal.Decimal, qty int64) (*entities.TradeResult, error)
}

// BettingService defines the interface for single-wager operations
type BettingService interface {
	// PlaceBet creates a pending bet on a scheduled game, debiting the
	// stake immediately
	PlaceBet(ctx context.Context, userID, gameID int64, betType entities.BetType, pick entities.BetPick, stake decimal.Decimal) (*entities.Bet, error)

	// GetBet retrieves a bet by ID
	GetBet(ctx context.Context, betID int64) (*entities.Bet, error)

	// ListUserBets returns a user's bets, newest first
	ListUserBets(ctx context.Context, userID int64, limit int) ([]*entities.Bet, error)
}

// ParlayService defines the interface for combination-wager operations
type ParlayService interface {
	// CreateParlay creates a pending parlay of two or more legs on
	// scheduled games, locking each leg's odds and debiting the stake
	CreateParlay(ctx context.Context, userID int64, legs []entities.ParlayLegInput, stake decimal.Decimal) (*entities.ParlayDetail, error)

	// GetParlay retrieves a parlay with its legs
	GetParlay(ctx context.Context, parlayID int64) (*entities.ParlayDetail, error)

	// ListUserParlays returns a user's parlays with legs, newest first
	ListUserParlays(ctx context.Context, userID int64, limit int) ([]*entities.ParlayDetail, error)
}

// SettlementService defines the interface for game settlement
type SettlementService interface {
	// SettleGame records the final score, resolves every pending bet and
	// parlay leg on the game, pays winners and pushes, and recomputes the
	// status of every parlay touched. Settling a game twice fails with
	// domain.ErrAlreadySettled and mutates nothing.
	SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*entities.SettlementSummary, error)
}

// GameService defines the interface for schedule-feed game ingestion
type GameService interface {
	// CreateGame registers a scheduled game with its betting lines
	CreateGame(ctx context.Context, game *entities.Game) (*entities.Game, error)

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, gameID int64) (*entities.Game, error)

	// ListGames returns games filtered by status
	ListGames(ctx context.Context, status entities.GameStatus) ([]*entities.Game, error)
}

// TradeOfferService defines the interface for peer-to-peer asset swaps
type TradeOfferService interface {
	// CreateOffer proposes a swap. A nil counterparty creates an open
	// offer any other user may accept.
	CreateOffer(ctx context.Context, initiatorID int64, counterpartyID *int64, offered, requested []entities.TradeOfferItemInput) (*entities.TradeOfferDetail, error)

	// AcceptOffer re-validates both sides' holdings and executes the
	// whole swap atomically. On a validation failure the offer stays
	// pending and no shares move.
	AcceptOffer(ctx context.Context, offerID, acceptorID int64) (*entities.TradeOfferDetail, error)

	// RejectOffer declines a pending offer without moving shares
	RejectOffer(ctx context.Context, offerID, userID int64) error

	// CancelOffer withdraws a pending offer; only the initiator may cancel
	CancelOffer(ctx context.Context, offerID, userID int64) error

	// GetOffer retrieves an offer with its items
	GetOffer(ctx context.Context, offerID int64) (*entities.TradeOfferDetail, error)

	// ListOffersForUser returns offers relevant to the user: initiated,
	// addressed, or open
	ListOffersForUser(ctx context.Context, userID int64) ([]*entities.TradeOfferDetail, error)
}

// PortfolioService defines the interface for read-side account reporting
type PortfolioService interface {
	// GetPortfolio returns the user's cash balance and priced positions
	GetPortfolio(ctx context.Context, userID int64) (*entities.Portfolio, error)

	// GetPerformance returns the user's realized profit/loss by asset
	GetPerformance(ctx context.Context, userID int64) (*entities.Performance, error)

	// GetTransactionHistory returns the user's ownership log, newest first
	GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*entities.AssetTransaction, error)
}
