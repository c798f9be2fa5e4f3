package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/events"
)

// UserRepository defines the interface for account data access
type UserRepository interface {
	// GetByID retrieves a user by ID, or nil if none exists
	GetByID(ctx context.Context, userID int64) (*entities.User, error)

	// GetByUsername retrieves a user by username, or nil if none exists
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, username string, initialBalance decimal.Decimal) (*entities.User, error)

	// Debit atomically subtracts amount from the user's balance and
	// returns the new balance. Fails with domain.ErrInsufficientFunds if
	// the balance would go negative and domain.ErrNotFound for an unknown
	// user. The non-negativity guard runs inside the UPDATE itself.
	Debit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)

	// Credit atomically adds amount to the user's balance and returns the
	// new balance. Fails with domain.ErrNotFound for an unknown user.
	Credit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*entities.User, error)
}

// HoldingRepository defines the interface for per-asset share quantities
type HoldingRepository interface {
	// Increase adds qty shares, creating the holding row if absent, and
	// returns the resulting quantity
	Increase(ctx context.Context, userID int64, asset entities.AssetRef, qty int64) (int64, error)

	// Decrease removes qty shares and returns the resulting quantity.
	// Fails with domain.ErrInsufficientHoldings if fewer than qty shares
	// are held (an absent row counts as zero). A row reaching zero is
	// pruned.
	Decrease(ctx context.Context, userID int64, asset entities.AssetRef, qty int64) (int64, error)

	// Quantity returns the held share count, zero when no row exists
	Quantity(ctx context.Context, userID int64, asset entities.AssetRef) (int64, error)

	// GetByUser returns all of a user's holdings
	GetByUser(ctx context.Context, userID int64) ([]*entities.Holding, error)
}

// AssetTransactionRepository defines the interface for the append-only
// ownership log
type AssetTransactionRepository interface {
	// Record appends a transaction row; the stored ID and timestamp are
	// written back onto the entity
	Record(ctx context.Context, txn *entities.AssetTransaction) error

	// AverageAcquisitionPrice returns the mean unit price across the
	// user's prior priced buy and trade-in rows for the asset, or nil
	// when no priced history exists. Zero-priced rows (barter trade-ins)
	// are excluded from the mean.
	AverageAcquisitionPrice(ctx context.Context, userID int64, asset entities.AssetRef) (*decimal.Decimal, error)

	// GetByUser returns the user's transaction history, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.AssetTransaction, error)

	// RealizedPerformance aggregates realized profit/loss per asset from
	// the user's sell rows
	RealizedPerformance(ctx context.Context, userID int64) ([]*entities.AssetPerformance, error)
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// Create creates a new scheduled game
	Create(ctx context.Context, game *entities.Game) error

	// GetByID retrieves a game by ID, or nil if none exists
	GetByID(ctx context.Context, gameID int64) (*entities.Game, error)

	// ListByStatus returns games in the given status, soonest first
	ListByStatus(ctx context.Context, status entities.GameStatus) ([]*entities.Game, error)

	// MarkCompleted transitions a scheduled game to completed with its
	// final scores. Returns false when the game was not in the scheduled
	// state; the transition happens at most once.
	MarkCompleted(ctx context.Context, gameID int64, homeScore, awayScore int) (bool, error)
}

// BetRepository defines the interface for single-wager data access
type BetRepository interface {
	// Create persists a new pending bet
	Create(ctx context.Context, bet *entities.Bet) error

	// GetByID retrieves a bet by ID, or nil if none exists
	GetByID(ctx context.Context, betID int64) (*entities.Bet, error)

	// GetByUser returns a user's bets, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Bet, error)

	// GetPendingByGame returns every pending bet on a game
	GetPendingByGame(ctx context.Context, gameID int64) ([]*entities.Bet, error)

	// MarkSettled assigns a terminal status if the bet is still pending
	// and returns whether the update applied. A false result means the
	// bet already reached a terminal state.
	MarkSettled(ctx context.Context, betID int64, status entities.BetStatus) (bool, error)
}

// ParlayRepository defines the interface for parlay data access
type ParlayRepository interface {
	// CreateWithLegs persists a parlay and its legs in one operation
	CreateWithLegs(ctx context.Context, parlay *entities.Parlay, legs []*entities.ParlayLeg) error

	// GetDetailByID retrieves a parlay with its legs, or nil if none exists
	GetDetailByID(ctx context.Context, parlayID int64) (*entities.ParlayDetail, error)

	// GetByUser returns a user's parlays with legs, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ParlayDetail, error)

	// GetPendingLegsByGame returns pending legs on a game whose parent
	// parlay is itself still pending
	GetPendingLegsByGame(ctx context.Context, gameID int64) ([]*entities.ParlayLeg, error)

	// GetLegs returns all legs of a parlay
	GetLegs(ctx context.Context, parlayID int64) ([]*entities.ParlayLeg, error)

	// MarkLegSettled assigns a terminal status to a pending leg and
	// returns whether the update applied
	MarkLegSettled(ctx context.Context, legID int64, status entities.BetStatus) (bool, error)

	// MarkSettled assigns a terminal status to a pending parlay and
	// returns whether the update applied
	MarkSettled(ctx context.Context, parlayID int64, status entities.BetStatus) (bool, error)
}

// TradeOfferRepository defines the interface for peer-to-peer offer data
type TradeOfferRepository interface {
	// CreateWithItems persists an offer and its asset lines in one operation
	CreateWithItems(ctx context.Context, offer *entities.TradeOffer, items []*entities.TradeOfferItem) error

	// GetDetailByID retrieves an offer with its items, or nil if none exists
	GetDetailByID(ctx context.Context, offerID int64) (*entities.TradeOfferDetail, error)

	// GetForUser returns offers the user initiated, offers addressed to
	// them, and open offers, newest first
	GetForUser(ctx context.Context, userID int64) ([]*entities.TradeOfferDetail, error)

	// MarkAccepted transitions a pending offer to accepted and pins the
	// accepting user as counterparty. Returns false when the offer was
	// not pending.
	MarkAccepted(ctx context.Context, offerID int64, acceptorID int64) (bool, error)

	// UpdateStatusIfPending transitions a pending offer to the given
	// status and returns whether the update applied
	UpdateStatusIfPending(ctx context.Context, offerID int64, status entities.TradeOfferStatus) (bool, error)
}

// AssetPriceRepository defines the interface for feed-maintained prices
type AssetPriceRepository interface {
	// GetPrice returns the latest price for an asset, or nil if unquoted
	GetPrice(ctx context.Context, asset entities.AssetRef) (*entities.AssetPrice, error)

	// ListPrices returns every quoted price
	ListPrices(ctx context.Context) ([]*entities.AssetPrice, error)

	// UpsertPrice inserts or replaces the price for an asset
	UpsertPrice(ctx context.Context, price *entities.AssetPrice) error
}

// PriceSource is the read side of asset pricing, satisfied by the price
// repository directly or by a caching wrapper around it.
type PriceSource interface {
	// GetPrice returns the latest price for an asset, or nil if unquoted
	GetPrice(ctx context.Context, asset entities.AssetRef) (*entities.AssetPrice, error)

	// ListPrices returns every quoted price
	ListPrices(ctx context.Context) ([]*entities.AssetPrice, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes an event to the event bus
	Publish(event events.Event) error
}
