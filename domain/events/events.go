package events

import (
	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange      EventType = "balance_change"
	EventTypeUserCreated        EventType = "user_created"
	EventTypeTradeExecuted      EventType = "trade_executed"
	EventTypeBetPlaced          EventType = "bet_placed"
	EventTypeBetResolved        EventType = "bet_resolved"
	EventTypeParlayCreated      EventType = "parlay_created"
	EventTypeParlayResolved     EventType = "parlay_resolved"
	EventTypeGameSettled        EventType = "game_settled"
	EventTypeTradeOfferCreated  EventType = "trade_offer_created"
	EventTypeTradeOfferAccepted EventType = "trade_offer_accepted"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID     int64           `json:"user_id"`
	OldBalance decimal.Decimal `json:"old_balance"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Change     decimal.Decimal `json:"change"`
	Reason     string          `json:"reason"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID         int64           `json:"user_id"`
	Username       string          `json:"username"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// TradeExecutedEvent represents a completed buy or sell
type TradeExecutedEvent struct {
	UserID     int64              `json:"user_id"`
	Side       entities.TradeSide `json:"side"`
	AssetType  entities.AssetType `json:"asset_type"`
	AssetName  string             `json:"asset_name"`
	UnitPrice  decimal.Decimal    `json:"unit_price"`
	Quantity   int64              `json:"quantity"`
	ProfitLoss decimal.Decimal    `json:"profit_loss"`
}

func (e TradeExecutedEvent) Type() EventType {
	return EventTypeTradeExecuted
}

// BetPlacedEvent represents a bet that was placed
type BetPlacedEvent struct {
	BetID           int64            `json:"bet_id"`
	UserID          int64            `json:"user_id"`
	GameID          int64            `json:"game_id"`
	BetType         entities.BetType `json:"bet_type"`
	Pick            entities.BetPick `json:"pick"`
	Stake           decimal.Decimal  `json:"stake"`
	PotentialPayout decimal.Decimal  `json:"potential_payout"`
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetResolvedEvent represents a bet reaching a terminal status
type BetResolvedEvent struct {
	BetID  int64              `json:"bet_id"`
	UserID int64              `json:"user_id"`
	GameID int64              `json:"game_id"`
	Status entities.BetStatus `json:"status"`
	Payout decimal.Decimal    `json:"payout"`
}

func (e BetResolvedEvent) Type() EventType {
	return EventTypeBetResolved
}

// ParlayCreatedEvent represents a parlay that was placed
type ParlayCreatedEvent struct {
	ParlayID        int64           `json:"parlay_id"`
	UserID          int64           `json:"user_id"`
	LegCount        int             `json:"leg_count"`
	Stake           decimal.Decimal `json:"stake"`
	TotalOdds       decimal.Decimal `json:"total_odds"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
}

func (e ParlayCreatedEvent) Type() EventType {
	return EventTypeParlayCreated
}

// ParlayResolvedEvent represents a parlay reaching a terminal status
type ParlayResolvedEvent struct {
	ParlayID int64              `json:"parlay_id"`
	UserID   int64              `json:"user_id"`
	Status   entities.BetStatus `json:"status"`
	Payout   decimal.Decimal    `json:"payout"`
}

func (e ParlayResolvedEvent) Type() EventType {
	return EventTypeParlayResolved
}

// GameSettledEvent represents a game transitioning to completed
type GameSettledEvent struct {
	GameID          int64 `json:"game_id"`
	HomeScore       int   `json:"home_score"`
	AwayScore       int   `json:"away_score"`
	BetsResolved    int   `json:"bets_resolved"`
	LegsResolved    int   `json:"legs_resolved"`
	ParlaysResolved int   `json:"parlays_resolved"`
}

func (e GameSettledEvent) Type() EventType {
	return EventTypeGameSettled
}

// TradeOfferCreatedEvent represents a new peer-to-peer offer
type TradeOfferCreatedEvent struct {
	OfferID        int64  `json:"offer_id"`
	InitiatorID    int64  `json:"initiator_id"`
	CounterpartyID *int64 `json:"counterparty_id,omitempty"`
	ItemCount      int    `json:"item_count"`
}

func (e TradeOfferCreatedEvent) Type() EventType {
	return EventTypeTradeOfferCreated
}

// TradeOfferAcceptedEvent represents an executed swap
type TradeOfferAcceptedEvent struct {
	OfferID     int64 `json:"offer_id"`
	InitiatorID int64 `json:"initiator_id"`
	AcceptorID  int64 `json:"acceptor_id"`
	ItemCount   int   `json:"item_count"`
}

func (e TradeOfferAcceptedEvent) Type() EventType {
	return EventTypeTradeOfferAccepted
}
