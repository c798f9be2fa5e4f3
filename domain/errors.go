// Package domain defines the error kinds shared by the ledger's services
// and surfaced to callers. Services wrap these sentinels with context via
// fmt.Errorf("...: %w", err); callers test them with errors.Is.
package domain

import "errors"

var (
	// ErrValidation is returned for malformed input: unknown enum values,
	// bad asset references, and quantities or fields that fail their bounds.
	ErrValidation = errors.New("invalid input")

	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings is returned when a decrement exceeds the
	// held quantity of an asset.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrInvalidStake is returned for non-positive stakes or stakes below
	// the platform minimum.
	ErrInvalidStake = errors.New("invalid stake")

	// ErrBettingClosed is returned when the target game has started or
	// already completed.
	ErrBettingClosed = errors.New("betting closed")

	// ErrAlreadySettled is returned when settling a game that is not in
	// the scheduled state. Settlement is exactly-once.
	ErrAlreadySettled = errors.New("game already settled")

	// ErrStaleOffer is returned when a trade offer can no longer be
	// executed as written: it left the pending state, or the initiator no
	// longer holds the offered assets.
	ErrStaleOffer = errors.New("stale trade offer")

	// ErrNotFound is returned for unknown users, assets, games, bets,
	// parlays, and offers.
	ErrNotFound = errors.New("not found")
)
