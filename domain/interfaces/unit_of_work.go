package interfaces

import "context"

// UnitOfWork groups repository operations into one atomic transaction.
// Every multi-step mutation (trade execution, bet placement, settlement,
// offer acceptance) runs against the repositories of a single unit of work
// so the whole sequence commits or rolls back together. Events published
// through EventBus are buffered and only flushed after a successful commit.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction and discards buffered events
	Rollback() error

	// Repository getters; only valid between Begin and Commit/Rollback
	UserRepository() UserRepository
	HoldingRepository() HoldingRepository
	AssetTransactionRepository() AssetTransactionRepository
	GameRepository() GameRepository
	BetRepository() BetRepository
	ParlayRepository() ParlayRepository
	TradeOfferRepository() TradeOfferRepository
	AssetPriceRepository() AssetPriceRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a new, unstarted UnitOfWork
	Create() UnitOfWork
}

// TransactionalEventPublisher buffers events published during a transaction
// and releases them only after the transaction commits
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all buffered events; called after a successful commit
	Flush(ctx context.Context) error

	// Discard drops all buffered events; called on rollback
	Discard()
}
