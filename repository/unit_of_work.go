package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"playbook/ledger-service/database"
	"playbook/ledger-service/domain/interfaces"
)

// unitOfWork implements the interfaces.UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher interfaces.TransactionalEventPublisher
	userRepo               interfaces.UserRepository
	holdingRepo            interfaces.HoldingRepository
	assetTransactionRepo   interfaces.AssetTransactionRepository
	gameRepo               interfaces.GameRepository
	betRepo                interfaces.BetRepository
	parlayRepo             interfaces.ParlayRepository
	tradeOfferRepo         interfaces.TradeOfferRepository
	assetPriceRepo         interfaces.AssetPriceRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *unitOfWorkFactory {
	return &unitOfWorkFactory{
		db: db,
	}
}

type unitOfWorkFactory struct {
	db *database.DB
}

// CreateWithPublisher creates a new UnitOfWork with a specific transactional publisher
func (f *unitOfWorkFactory) CreateWithPublisher(transactionalPublisher interfaces.TransactionalEventPublisher) interfaces.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: transactionalPublisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.userRepo = newUserRepository(tx)
	u.holdingRepo = newHoldingRepository(tx)
	u.assetTransactionRepo = newAssetTransactionRepository(tx)
	u.gameRepo = newGameRepository(tx)
	u.betRepo = newBetRepository(tx)
	u.parlayRepo = newParlayRepository(tx)
	u.tradeOfferRepo = newTradeOfferRepository(tx)
	u.assetPriceRepo = newAssetPriceRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit. Event delivery is
	// best-effort once the transaction has committed.
	if u.transactionalPublisher != nil {
		_ = u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// HoldingRepository returns the holding repository for this unit of work
func (u *unitOfWork) HoldingRepository() interfaces.HoldingRepository {
	if u.holdingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.holdingRepo
}

// AssetTransactionRepository returns the asset transaction repository for this unit of work
func (u *unitOfWork) AssetTransactionRepository() interfaces.AssetTransactionRepository {
	if u.assetTransactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.assetTransactionRepo
}

// GameRepository returns the game repository for this unit of work
func (u *unitOfWork) GameRepository() interfaces.GameRepository {
	if u.gameRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gameRepo
}

// BetRepository returns the bet repository for this unit of work
func (u *unitOfWork) BetRepository() interfaces.BetRepository {
	if u.betRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.betRepo
}

// ParlayRepository returns the parlay repository for this unit of work
func (u *unitOfWork) ParlayRepository() interfaces.ParlayRepository {
	if u.parlayRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.parlayRepo
}

// TradeOfferRepository returns the trade offer repository for this unit of work
func (u *unitOfWork) TradeOfferRepository() interfaces.TradeOfferRepository {
	if u.tradeOfferRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tradeOfferRepo
}

// AssetPriceRepository returns the asset price repository for this unit of work
func (u *unitOfWork) AssetPriceRepository() interfaces.AssetPriceRepository {
	if u.assetPriceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.assetPriceRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}
