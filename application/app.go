// Package application composes domain services over units of work. Each
// operation creates one unit of work, runs the relevant service inside it,
// and commits; read-only operations roll their transaction back on return.
package application

import (
	"playbook/ledger-service/domain/interfaces"
)

// App implements every operation group over a unit-of-work factory.
// Price reads go through the injected price source, which may be the plain
// repository or a Redis-cached wrapper around it.
type App struct {
	uowFactory interfaces.UnitOfWorkFactory
	prices     interfaces.AssetPriceRepository
}

// NewApp creates the application facade
func NewApp(uowFactory interfaces.UnitOfWorkFactory, prices interfaces.AssetPriceRepository) *App {
	return &App{
		uowFactory: uowFactory,
		prices:     prices,
	}
}
