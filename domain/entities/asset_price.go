package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetPrice is the latest quoted unit price for one asset, maintained by
// the external market-data feed. The engine only ever reads it; trades take
// price as an input and never compute it.
type AssetPrice struct {
	AssetType AssetType       `db:"asset_type"`
	AssetName string          `db:"asset_name"`
	Price     decimal.Decimal `db:"price"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// Asset returns the price row's asset reference
func (p *AssetPrice) Asset() AssetRef {
	return AssetRef{Type: p.AssetType, Name: p.AssetName}
}
