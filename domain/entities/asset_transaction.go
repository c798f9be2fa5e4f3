package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of ownership change
type TransactionKind string

const (
	TransactionKindBuy      TransactionKind = "buy"
	TransactionKindSell     TransactionKind = "sell"
	TransactionKindTradeIn  TransactionKind = "trade_in"
	TransactionKindTradeOut TransactionKind = "trade_out"
)

// IsAcquisition returns true if the kind adds shares to the user
func (tk TransactionKind) IsAcquisition() bool {
	return tk == TransactionKindBuy || tk == TransactionKindTradeIn
}

// IsDisposal returns true if the kind removes shares from the user
func (tk TransactionKind) IsDisposal() bool {
	return tk == TransactionKindSell || tk == TransactionKindTradeOut
}

// IsCashSettled returns true if the kind moves cash as well as shares
func (tk TransactionKind) IsCashSettled() bool {
	return tk == TransactionKindBuy || tk == TransactionKindSell
}

// TradeSide is the direction of a cash-settled trade
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// IsValid returns true for a known trade side
func (ts TradeSide) IsValid() bool {
	return ts == TradeSideBuy || ts == TradeSideSell
}

// Kind maps the trade side to the transaction kind it records
func (ts TradeSide) Kind() TransactionKind {
	if ts == TradeSideBuy {
		return TransactionKindBuy
	}
	return TransactionKindSell
}

// AssetTransaction is one immutable row of the ownership log. Rows are
// appended on every buy, sell, and trade-offer swap and never mutated;
// cost basis and realized profit/loss are derived from them.
type AssetTransaction struct {
	ID         int64           `db:"id"`
	UserID     int64           `db:"user_id"`
	Kind       TransactionKind `db:"kind"`
	AssetType  AssetType       `db:"asset_type"`
	AssetName  string          `db:"asset_name"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	Quantity   int64           `db:"quantity"`
	CostBasis  decimal.Decimal `db:"cost_basis"`
	ProfitLoss decimal.Decimal `db:"profit_loss"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Asset returns the transaction's asset reference
func (t *AssetTransaction) Asset() AssetRef {
	return AssetRef{Type: t.AssetType, Name: t.AssetName}
}

// CashDelta returns the signed cash movement of this row: negative for a
// buy, positive for a sell, zero for barter trade legs.
func (t *AssetTransaction) CashDelta() decimal.Decimal {
	total := t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
	switch t.Kind {
	case TransactionKindBuy:
		return total.Neg()
	case TransactionKindSell:
		return total
	default:
		return decimal.Zero
	}
}

// QuantityDelta returns the signed share movement of this row
func (t *AssetTransaction) QuantityDelta() int64 {
	if t.Kind.IsAcquisition() {
		return t.Quantity
	}
	return -t.Quantity
}
