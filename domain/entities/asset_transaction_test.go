package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionKindPredicates(t *testing.T) {
	assert.True(t, TransactionKindBuy.IsAcquisition())
	assert.True(t, TransactionKindTradeIn.IsAcquisition())
	assert.False(t, TransactionKindSell.IsAcquisition())

	assert.True(t, TransactionKindSell.IsDisposal())
	assert.True(t, TransactionKindTradeOut.IsDisposal())
	assert.False(t, TransactionKindTradeIn.IsDisposal())

	assert.True(t, TransactionKindBuy.IsCashSettled())
	assert.True(t, TransactionKindSell.IsCashSettled())
	assert.False(t, TransactionKindTradeIn.IsCashSettled())
	assert.False(t, TransactionKindTradeOut.IsCashSettled())
}

func TestTradeSideKind(t *testing.T) {
	assert.Equal(t, TransactionKindBuy, TradeSideBuy.Kind())
	assert.Equal(t, TransactionKindSell, TradeSideSell.Kind())

	assert.True(t, TradeSideBuy.IsValid())
	assert.True(t, TradeSideSell.IsValid())
	assert.False(t, TradeSide("short").IsValid())
}

func TestAssetTransactionDeltas(t *testing.T) {
	tests := []struct {
		name         string
		kind         TransactionKind
		unitPrice    string
		quantity     int64
		wantCash     string
		wantQuantity int64
	}{
		{"buy debits cash and adds shares", TransactionKindBuy, "12.50", 4, "-50.00", 4},
		{"sell credits cash and removes shares", TransactionKindSell, "15.00", 3, "45.00", -3},
		{"trade in moves shares without cash", TransactionKindTradeIn, "0", 2, "0", 2},
		{"trade out moves shares without cash", TransactionKindTradeOut, "0", 2, "0", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := &AssetTransaction{
				Kind:      tt.kind,
				UnitPrice: decimal.RequireFromString(tt.unitPrice),
				Quantity:  tt.quantity,
			}
			assert.True(t, txn.CashDelta().Equal(decimal.RequireFromString(tt.wantCash)),
				"cash delta = %s", txn.CashDelta())
			assert.Equal(t, tt.wantQuantity, txn.QuantityDelta())
		})
	}
}
