package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeOfferCanBeAcceptedBy(t *testing.T) {
	counterparty := int64(2)

	t.Run("addressed offer", func(t *testing.T) {
		offer := &TradeOffer{InitiatorID: 1, CounterpartyID: &counterparty}
		assert.NoError(t, offer.CanBeAcceptedBy(2))
		assert.Error(t, offer.CanBeAcceptedBy(1), "initiator cannot accept")
		assert.Error(t, offer.CanBeAcceptedBy(3), "addressed to someone else")
	})

	t.Run("open offer", func(t *testing.T) {
		offer := &TradeOffer{InitiatorID: 1}
		assert.True(t, offer.IsOpen())
		assert.NoError(t, offer.CanBeAcceptedBy(3))
		assert.Error(t, offer.CanBeAcceptedBy(1))
	})
}

func TestTradeOfferDetailItemSides(t *testing.T) {
	detail := &TradeOfferDetail{
		Offer: &TradeOffer{ID: 1, InitiatorID: 1},
		Items: []*TradeOfferItem{
			{ID: 1, Side: TradeOfferItemOffered, AssetType: AssetTypePlayer, AssetName: "Jalen Reed", Quantity: 2},
			{ID: 2, Side: TradeOfferItemRequested, AssetType: AssetTypeTeamFund, AssetName: "Hawks Fund", Quantity: 1},
			{ID: 3, Side: TradeOfferItemOffered, AssetType: AssetTypePlayer, AssetName: "Marcus Cole", Quantity: 1},
		},
	}

	offered := detail.OfferedItems()
	require.Len(t, offered, 2)
	assert.Equal(t, "Jalen Reed", offered[0].AssetName)
	assert.Equal(t, "Marcus Cole", offered[1].AssetName)

	requested := detail.RequestedItems()
	require.Len(t, requested, 1)
	assert.Equal(t, "Hawks Fund", requested[0].AssetName)
}

func TestTradeOfferItemInputValidate(t *testing.T) {
	valid := TradeOfferItemInput{AssetType: AssetTypePlayer, AssetName: "Jalen Reed", Quantity: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		input TradeOfferItemInput
	}{
		{"zero quantity", TradeOfferItemInput{AssetType: AssetTypePlayer, AssetName: "Jalen Reed", Quantity: 0}},
		{"negative quantity", TradeOfferItemInput{AssetType: AssetTypePlayer, AssetName: "Jalen Reed", Quantity: -1}},
		{"unknown asset type", TradeOfferItemInput{AssetType: AssetType("coach"), AssetName: "Jalen Reed", Quantity: 1}},
		{"empty asset name", TradeOfferItemInput{AssetType: AssetTypePlayer, AssetName: "", Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.input.Validate())
		})
	}
}
