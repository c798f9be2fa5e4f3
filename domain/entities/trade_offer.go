package entities

import (
	"errors"
	"time"
)

// TradeOfferStatus is the lifecycle state of a peer-to-peer trade offer
type TradeOfferStatus string

const (
	TradeOfferStatusPending   TradeOfferStatus = "pending"
	TradeOfferStatusAccepted  TradeOfferStatus = "accepted"
	TradeOfferStatusRejected  TradeOfferStatus = "rejected"
	TradeOfferStatusCancelled TradeOfferStatus = "cancelled"
)

// IsTerminal returns true once the offer can no longer change state
func (s TradeOfferStatus) IsTerminal() bool {
	return s != TradeOfferStatusPending
}

// TradeOfferItemSide distinguishes what the initiator gives from what they ask
type TradeOfferItemSide string

const (
	TradeOfferItemOffered   TradeOfferItemSide = "offered"
	TradeOfferItemRequested TradeOfferItemSide = "requested"
)

// TradeOffer is a proposed multi-asset swap between two users. A nil
// counterparty makes it an open offer any other user may accept. Accepting
// moves every item of both sides atomically; rejection and cancellation
// move nothing.
type TradeOffer struct {
	ID             int64            `db:"id"`
	InitiatorID    int64            `db:"initiator_id"`
	CounterpartyID *int64           `db:"counterparty_id"`
	Status         TradeOfferStatus `db:"status"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// IsOpen returns true for offers addressed to no specific counterparty
func (o *TradeOffer) IsOpen() bool {
	return o.CounterpartyID == nil
}

// IsPending returns true while the offer awaits a response
func (o *TradeOffer) IsPending() bool {
	return o.Status == TradeOfferStatusPending
}

// CanBeAcceptedBy checks whether userID may accept this offer
func (o *TradeOffer) CanBeAcceptedBy(userID int64) error {
	if userID == o.InitiatorID {
		return errors.New("initiator cannot accept their own offer")
	}
	if o.CounterpartyID != nil && *o.CounterpartyID != userID {
		return errors.New("offer is addressed to a different user")
	}
	return nil
}

// CanBeRespondedToBy checks whether userID may reject this offer
func (o *TradeOffer) CanBeRespondedToBy(userID int64) error {
	return o.CanBeAcceptedBy(userID)
}

// TradeOfferItem is one asset line of an offer
type TradeOfferItem struct {
	ID        int64              `db:"id"`
	OfferID   int64              `db:"offer_id"`
	Side      TradeOfferItemSide `db:"side"`
	AssetType AssetType          `db:"asset_type"`
	AssetName string             `db:"asset_name"`
	Quantity  int64              `db:"quantity"`
}

// Asset returns the item's asset reference
func (i *TradeOfferItem) Asset() AssetRef {
	return AssetRef{Type: i.AssetType, Name: i.AssetName}
}

// TradeOfferItemInput describes one asset line when creating an offer
type TradeOfferItemInput struct {
	AssetType AssetType `json:"asset_type"`
	AssetName string    `json:"asset_name"`
	Quantity  int64     `json:"quantity"`
}

// Asset returns the input's asset reference
func (i TradeOfferItemInput) Asset() AssetRef {
	return AssetRef{Type: i.AssetType, Name: i.AssetName}
}

// Validate checks the input line is well formed
func (i TradeOfferItemInput) Validate() error {
	if err := i.Asset().Validate(); err != nil {
		return err
	}
	if i.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

// TradeOfferDetail bundles an offer with its items
type TradeOfferDetail struct {
	Offer *TradeOffer
	Items []*TradeOfferItem
}

// OfferedItems returns the lines the initiator gives up
func (d *TradeOfferDetail) OfferedItems() []*TradeOfferItem {
	return d.itemsBySide(TradeOfferItemOffered)
}

// RequestedItems returns the lines the initiator asks for
func (d *TradeOfferDetail) RequestedItems() []*TradeOfferItem {
	return d.itemsBySide(TradeOfferItemRequested)
}

func (d *TradeOfferDetail) itemsBySide(side TradeOfferItemSide) []*TradeOfferItem {
	var items []*TradeOfferItem
	for _, item := range d.Items {
		if item.Side == side {
			items = append(items, item)
		}
	}
	return items
}
