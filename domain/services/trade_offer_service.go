package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/events"
	"playbook/ledger-service/domain/interfaces"
)

type tradeOfferService struct {
	userRepo             interfaces.UserRepository
	holdingRepo          interfaces.HoldingRepository
	assetTransactionRepo interfaces.AssetTransactionRepository
	tradeOfferRepo       interfaces.TradeOfferRepository
	eventPublisher       interfaces.EventPublisher
}

// NewTradeOfferService creates a new trade offer service
func NewTradeOfferService(
	userRepo interfaces.UserRepository,
	holdingRepo interfaces.HoldingRepository,
	assetTransactionRepo interfaces.AssetTransactionRepository,
	tradeOfferRepo interfaces.TradeOfferRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.TradeOfferService {
	return &tradeOfferService{
		userRepo:             userRepo,
		holdingRepo:          holdingRepo,
		assetTransactionRepo: assetTransactionRepo,
		tradeOfferRepo:       tradeOfferRepo,
		eventPublisher:       eventPublisher,
	}
}

func (s *tradeOfferService) CreateOffer(ctx context.Context, initiatorID int64, counterpartyID *int64, offered, requested []entities.TradeOfferItemInput) (*entities.TradeOfferDetail, error) {
	if len(offered) == 0 || len(requested) == 0 {
		return nil, fmt.Errorf("%w: an offer needs at least one asset on each side", domain.ErrValidation)
	}
	for _, input := range append(offered[:len(offered):len(offered)], requested...) {
		if err := input.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	initiator, err := s.userRepo.GetByID(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	if initiator == nil {
		return nil, fmt.Errorf("user %d: %w", initiatorID, domain.ErrNotFound)
	}

	if counterpartyID != nil {
		if *counterpartyID == initiatorID {
			return nil, fmt.Errorf("%w: cannot open a trade offer with yourself", domain.ErrValidation)
		}
		counterparty, err := s.userRepo.GetByID(ctx, *counterpartyID)
		if err != nil {
			return nil, err
		}
		if counterparty == nil {
			return nil, fmt.Errorf("user %d: %w", *counterpartyID, domain.ErrNotFound)
		}
	}

	// The initiator must currently hold everything they offer. Holdings may
	// change before acceptance; acceptance re-validates.
	if err := s.checkHoldings(ctx, initiatorID, offered, domain.ErrInsufficientHoldings); err != nil {
		return nil, err
	}

	offer := &entities.TradeOffer{
		InitiatorID:    initiatorID,
		CounterpartyID: counterpartyID,
	}
	items := make([]*entities.TradeOfferItem, 0, len(offered)+len(requested))
	for _, input := range offered {
		items = append(items, &entities.TradeOfferItem{
			Side:      entities.TradeOfferItemOffered,
			AssetType: input.AssetType,
			AssetName: input.AssetName,
			Quantity:  input.Quantity,
		})
	}
	for _, input := range requested {
		items = append(items, &entities.TradeOfferItem{
			Side:      entities.TradeOfferItemRequested,
			AssetType: input.AssetType,
			AssetName: input.AssetName,
			Quantity:  input.Quantity,
		})
	}

	if err := s.tradeOfferRepo.CreateWithItems(ctx, offer, items); err != nil {
		return nil, err
	}

	if err := s.eventPublisher.Publish(events.TradeOfferCreatedEvent{
		OfferID:        offer.ID,
		InitiatorID:    initiatorID,
		CounterpartyID: counterpartyID,
		ItemCount:      len(items),
	}); err != nil {
		log.WithError(err).Error("Failed to publish trade offer created event")
	}

	log.WithFields(log.Fields{
		"offerID":     offer.ID,
		"initiatorID": initiatorID,
		"itemCount":   len(items),
		"open":        counterpartyID == nil,
	}).Info("Created trade offer")

	return &entities.TradeOfferDetail{Offer: offer, Items: items}, nil
}

// AcceptOffer executes the swap. Both sides' holdings are re-validated
// inside the same transaction that moves them, closing the gap between
// offer creation and acceptance.
func (s *tradeOfferService) AcceptOffer(ctx context.Context, offerID, acceptorID int64) (*entities.TradeOfferDetail, error) {
	detail, err := s.tradeOfferRepo.GetDetailByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("trade offer %d: %w", offerID, domain.ErrNotFound)
	}

	offer := detail.Offer
	if !offer.IsPending() {
		return nil, fmt.Errorf("trade offer %d is %s: %w", offerID, offer.Status, domain.ErrStaleOffer)
	}
	if err := offer.CanBeAcceptedBy(acceptorID); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The initiator's side going stale is their fault, not the acceptor's
	offeredItems := detail.OfferedItems()
	requestedItems := detail.RequestedItems()
	if err := s.checkItemHoldings(ctx, offer.InitiatorID, offeredItems, domain.ErrStaleOffer); err != nil {
		return nil, err
	}
	if err := s.checkItemHoldings(ctx, acceptorID, requestedItems, domain.ErrInsufficientHoldings); err != nil {
		return nil, err
	}

	applied, err := s.tradeOfferRepo.MarkAccepted(ctx, offerID, acceptorID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("trade offer %d: %w", offerID, domain.ErrStaleOffer)
	}

	for _, item := range offeredItems {
		if err := s.moveItem(ctx, offer.InitiatorID, acceptorID, item); err != nil {
			return nil, err
		}
	}
	for _, item := range requestedItems {
		if err := s.moveItem(ctx, acceptorID, offer.InitiatorID, item); err != nil {
			return nil, err
		}
	}

	offer.Status = entities.TradeOfferStatusAccepted
	offer.CounterpartyID = &acceptorID

	if err := s.eventPublisher.Publish(events.TradeOfferAcceptedEvent{
		OfferID:     offerID,
		InitiatorID: offer.InitiatorID,
		AcceptorID:  acceptorID,
		ItemCount:   len(detail.Items),
	}); err != nil {
		log.WithError(err).Error("Failed to publish trade offer accepted event")
	}

	log.WithFields(log.Fields{
		"offerID":     offerID,
		"initiatorID": offer.InitiatorID,
		"acceptorID":  acceptorID,
	}).Info("Accepted trade offer")

	return detail, nil
}

func (s *tradeOfferService) RejectOffer(ctx context.Context, offerID, userID int64) error {
	detail, err := s.tradeOfferRepo.GetDetailByID(ctx, offerID)
	if err != nil {
		return err
	}
	if detail == nil {
		return fmt.Errorf("trade offer %d: %w", offerID, domain.ErrNotFound)
	}

	offer := detail.Offer
	if !offer.IsPending() {
		return fmt.Errorf("trade offer %d is %s: %w", offerID, offer.Status, domain.ErrStaleOffer)
	}
	if err := offer.CanBeRespondedToBy(userID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	applied, err := s.tradeOfferRepo.UpdateStatusIfPending(ctx, offerID, entities.TradeOfferStatusRejected)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("trade offer %d: %w", offerID, domain.ErrStaleOffer)
	}

	log.WithFields(log.Fields{
		"offerID": offerID,
		"userID":  userID,
	}).Info("Rejected trade offer")

	return nil
}

func (s *tradeOfferService) CancelOffer(ctx context.Context, offerID, userID int64) error {
	detail, err := s.tradeOfferRepo.GetDetailByID(ctx, offerID)
	if err != nil {
		return err
	}
	if detail == nil {
		return fmt.Errorf("trade offer %d: %w", offerID, domain.ErrNotFound)
	}

	offer := detail.Offer
	if !offer.IsPending() {
		return fmt.Errorf("trade offer %d is %s: %w", offerID, offer.Status, domain.ErrStaleOffer)
	}
	if offer.InitiatorID != userID {
		return fmt.Errorf("%w: only the initiator can cancel a trade offer", domain.ErrValidation)
	}

	applied, err := s.tradeOfferRepo.UpdateStatusIfPending(ctx, offerID, entities.TradeOfferStatusCancelled)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("trade offer %d: %w", offerID, domain.ErrStaleOffer)
	}

	log.WithFields(log.Fields{
		"offerID": offerID,
		"userID":  userID,
	}).Info("Cancelled trade offer")

	return nil
}

func (s *tradeOfferService) GetOffer(ctx context.Context, offerID int64) (*entities.TradeOfferDetail, error) {
	detail, err := s.tradeOfferRepo.GetDetailByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("trade offer %d: %w", offerID, domain.ErrNotFound)
	}

	return detail, nil
}

func (s *tradeOfferService) ListOffersForUser(ctx context.Context, userID int64) ([]*entities.TradeOfferDetail, error) {
	return s.tradeOfferRepo.GetForUser(ctx, userID)
}

// moveItem transfers one item line between users and appends the matching
// pair of barter rows to the ownership log. Barter legs carry no cash, so
// both rows record a zero unit price.
func (s *tradeOfferService) moveItem(ctx context.Context, fromID, toID int64, item *entities.TradeOfferItem) error {
	asset := item.Asset()
	if _, err := s.holdingRepo.Decrease(ctx, fromID, asset, item.Quantity); err != nil {
		return err
	}
	if _, err := s.holdingRepo.Increase(ctx, toID, asset, item.Quantity); err != nil {
		return err
	}

	out := &entities.AssetTransaction{
		UserID:    fromID,
		Kind:      entities.TransactionKindTradeOut,
		AssetType: item.AssetType,
		AssetName: item.AssetName,
		Quantity:  item.Quantity,
	}
	if err := s.assetTransactionRepo.Record(ctx, out); err != nil {
		return err
	}

	in := &entities.AssetTransaction{
		UserID:    toID,
		Kind:      entities.TransactionKindTradeIn,
		AssetType: item.AssetType,
		AssetName: item.AssetName,
		Quantity:  item.Quantity,
	}
	return s.assetTransactionRepo.Record(ctx, in)
}

func (s *tradeOfferService) checkHoldings(ctx context.Context, userID int64, inputs []entities.TradeOfferItemInput, insufficientErr error) error {
	for _, input := range inputs {
		held, err := s.holdingRepo.Quantity(ctx, userID, input.Asset())
		if err != nil {
			return err
		}
		if held < input.Quantity {
			return fmt.Errorf("user %d holds %d of %s, needs %d: %w", userID, held, input.Asset(), input.Quantity, insufficientErr)
		}
	}
	return nil
}

func (s *tradeOfferService) checkItemHoldings(ctx context.Context, userID int64, items []*entities.TradeOfferItem, insufficientErr error) error {
	for _, item := range items {
		held, err := s.holdingRepo.Quantity(ctx, userID, item.Asset())
		if err != nil {
			return err
		}
		if held < item.Quantity {
			return fmt.Errorf("user %d holds %d of %s, needs %d: %w", userID, held, item.Asset(), item.Quantity, insufficientErr)
		}
	}
	return nil
}
