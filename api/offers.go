package api

import (
	"net/http"

	"playbook/ledger-service/domain/entities"
)

type createOfferRequest struct {
	InitiatorID    int64                          `json:"initiator_id"`
	CounterpartyID *int64                         `json:"counterparty_id,omitempty"`
	Offered        []entities.TradeOfferItemInput `json:"offered"`
	Requested      []entities.TradeOfferItemInput `json:"requested"`
}

// offerActionRequest identifies who is accepting, rejecting, or cancelling
type offerActionRequest struct {
	UserID int64 `json:"user_id"`
}

// handleCreateOffer handles POST /api/v1/offers. Omitting counterparty_id
// opens the offer to any other user.
func (s *Server) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.InitiatorID <= 0 {
		respondError(w, http.StatusBadRequest, "initiator_id is required")
		return
	}

	detail, err := s.offers.CreateOffer(r.Context(), req.InitiatorID, req.CounterpartyID, req.Offered, req.Requested)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOfferResponse(detail))
}

// handleGetOffer handles GET /api/v1/offers/{offerID}
func (s *Server) handleGetOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := pathID(r, "offerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := s.offers.GetOffer(r.Context(), offerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOfferResponse(detail))
}

// handleAcceptOffer handles POST /api/v1/offers/{offerID}/accept
func (s *Server) handleAcceptOffer(w http.ResponseWriter, r *http.Request) {
	offerID, req, ok := s.decodeOfferAction(w, r)
	if !ok {
		return
	}

	detail, err := s.offers.AcceptOffer(r.Context(), offerID, req.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOfferResponse(detail))
}

// handleRejectOffer handles POST /api/v1/offers/{offerID}/reject
func (s *Server) handleRejectOffer(w http.ResponseWriter, r *http.Request) {
	offerID, req, ok := s.decodeOfferAction(w, r)
	if !ok {
		return
	}

	if err := s.offers.RejectOffer(r.Context(), offerID, req.UserID); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// handleCancelOffer handles POST /api/v1/offers/{offerID}/cancel
func (s *Server) handleCancelOffer(w http.ResponseWriter, r *http.Request) {
	offerID, req, ok := s.decodeOfferAction(w, r)
	if !ok {
		return
	}

	if err := s.offers.CancelOffer(r.Context(), offerID, req.UserID); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (s *Server) decodeOfferAction(w http.ResponseWriter, r *http.Request) (int64, offerActionRequest, bool) {
	offerID, err := pathID(r, "offerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return 0, offerActionRequest{}, false
	}

	var req offerActionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return 0, offerActionRequest{}, false
	}
	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return 0, offerActionRequest{}, false
	}

	return offerID, req, true
}
