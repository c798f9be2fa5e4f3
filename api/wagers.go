package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

type placeBetRequest struct {
	UserID  int64           `json:"user_id"`
	GameID  int64           `json:"game_id"`
	BetType string          `json:"bet_type"`
	Pick    string          `json:"pick"`
	Stake   decimal.Decimal `json:"stake"`
}

type createParlayRequest struct {
	UserID int64                     `json:"user_id"`
	Stake  decimal.Decimal           `json:"stake"`
	Legs   []entities.ParlayLegInput `json:"legs"`
}

// handlePlaceBet handles POST /api/v1/bets
func (s *Server) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req placeBetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 || req.GameID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id and game_id are required")
		return
	}

	bet, err := s.wagers.PlaceBet(r.Context(), req.UserID, req.GameID,
		entities.BetType(req.BetType), entities.BetPick(req.Pick), req.Stake)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toBetResponse(bet))
}

// handleGetBet handles GET /api/v1/bets/{betID}
func (s *Server) handleGetBet(w http.ResponseWriter, r *http.Request) {
	betID, err := pathID(r, "betID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet, err := s.wagers.GetBet(r.Context(), betID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBetResponse(bet))
}

// handleCreateParlay handles POST /api/v1/parlays
func (s *Server) handleCreateParlay(w http.ResponseWriter, r *http.Request) {
	var req createParlayRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	detail, err := s.wagers.CreateParlay(r.Context(), req.UserID, req.Legs, req.Stake)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toParlayResponse(detail))
}

// handleGetParlay handles GET /api/v1/parlays/{parlayID}
func (s *Server) handleGetParlay(w http.ResponseWriter, r *http.Request) {
	parlayID, err := pathID(r, "parlayID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := s.wagers.GetParlay(r.Context(), parlayID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toParlayResponse(detail))
}
