package api

import (
	"net/http"
)

const defaultListLimit = 50

type createUserRequest struct {
	Username string `json:"username"`
}

// handleCreateUser handles POST /api/v1/users. Creation is idempotent on
// username: an existing account comes back with its current balance.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.accounts.GetOrCreateUser(r.Context(), req.Username)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleGetUser handles GET /api/v1/users/{userID}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.accounts.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// handleListUsers handles GET /api/v1/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.accounts.ListUsers(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponses(users))
}

// handleGetPortfolio handles GET /api/v1/users/{userID}/portfolio
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	portfolio, err := s.accounts.GetPortfolio(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// handleGetPerformance handles GET /api/v1/users/{userID}/performance
func (s *Server) handleGetPerformance(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	performance, err := s.accounts.GetPerformance(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, performance)
}

// handleListTransactions handles GET /api/v1/users/{userID}/transactions
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	txns, err := s.accounts.GetTransactionHistory(r.Context(), userID, queryLimit(r, defaultListLimit))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTransactionResponses(txns))
}

// handleListUserBets handles GET /api/v1/users/{userID}/bets
func (s *Server) handleListUserBets(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bets, err := s.wagers.ListUserBets(r.Context(), userID, queryLimit(r, defaultListLimit))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBetResponses(bets))
}

// handleListUserParlays handles GET /api/v1/users/{userID}/parlays
func (s *Server) handleListUserParlays(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	parlays, err := s.wagers.ListUserParlays(r.Context(), userID, queryLimit(r, defaultListLimit))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toParlayResponses(parlays))
}

// handleListUserOffers handles GET /api/v1/users/{userID}/offers
func (s *Server) handleListUserOffers(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	offers, err := s.offers.ListOffersForUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOfferResponses(offers))
}
