package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

type createGameRequest struct {
	HomeTeam    string          `json:"home_team"`
	AwayTeam    string          `json:"away_team"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	HomeOdds    decimal.Decimal `json:"home_odds"`
	AwayOdds    decimal.Decimal `json:"away_odds"`
	Spread      decimal.Decimal `json:"spread"`
	TotalLine   decimal.Decimal `json:"total_line"`
}

type settleGameRequest struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

// handleCreateGame handles POST /api/v1/games
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := s.games.CreateGame(r.Context(), &entities.Game{
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		ScheduledAt: req.ScheduledAt,
		HomeOdds:    req.HomeOdds,
		AwayOdds:    req.AwayOdds,
		Spread:      req.Spread,
		TotalLine:   req.TotalLine,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toGameResponse(game))
}

// handleGetGame handles GET /api/v1/games/{gameID}
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := s.games.GetGame(r.Context(), gameID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toGameResponse(game))
}

// handleListGames handles GET /api/v1/games?status=scheduled|completed
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(entities.GameStatusScheduled)
	}

	games, err := s.games.ListGames(r.Context(), entities.GameStatus(status))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toGameResponses(games))
}

// handleSettleGame handles POST /api/v1/games/{gameID}/settle
func (s *Server) handleSettleGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req settleGameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.HomeScore == nil || req.AwayScore == nil {
		respondError(w, http.StatusBadRequest, "home_score and away_score are required")
		return
	}

	summary, err := s.games.SettleGame(r.Context(), gameID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toSettlementResponse(summary))
}
