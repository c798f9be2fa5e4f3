package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

type tradeRequest struct {
	UserID    int64           `json:"user_id"`
	AssetType string          `json:"asset_type"`
	AssetName string          `json:"asset_name"`
	Side      string          `json:"side"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// handleExecuteTrade handles POST /api/v1/trades. The unit price comes from
// the caller; the engine settles cash and shares at exactly that quote.
func (s *Server) handleExecuteTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	asset := entities.AssetRef{
		Type: entities.AssetType(req.AssetType),
		Name: req.AssetName,
	}
	result, err := s.trading.ExecuteTrade(r.Context(), req.UserID, asset,
		entities.TradeSide(req.Side), req.UnitPrice, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTradeResultResponse(result))
}
