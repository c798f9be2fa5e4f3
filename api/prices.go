package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

type upsertPriceRequest struct {
	AssetType string          `json:"asset_type"`
	AssetName string          `json:"asset_name"`
	Price     decimal.Decimal `json:"price"`
}

// handleListPrices handles GET /api/v1/prices
func (s *Server) handleListPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := s.prices.ListPrices(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPriceResponses(prices))
}

// handleUpsertPrice handles PUT /api/v1/prices, the market-data feed's
// write path
func (s *Server) handleUpsertPrice(w http.ResponseWriter, r *http.Request) {
	var req upsertPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	price := &entities.AssetPrice{
		AssetType: entities.AssetType(req.AssetType),
		AssetName: req.AssetName,
		Price:     req.Price,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.prices.UpsertPrice(r.Context(), price); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, priceResponse{
		AssetType: string(price.AssetType),
		AssetName: price.AssetName,
		Price:     price.Price,
		UpdatedAt: price.UpdatedAt,
	})
}
