package api

import (
	"time"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain/entities"
)

// Response shapes. Decimal fields marshal as quoted strings, so monetary
// values survive the trip through JavaScript clients intact.

type userResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func toUserResponse(u *entities.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*entities.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// gameResponse reports scores only once the game has completed
type gameResponse struct {
	ID          int64           `json:"id"`
	HomeTeam    string          `json:"home_team"`
	AwayTeam    string          `json:"away_team"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	HomeOdds    decimal.Decimal `json:"home_odds"`
	AwayOdds    decimal.Decimal `json:"away_odds"`
	Spread      decimal.Decimal `json:"spread"`
	TotalLine   decimal.Decimal `json:"total_line"`
	Status      string          `json:"status"`
	HomeScore   *int            `json:"home_score,omitempty"`
	AwayScore   *int            `json:"away_score,omitempty"`
}

func toGameResponse(g *entities.Game) gameResponse {
	resp := gameResponse{
		ID:          g.ID,
		HomeTeam:    g.HomeTeam,
		AwayTeam:    g.AwayTeam,
		ScheduledAt: g.ScheduledAt,
		HomeOdds:    g.HomeOdds,
		AwayOdds:    g.AwayOdds,
		Spread:      g.Spread,
		TotalLine:   g.TotalLine,
		Status:      string(g.Status),
	}
	if g.IsCompleted() {
		home, away := g.HomeScore, g.AwayScore
		resp.HomeScore = &home
		resp.AwayScore = &away
	}
	return resp
}

func toGameResponses(games []*entities.Game) []gameResponse {
	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}
	return out
}

type betResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	GameID          int64           `json:"game_id"`
	BetType         string          `json:"bet_type"`
	Pick            string          `json:"pick"`
	Stake           decimal.Decimal `json:"stake"`
	Odds            decimal.Decimal `json:"odds"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
}

func toBetResponse(b *entities.Bet) betResponse {
	return betResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		GameID:          b.GameID,
		BetType:         string(b.BetType),
		Pick:            string(b.Pick),
		Stake:           b.Stake,
		Odds:            b.Odds,
		PotentialPayout: b.PotentialPayout,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		SettledAt:       b.SettledAt,
	}
}

func toBetResponses(bets []*entities.Bet) []betResponse {
	out := make([]betResponse, 0, len(bets))
	for _, b := range bets {
		out = append(out, toBetResponse(b))
	}
	return out
}

type parlayLegResponse struct {
	ID        int64           `json:"id"`
	GameID    int64           `json:"game_id"`
	BetType   string          `json:"bet_type"`
	Pick      string          `json:"pick"`
	Odds      decimal.Decimal `json:"odds"`
	Status    string          `json:"status"`
	SettledAt *time.Time      `json:"settled_at,omitempty"`
}

type parlayResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"user_id"`
	Stake           decimal.Decimal     `json:"stake"`
	TotalOdds       decimal.Decimal     `json:"total_odds"`
	PotentialPayout decimal.Decimal     `json:"potential_payout"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	SettledAt       *time.Time          `json:"settled_at,omitempty"`
	Legs            []parlayLegResponse `json:"legs"`
}

func toParlayResponse(d *entities.ParlayDetail) parlayResponse {
	legs := make([]parlayLegResponse, 0, len(d.Legs))
	for _, leg := range d.Legs {
		legs = append(legs, parlayLegResponse{
			ID:        leg.ID,
			GameID:    leg.GameID,
			BetType:   string(leg.BetType),
			Pick:      string(leg.Pick),
			Odds:      leg.Odds,
			Status:    string(leg.Status),
			SettledAt: leg.SettledAt,
		})
	}
	return parlayResponse{
		ID:              d.Parlay.ID,
		UserID:          d.Parlay.UserID,
		Stake:           d.Parlay.Stake,
		TotalOdds:       d.Parlay.TotalOdds,
		PotentialPayout: d.Parlay.PotentialPayout,
		Status:          string(d.Parlay.Status),
		CreatedAt:       d.Parlay.CreatedAt,
		SettledAt:       d.Parlay.SettledAt,
		Legs:            legs,
	}
}

func toParlayResponses(details []*entities.ParlayDetail) []parlayResponse {
	out := make([]parlayResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toParlayResponse(d))
	}
	return out
}

type offerItemResponse struct {
	AssetType string `json:"asset_type"`
	AssetName string `json:"asset_name"`
	Quantity  int64  `json:"quantity"`
}

type offerResponse struct {
	ID             int64               `json:"id"`
	InitiatorID    int64               `json:"initiator_id"`
	CounterpartyID *int64              `json:"counterparty_id,omitempty"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	Offered        []offerItemResponse `json:"offered"`
	Requested      []offerItemResponse `json:"requested"`
}

func toOfferItemResponses(items []*entities.TradeOfferItem) []offerItemResponse {
	out := make([]offerItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, offerItemResponse{
			AssetType: string(item.AssetType),
			AssetName: item.AssetName,
			Quantity:  item.Quantity,
		})
	}
	return out
}

func toOfferResponse(d *entities.TradeOfferDetail) offerResponse {
	return offerResponse{
		ID:             d.Offer.ID,
		InitiatorID:    d.Offer.InitiatorID,
		CounterpartyID: d.Offer.CounterpartyID,
		Status:         string(d.Offer.Status),
		CreatedAt:      d.Offer.CreatedAt,
		Offered:        toOfferItemResponses(d.OfferedItems()),
		Requested:      toOfferItemResponses(d.RequestedItems()),
	}
}

func toOfferResponses(details []*entities.TradeOfferDetail) []offerResponse {
	out := make([]offerResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toOfferResponse(d))
	}
	return out
}

type transactionResponse struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Kind       string          `json:"kind"`
	AssetType  string          `json:"asset_type"`
	AssetName  string          `json:"asset_name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
	CostBasis  decimal.Decimal `json:"cost_basis"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toTransactionResponse(t *entities.AssetTransaction) transactionResponse {
	return transactionResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		Kind:       string(t.Kind),
		AssetType:  string(t.AssetType),
		AssetName:  t.AssetName,
		UnitPrice:  t.UnitPrice,
		Quantity:   t.Quantity,
		CostBasis:  t.CostBasis,
		ProfitLoss: t.ProfitLoss,
		CreatedAt:  t.CreatedAt,
	}
}

func toTransactionResponses(txns []*entities.AssetTransaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

type tradeResultResponse struct {
	Transaction transactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"new_balance"`
}

func toTradeResultResponse(result *entities.TradeResult) tradeResultResponse {
	return tradeResultResponse{
		Transaction: toTransactionResponse(result.Transaction),
		NewBalance:  result.NewBalance,
	}
}

type settlementResponse struct {
	Game            gameResponse `json:"game"`
	BetsResolved    int          `json:"bets_resolved"`
	BetsWon         int          `json:"bets_won"`
	BetsPushed      int          `json:"bets_pushed"`
	LegsResolved    int          `json:"legs_resolved"`
	ParlaysResolved int          `json:"parlays_resolved"`
	ParlaysWon      int          `json:"parlays_won"`
}

func toSettlementResponse(summary *entities.SettlementSummary) settlementResponse {
	return settlementResponse{
		Game:            toGameResponse(summary.Game),
		BetsResolved:    summary.BetsResolved,
		BetsWon:         summary.BetsWon,
		BetsPushed:      summary.BetsPushed,
		LegsResolved:    summary.LegsResolved,
		ParlaysResolved: summary.ParlaysResolved,
		ParlaysWon:      summary.ParlaysWon,
	}
}

type priceResponse struct {
	AssetType string          `json:"asset_type"`
	AssetName string          `json:"asset_name"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toPriceResponses(prices []*entities.AssetPrice) []priceResponse {
	out := make([]priceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, priceResponse{
			AssetType: string(p.AssetType),
			AssetName: p.AssetName,
			Price:     p.Price,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return out
}
