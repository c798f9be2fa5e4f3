package observability

// Metric name prefixes
const (
	MetricPrefix = "ledger_service"
)

// Metric names
const (
	// Trading metrics
	TradesExecutedTotal = MetricPrefix + ".trades.executed_total"

	// Wagering metrics
	BetsPlacedTotal     = MetricPrefix + ".bets.placed_total"
	BetsResolvedTotal   = MetricPrefix + ".bets.resolved_total"
	ParlaysCreatedTotal = MetricPrefix + ".parlays.created_total"

	// Settlement metrics
	GamesSettledTotal  = MetricPrefix + ".settlement.games_total"
	SettlementDuration = MetricPrefix + ".settlement.sweep_duration"

	// Trade offer metrics
	TradeOffersAcceptedTotal = MetricPrefix + ".trade_offers.accepted_total"

	// Event bus metrics
	EventsPublishedTotal = MetricPrefix + ".events.published_total"
)

// Label keys
const (
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelSide      = "side"
	LabelStatus    = "status"
	LabelBetType   = "bet_type"
)
