package observability

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"playbook/ledger-service/config"
)

// MetricsProvider manages OpenTelemetry metrics for the ledger service
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	tradesExecutedCounter      metric.Int64Counter
	betsPlacedCounter          metric.Int64Counter
	betsResolvedCounter        metric.Int64Counter
	parlaysCreatedCounter      metric.Int64Counter
	gamesSettledCounter        metric.Int64Counter
	settlementDurationHist     metric.Float64Histogram
	tradeOffersAcceptedCounter metric.Int64Counter
	eventsPublishedCounter     metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Println("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Println("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	// Create resource with service information
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Create appropriate exporter based on config
	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Println("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.Printf("Using OTLP metric exporter: %s", mp.config.OTelOTLPEndpoint)

	case "none":
		log.Println("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	// Create meter provider with periodic reader
	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)

	// Set as global meter provider
	otel.SetMeterProvider(mp.meterProvider)

	// Get meter for creating instruments
	mp.meter = mp.meterProvider.Meter("ledger-service")

	// Create metric instruments
	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Println("Metrics provider initialized successfully")
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.tradesExecutedCounter, err = mp.meter.Int64Counter(
		TradesExecutedTotal,
		metric.WithDescription("Total number of trades executed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create trades executed counter: %w", err)
	}

	mp.betsPlacedCounter, err = mp.meter.Int64Counter(
		BetsPlacedTotal,
		metric.WithDescription("Total number of bets placed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create bets placed counter: %w", err)
	}

	mp.betsResolvedCounter, err = mp.meter.Int64Counter(
		BetsResolvedTotal,
		metric.WithDescription("Total number of bets resolved at settlement"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create bets resolved counter: %w", err)
	}

	mp.parlaysCreatedCounter, err = mp.meter.Int64Counter(
		ParlaysCreatedTotal,
		metric.WithDescription("Total number of parlays created"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parlays created counter: %w", err)
	}

	mp.gamesSettledCounter, err = mp.meter.Int64Counter(
		GamesSettledTotal,
		metric.WithDescription("Total number of games settled"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create games settled counter: %w", err)
	}

	mp.settlementDurationHist, err = mp.meter.Float64Histogram(
		SettlementDuration,
		metric.WithDescription("Duration of settlement sweeps in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create settlement duration histogram: %w", err)
	}

	mp.tradeOffersAcceptedCounter, err = mp.meter.Int64Counter(
		TradeOffersAcceptedTotal,
		metric.WithDescription("Total number of trade offers accepted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create trade offers accepted counter: %w", err)
	}

	mp.eventsPublishedCounter, err = mp.meter.Int64Counter(
		EventsPublishedTotal,
		metric.WithDescription("Total number of domain events published"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create events published counter: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordTradeExecuted records a completed buy or sell
func (mp *MetricsProvider) RecordTradeExecuted(side string) {
	if !mp.isEnabled() {
		return
	}

	mp.tradesExecutedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelSide, side),
		),
	)
}

// RecordBetPlaced records a bet being placed
func (mp *MetricsProvider) RecordBetPlaced(betType string) {
	if !mp.isEnabled() {
		return
	}

	mp.betsPlacedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelBetType, betType),
		),
	)
}

// RecordBetsResolved records bets reaching a terminal status at settlement
func (mp *MetricsProvider) RecordBetsResolved(count int64) {
	if !mp.isEnabled() || count == 0 {
		return
	}

	mp.betsResolvedCounter.Add(context.Background(), count)
}

// RecordParlayCreated records a parlay being created
func (mp *MetricsProvider) RecordParlayCreated(legCount int) {
	if !mp.isEnabled() {
		return
	}

	mp.parlaysCreatedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.Int("leg_count", legCount),
		),
	)
}

// RecordGameSettled records a settlement sweep with its duration
func (mp *MetricsProvider) RecordGameSettled(duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	mp.gamesSettledCounter.Add(context.Background(), 1)
	mp.settlementDurationHist.Record(context.Background(), duration.Seconds())
}

// RecordTradeOfferAccepted records an accepted trade offer
func (mp *MetricsProvider) RecordTradeOfferAccepted() {
	if !mp.isEnabled() {
		return
	}

	mp.tradeOffersAcceptedCounter.Add(context.Background(), 1)
}

// RecordEventPublished records a domain event being published
func (mp *MetricsProvider) RecordEventPublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.eventsPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
		),
	)
}

// MeasureSettlement returns a function that records the settlement sweep
// duration when invoked
// Usage:
//
//	defer mp.MeasureSettlement()()
func (mp *MetricsProvider) MeasureSettlement() func() {
	start := time.Now()
	return func() {
		mp.RecordGameSettled(time.Since(start))
	}
}

// isEnabled checks if metrics are enabled and initialized
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.config.OTelEnabled && mp.config.OTelExporterType != "none"
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider. Safe to call before
// initialization; recording on a nil provider is a no-op.
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
