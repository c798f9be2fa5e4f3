package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"playbook/ledger-service/api"
	"playbook/ledger-service/application"
	"playbook/ledger-service/config"
	"playbook/ledger-service/database"
	"playbook/ledger-service/domain/interfaces"
	"playbook/ledger-service/infrastructure"
	"playbook/ledger-service/infrastructure/observability"
	"playbook/ledger-service/infrastructure/ws"
	"playbook/ledger-service/repository"
)

// Run initializes and starts the ledger service
func Run(ctx context.Context) error {
	cfg := config.Get()
	configureLogging(cfg)

	log.Info("Starting ledger service...")

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	var eventPublisher interfaces.EventPublisher = infrastructure.NewNoopEventPublisher()
	if cfg.NATSServers != "" {
		log.Info("Connecting to NATS...")
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()

		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsureDomainEventStream(); err != nil {
			return fmt.Errorf("failed to ensure domain event stream: %w", err)
		}
		eventPublisher = natsPublisher
		log.Info("NATS event stream ready")
	} else {
		log.Warn("NATS_SERVERS not set, domain events will not be published")
	}

	// Metrics are best-effort: a failed init leaves the no-op provider
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		log.WithError(err).Warn("Failed to initialize metrics")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
				log.WithError(err).Warn("Failed to shut down metrics")
			}
		}()
	}

	// Price reads go through Redis when configured
	var prices interfaces.AssetPriceRepository = repository.NewAssetPriceRepository(db)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opt)
		defer rdb.Close()
		prices = infrastructure.NewCachedPriceSource(prices, rdb, 30*time.Second)
		log.Info("Redis price cache enabled")
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher)

	// Settlement and trade events fan out to websocket clients in-process
	hub := ws.NewHub()
	go hub.Run()
	for _, eventType := range ws.ForwardedEventTypes {
		uowFactory.RegisterLocalHandler(eventType, hub.HandleEvent)
	}

	app := application.NewApp(uowFactory, prices)
	server := api.NewServer(app, hub)

	srv := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      server.Router(cfg.CORSAllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPListenAddr).Info("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down ledger service...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
			srv.Close()
		}
	}

	log.Info("Shutdown complete")
	return nil
}

// configureLogging applies the configured level and format
func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
