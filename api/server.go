// Package api exposes the ledger over HTTP. Handlers decode JSON, delegate
// to the application layer, and translate domain errors into status codes;
// no business rules live here.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"playbook/ledger-service/application"
	"playbook/ledger-service/infrastructure/ws"
)

// Server routes HTTP requests to the application layer
type Server struct {
	accounts application.AccountOperations
	trading  application.TradingOperations
	games    application.GameOperations
	wagers   application.WagerOperations
	offers   application.OfferOperations
	prices   application.PriceOperations
	hub      *ws.Hub
}

// NewServer creates a server backed by the application layer. The hub is
// optional; pass nil to disable the websocket endpoint.
func NewServer(app *application.App, hub *ws.Hub) *Server {
	return &Server{
		accounts: app,
		trading:  app,
		games:    app,
		wagers:   app,
		offers:   app,
		prices:   app,
		hub:      hub,
	}
}

// Router assembles the middleware stack and route tree
func (s *Server) Router(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		if s.hub != nil {
			r.Get("/ws", s.hub.HandleWS)
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleCreateUser)
			r.Get("/", s.handleListUsers)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", s.handleGetUser)
				r.Get("/portfolio", s.handleGetPortfolio)
				r.Get("/performance", s.handleGetPerformance)
				r.Get("/transactions", s.handleListTransactions)
				r.Get("/bets", s.handleListUserBets)
				r.Get("/parlays", s.handleListUserParlays)
				r.Get("/offers", s.handleListUserOffers)
			})
		})

		r.Post("/trades", s.handleExecuteTrade)

		r.Route("/games", func(r chi.Router) {
			r.Post("/", s.handleCreateGame)
			r.Get("/", s.handleListGames)
			r.Get("/{gameID}", s.handleGetGame)
			r.Post("/{gameID}/settle", s.handleSettleGame)
		})

		r.Route("/bets", func(r chi.Router) {
			r.Post("/", s.handlePlaceBet)
			r.Get("/{betID}", s.handleGetBet)
		})

		r.Route("/parlays", func(r chi.Router) {
			r.Post("/", s.handleCreateParlay)
			r.Get("/{parlayID}", s.handleGetParlay)
		})

		r.Route("/offers", func(r chi.Router) {
			r.Post("/", s.handleCreateOffer)
			r.Get("/{offerID}", s.handleGetOffer)
			r.Post("/{offerID}/accept", s.handleAcceptOffer)
			r.Post("/{offerID}/reject", s.handleRejectOffer)
			r.Post("/{offerID}/cancel", s.handleCancelOffer)
		})

		r.Route("/prices", func(r chi.Router) {
			r.Get("/", s.handleListPrices)
			r.Put("/", s.handleUpsertPrice)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "ledger-service",
	})
}
