// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codr1/pickleleague/internal/api"
	leagueapi "github.com/codr1/pickleleague/internal/api/leagues"
	"github.com/codr1/pickleleague/internal/config"
	"github.com/codr1/pickleleague/internal/leagues"
	"github.com/codr1/pickleleague/internal/ratelimit"
)

func newServer(cfg *config.Config, engine *leagues.Engine, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	leagueapi.InitHandlers(engine, limiter, cfg.RateLimit.TrustForwardedHeader)
	registerRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	leagueapi.RegisterRoutes(mux)
}
