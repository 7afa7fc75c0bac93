package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/payment-reconciler/internal/api/handlers"
	"github.com/baharkarakas/payment-reconciler/internal/api/httpx"
	"github.com/baharkarakas/payment-reconciler/internal/auth"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/middleware"
	"github.com/baharkarakas/payment-reconciler/internal/services"
)

// Pinger reports datastore reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Orders    *services.OrderService
	Transfers *services.TransferService
	Tokens    *auth.TokenManager // nil leaves /api/v1 unauthenticated
	DB        Pinger             // nil skips the datastore check
	RateRPS   int
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	}))

	r.Get("/health", health(d.DB))
	r.Handle("/metrics", metrics.Handler())

	orders := handlers.NewOrderHandler(d.Orders)
	transfers := handlers.NewTransferHandler(d.Transfers)

	r.Route("/api/v1", func(r chi.Router) {
		if d.Tokens != nil {
			r.Use(middleware.Auth(d.Tokens))
		}
		r.Post("/orders", orders.Create)
		r.Get("/orders/{order_id}", orders.Get)
		r.Get("/transfers", transfers.List)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "route not found", nil)
	})
	return r
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": err.Error()})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
