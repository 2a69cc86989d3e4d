package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SwapAPI is everything the router needs from the swap service.
type SwapAPI interface {
	SwapProposer
	SwapReader
	SwapAccepter
	SwapRejecter
	SwapCompleter
	SwapCanceller
}

// RouterOptions carries cross-cutting wiring for the HTTP surface.
type RouterOptions struct {
	JWTSecret   []byte
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter builds the routing table: public liveness and metrics, and the
// authenticated swap and redemption endpoints.
func NewRouter(swaps SwapAPI, redemptions ItemRedeemer, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(opts.Logger))
	r.Use(Metrics)
	r.Use(CORS(opts.CORSOrigins))

	r.Get("/health", HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(opts.JWTSecret))

		r.Route("/swaps", func(r chi.Router) {
			r.Post("/", HandleProposeSwap(swaps))
			r.Get("/", HandleListSwaps(swaps))
			r.Get("/{id}", HandleGetSwap(swaps))
			r.Post("/{id}/accept", HandleAcceptSwap(swaps))
			r.Post("/{id}/reject", HandleRejectSwap(swaps))
			r.Post("/{id}/complete", HandleCompleteSwap(swaps))
			r.Post("/{id}/cancel", HandleCancelSwap(swaps))
		})

		r.Post("/redemptions", HandleRedeemItem(redemptions))
	})

	r.NotFound(NotFoundHandler())
	r.MethodNotAllowed(MethodNotAllowedHandler())

	return r
}
