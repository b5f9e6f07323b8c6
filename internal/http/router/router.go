package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"textbook-logistics/internal/http/handlers"
	appmw "textbook-logistics/internal/http/middleware"
	"textbook-logistics/internal/http/middleware/ratelimit"
	"textbook-logistics/internal/logx"
)

const requestTimeout = 10 * time.Second

// New constructs a chi-based http.Handler with base middleware and routes.
// Websocket routes stay outside the request timeout.
func New(
	logger logx.Logger,
	h *handlers.Handlers,
	del *handlers.DeliveryHandler,
	pay *handlers.PaymentHandler,
	lv *handlers.LiveHandler,
	rl *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appmw.Identity)
	r.Use(appmw.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Get("/healthcheck", h.Healthcheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(h.NotFound))

	r.Get("/ws/deliveries/{id}", lv.Subscribe)
	r.Get("/ws/deliveries/{id}/rider", lv.Rider)

	// Daraja cannot send the user header
	r.With(middleware.Timeout(requestTimeout)).Post("/payments/mpesa/callback", pay.Callback)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(appmw.RequireUser)

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/", del.List)
			r.Post("/", del.Create)
			r.Post("/fee", del.Fee)
			r.Get("/{id}", del.Get)
			r.Patch("/{id}", del.Patch)
			r.Post("/{id}/cancel", del.Cancel)
			r.Post("/{id}/accept", del.Accept)
			r.Post("/{id}/complete", del.Complete)
			r.Post("/{id}/location", del.Location)
		})
		r.Post("/payments/mpesa", pay.Initiate)
	})

	return r
}
