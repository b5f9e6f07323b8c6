package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"textbook-logistics/internal/config"
	"textbook-logistics/internal/http/handlers"
	"textbook-logistics/internal/http/pprofserver"
	"textbook-logistics/internal/http/router"
	"textbook-logistics/internal/live"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/repository"
	"textbook-logistics/internal/service/delivery"
	"textbook-logistics/internal/service/fee"
	"textbook-logistics/internal/service/payment"
)

const serviceTimeout = 3 * time.Second

type deliveryServiceIn struct {
	dig.In
	Config      *config.Config
	Logger      logx.Logger
	Repo        *repository.DeliveryRepo
	Fees        *fee.Calculator
	Hub         *live.Hub
	Notifier    delivery.RiderNotifier
	Transitions *prometheus.CounterVec `name:"delivery_transitions_total"`
}

func newDeliveryService(in deliveryServiceIn) *delivery.Service {
	return delivery.NewService(in.Repo, in.Fees, in.Logger, delivery.Config{
		Publisher:       in.Hub,
		Notifier:        in.Notifier,
		Transitions:     in.Transitions,
		PersistInterval: in.Config.Tracking.PositionPersistInterval,
		Timeout:         serviceTimeout,
	})
}

type paymentServiceIn struct {
	dig.In
	Logger     logx.Logger
	Deliveries *repository.DeliveryRepo
	Attempts   *repository.PaymentRepo
	Gateway    payment.Gateway
	Paid       *delivery.Service
	Payments   *prometheus.CounterVec `name:"payments_total"`
}

func newPaymentService(in paymentServiceIn) *payment.Service {
	return payment.NewService(in.Deliveries, in.Attempts, in.Gateway, in.Paid, in.Payments, 15*time.Second, in.Logger)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		newDeliveryService,
		newPaymentService,
		func(svc *payment.Service) *payment.Processor {
			return payment.NewProcessor(svc)
		},
	)
}

type healthIn struct {
	dig.In
	Logger logx.Logger
	Pool   *pgxpool.Pool `optional:"true"`
	Redis  *redis.Client `optional:"true"`
}

func newBaseHandlers(in healthIn) *handlers.Handlers {
	var checks []handlers.HealthCheck
	if in.Pool != nil {
		checks = append(checks, handlers.HealthCheck{Name: "postgres", Check: in.Pool.Ping})
	}
	if in.Redis != nil {
		rdb := in.Redis
		checks = append(checks, handlers.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return handlers.New(in.Logger, checks...)
}

type pprofOut struct {
	dig.Out
	Server *http.Server `name:"pprof_server"`
}

type pprofIn struct {
	dig.In
	Config  *config.Config
	Hub     *live.Hub
	Routing fee.Provider
}

type breakerState interface {
	State() string
}

func newPprofServer(in pprofIn) pprofOut {
	if !in.Config.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: &http.Server{
		Addr: in.Config.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User:   in.Config.Pprof.User,
			Pass:   in.Config.Pprof.Pass,
			Status: debugStatus(in.Hub, in.Routing),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

type statusDoc struct {
	RoutingBreaker string      `json:"routing_breaker,omitempty"`
	Live           *live.Stats `json:"live,omitempty"`
}

func debugStatus(hub *live.Hub, routing fee.Provider) func() any {
	return func() any {
		var doc statusDoc
		if b, ok := routing.(breakerState); ok {
			doc.RoutingBreaker = b.State()
		}
		if hub != nil {
			st := hub.Stats()
			doc.Live = &st
		}
		return doc
	}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		newBaseHandlers,
		handlers.NewDeliveryUsecase,
		handlers.NewDeliveryHandler,
		handlers.NewPaymentUsecase,
		handlers.NewPaymentHandler,
		func(logger logx.Logger, hub *live.Hub, svc *delivery.Service) *handlers.LiveHandler {
			return handlers.NewLiveHandler(logger, hub, svc)
		},
		newRateLimitClock,
		newRateLimitPolicy,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
		newPprofServer,
	)
}
