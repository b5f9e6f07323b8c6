package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"textbook-logistics/internal/config"
	"textbook-logistics/internal/gateway/mpesa"
	"textbook-logistics/internal/gateway/routing"
	"textbook-logistics/internal/live"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/notify"
	"textbook-logistics/internal/service/delivery"
	"textbook-logistics/internal/service/fee"
	"textbook-logistics/internal/service/payment"
)

func registerInfra(container *dig.Container) error {
	return provideAll(container,
		newRedisClient,
		newQuoteCache,
		newRoutingProvider,
		newFeeCalculator,
		newBroker,
		newHub,
		newRiderNotifier,
		newPaymentGateway,
	)
}

// newRedisClient returns nil when Redis is not configured.
func newRedisClient(ctx context.Context, cfg *config.Config, logger logx.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("redis disabled: in-memory live broker, no quote cache")
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func newQuoteCache(rdb *redis.Client) fee.QuoteCache {
	if rdb == nil {
		return fee.NopCache{}
	}
	return fee.NewRedisCache(rdb)
}

type routingIn struct {
	dig.In
	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

// newRoutingProvider stacks google maps, retries and the circuit breaker.
func newRoutingProvider(in routingIn) (fee.Provider, error) {
	m := in.Config.Maps
	if m.APIKey == "" {
		return nil, errors.New("GOOGLE_MAPS_API_KEY is required")
	}
	gm, err := routing.NewGoogleMaps(m.APIKey, m.Region)
	if err != nil {
		return nil, err
	}
	retrying := routing.NewRetryingProvider(gm, in.Logger, in.Retries, routing.RetryConfig{
		MaxAttempts: m.MaxAttempts,
		BaseDelay:   m.BaseDelay,
		MaxDelay:    m.MaxDelay,
	})
	return routing.NewBreakerProvider(retrying, in.Logger, routing.BreakerConfig{
		FailureThreshold: m.BreakerFailures,
		Timeout:          m.BreakerTimeout,
	}), nil
}

type feeIn struct {
	dig.In
	Config   *config.Config
	Logger   logx.Logger
	Provider fee.Provider
	Cache    fee.QuoteCache
	Quotes   *prometheus.CounterVec `name:"fee_quotes_total"`
}

func newFeeCalculator(in feeIn) *fee.Calculator {
	return fee.NewCalculator(in.Provider, in.Cache, in.Config.Redis.QuoteCacheTTL, in.Logger, in.Quotes, 10*time.Second)
}

func newBroker(rdb *redis.Client, logger logx.Logger) live.Broker {
	if rdb == nil {
		return live.NewMemoryBroker()
	}
	return live.NewRedisBroker(rdb, logger)
}

type hubIn struct {
	dig.In
	Broker  live.Broker
	Logger  logx.Logger
	Clients prometheus.Gauge `name:"live_clients"`
}

func newHub(in hubIn) *live.Hub {
	return live.NewHub(in.Broker, in.Clients, in.Logger)
}

func newRiderNotifier(ctx context.Context, cfg *config.Config, logger logx.Logger) (delivery.RiderNotifier, error) {
	if cfg.Firebase.CredentialsFile == "" {
		logger.Info("firebase disabled: rider notifications off")
		return notify.Nop{}, nil
	}
	n, err := notify.NewFCM(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.RiderTopic, logger)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func newPaymentGateway(cfg *config.Config) payment.Gateway {
	m := cfg.MPesa
	return mpesa.NewClient(mpesa.Config{
		BaseURL:        m.BaseURL,
		ConsumerKey:    m.ConsumerKey,
		ConsumerSecret: m.ConsumerSecret,
		ShortCode:      m.ShortCode,
		PassKey:        m.PassKey,
		CallbackURL:    m.CallbackURL,
	}, &http.Client{Timeout: 15 * time.Second})
}
