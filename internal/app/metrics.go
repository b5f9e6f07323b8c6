package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"textbook-logistics/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter     `name:"gateway_retries_total"`
	FeeQuotesTotal         *prometheus.CounterVec `name:"fee_quotes_total"`
	TransitionsTotal       *prometheus.CounterVec `name:"delivery_transitions_total"`
	PaymentsTotal          *prometheus.CounterVec `name:"payments_total"`
	LiveClients            prometheus.Gauge       `name:"live_clients"`
}

// register returns the already registered collector when c is a duplicate.
func register[T prometheus.Collector](c T, name string) (T, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func provideMetrics() (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = register(metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total"); err != nil {
		return metricsOut{}, err
	}
	if out.GatewayRetriesTotal, err = register(metrics.NewGatewayRetriesTotal(), "gateway_retries_total"); err != nil {
		return metricsOut{}, err
	}
	if out.FeeQuotesTotal, err = register(metrics.NewFeeQuotesTotal(), "fee_quotes_total"); err != nil {
		return metricsOut{}, err
	}
	if out.TransitionsTotal, err = register(metrics.NewDeliveryTransitionsTotal(), "delivery_transitions_total"); err != nil {
		return metricsOut{}, err
	}
	if out.PaymentsTotal, err = register(metrics.NewPaymentsTotal(), "payments_total"); err != nil {
		return metricsOut{}, err
	}
	if out.LiveClients, err = register(metrics.NewLiveClients(), "live_clients"); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}
