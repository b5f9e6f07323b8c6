package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewFeeQuotesTotal counts fee computations by outcome (computed, cached, failed).
func NewFeeQuotesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fee_quotes_total",
		Help: "Total number of delivery fee quotes by outcome",
	}, []string{"outcome"})
}

// NewDeliveryTransitionsTotal counts applied delivery status transitions.
func NewDeliveryTransitionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_transitions_total",
		Help: "Total number of applied delivery status transitions",
	}, []string{"from", "to"})
}

// NewLiveClients returns a gauge of connected live channel clients.
func NewLiveClients() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "live_clients",
		Help: "Number of connected live position channel clients",
	})
}

// NewPaymentsTotal counts payment events by stage (initiated, confirmed, failed).
func NewPaymentsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_total",
		Help: "Total number of payment events by stage",
	}, []string{"stage"})
}
