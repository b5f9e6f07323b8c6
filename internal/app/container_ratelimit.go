package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"textbook-logistics/internal/config"
	"textbook-logistics/internal/http/middleware/ratelimit"
	"textbook-logistics/internal/logx"
)

func newRateLimitPolicy(cfg *config.Config, clock ratelimit.Clock) ratelimit.Policy {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.Policy{}
	}
	keyed := func(rate float64, burst int) ratelimit.Limiter {
		return ratelimit.NewKeyedLimiter(clock, ratelimit.Config{
			Rate:       rate,
			Burst:      burst,
			TTL:        rl.TTL,
			MaxBuckets: rl.MaxBuckets,
		})
	}
	return ratelimit.Policy{
		ratelimit.ClassDefault:  keyed(rl.Rate, rl.Burst),
		ratelimit.ClassFee:      keyed(rl.FeeRate, rl.FeeBurst),
		ratelimit.ClassLocation: keyed(rl.LocationRate, rl.LocationBurst),
	}
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Policy  ratelimit.Policy
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Policy)
}
