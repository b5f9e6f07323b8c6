package ratelimit

import (
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	identity "textbook-logistics/internal/http/middleware"
	"textbook-logistics/internal/logx"
)

// Policy holds one limiter per class. ClassDefault covers classes without their own entry.
type Policy map[Class]Limiter

func (p Policy) limiter(c Class) Limiter {
	if l, ok := p[c]; ok && l != nil {
		return l
	}
	if l, ok := p[ClassDefault]; ok && l != nil {
		return l
	}
	return NopLimiter{}
}

// Middleware rejects requests over their class budget with 429.
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter
	policy  Policy
}

// New creates a new Middleware
func New(logger logx.Logger, counter prometheus.Counter, policy Policy) *Middleware {
	return &Middleware{
		logger:  logger,
		counter: counter,
		policy:  policy,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := Classify(r)
			ip := clientIP(r)
			subject := "ip:" + ip
			if uid, ok := identity.UserFrom(r.Context()); ok {
				subject = "user:" + strconv.FormatInt(int64(uid), 10)
			}

			if m.policy.limiter(class).Allow(subject) {
				next.ServeHTTP(w, r)
				return
			}

			if m.counter != nil {
				m.counter.Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("class", string(class)),
				logx.String("key", subject),
				logx.String("ip", ip),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
				m.logger.Debug("rate limit response write failed", logx.Err(err))
			}
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
