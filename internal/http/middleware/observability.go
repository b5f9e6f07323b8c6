package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"textbook-logistics/internal/logx"
)

const unmatchedRoute = "unmatched"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests. Live channel sessions are not observed.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	liveSessionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "live_session_duration_seconds",
			Help:    "Lifetime of live channel connections.",
			Buckets: []float64{1, 10, 60, 300, 900, 1800, 3600},
		},
		[]string{"path"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, liveSessionDuration)
}

// Observability records request metrics and one log line per request.
// Websocket upgrades are measured as live sessions.
func Observability(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			path := routeLabel(r)
			code := ww.Status()
			upgrade := isUpgrade(r)
			if code == 0 {
				code = http.StatusOK
				if upgrade {
					code = http.StatusSwitchingProtocols
				}
			}
			status := strconv.Itoa(code)

			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			if upgrade && code == http.StatusSwitchingProtocols {
				liveSessionDuration.WithLabelValues(path).Observe(elapsed.Seconds())
			} else {
				httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(elapsed.Seconds())
			}

			fields := []logx.Field{
				logx.String("req_id", chimw.GetReqID(r.Context())),
				logx.String("method", r.Method),
				logx.String("path", path),
				logx.Int("status", code),
				logx.Duration("duration", elapsed),
			}
			if uid, ok := UserFrom(r.Context()); ok {
				fields = append(fields, logx.Int64("user_id", int64(uid)))
			}
			switch {
			case code >= http.StatusInternalServerError:
				logger.Error("http request", fields...)
			case upgrade:
				logger.Info("live session ended", fields...)
			default:
				logger.Info("http request", fields...)
			}
		})
	}
}

// routeLabel keeps metric cardinality bounded: raw paths never become labels.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
