package pprofserver

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
)

const realm = "debug"

// Config stores debug server settings.
type Config struct {
	User string
	Pass string
	// Status, when set, is served as JSON at /status.
	Status func() any
}

// Handler serves pprof under /debug and the optional status document.
// Loopback clients skip basic auth.
func Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(localOrBasicAuth(cfg))
	r.Mount("/debug", chimw.Profiler())
	if cfg.Status != nil {
		r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(cfg.Status())
		})
	}
	return r
}

func localOrBasicAuth(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		remote := http.HandlerFunc(deny)
		if cfg.User != "" && cfg.Pass != "" {
			remote = chimw.BasicAuth(realm, map[string]string{cfg.User: cfg.Pass})(next).ServeHTTP
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) {
				next.ServeHTTP(w, r)
				return
			}
			remote(w, r)
		})
	}
}

func deny(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
