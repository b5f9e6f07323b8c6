package handlers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"textbook-logistics/internal/logx"
)

const checkTimeout = 2 * time.Second

// HealthCheck checks one backing dependency, such as Postgres or Redis.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handlers serves the service-level endpoints: ping, health and 404s.
type Handlers struct {
	Logger logx.Logger
	checks []HealthCheck
}

// New creates Handlers. Checks with a nil Check func are ignored.
func New(logger logx.Logger, checks ...HealthCheck) *Handlers {
	h := &Handlers{Logger: logger}
	for _, p := range checks {
		if p.Check != nil {
			h.checks = append(h.checks, p)
		}
	}
	return h
}

// Ping handles GET /ping.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck: 204 when every check passes, 503 otherwise.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.check(r.Context()); !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthcheck handles GET /healthcheck and reports each dependency.
func (h *Handlers) Healthcheck(w http.ResponseWriter, r *http.Request) {
	checks, ok := h.check(r.Context())
	if !ok {
		writeJSON(h.Logger, w, r, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Checks: checks})
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, healthResponse{Status: "ok", Checks: checks})
}

// NotFound returns a JSON 404 error for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
}

func (h *Handlers) check(ctx context.Context) (map[string]string, bool) {
	if len(h.checks) == 0 {
		return nil, true
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	results := make([]error, len(h.checks))
	var g errgroup.Group
	for i, p := range h.checks {
		g.Go(func() error {
			results[i] = p.Check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]string, len(h.checks))
	ok := true
	for i, p := range h.checks {
		if err := results[i]; err != nil {
			ok = false
			out[p.Name] = "down"
			if h.Logger != nil {
				h.Logger.Warn("health check failed", logx.String("dependency", p.Name), logx.Err(err))
			}
			continue
		}
		out[p.Name] = "ok"
	}
	return out, ok
}
