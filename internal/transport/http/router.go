package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"tradeverify/internal/platform/metrics"
	"tradeverify/internal/platform/middleware"
	"tradeverify/pkg/platform/httputil"
	"tradeverify/pkg/platform/middleware/auth"
	"tradeverify/pkg/platform/middleware/metadata"
	"tradeverify/pkg/platform/middleware/requesttime"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestTimeout = 30 * time.Second

// RouteRegistrar mounts a module's endpoints.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// ReadinessCheck reports whether a backing dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// Deps are the collaborators the router mounts. Auth and Metrics are
// optional: a nil Auth leaves the API open.
type Deps struct {
	API      RouteRegistrar
	Auth     auth.SubjectValidator
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Ready    map[string]ReadinessCheck
	Logger   *slog.Logger
}

// NewRouter wires the probes, the metrics endpoint and the API routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(d.Ready, d.Logger))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(api chi.Router) {
		api.Use(middleware.Logger(d.Logger))
		api.Use(chimw.Timeout(requestTimeout))
		api.Use(middleware.ContentTypeJSON)
		if d.Auth != nil {
			api.Use(auth.RequireAuth(d.Auth, d.Logger))
		}
		d.API.Register(api)
	})
	return r
}

func readiness(checks map[string]ReadinessCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "readiness check failed", "dependency", name, "error", err)
				body[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, body)
	}
}
