package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"hkidcheck/internal/platform/middleware"
	dErrors "hkidcheck/pkg/domain-errors"
	"hkidcheck/pkg/platform/httputil"
	"hkidcheck/pkg/platform/middleware/metadata"
	"hkidcheck/pkg/platform/middleware/requestid"
	"hkidcheck/pkg/platform/middleware/requesttime"
)

// Module is an API module that mounts its own routes under /v1.
type Module interface {
	Register(r chi.Router)
}

// Config holds what the router needs beyond the modules themselves.
type Config struct {
	Logger         *slog.Logger
	MetricsHandler http.Handler
	// ClientIP resolves the client address; nil trusts only the TCP peer.
	ClientIP *metadata.Resolver
	// APIMiddleware applies to /v1 only, so health checks and scrapes are
	// never throttled.
	APIMiddleware chi.Middlewares
}

// NewRouter wires the shared middleware chain, the operational endpoints and
// every module's routes.
func NewRouter(cfg Config, modules ...Module) http.Handler {
	resolver := cfg.ClientIP
	if resolver == nil {
		resolver = metadata.NewResolver(nil)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(resolver.ClientMetadata)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(cfg.APIMiddleware...)
		for _, m := range modules {
			m.Register(r)
		}
	})
	return r
}
