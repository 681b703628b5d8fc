package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/altanbooks/altanbooks/internal/approval"
	"github.com/altanbooks/altanbooks/internal/ebarimt"
	financehttp "github.com/altanbooks/altanbooks/internal/finance/http"
	"github.com/altanbooks/altanbooks/internal/observability"
	"github.com/altanbooks/altanbooks/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	ReportHandler   *financehttp.Handler
	ApprovalHandler *approval.Handler
	EbarimtHandler  *ebarimt.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults. Health and
// metrics stay outside the identity gate; all report operations sit behind it.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(IdentityMiddleware(params.Logger))
		if params.ReportHandler != nil {
			params.ReportHandler.MountRoutes(r)
		}
		if params.ApprovalHandler != nil {
			params.ApprovalHandler.MountRoutes(r)
		}
		if params.EbarimtHandler != nil {
			params.EbarimtHandler.MountRoutes(r)
		}
	})

	return r
}
