package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/unrolled/secure"

	"github.com/altanbooks/altanbooks/internal/observability"
	"github.com/altanbooks/altanbooks/internal/shared"
)

// IdentityHeader carries the authenticated caller identity established by the
// host in front of this service. The service trusts it as a precondition and
// performs no authentication of its own.
const IdentityHeader = "X-User-ID"

const httprateDefaultWindow = time.Minute

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics
}

// MiddlewareStack installs the API middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		ContentTypeNosniff: true,
		FrameDeny:          true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.Config != nil && cfg.Config.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	allowedOrigins := []string{"*"}
	rateLimitRequests := 100
	rateLimitWindow := httprateDefaultWindow
	if cfg.Config != nil {
		if len(cfg.Config.CORSAllowedOrigins) > 0 {
			allowedOrigins = cfg.Config.CORSAllowedOrigins
		}
		if cfg.Config.RateLimitRequests > 0 {
			rateLimitRequests = cfg.Config.RateLimitRequests
		}
		if cfg.Config.RateLimitWindow > 0 {
			rateLimitWindow = cfg.Config.RateLimitWindow
		}
	}

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", IdentityHeader},
		MaxAge:         300,
	})

	stack := []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		secureMiddleware.Handler,
		corsMiddleware,
		httprate.LimitByIP(rateLimitRequests, rateLimitWindow),
		chimw.Recoverer,
	}
	if cfg.Metrics != nil {
		stack = append(stack, cfg.Metrics.Middleware)
	}
	return stack
}

// IdentityMiddleware extracts the host-supplied caller identity. Requests
// without a valid identity never reach API handlers.
func IdentityMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(IdentityHeader))
			if raw == "" {
				shared.RespondError(w, logger, shared.ErrUnauthorized)
				return
			}
			userID, err := uuid.Parse(raw)
			if err != nil {
				shared.RespondError(w, logger, shared.ErrUnauthorized)
				return
			}
			ctx := shared.ContextWithIdentity(r.Context(), shared.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
