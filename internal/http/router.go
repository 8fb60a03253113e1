package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/auth"
	"github.com/redmonkez12/fintrack-api/internal/config"
	"github.com/redmonkez12/fintrack-api/internal/httputil"
	"github.com/redmonkez12/fintrack-api/internal/logging"
	"github.com/redmonkez12/fintrack-api/internal/metrics"
	"github.com/redmonkez12/fintrack-api/internal/record"
	"github.com/redmonkez12/fintrack-api/internal/validation"
)

const (
	purposeLogin    = "login"
	purposeRegister = "register"
)

// Dependencies are the handlers and services the router mounts
type Dependencies struct {
	AuthHandler    *auth.Handler
	AuthMiddleware *auth.Middleware
	RecordHandler  *record.Handler

	// RateLimiter may be nil to disable rate limiting
	RateLimiter  RateLimiter
	Metrics      *metrics.Metrics
	HealthChecks map[string]HealthCheck
	Logger       *logging.Logger
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Dependencies) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	proxies, err := cfg.Server.ProxyPrefixes()
	if err != nil {
		logger.Error("ignoring trusted proxies", "error", err.Error())
	}
	r.Use(RealIP(proxies))
	r.Use(logging.RequestLogger(logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(middleware.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, r, apperror.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondFailure(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "Method not allowed")
	})

	// Public routes
	r.Get("/health", healthHandler(deps.HealthChecks))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	} else {
		logger.Info("swagger UI disabled (production mode)")
	}

	var recorder RateLimitRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(
				RateLimit(deps.RateLimiter, purposeLogin, recorder),
				validation.Body[auth.LoginRequest](),
			).Post("/login", deps.AuthHandler.Login)

			r.With(
				RateLimit(deps.RateLimiter, purposeRegister, recorder),
				validation.Body[auth.RegisterRequest](),
			).Post("/register", deps.AuthHandler.Register)

			// Authentication runs before body validation
			r.Route("/me", func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Get("/", deps.AuthHandler.Me)
				r.With(validation.Body[auth.UpdateProfileRequest]()).Put("/", deps.AuthHandler.UpdateMe)
				r.Delete("/", deps.AuthHandler.DeleteMe)
			})
		})

		r.Route("/record", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/", deps.RecordHandler.List)
			r.With(validation.Body[record.CreateRecordRequest]()).Post("/", deps.RecordHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(validation.Params[record.RecordIDParams]())
				r.Get("/", deps.RecordHandler.Get)
				r.With(validation.Body[record.UpdateRecordRequest]()).Put("/", deps.RecordHandler.Update)
				r.Delete("/", deps.RecordHandler.Delete)
			})
		})
	})

	return r
}
