package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanisbelkaid/intervia-backend/api/controllers"
	"github.com/yanisbelkaid/intervia-backend/api/middleware"
	"github.com/yanisbelkaid/intervia-backend/internal/auth"
	"github.com/yanisbelkaid/intervia-backend/internal/interventions"
	"github.com/yanisbelkaid/intervia-backend/internal/profiles"
	"github.com/yanisbelkaid/intervia-backend/pkg/auth/session"
	"github.com/yanisbelkaid/intervia-backend/pkg/config"
	"github.com/yanisbelkaid/intervia-backend/pkg/db"
	"github.com/yanisbelkaid/intervia-backend/pkg/logger"
	"github.com/yanisbelkaid/intervia-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config               *config.Config
	Logger               *logger.Logger
	DB                   db.Pinger
	Redis                *redis.Client
	SessionManager       sessionManager
	AuthService          auth.Service
	RegisterService      auth.RegisterService
	ProfilesService      profiles.Service
	InterventionsService interventions.Service
	MetricsGatherer      prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionManager, logg)).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	// Idempotency must sit on the endpoint chain, not on the group: group
	// middleware runs before chi has resolved the full route pattern.
	idem := middleware.Idempotency(deps.Redis, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/me", controllers.ProfileMe(deps.ProfilesService, logg))
			r.Post("/me", controllers.ProfileCreate(deps.ProfilesService, logg))
		})

		r.Route("/agency", func(r chi.Router) {
			r.Use(middleware.RequireRole("agency", logg))
			r.Get("/contractors", controllers.ContractorList(deps.ProfilesService, logg))
			r.With(idem).Post("/interventions", controllers.InterventionCreate(deps.InterventionsService, logg))
		})

		r.Route("/interventions", func(r chi.Router) {
			r.Get("/", controllers.InterventionList(deps.InterventionsService, logg))
			r.Route("/{interventionId}", func(r chi.Router) {
				r.Get("/", controllers.InterventionDetail(deps.InterventionsService, logg))
				r.With(middleware.RequireRole("contractor", logg), idem).Post("/schedule", controllers.InterventionSchedule(deps.InterventionsService, logg))
				r.With(middleware.RequireRole("contractor", logg), idem).Post("/complete", controllers.InterventionComplete(deps.InterventionsService, logg))
				r.With(idem).Post("/sign-off", controllers.InterventionSignOff(deps.InterventionsService, logg))
				r.With(middleware.RequireRole("contractor", logg), idem).Post("/invoice", controllers.InterventionInvoice(deps.InterventionsService, logg))
				r.With(middleware.RequireRole("agency", logg), idem).Post("/confirm-payment", controllers.InterventionConfirmPayment(deps.InterventionsService, logg))
			})
		})
	})

	return r
}
