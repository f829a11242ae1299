package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canchapp/canchapp-backend/api/controllers"
	"github.com/canchapp/canchapp-backend/api/middleware"
	"github.com/canchapp/canchapp-backend/internal/amenities"
	"github.com/canchapp/canchapp-backend/internal/auth"
	"github.com/canchapp/canchapp-backend/internal/complexes"
	"github.com/canchapp/canchapp-backend/internal/dashboard"
	"github.com/canchapp/canchapp-backend/internal/fields"
	"github.com/canchapp/canchapp-backend/internal/pricing"
	"github.com/canchapp/canchapp-backend/internal/reservations"
	"github.com/canchapp/canchapp-backend/internal/reviews"
	"github.com/canchapp/canchapp-backend/internal/search"
	"github.com/canchapp/canchapp-backend/internal/users"
	"github.com/canchapp/canchapp-backend/pkg/auth/session"
	"github.com/canchapp/canchapp-backend/pkg/config"
	"github.com/canchapp/canchapp-backend/pkg/db"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	"github.com/canchapp/canchapp-backend/pkg/logger"
	"github.com/canchapp/canchapp-backend/pkg/metrics"
	"github.com/canchapp/canchapp-backend/pkg/redis"
)

// Deps bundles everything the router needs so NewRouter does not take
// a dozen positional arguments.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.HTTPMetrics

	// Idempotency overrides the replay store. Defaults to Redis.
	Idempotency redis.IdempotencyStore

	Sessions session.AccessSessionChecker

	Auth         auth.Service
	Register     auth.RegisterService
	Users        users.Service
	Complexes    complexes.Service
	Fields       fields.Service
	Pricing      pricing.Service
	Reservations reservations.Service
	Reviews      reviews.Service
	Search       search.Service
	Dashboard    dashboard.Service
	Amenities    *amenities.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	idemStore := deps.Idempotency
	if idemStore == nil && deps.Redis != nil {
		idemStore = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
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

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(idemStore, logg),
		).Post("/register", controllers.AuthRegister(deps.Register, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	// Public catalog surface. No token required so players can browse
	// before signing up.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", controllers.Search(deps.Search, cfg.Search, logg))
		r.Get("/amenities", controllers.AmenityList(deps.Amenities, logg))
		r.Get("/complexes/{complexId}", controllers.ComplexDetail(deps.Complexes, logg))
		r.Get("/complexes/{complexId}/slots", controllers.ComplexTimeSlots(deps.Search, logg))
		r.Get("/complexes/{complexId}/reviews", controllers.ReviewList(deps.Reviews, logg))
		r.Get("/complexes/{complexId}/fields", controllers.FieldListByComplex(deps.Fields, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			r.Get("/profile", controllers.ProfileGet(deps.Users, logg))
			r.Put("/profile", controllers.ProfileUpdate(deps.Users, logg))

			r.Route("/reservations", func(r chi.Router) {
				r.Post("/", controllers.ReservationCreate(deps.Reservations, logg))
				r.Get("/", controllers.ReservationListOwn(deps.Reservations, logg))
				r.Get("/{reservationId}", controllers.ReservationDetail(deps.Reservations, logg))
				r.Post("/{reservationId}/cancel", controllers.ReservationCancel(deps.Reservations, logg))
			})

			r.Post("/complexes/{complexId}/reviews", controllers.ReviewCreate(deps.Reviews, logg))
		})
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleFacilityAdmin), logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/complexes", func(r chi.Router) {
			r.Get("/", controllers.ComplexListOwn(deps.Complexes, logg))
			r.Post("/", controllers.ComplexCreate(deps.Complexes, logg))
			r.Put("/{complexId}", controllers.ComplexUpdate(deps.Complexes, logg))
			r.Delete("/{complexId}", controllers.ComplexDelete(deps.Complexes, logg))
			r.Post("/{complexId}/fields", controllers.FieldCreate(deps.Fields, logg))
		})

		r.Route("/fields/{fieldId}", func(r chi.Router) {
			r.Put("/", controllers.FieldUpdate(deps.Fields, logg))
			r.Delete("/", controllers.FieldDelete(deps.Fields, logg))
			r.Get("/price-rules", controllers.PriceRuleList(deps.Pricing, logg))
			r.Put("/price-rules", controllers.PriceRuleReplace(deps.Pricing, logg))
		})

		r.Route("/reservations/{reservationId}", func(r chi.Router) {
			r.Post("/confirm", controllers.ReservationConfirm(deps.Reservations, logg))
			r.Post("/complete", controllers.ReservationComplete(deps.Reservations, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", controllers.DashboardMetrics(deps.Dashboard, logg))
			r.Get("/recent-reservations", controllers.DashboardRecentReservations(deps.Dashboard, logg))
		})
	})

	return r
}
