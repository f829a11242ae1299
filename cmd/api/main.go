package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/canchapp/canchapp-backend/api/routes"
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
	"github.com/canchapp/canchapp-backend/pkg/logger"
	"github.com/canchapp/canchapp-backend/pkg/metrics"
	"github.com/canchapp/canchapp-backend/pkg/migrate"
	"github.com/canchapp/canchapp-backend/pkg/redis"
)

// dashboardBookings satisfies the dashboard's booking queries by combining
// the aggregate queries with the recent-reservations listing.
type dashboardBookings struct {
	*dashboard.Repository
	recent *reservations.Repository
}

func (d dashboardBookings) FindRecentByComplexes(ctx context.Context, complexIDs []uuid.UUID, limit int) ([]reservations.RecentRow, error) {
	return d.recent.FindRecentByComplexes(ctx, complexIDs, limit)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	complexesRepo := complexes.NewRepository(dbClient.DB())
	fieldsRepo := fields.NewRepository(dbClient.DB())
	pricingRepo := pricing.NewRepository(dbClient.DB())
	reservationsRepo := reservations.NewRepository(dbClient.DB())
	reviewsRepo := reviews.NewRepository(dbClient.DB())
	searchRepo := search.NewRepository(dbClient.DB())
	dashboardRepo := dashboard.NewRepository(dbClient.DB())
	amenitiesRepo := amenities.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	complexesService, err := complexes.NewService(complexesRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create complexes service", err)
		os.Exit(1)
	}

	fieldsService, err := fields.NewService(fieldsRepo, complexesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create fields service", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(pricingRepo, fieldsRepo, complexesRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	reservationsService, err := reservations.NewService(reservations.ServiceParams{
		Repo:      reservationsRepo,
		Fields:    fieldsRepo,
		Complexes: complexesRepo,
		Pricing:   pricingService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reservations service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviewsRepo, complexesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	searchService, err := search.NewService(search.ServiceParams{
		Repo:         searchRepo,
		Reservations: reservationsRepo,
		Ratings:      complexesRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create search service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Complexes: complexesRepo,
		Fields:    fieldsRepo,
		Bookings:  dashboardBookings{Repository: dashboardRepo, recent: reservationsRepo},
		Logger:    logg,
		Config:    cfg.Dashboard,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			Registry:     registry,
			Metrics:      httpMetrics,
			Sessions:     sessionManager,
			Auth:         authService,
			Register:     registerService,
			Users:        usersService,
			Complexes:    complexesService,
			Fields:       fieldsService,
			Pricing:      pricingService,
			Reservations: reservationsService,
			Reviews:      reviewsService,
			Search:       searchService,
			Dashboard:    dashboardService,
			Amenities:    amenitiesRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
