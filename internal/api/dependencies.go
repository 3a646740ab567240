package api

import (
	"avialog/backend/internal/common"
	"avialog/backend/internal/db"
	"avialog/backend/internal/db/repositories"
	"avialog/backend/internal/metrics"
	"avialog/backend/internal/providers"
	"avialog/backend/internal/services"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Flights *repositories.FlightRepository
	Users   *repositories.UserRepositoryGORM
}

type Services struct {
	Cache   common.CacheInterface
	Session *common.SessionService
	Flights *services.FlightService
	Stats   *services.StatsService
	Lookup  *services.LookupService
	Users   *services.UserService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	Redis    *redis.Client
}

func InitDependencies() (*Dependencies, error) {
	repos := &Repositories{
		Flights: repositories.NewFlightRepository(db.DB),
		Users:   repositories.NewUserRepositoryGORM(db.PgDB),
	}

	redisClient := common.NewRedisClient()
	cache := common.NewCache(redisClient)
	sessionSvc := common.NewSessionService(redisClient)
	metricsReg := metrics.NewMetricsRegistry()

	flightSvc := services.NewFlightService(repos.Flights, repos.Users, cache, metricsReg)

	svcs := &Services{
		Cache:   cache,
		Session: sessionSvc,
		Flights: flightSvc,
		Stats:   services.NewStatsService(flightSvc, cache),
		Lookup:  services.NewLookupService(providers.NewOpenSkyProvider(), cache, metricsReg),
		Users:   services.NewUserService(repos.Users, sessionSvc),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		Redis:    redisClient,
	}, nil
}
