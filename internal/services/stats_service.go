package services

import (
	"context"

	"avialog/backend/internal/common"
	"avialog/backend/internal/constants"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/stats"
)

// StatsService derives the statistics views from a user's flight list. The
// transforms themselves are pure; this layer only loads input, applies the
// filter, and caches the unfiltered default view.
type StatsService struct {
	flightSvc *FlightService
	cache     common.CacheInterface
}

func NewStatsService(flightSvc *FlightService, cache common.CacheInterface) *StatsService {
	return &StatsService{
		flightSvc: flightSvc,
		cache:     cache,
	}
}

// BuildStats aggregates the user's flights after applying the filter.
// The unfiltered default-limit view is cached per user until the next
// flight write invalidates it.
func (svc *StatsService) BuildStats(ctx context.Context, userID string, filter *stats.Filter, routeLimit int) (*dtos.StatsResponse, error) {
	cacheable := (filter == nil || filter.IsZero()) && routeLimit <= 0

	if cacheable && svc.cache != nil {
		if val, found := svc.cache.Get(statsCacheKey(userID)); found {
			if cached, ok := decodeCached[*dtos.StatsResponse](val); ok {
				return cached, nil
			}
		}
	}

	flights, err := svc.flightSvc.ListFlights(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	minutes := stats.TotalAirborneMinutes(flights)
	resp := &dtos.StatsResponse{
		TotalFlights:         len(flights),
		TotalAirborneMinutes: minutes,
		AirTimeLabel:         stats.FormatAirTime(minutes),
		Airlines:             stats.CountBy(flights, stats.ByAirline),
		DepartureCities:      stats.CountBy(flights, stats.ByDepartureCity),
		ArrivalCities:        stats.CountBy(flights, stats.ByArrivalCity),
		Aircraft:             stats.CountBy(flights, stats.ByAircraft),
		TopRoutes:            stats.TopRoutes(flights, routeLimit),
		Monthly:              stats.MonthlySeries(flights),
	}

	if cacheable && svc.cache != nil {
		svc.cache.Set(statsCacheKey(userID), resp, 0)
	}
	return resp, nil
}

func statsCacheKey(userID string) string {
	return string(constants.CachePrefixUserStats) + userID
}
