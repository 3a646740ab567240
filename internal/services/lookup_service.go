package services

import (
	"context"
	"time"

	"avialog/backend/internal/common"
	"avialog/backend/internal/constants"
	"avialog/backend/internal/logging"
	"avialog/backend/internal/metrics"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/providers"
)

// FlightResolver is the external flight-data source behind the lookup
// bridge.
type FlightResolver interface {
	FindFlight(ctx context.Context, flightNumber string, date time.Time) (*dtos.LookupResponse, error)
}

// LookupService resolves a flight number to flight details. Provider
// failures of any kind degrade to generated placeholder data; the caller
// always receives a structurally valid payload and never a hard error.
type LookupService struct {
	resolver FlightResolver
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
}

func NewLookupService(resolver FlightResolver, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *LookupService {
	return &LookupService{
		resolver: resolver,
		cache:    cache,
		metrics:  metricsReg,
	}
}

// Lookup resolves flightNumber on the given date (today when zero).
func (svc *LookupService) Lookup(ctx context.Context, flightNumber string, date time.Time) *dtos.LookupResponse {
	cacheKey := string(constants.CachePrefixLookup) + flightNumber + "_" + date.Format("2006-01-02")

	if svc.cache != nil {
		if val, found := svc.cache.Get(cacheKey); found {
			if cached, ok := decodeCached[*dtos.LookupResponse](val); ok {
				return cached
			}
		}
	}

	result, err := svc.resolver.FindFlight(ctx, flightNumber, date)
	if err != nil {
		logging.Warn("Flight lookup failed, generating placeholder data",
			"flight_number", flightNumber, "error", err.Error())
		if svc.metrics != nil {
			svc.metrics.LookupFallbackTotal.Inc()
		}
		// Placeholder results are not cached; the provider may recover.
		return providers.GenerateMockFlight(flightNumber, date)
	}

	if svc.cache != nil {
		svc.cache.Set(cacheKey, result, 10*time.Minute)
	}
	return result
}
