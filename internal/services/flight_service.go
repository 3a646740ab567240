package services

import (
	"context"
	"errors"

	"avialog/backend/internal/common"
	"avialog/backend/internal/constants"
	"avialog/backend/internal/db/repositories"
	"avialog/backend/internal/logging"
	"avialog/backend/internal/metrics"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/models/entities"
	"avialog/backend/internal/stats"

	"github.com/google/uuid"
)

var ErrFlightNotFound = repositories.ErrFlightNotFound

// FlightService owns the flight record lifecycle. All operations are scoped
// to the acting user; a flight belonging to someone else is indistinguishable
// from a missing one.
type FlightService struct {
	flights FlightStore
	users   UserStore
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

func NewFlightService(flights FlightStore, users UserStore, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *FlightService {
	return &FlightService{
		flights: flights,
		users:   users,
		cache:   cache,
		metrics: metricsReg,
	}
}

// CreateFlight persists a new record for the user. When the store is
// unreachable the record is returned with a local placeholder id and
// Durable=false instead of an error, so the caller can tell the user the
// entry is not durably saved.
func (svc *FlightService) CreateFlight(ctx context.Context, userID string, req *dtos.FlightRequest) (*dtos.FlightResponse, error) {
	flight := flightFromRequest(userID, req)

	if err := svc.flights.InsertFlight(ctx, flight); err != nil {
		logging.Warn("Flight store unreachable, assigning local id",
			"user_id", userID, "error", err.Error())
		flight.ID = constants.LocalIDPrefix + uuid.New().String()
		resp := flightToResponse(flight)
		resp.Durable = false
		return resp, nil
	}

	svc.afterWrite(ctx, userID)
	if svc.metrics != nil {
		svc.metrics.FlightsCreatedTotal.Inc()
	}

	resp := flightToResponse(flight)
	resp.Durable = true
	return resp, nil
}

func (svc *FlightService) GetFlight(ctx context.Context, userID, flightID string) (*dtos.FlightResponse, error) {
	flight, err := svc.flights.GetFlightByID(ctx, userID, flightID)
	if err != nil {
		return nil, err
	}

	resp := flightToResponse(flight)
	resp.Durable = true
	return resp, nil
}

// ListFlights returns the user's flights, newest departure first, narrowed
// by the filter. A store failure degrades to an empty result set rather
// than an error.
func (svc *FlightService) ListFlights(ctx context.Context, userID string, filter *stats.Filter) ([]entities.Flight, error) {
	flights, err := svc.loadFlights(ctx, userID)
	if err != nil {
		logging.Error("Flight store read failed, degrading to empty list",
			"user_id", userID, "error", err.Error())
		return []entities.Flight{}, nil
	}

	return filter.Apply(flights), nil
}

func (svc *FlightService) UpdateFlight(ctx context.Context, userID, flightID string, req *dtos.FlightRequest) (*dtos.FlightResponse, error) {
	flight := flightFromRequest(userID, req)
	flight.ID = flightID

	if err := svc.flights.UpdateFlight(ctx, flight); err != nil {
		return nil, err
	}

	svc.afterWrite(ctx, userID)

	resp := flightToResponse(flight)
	resp.Durable = true
	return resp, nil
}

func (svc *FlightService) DeleteFlight(ctx context.Context, userID, flightID string) error {
	if err := svc.flights.DeleteFlight(ctx, userID, flightID); err != nil {
		return err
	}

	svc.afterWrite(ctx, userID)
	return nil
}

// loadFlights reads through the per-user cache.
func (svc *FlightService) loadFlights(ctx context.Context, userID string) ([]entities.Flight, error) {
	cacheKey := string(constants.CachePrefixUserFlights) + userID

	if svc.cache != nil {
		if val, found := svc.cache.Get(cacheKey); found {
			if flights, ok := decodeCached[[]entities.Flight](val); ok {
				if svc.metrics != nil {
					svc.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixUserFlights)).Inc()
				}
				return flights, nil
			}
		}
		if svc.metrics != nil {
			svc.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixUserFlights)).Inc()
		}
	}

	flights, err := svc.flights.ListFlightsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		svc.cache.Set(cacheKey, flights, 0)
	}
	return flights, nil
}

// afterWrite refreshes the user's denormalized totals and drops stale
// cache entries. Failures are logged, not propagated; the reconcile job
// will converge the totals later.
func (svc *FlightService) afterWrite(ctx context.Context, userID string) {
	if svc.cache != nil {
		svc.cache.Delete(string(constants.CachePrefixUserFlights) + userID)
		svc.cache.Delete(string(constants.CachePrefixUserStats) + userID)
	}

	totals, err := svc.flights.GetUserTotals(ctx, userID)
	if err != nil {
		logging.Error("Failed to recompute user totals", "user_id", userID, "error", err.Error())
		return
	}
	if err := svc.users.UpdateTotals(ctx, userID, totals.TotalFlights, totals.TotalAirTime); err != nil {
		logging.Error("Failed to store user totals", "user_id", userID, "error", err.Error())
	}
}

func flightFromRequest(userID string, req *dtos.FlightRequest) *entities.Flight {
	return &entities.Flight{
		UserID:            userID,
		FlightNumber:      req.FlightNumber,
		Airline:           req.Airline,
		DepartureCity:     req.DepartureCity,
		ArrivalCity:       req.ArrivalCity,
		DepartureTime:     req.DepartureTime,
		DepartureTimezone: req.DepartureTimezone,
		ArrivalTime:       req.ArrivalTime,
		ArrivalTimezone:   req.ArrivalTimezone,
		AircraftType:      req.AircraftType,
		SeatNumber:        req.SeatNumber,
	}
}

func flightToResponse(flight *entities.Flight) *dtos.FlightResponse {
	return &dtos.FlightResponse{
		ID:                flight.ID,
		FlightNumber:      flight.FlightNumber,
		Airline:           flight.Airline,
		DepartureCity:     flight.DepartureCity,
		ArrivalCity:       flight.ArrivalCity,
		Route:             flight.Route(),
		DepartureTime:     flight.DepartureTime,
		DepartureTimezone: flight.DepartureTimezone,
		ArrivalTime:       flight.ArrivalTime,
		ArrivalTimezone:   flight.ArrivalTimezone,
		AircraftType:      flight.AircraftType,
		SeatNumber:        flight.SeatNumber,
	}
}

// FlightListToResponse maps entities to the list payload.
func FlightListToResponse(flights []entities.Flight) *dtos.FlightListResponse {
	out := dtos.FlightListResponse{
		Total:   len(flights),
		Flights: make([]dtos.FlightResponse, 0, len(flights)),
	}
	for i := range flights {
		resp := flightToResponse(&flights[i])
		resp.Durable = true
		out.Flights = append(out.Flights, *resp)
	}
	return &out
}

// IsNotFound reports whether err is the scoped not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrFlightNotFound) || errors.Is(err, repositories.ErrUserNotFound)
}
