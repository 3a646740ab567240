package repositories

import (
	"context"
	"database/sql"
	"errors"

	"avialog/backend/internal/constants"
	"avialog/backend/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrFlightNotFound covers both a missing id and an id owned by another
// user. Callers cannot distinguish the two cases.
var ErrFlightNotFound = errors.New("flight not found")

// FlightRepository persists flight records in Postgres. Every query is
// scoped by the owning user id.
type FlightRepository struct {
	db *sqlx.DB
}

func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db}
}

func (r *FlightRepository) InsertFlight(ctx context.Context, flight *entities.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.New().String()
	}

	return r.db.QueryRowxContext(ctx, constants.InsertFlight,
		flight.ID,
		flight.UserID,
		flight.FlightNumber,
		flight.Airline,
		flight.DepartureCity,
		flight.ArrivalCity,
		flight.DepartureTime,
		flight.DepartureTimezone,
		flight.ArrivalTime,
		flight.ArrivalTimezone,
		flight.AircraftType,
		flight.SeatNumber,
	).Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *FlightRepository) GetFlightByID(ctx context.Context, userID, flightID string) (*entities.Flight, error) {
	var flight entities.Flight

	err := r.db.QueryRowxContext(ctx, constants.GetFlightByID, flightID, userID).StructScan(&flight)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}

	return &flight, nil
}

func (r *FlightRepository) ListFlightsByUser(ctx context.Context, userID string) ([]entities.Flight, error) {
	flights := []entities.Flight{}

	if err := r.db.SelectContext(ctx, &flights, constants.ListFlightsByUser, userID); err != nil {
		return nil, err
	}

	return flights, nil
}

func (r *FlightRepository) UpdateFlight(ctx context.Context, flight *entities.Flight) error {
	err := r.db.QueryRowxContext(ctx, constants.UpdateFlight,
		flight.ID,
		flight.UserID,
		flight.FlightNumber,
		flight.Airline,
		flight.DepartureCity,
		flight.ArrivalCity,
		flight.DepartureTime,
		flight.DepartureTimezone,
		flight.ArrivalTime,
		flight.ArrivalTimezone,
		flight.AircraftType,
		flight.SeatNumber,
	).StructScan(flight)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFlightNotFound
	}
	return err
}

func (r *FlightRepository) DeleteFlight(ctx context.Context, userID, flightID string) error {
	res, err := r.db.ExecContext(ctx, constants.DeleteFlight, flightID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFlightNotFound
	}
	return nil
}

// FlightTotals holds the denormalized per-user aggregates recomputed from
// the flights table.
type FlightTotals struct {
	TotalFlights int64 `db:"total_flights"`
	TotalAirTime int64 `db:"total_air_time"`
}

func (r *FlightRepository) GetUserTotals(ctx context.Context, userID string) (*FlightTotals, error) {
	var totals FlightTotals

	if err := r.db.QueryRowxContext(ctx, constants.UserFlightTotals, userID).StructScan(&totals); err != nil {
		return nil, err
	}

	return &totals, nil
}
