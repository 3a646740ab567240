package services

import (
	"context"

	"avialog/backend/internal/db/repositories"
	"avialog/backend/internal/models/entities"
	gormModels "avialog/backend/internal/models/gorm"
)

// FlightStore is the persistence surface the services need from the flight
// repository. Declared here so tests can substitute function mocks.
type FlightStore interface {
	InsertFlight(ctx context.Context, flight *entities.Flight) error
	GetFlightByID(ctx context.Context, userID, flightID string) (*entities.Flight, error)
	ListFlightsByUser(ctx context.Context, userID string) ([]entities.Flight, error)
	UpdateFlight(ctx context.Context, flight *entities.Flight) error
	DeleteFlight(ctx context.Context, userID, flightID string) error
	GetUserTotals(ctx context.Context, userID string) (*repositories.FlightTotals, error)
}

var _ FlightStore = (*repositories.FlightRepository)(nil)

// UserStore is the persistence surface for user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *gormModels.User) error
	GetUserByID(ctx context.Context, id string) (*gormModels.User, error)
	GetUserByEmail(ctx context.Context, email string) (*gormModels.User, error)
	UpdateTotals(ctx context.Context, userID string, totalFlights, totalAirTime int64) error
	ListUserIDs(ctx context.Context) ([]string, error)
}

var _ UserStore = (*repositories.UserRepositoryGORM)(nil)
