package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"avialog/backend/internal/common"
	"avialog/backend/internal/constants"
	"avialog/backend/internal/db/repositories"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/models/entities"
	gormModels "avialog/backend/internal/models/gorm"
	"avialog/backend/internal/stats"
)

// Mock FlightStore
type mockFlightStore struct {
	insertFunc func(ctx context.Context, flight *entities.Flight) error
	getFunc    func(ctx context.Context, userID, flightID string) (*entities.Flight, error)
	listFunc   func(ctx context.Context, userID string) ([]entities.Flight, error)
	updateFunc func(ctx context.Context, flight *entities.Flight) error
	deleteFunc func(ctx context.Context, userID, flightID string) error
	totalsFunc func(ctx context.Context, userID string) (*repositories.FlightTotals, error)
}

func (m *mockFlightStore) InsertFlight(ctx context.Context, flight *entities.Flight) error {
	return m.insertFunc(ctx, flight)
}

func (m *mockFlightStore) GetFlightByID(ctx context.Context, userID, flightID string) (*entities.Flight, error) {
	return m.getFunc(ctx, userID, flightID)
}

func (m *mockFlightStore) ListFlightsByUser(ctx context.Context, userID string) ([]entities.Flight, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockFlightStore) UpdateFlight(ctx context.Context, flight *entities.Flight) error {
	return m.updateFunc(ctx, flight)
}

func (m *mockFlightStore) DeleteFlight(ctx context.Context, userID, flightID string) error {
	return m.deleteFunc(ctx, userID, flightID)
}

func (m *mockFlightStore) GetUserTotals(ctx context.Context, userID string) (*repositories.FlightTotals, error) {
	if m.totalsFunc != nil {
		return m.totalsFunc(ctx, userID)
	}
	return &repositories.FlightTotals{}, nil
}

// Mock UserStore
type mockUserStore struct {
	createFunc       func(ctx context.Context, user *gormModels.User) error
	getByIDFunc      func(ctx context.Context, id string) (*gormModels.User, error)
	getByEmailFunc   func(ctx context.Context, email string) (*gormModels.User, error)
	updateTotalsFunc func(ctx context.Context, userID string, totalFlights, totalAirTime int64) error
	listIDsFunc      func(ctx context.Context) ([]string, error)
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *gormModels.User) error {
	return m.createFunc(ctx, user)
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id string) (*gormModels.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserStore) UpdateTotals(ctx context.Context, userID string, totalFlights, totalAirTime int64) error {
	if m.updateTotalsFunc != nil {
		return m.updateTotalsFunc(ctx, userID, totalFlights, totalAirTime)
	}
	return nil
}

func (m *mockUserStore) ListUserIDs(ctx context.Context) ([]string, error) {
	return m.listIDsFunc(ctx)
}

func testFlightRequest() *dtos.FlightRequest {
	dep := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	return &dtos.FlightRequest{
		FlightNumber:      "SU100",
		Airline:           "Aeroflot",
		DepartureCity:     "Moscow",
		ArrivalCity:       "SPB",
		DepartureTime:     dep,
		DepartureTimezone: "Europe/Moscow",
		ArrivalTime:       dep.Add(2 * time.Hour),
		ArrivalTimezone:   "Europe/Moscow",
	}
}

func TestFlightService_CreateFlight_Durable(t *testing.T) {
	var updatedTotals bool

	store := &mockFlightStore{
		insertFunc: func(ctx context.Context, flight *entities.Flight) error {
			flight.ID = "f-42"
			flight.CreatedAt = time.Now()
			flight.UpdatedAt = flight.CreatedAt
			return nil
		},
		totalsFunc: func(ctx context.Context, userID string) (*repositories.FlightTotals, error) {
			return &repositories.FlightTotals{TotalFlights: 1, TotalAirTime: 120}, nil
		},
	}
	users := &mockUserStore{
		updateTotalsFunc: func(ctx context.Context, userID string, totalFlights, totalAirTime int64) error {
			if totalFlights != 1 || totalAirTime != 120 {
				t.Errorf("Expected totals (1, 120), got (%d, %d)", totalFlights, totalAirTime)
			}
			updatedTotals = true
			return nil
		},
	}

	svc := NewFlightService(store, users, common.NewCacheService(60, 600), nil)

	resp, err := svc.CreateFlight(context.Background(), "user-1", testFlightRequest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !resp.Durable {
		t.Error("Expected durable record")
	}
	if resp.ID == "" || strings.HasPrefix(resp.ID, constants.LocalIDPrefix) {
		t.Errorf("Expected store-assigned id, got %q", resp.ID)
	}
	if resp.Route != "Moscow → SPB" {
		t.Errorf("Expected composite route label, got %q", resp.Route)
	}
	if !updatedTotals {
		t.Error("Expected denormalized totals refresh after write")
	}
}

func TestFlightService_CreateFlight_StoreDownFallsBackToLocalID(t *testing.T) {
	store := &mockFlightStore{
		insertFunc: func(ctx context.Context, flight *entities.Flight) error {
			return errors.New("connection refused")
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	resp, err := svc.CreateFlight(context.Background(), "user-1", testFlightRequest())
	if err != nil {
		t.Fatalf("Expected degraded success, got error %v", err)
	}
	if resp.Durable {
		t.Error("Expected non-durable marker")
	}
	if !strings.HasPrefix(resp.ID, constants.LocalIDPrefix) {
		t.Errorf("Expected local placeholder id, got %q", resp.ID)
	}
}

func TestFlightService_ListFlights_StoreDownDegradesToEmpty(t *testing.T) {
	store := &mockFlightStore{
		listFunc: func(ctx context.Context, userID string) ([]entities.Flight, error) {
			return nil, errors.New("timeout")
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	flights, err := svc.ListFlights(context.Background(), "user-1", nil)
	if err != nil {
		t.Fatalf("Expected degraded success, got error %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("Expected empty result set, got %d flights", len(flights))
	}
}

func TestFlightService_ListFlights_AppliesFilter(t *testing.T) {
	dep := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	store := &mockFlightStore{
		listFunc: func(ctx context.Context, userID string) ([]entities.Flight, error) {
			return []entities.Flight{
				{FlightNumber: "SU100", Airline: "Aeroflot", DepartureTime: dep},
				{FlightNumber: "S7201", Airline: "S7 Airlines", DepartureTime: dep},
			}, nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	flights, err := svc.ListFlights(context.Background(), "user-1", &stats.Filter{Airline: "Aeroflot"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(flights) != 1 || flights[0].FlightNumber != "SU100" {
		t.Errorf("Expected only SU100, got %+v", flights)
	}
}

func TestFlightService_ListFlights_CachesStoreReads(t *testing.T) {
	calls := 0
	store := &mockFlightStore{
		listFunc: func(ctx context.Context, userID string) ([]entities.Flight, error) {
			calls++
			return []entities.Flight{{FlightNumber: "SU100"}}, nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, common.NewCacheService(60, 600), nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.ListFlights(context.Background(), "user-1", nil); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected a single store read, got %d", calls)
	}
}

func TestFlightService_UpdateFlight_NotFound(t *testing.T) {
	store := &mockFlightStore{
		updateFunc: func(ctx context.Context, flight *entities.Flight) error {
			return repositories.ErrFlightNotFound
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	_, err := svc.UpdateFlight(context.Background(), "user-1", "someone-elses-flight", testFlightRequest())
	if !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestFlightService_DeleteFlight_InvalidatesCache(t *testing.T) {
	flights := []entities.Flight{{ID: "f1", FlightNumber: "SU100"}}
	store := &mockFlightStore{
		listFunc: func(ctx context.Context, userID string) ([]entities.Flight, error) {
			out := make([]entities.Flight, len(flights))
			copy(out, flights)
			return out, nil
		},
		deleteFunc: func(ctx context.Context, userID, flightID string) error {
			flights = nil
			return nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, common.NewCacheService(60, 600), nil)

	before, _ := svc.ListFlights(context.Background(), "user-1", nil)
	if len(before) != 1 {
		t.Fatalf("Expected 1 flight before delete, got %d", len(before))
	}

	if err := svc.DeleteFlight(context.Background(), "user-1", "f1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	after, _ := svc.ListFlights(context.Background(), "user-1", nil)
	if len(after) != 0 {
		t.Errorf("Expected cache invalidation to surface the delete, got %d flights", len(after))
	}
}
