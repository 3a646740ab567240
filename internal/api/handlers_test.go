package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"avialog/backend/internal/auth"
	"avialog/backend/internal/db/repositories"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/models/entities"
	gormModels "avialog/backend/internal/models/gorm"
	"avialog/backend/internal/services"
)

type fakeFlightStore struct {
	flights []entities.Flight
}

func (s *fakeFlightStore) InsertFlight(ctx context.Context, flight *entities.Flight) error {
	flight.ID = "f-1"
	s.flights = append(s.flights, *flight)
	return nil
}

func (s *fakeFlightStore) GetFlightByID(ctx context.Context, userID, flightID string) (*entities.Flight, error) {
	for i := range s.flights {
		if s.flights[i].ID == flightID {
			return &s.flights[i], nil
		}
	}
	return nil, repositories.ErrFlightNotFound
}

func (s *fakeFlightStore) ListFlightsByUser(ctx context.Context, userID string) ([]entities.Flight, error) {
	return s.flights, nil
}

func (s *fakeFlightStore) UpdateFlight(ctx context.Context, flight *entities.Flight) error {
	return repositories.ErrFlightNotFound
}

func (s *fakeFlightStore) DeleteFlight(ctx context.Context, userID, flightID string) error {
	return repositories.ErrFlightNotFound
}

func (s *fakeFlightStore) GetUserTotals(ctx context.Context, userID string) (*repositories.FlightTotals, error) {
	return &repositories.FlightTotals{}, nil
}

type nopUserStore struct{}

func (s *nopUserStore) CreateUser(ctx context.Context, user *gormModels.User) error { return nil }

func (s *nopUserStore) GetUserByID(ctx context.Context, id string) (*gormModels.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (s *nopUserStore) GetUserByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (s *nopUserStore) UpdateTotals(ctx context.Context, userID string, totalFlights, totalAirTime int64) error {
	return nil
}

func (s *nopUserStore) ListUserIDs(ctx context.Context) ([]string, error) { return nil, nil }

type fakeResolver struct {
	err error
}

func (r *fakeResolver) FindFlight(ctx context.Context, flightNumber string, date time.Time) (*dtos.LookupResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &dtos.LookupResponse{FlightNumber: flightNumber, Airline: "Aeroflot"}, nil
}

func authedRequest(method, target string, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	claims := &auth.JWTClaims{UserUUID: "user-1", UserEmail: "ivan@example.com"}
	return r.WithContext(auth.SetUserClaims(r.Context(), claims))
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) dtos.APIResponse[T] {
	t.Helper()
	var resp dtos.APIResponse[T]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestCreateFlightHandler_MissingFields(t *testing.T) {
	handler := CreateFlightHandler(services.NewFlightService(&fakeFlightStore{}, nil, nil, nil))

	w := httptest.NewRecorder()
	handler(w, authedRequest(http.MethodPost, "/api/v1/flights", `{"airline":"Aeroflot"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	resp := decodeEnvelope[any](t, w)
	if resp.Status != "error" || !strings.Contains(resp.Error, "flight_number") {
		t.Errorf("Expected missing-field error, got %+v", resp)
	}
}

func TestCreateFlightHandler_Success(t *testing.T) {
	store := &fakeFlightStore{}
	handler := CreateFlightHandler(services.NewFlightService(store, &nopUserStore{}, nil, nil))

	body := `{
		"flight_number": "SU100",
		"airline": "Aeroflot",
		"departure_city": "Moscow",
		"arrival_city": "SPB",
		"departure_time_local": "2024-01-10T10:00:00Z",
		"departure_timezone": "Europe/Moscow",
		"arrival_time_local": "2024-01-10T11:30:00Z",
		"arrival_timezone": "Europe/Moscow"
	}`

	w := httptest.NewRecorder()
	handler(w, authedRequest(http.MethodPost, "/api/v1/flights", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope[dtos.FlightResponse](t, w)
	if resp.Data == nil || !resp.Data.Durable || resp.Data.ID != "f-1" {
		t.Errorf("Unexpected payload: %+v", resp.Data)
	}
	if resp.Data.Route != "Moscow → SPB" {
		t.Errorf("Expected route label, got %q", resp.Data.Route)
	}
}

func TestListFlightsHandler_InvalidDateFilter(t *testing.T) {
	handler := ListFlightsHandler(services.NewFlightService(&fakeFlightStore{}, nil, nil, nil))

	w := httptest.NewRecorder()
	handler(w, authedRequest(http.MethodGet, "/api/v1/flights?from=10-01-2024", ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed date, got %d", w.Code)
	}
}

func TestFlightLookupHandler(t *testing.T) {
	t.Run("missing flight number", func(t *testing.T) {
		handler := FlightLookupHandler(services.NewLookupService(&fakeResolver{}, nil, nil))

		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/api/v1/flights/lookup", nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("provider success", func(t *testing.T) {
		handler := FlightLookupHandler(services.NewLookupService(&fakeResolver{}, nil, nil))

		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/api/v1/flights/lookup?flight_number=SU100&date=2024-01-10", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		resp := decodeEnvelope[dtos.LookupResponse](t, w)
		if resp.Data == nil || resp.Data.Airline != "Aeroflot" {
			t.Errorf("Unexpected payload: %+v", resp.Data)
		}
	})

	t.Run("provider failure still returns data", func(t *testing.T) {
		handler := FlightLookupHandler(services.NewLookupService(&fakeResolver{err: errors.New("down")}, nil, nil))

		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/api/v1/flights/lookup?flight_number=XX1", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected degraded 200, got %d", w.Code)
		}
		resp := decodeEnvelope[dtos.LookupResponse](t, w)
		if resp.Data == nil || resp.Data.FlightNumber != "XX1" {
			t.Errorf("Expected placeholder payload, got %+v", resp.Data)
		}
	})
}

func TestUserStatsHandler(t *testing.T) {
	dep := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	store := &fakeFlightStore{flights: []entities.Flight{
		{ID: "f-1", FlightNumber: "SU100", Airline: "Aeroflot", DepartureCity: "Moscow",
			ArrivalCity: "SPB", DepartureTime: dep, ArrivalTime: dep.Add(90 * time.Minute)},
	}}
	flightSvc := services.NewFlightService(store, nil, nil, nil)
	handler := UserStatsHandler(services.NewStatsService(flightSvc, nil))

	w := httptest.NewRecorder()
	handler(w, authedRequest(http.MethodGet, "/api/v1/stats", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := decodeEnvelope[dtos.StatsResponse](t, w)
	if resp.Data == nil || resp.Data.TotalFlights != 1 || resp.Data.TotalAirborneMinutes != 90 {
		t.Errorf("Unexpected stats: %+v", resp.Data)
	}

	w = httptest.NewRecorder()
	handler(w, authedRequest(http.MethodGet, "/api/v1/stats?limit=0", ""))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-positive limit, got %d", w.Code)
	}
}

func TestCompareUsersHandler_MissingParam(t *testing.T) {
	handler := CompareUsersHandler(services.NewUserService(&nopUserStore{}, nil))

	w := httptest.NewRecorder()
	handler(w, authedRequest(http.MethodGet, "/api/v1/users/compare", ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestExportFlightsHandler_SetsCSVHeaders(t *testing.T) {
	handler := ExportFlightsHandler(services.NewFlightService(&fakeFlightStore{}, nil, nil, nil))

	w := httptest.NewRecorder()
	handler(w, authedRequest(http.MethodGet, "/api/v1/flights/export", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "flights.csv") {
		t.Errorf("Expected attachment disposition, got %q", cd)
	}
}
