package dtos

import "time"

// APIResponse is the standard envelope for all JSON endpoints.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	SessionID string       `json:"session_id"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	UID          string `json:"uid"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TotalFlights int64  `json:"totalFlights"`
	TotalAirTime int64  `json:"totalAirTime"`
	// AirTimeLabel is TotalAirTime display-formatted as "15h 30m".
	AirTimeLabel string `json:"air_time_label"`
}

type FlightResponse struct {
	ID                string    `json:"id"`
	FlightNumber      string    `json:"flight_number"`
	Airline           string    `json:"airline"`
	DepartureCity     string    `json:"departure_city"`
	ArrivalCity       string    `json:"arrival_city"`
	Route             string    `json:"route"`
	DepartureTime     time.Time `json:"departure_time_local"`
	DepartureTimezone string    `json:"departure_timezone"`
	ArrivalTime       time.Time `json:"arrival_time_local"`
	ArrivalTimezone   string    `json:"arrival_timezone"`
	AircraftType      *string   `json:"aircraft_type,omitempty"`
	SeatNumber        *string   `json:"seat_number,omitempty"`
	// Durable is false when the store was unreachable and the record only
	// received a local placeholder id.
	Durable bool `json:"durable"`
}

type FlightListResponse struct {
	Total   int              `json:"total"`
	Flights []FlightResponse `json:"flights"`
}

type ImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// CountRow is one category breakdown entry, e.g. an airline with its
// flight count.
type CountRow struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MonthRow is one monthly time series entry. Unlike CountRow breakdowns,
// series rows are ordered chronologically, not by count.
type MonthRow struct {
	Name    string `json:"name"`
	Flights int    `json:"flights"`
}

type StatsResponse struct {
	TotalFlights         int        `json:"total_flights"`
	TotalAirborneMinutes int64      `json:"total_airborne_minutes"`
	AirTimeLabel         string     `json:"air_time_label"`
	Airlines             []CountRow `json:"airlines"`
	DepartureCities      []CountRow `json:"departure_cities"`
	ArrivalCities        []CountRow `json:"arrival_cities"`
	Aircraft             []CountRow `json:"aircraft"`
	TopRoutes            []CountRow `json:"top_routes"`
	Monthly              []MonthRow `json:"monthly"`
}

// LookupResponse mirrors the external flight-lookup wire shape: dates and
// times are carried as separate strings ("2006-01-02" and "15:04").
type LookupResponse struct {
	FlightNumber      string `json:"flight_number"`
	Airline           string `json:"airline"`
	DepartureCity     string `json:"departure_city"`
	ArrivalCity       string `json:"arrival_city"`
	DepartureDate     string `json:"departure_date"`
	DepartureTime     string `json:"departure_time"`
	ArrivalDate       string `json:"arrival_date"`
	ArrivalTime       string `json:"arrival_time"`
	AircraftType      string `json:"aircraft_type"`
	DepartureTimezone string `json:"departure_timezone"`
	ArrivalTimezone   string `json:"arrival_timezone"`
}

type CompareResponse struct {
	Users []UserResponse `json:"users"`
}
