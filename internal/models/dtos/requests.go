package dtos

import "time"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FlightRequest is the create/update payload for a flight record. Validation
// happens at this boundary; the stats transforms downstream assume
// well-formed records.
type FlightRequest struct {
	FlightNumber      string    `json:"flight_number"`
	Airline           string    `json:"airline"`
	DepartureCity     string    `json:"departure_city"`
	ArrivalCity       string    `json:"arrival_city"`
	DepartureTime     time.Time `json:"departure_time_local"`
	DepartureTimezone string    `json:"departure_timezone"`
	ArrivalTime       time.Time `json:"arrival_time_local"`
	ArrivalTimezone   string    `json:"arrival_timezone"`
	AircraftType      *string   `json:"aircraft_type,omitempty"`
	SeatNumber        *string   `json:"seat_number,omitempty"`
}

// Validate returns the names of required fields that are missing.
func (r *FlightRequest) Validate() []string {
	var missing []string
	if r.FlightNumber == "" {
		missing = append(missing, "flight_number")
	}
	if r.Airline == "" {
		missing = append(missing, "airline")
	}
	if r.DepartureCity == "" {
		missing = append(missing, "departure_city")
	}
	if r.ArrivalCity == "" {
		missing = append(missing, "arrival_city")
	}
	if r.DepartureTime.IsZero() {
		missing = append(missing, "departure_time_local")
	}
	if r.ArrivalTime.IsZero() {
		missing = append(missing, "arrival_time_local")
	}
	return missing
}
