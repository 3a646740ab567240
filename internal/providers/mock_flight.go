package providers

import (
	"math/rand"
	"time"

	"avialog/backend/internal/models/dtos"
)

// GenerateMockFlight builds a structurally valid placeholder lookup result
// for a flight number the external feed could not resolve. The airline is
// derived deterministically from the IATA prefix; cities and times are
// random. Departure and arrival cities are always distinct.
func GenerateMockFlight(flightNumber string, date time.Time) *dtos.LookupResponse {
	airlineName := UnknownAirlineName
	if len(flightNumber) >= 2 {
		if airline, ok := AirlineByIATA(flightNumber[:2]); ok {
			airlineName = airline.Name
		}
	}

	depIdx := rand.Intn(len(Airports))
	arrIdx := rand.Intn(len(Airports))
	if arrIdx == depIdx {
		arrIdx = (arrIdx + 1) % len(Airports)
	}

	if date.IsZero() {
		date = time.Now().UTC()
	}
	departure := time.Date(date.Year(), date.Month(), date.Day(),
		rand.Intn(24), rand.Intn(60), 0, 0, time.UTC)
	arrival := departure.Add(time.Duration(1+rand.Intn(5)) * time.Hour)

	return &dtos.LookupResponse{
		FlightNumber:      flightNumber,
		Airline:           airlineName,
		DepartureCity:     Airports[depIdx].Name,
		ArrivalCity:       Airports[arrIdx].Name,
		DepartureDate:     departure.Format("2006-01-02"),
		DepartureTime:     departure.Format("15:04"),
		ArrivalDate:       arrival.Format("2006-01-02"),
		ArrivalTime:       arrival.Format("15:04"),
		AircraftType:      "Boeing 737",
		DepartureTimezone: "UTC",
		ArrivalTimezone:   "UTC",
	}
}
