package entities

import "time"

// Flight is one user-recorded journey. Rows are owned exclusively by the
// user that created them; every store operation is scoped by UserID.
type Flight struct {
	ID                string    `db:"id"`
	UserID            string    `db:"user_id"`
	FlightNumber      string    `db:"flight_number"`
	Airline           string    `db:"airline"`
	DepartureCity     string    `db:"departure_city"`
	ArrivalCity       string    `db:"arrival_city"`
	DepartureTime     time.Time `db:"departure_time"`
	DepartureTimezone string    `db:"departure_timezone"`
	ArrivalTime       time.Time `db:"arrival_time"`
	ArrivalTimezone   string    `db:"arrival_timezone"`
	AircraftType      *string   `db:"aircraft_type"`
	SeatNumber        *string   `db:"seat_number"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Route renders the composite route label used by breakdowns and list views.
func (f *Flight) Route() string {
	return f.DepartureCity + " → " + f.ArrivalCity
}

// AirborneMinutes is the scheduled duration in whole minutes, truncated
// toward zero. Arrival before departure yields a negative value; callers
// sum it unmodified.
func (f *Flight) AirborneMinutes() int64 {
	return int64(f.ArrivalTime.Sub(f.DepartureTime) / time.Minute)
}
