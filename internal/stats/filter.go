package stats

import (
	"strings"
	"time"

	"avialog/backend/internal/models/entities"
)

// Filter narrows a flight list. All set predicates must match (logical
// AND); unset predicates are skipped. The zero Filter matches everything.
type Filter struct {
	// From and To bound the departure date, inclusive on both ends.
	From *time.Time
	To   *time.Time
	// Airline matches exactly, ignoring case.
	Airline string
	// DepartureCity and ArrivalCity match exactly, ignoring case.
	DepartureCity string
	ArrivalCity   string
	// Query is a case-insensitive substring search over flight number and
	// airline.
	Query string
}

// IsZero reports whether no predicate is set.
func (f *Filter) IsZero() bool {
	return f.From == nil && f.To == nil &&
		f.Airline == "" && f.DepartureCity == "" && f.ArrivalCity == "" && f.Query == ""
}

// Matches reports whether a single flight passes every set predicate.
func (f *Filter) Matches(flight *entities.Flight) bool {
	if f.From != nil && flight.DepartureTime.Before(startOfDay(*f.From)) {
		return false
	}
	if f.To != nil && !flight.DepartureTime.Before(startOfDay(*f.To).AddDate(0, 0, 1)) {
		return false
	}
	if f.Airline != "" && !strings.EqualFold(flight.Airline, f.Airline) {
		return false
	}
	if f.DepartureCity != "" && !strings.EqualFold(flight.DepartureCity, f.DepartureCity) {
		return false
	}
	if f.ArrivalCity != "" && !strings.EqualFold(flight.ArrivalCity, f.ArrivalCity) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(flight.FlightNumber), q) &&
			!strings.Contains(strings.ToLower(flight.Airline), q) {
			return false
		}
	}
	return true
}

// Apply returns the matching subsequence as a new slice, preserving the
// input order. The source list is never mutated. An unset filter returns a
// copy of the full input so "reset filters" stays cheap for callers.
func (f *Filter) Apply(flights []entities.Flight) []entities.Flight {
	out := make([]entities.Flight, 0, len(flights))
	if f == nil || f.IsZero() {
		return append(out, flights...)
	}

	for i := range flights {
		if f.Matches(&flights[i]) {
			out = append(out, flights[i])
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
