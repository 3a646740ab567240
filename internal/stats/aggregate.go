package stats

import (
	"fmt"
	"sort"
	"time"

	"avialog/backend/internal/constants"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/models/entities"
)

// KeyFunc maps a flight to the breakdown key it is counted under.
type KeyFunc func(*entities.Flight) string

func ByAirline(f *entities.Flight) string {
	return f.Airline
}

func ByDepartureCity(f *entities.Flight) string {
	return f.DepartureCity
}

func ByArrivalCity(f *entities.Flight) string {
	return f.ArrivalCity
}

// ByAircraft groups flights without an aircraft type under a shared
// fallback label.
func ByAircraft(f *entities.Flight) string {
	if f.AircraftType == nil || *f.AircraftType == "" {
		return constants.UnknownAircraftLabel
	}
	return *f.AircraftType
}

func ByRoute(f *entities.Flight) string {
	return f.Route()
}

// TotalAirborneMinutes sums the per-flight duration in whole minutes.
// Negative durations contribute negatively; an empty list sums to zero.
func TotalAirborneMinutes(flights []entities.Flight) int64 {
	var total int64
	for i := range flights {
		total += flights[i].AirborneMinutes()
	}
	return total
}

// CountBy groups flights by keyFn and returns one row per distinct key,
// sorted by descending count. Ties keep the order in which the keys were
// first encountered.
func CountBy(flights []entities.Flight, keyFn KeyFunc) []dtos.CountRow {
	counts := make(map[string]int, len(flights))
	order := make([]string, 0, len(flights))

	for i := range flights {
		key := keyFn(&flights[i])
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	rows := make([]dtos.CountRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, dtos.CountRow{Name: key, Value: counts[key]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})

	return rows
}

// TopRoutes is CountBy on the composite route key, truncated to limit rows.
// A non-positive limit falls back to the default of 10.
func TopRoutes(flights []entities.Flight, limit int) []dtos.CountRow {
	if limit <= 0 {
		limit = constants.DefaultTopRoutesLimit
	}

	rows := CountBy(flights, ByRoute)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// MonthlySeries groups flights by the month of their local departure time.
// Rows are ordered chronologically regardless of input order; this differs
// from the count-ordered breakdowns.
func MonthlySeries(flights []entities.Flight) []dtos.MonthRow {
	type monthKey struct {
		year  int
		month time.Month
	}

	counts := make(map[monthKey]int)
	for i := range flights {
		dep := flights[i].DepartureTime
		counts[monthKey{dep.Year(), dep.Month()}]++
	}

	keys := make([]monthKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	rows := make([]dtos.MonthRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, dtos.MonthRow{
			Name:    fmt.Sprintf("%s %d", k.month, k.year),
			Flights: counts[k],
		})
	}
	return rows
}

// FormatAirTime display-formats a minute total as "15h 30m".
func FormatAirTime(minutes int64) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
