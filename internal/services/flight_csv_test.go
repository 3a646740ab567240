package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"avialog/backend/internal/models/entities"
)

const sampleCSV = `flight_number,airline,departure_city,arrival_city,departure_time,departure_timezone,arrival_time,arrival_timezone,aircraft_type,seat_number
SU100,Aeroflot,Moscow,SPB,2024-01-10T10:00:00Z,Europe/Moscow,2024-01-10T11:30:00Z,Europe/Moscow,Airbus A320,12A
S7201,S7 Airlines,Novosibirsk,Moscow,2024-02-03T08:00:00Z,Asia/Novosibirsk,2024-02-03T12:00:00Z,Europe/Moscow,,
`

func TestImportCSV_HappyPath(t *testing.T) {
	var inserted []entities.Flight
	store := &mockFlightStore{
		insertFunc: func(ctx context.Context, flight *entities.Flight) error {
			inserted = append(inserted, *flight)
			return nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	resp, err := svc.ImportCSV(context.Background(), "user-1", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.Imported != 2 || resp.Skipped != 0 {
		t.Errorf("Expected 2 imported / 0 skipped, got %d / %d", resp.Imported, resp.Skipped)
	}
	if len(inserted) != 2 {
		t.Fatalf("Expected 2 stored flights, got %d", len(inserted))
	}
	if inserted[0].FlightNumber != "SU100" || inserted[1].DepartureCity != "Novosibirsk" {
		t.Errorf("Unexpected stored rows: %+v", inserted)
	}
	want := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	if !inserted[0].DepartureTime.Equal(want) {
		t.Errorf("Expected departure %v, got %v", want, inserted[0].DepartureTime)
	}
}

func TestImportCSV_SkipsBadRowsAndReportsThem(t *testing.T) {
	input := `flight_number,airline,departure_city,arrival_city,departure_time,departure_timezone,arrival_time,arrival_timezone,aircraft_type,seat_number
SU100,Aeroflot,Moscow,SPB,2024-01-10T10:00:00Z,Europe/Moscow,2024-01-10T11:30:00Z,Europe/Moscow,,
BA99,British Airways,London,Moscow,not-a-time,Europe/London,2024-01-11T18:00:00Z,Europe/Moscow,,
,Aeroflot,Moscow,SPB,2024-01-12T10:00:00Z,Europe/Moscow,2024-01-12T11:30:00Z,Europe/Moscow,,
`
	store := &mockFlightStore{
		insertFunc: func(ctx context.Context, flight *entities.Flight) error {
			return nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	resp, err := svc.ImportCSV(context.Background(), "user-1", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected partial import, got error %v", err)
	}
	if resp.Imported != 1 {
		t.Errorf("Expected 1 imported, got %d", resp.Imported)
	}
	if resp.Skipped != 2 {
		t.Errorf("Expected 2 skipped, got %d", resp.Skipped)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("Expected 2 row errors, got %v", resp.Errors)
	}
}

func TestImportCSV_RejectsUnknownHeader(t *testing.T) {
	input := "number,carrier\nSU100,Aeroflot\n"

	svc := NewFlightService(&mockFlightStore{}, &mockUserStore{}, nil, nil)

	if _, err := svc.ImportCSV(context.Background(), "user-1", strings.NewReader(input)); err == nil {
		t.Error("Expected header validation error")
	}
}

func TestExportCSV_WritesAllFlights(t *testing.T) {
	dep := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	store := &mockFlightStore{
		listFunc: func(ctx context.Context, userID string) ([]entities.Flight, error) {
			return []entities.Flight{
				{
					FlightNumber:      "SU100",
					Airline:           "Aeroflot",
					DepartureCity:     "Moscow",
					ArrivalCity:       "SPB",
					DepartureTime:     dep,
					DepartureTimezone: "Europe/Moscow",
					ArrivalTime:       dep.Add(90 * time.Minute),
					ArrivalTimezone:   "Europe/Moscow",
				},
			}, nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	out, err := svc.ExportCSV(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Errorf("Unexpected header line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "SU100") || !strings.Contains(lines[1], "2024-01-10T10:00:00Z") {
		t.Errorf("Unexpected data row: %q", lines[1])
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	var stored []entities.Flight
	store := &mockFlightStore{
		insertFunc: func(ctx context.Context, flight *entities.Flight) error {
			stored = append(stored, *flight)
			return nil
		},
		listFunc: func(ctx context.Context, userID string) ([]entities.Flight, error) {
			return stored, nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, nil, nil)

	if _, err := svc.ImportCSV(context.Background(), "user-1", strings.NewReader(sampleCSV)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	out, err := svc.ExportCSV(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	again, err := svc.ImportCSV(context.Background(), "user-2", strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("Re-import failed: %v", err)
	}
	if again.Imported != 2 || again.Skipped != 0 {
		t.Errorf("Expected lossless round trip, got %d imported / %d skipped", again.Imported, again.Skipped)
	}
}
