package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"avialog/backend/internal/models/dtos"
)

// csvHeader is the import/export column set, one column per flight
// attribute. Import requires exactly this header row.
var csvHeader = []string{
	"flight_number",
	"airline",
	"departure_city",
	"arrival_city",
	"departure_time",
	"departure_timezone",
	"arrival_time",
	"arrival_timezone",
	"aircraft_type",
	"seat_number",
}

// ImportCSV parses a CSV stream and creates one flight per valid row.
// Invalid rows are skipped and reported; a malformed header fails the whole
// import. Times are RFC 3339.
func (svc *FlightService) ImportCSV(ctx context.Context, userID string, r io.Reader) (*dtos.ImportResponse, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	result := &dtos.ImportResponse{}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		req, err := rowToRequest(record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if missing := req.Validate(); len(missing) > 0 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: missing %v", line, missing))
			continue
		}

		if _, err := svc.CreateFlight(ctx, userID, req); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		result.Imported++
		if svc.metrics != nil {
			svc.metrics.FlightsImportedTotal.Inc()
		}
	}

	return result, nil
}

// ExportCSV renders all of the user's flights with the same column set the
// importer accepts.
func (svc *FlightService) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	flights, err := svc.ListFlights(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to build export: %w", err)
	}

	for i := range flights {
		f := &flights[i]
		if err := writer.Write([]string{
			f.FlightNumber,
			f.Airline,
			f.DepartureCity,
			f.ArrivalCity,
			f.DepartureTime.Format(time.RFC3339),
			f.DepartureTimezone,
			f.ArrivalTime.Format(time.RFC3339),
			f.ArrivalTimezone,
			strOrEmpty(f.AircraftType),
			strOrEmpty(f.SeatNumber),
		}); err != nil {
			return nil, fmt.Errorf("failed to build export: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to build export: %w", err)
	}

	return output.Bytes(), nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return fmt.Errorf("expected column %d to be %q, got %q", i+1, col, header[i])
		}
	}
	return nil
}

func rowToRequest(record []string) (*dtos.FlightRequest, error) {
	if len(record) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(record))
	}

	departure, err := time.Parse(time.RFC3339, record[4])
	if err != nil {
		return nil, fmt.Errorf("bad departure_time %s: %w", strconv.Quote(record[4]), err)
	}
	arrival, err := time.Parse(time.RFC3339, record[6])
	if err != nil {
		return nil, fmt.Errorf("bad arrival_time %s: %w", strconv.Quote(record[6]), err)
	}

	req := &dtos.FlightRequest{
		FlightNumber:      record[0],
		Airline:           record[1],
		DepartureCity:     record[2],
		ArrivalCity:       record[3],
		DepartureTime:     departure,
		DepartureTimezone: record[5],
		ArrivalTime:       arrival,
		ArrivalTimezone:   record[7],
	}
	if record[8] != "" {
		req.AircraftType = &record[8]
	}
	if record[9] != "" {
		req.SeatNumber = &record[9]
	}
	return req, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
