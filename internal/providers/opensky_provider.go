package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"avialog/backend/internal/models/dtos"
)

// OpenSkyFlight is the subset of the OpenSky /flights/all record we read.
type OpenSkyFlight struct {
	Callsign            string `json:"callsign"`
	EstDepartureAirport string `json:"estDepartureAirport"`
	EstArrivalAirport   string `json:"estArrivalAirport"`
	FirstSeen           int64  `json:"firstSeen"`
	LastSeen            int64  `json:"lastSeen"`
	AircraftType        string `json:"aircraftType"`
}

// OpenSkyProvider resolves flight numbers against the OpenSky Network API.
type OpenSkyProvider struct {
	BaseURL  string
	Username string
	Password string
	Client   *http.Client
}

// NewOpenSkyProvider creates a provider from environment configuration.
func NewOpenSkyProvider() *OpenSkyProvider {
	baseURL := os.Getenv("OPENSKY_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://opensky-network.org/api"
	}

	return &OpenSkyProvider{
		BaseURL:  baseURL,
		Username: os.Getenv("OPENSKY_USERNAME"),
		Password: os.Getenv("OPENSKY_PASSWORD"),
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *OpenSkyProvider) GetProviderType() string {
	return "opensky_network"
}

// FindFlight searches the feed around the given date for a flight whose
// callsign matches the IATA flight number. The feed caps each query at a
// two-hour window.
func (p *OpenSkyProvider) FindFlight(ctx context.Context, flightNumber string, date time.Time) (*dtos.LookupResponse, error) {
	callsign := ToICAOCallsign(flightNumber)

	// Center a two-hour window on the requested date.
	center := date
	if center.IsZero() {
		center = time.Now().UTC()
	}
	begin := center.Unix() - 3600
	end := center.Unix() + 3600

	endpoint := fmt.Sprintf("/flights/all?begin=%d&end=%d", begin, end)

	var flights []OpenSkyFlight
	if err := p.doGET(ctx, endpoint, &flights); err != nil {
		return nil, err
	}

	var match *OpenSkyFlight
	for i := range flights {
		if strings.TrimSpace(flights[i].Callsign) == callsign {
			match = &flights[i]
			break
		}
	}
	if match == nil {
		return nil, &ProviderError{
			Code:    ErrCodeFlightNotFound,
			Message: fmt.Sprintf("no flight matching callsign %s", callsign),
		}
	}

	return p.normalize(match), nil
}

// normalize maps a feed record onto the internal lookup shape.
func (p *OpenSkyProvider) normalize(flight *OpenSkyFlight) *dtos.LookupResponse {
	callsign := strings.TrimSpace(flight.Callsign)

	airlineName := UnknownAirlineName
	if airline, ok := AirlineByICAO(callsignPrefix(callsign)); ok {
		airlineName = airline.Name
	}

	aircraft := flight.AircraftType
	if aircraft == "" {
		aircraft = "Unknown type"
	}

	departure := time.Unix(flight.FirstSeen, 0).UTC()
	arrival := time.Unix(flight.LastSeen, 0).UTC()

	return &dtos.LookupResponse{
		FlightNumber:      ToIATAFlightNumber(callsign),
		Airline:           airlineName,
		DepartureCity:     AirportCity(flight.EstDepartureAirport),
		ArrivalCity:       AirportCity(flight.EstArrivalAirport),
		DepartureDate:     departure.Format("2006-01-02"),
		DepartureTime:     departure.Format("15:04"),
		ArrivalDate:       arrival.Format("2006-01-02"),
		ArrivalTime:       arrival.Format("15:04"),
		AircraftType:      aircraft,
		DepartureTimezone: "UTC",
		ArrivalTimezone:   "UTC",
	}
}

func (p *OpenSkyProvider) doGET(ctx context.Context, endpoint string, result interface{}) error {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "failed to create request",
			Err:     err,
		}
	}

	if p.Username != "" && p.Password != "" {
		req.SetBasicAuth(p.Username, p.Password)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "request to OpenSky failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{
			Code:    ErrCodeUpstreamError,
			Message: fmt.Sprintf("OpenSky returned status %d for %s", resp.StatusCode, endpoint),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "failed to decode OpenSky response",
			Err:     err,
		}
	}

	return nil
}

func callsignPrefix(callsign string) string {
	if len(callsign) < 3 {
		return callsign
	}
	return callsign[:3]
}
