package providers

import "strings"

// Airport maps an ICAO airport code to the city name shown to users.
type Airport struct {
	Name string
	ICAO string
	IATA string
}

// Airline carries both code systems for an operator; lookups arrive as IATA
// flight numbers while the tracking feed reports ICAO callsigns.
type Airline struct {
	Name string
	ICAO string
	IATA string
}

var Airports = []Airport{
	{Name: "Sheremetyevo", ICAO: "UUEE", IATA: "SVO"},
	{Name: "Domodedovo", ICAO: "UUDD", IATA: "DME"},
	{Name: "Vnukovo", ICAO: "UUWW", IATA: "VKO"},
	{Name: "Madrid Barajas", ICAO: "LEMD", IATA: "MAD"},
	{Name: "London Heathrow", ICAO: "EGLL", IATA: "LHR"},
	{Name: "Paris Charles de Gaulle", ICAO: "LFPG", IATA: "CDG"},
	{Name: "Frankfurt", ICAO: "EDDF", IATA: "FRA"},
	{Name: "Amsterdam Schiphol", ICAO: "EHAM", IATA: "AMS"},
}

var Airlines = []Airline{
	{Name: "Aeroflot", ICAO: "AFL", IATA: "SU"},
	{Name: "S7 Airlines", ICAO: "SBI", IATA: "S7"},
	{Name: "British Airways", ICAO: "BAW", IATA: "BA"},
	{Name: "Air France", ICAO: "AFR", IATA: "AF"},
	{Name: "Lufthansa", ICAO: "DLH", IATA: "LH"},
	{Name: "KLM", ICAO: "KLM", IATA: "KL"},
}

// UnknownAirlineName labels lookup results whose operator could not be
// resolved. Callers use it to recognize placeholder data.
const UnknownAirlineName = "Unknown Airline"

// AirlineByIATA resolves the two-letter prefix of an IATA flight number.
func AirlineByIATA(code string) (Airline, bool) {
	for _, a := range Airlines {
		if strings.EqualFold(a.IATA, code) {
			return a, true
		}
	}
	return Airline{}, false
}

// AirlineByICAO resolves the three-letter prefix of an ICAO callsign.
func AirlineByICAO(code string) (Airline, bool) {
	for _, a := range Airlines {
		if strings.EqualFold(a.ICAO, code) {
			return a, true
		}
	}
	return Airline{}, false
}

// AirportCity returns the city name for an ICAO airport code, or the code
// itself when it is not in the table.
func AirportCity(icao string) string {
	for _, a := range Airports {
		if a.ICAO == icao {
			return a.Name
		}
	}
	return icao
}

// ToICAOCallsign converts an IATA flight number like "SU1234" to the ICAO
// callsign "AFL1234". Unknown airline prefixes pass through unchanged.
func ToICAOCallsign(flightNumber string) string {
	if len(flightNumber) < 2 {
		return flightNumber
	}
	airline, ok := AirlineByIATA(flightNumber[:2])
	if !ok {
		return flightNumber
	}
	return airline.ICAO + flightNumber[2:]
}

// ToIATAFlightNumber converts an ICAO callsign like "AFL1234" back to the
// IATA flight number "SU1234". Unknown callsign prefixes pass through.
func ToIATAFlightNumber(callsign string) string {
	if len(callsign) < 3 {
		return callsign
	}
	airline, ok := AirlineByICAO(callsign[:3])
	if !ok {
		return callsign
	}
	return airline.IATA + callsign[3:]
}
