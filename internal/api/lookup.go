package api

import (
	"net/http"
	"time"

	"avialog/backend/internal/services"
)

// FlightLookupHandler godoc
// @Summary      Look up flight details by number
// @Description  Resolves a flight number against the external provider. On
//               provider failure the response carries generated placeholder
//               data instead of an error.
// @Tags         Flights
// @Produce      json
// @Param        flight_number  query  string  true   "Flight number, e.g. SU100"
// @Param        date           query  string  false  "Flight date (YYYY-MM-DD), defaults to today"
// @Success      200  {object}  dtos.APIResponse[dtos.LookupResponse]
// @Failure      400  {object}  dtos.APIResponse[any]
// @Router       /api/v1/flights/lookup [get]
func FlightLookupHandler(lookupSvc *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightNumber := r.URL.Query().Get("flight_number")
		if flightNumber == "" {
			respondWithError(w, http.StatusBadRequest, "Missing 'flight_number' parameter")
			return
		}

		// A malformed date falls back to today; a missing flight number is
		// the only client error this endpoint reports.
		date := time.Now().UTC()
		if v := r.URL.Query().Get("date"); v != "" {
			if parsed, err := time.Parse(filterDateLayout, v); err == nil {
				date = parsed
			}
		}

		resp := lookupSvc.Lookup(r.Context(), flightNumber, date)
		respondWithSuccess(w, http.StatusOK, resp)
	}
}
