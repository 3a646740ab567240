package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"avialog/backend/internal/auth"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// CreateFlightHandler godoc
// @Summary      Record a flight
// @Description  Creates a flight record for the authenticated user. When the
//               store is unavailable the record comes back with a local id and
//               durable=false.
// @Tags         Flights
// @Accept       json
// @Produce      json
// @Success      201  {object}  dtos.APIResponse[dtos.FlightResponse]
// @Failure      400,401  {object}  dtos.APIResponse[any]
// @Router       /api/v1/flights [post]
func CreateFlightHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req dtos.FlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if missing := req.Validate(); len(missing) > 0 {
			respondWithError(w, http.StatusBadRequest,
				fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
			return
		}

		resp, err := fltSvc.CreateFlight(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusCreated, resp)
	}
}

// ListFlightsHandler returns the user's flights, newest first. Accepts the
// same filter query parameters as the stats endpoint.
func ListFlightsHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		filter, err := parseFilter(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		flights, err := fltSvc.ListFlights(r.Context(), claims.UserID(), filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, services.FlightListToResponse(flights))
	}
}

func GetFlightHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		flightID := chi.URLParam(r, "flight_id")

		resp, err := fltSvc.GetFlight(r.Context(), claims.UserID(), flightID)
		if services.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "Flight not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, resp)
	}
}

func UpdateFlightHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		flightID := chi.URLParam(r, "flight_id")

		var req dtos.FlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if missing := req.Validate(); len(missing) > 0 {
			respondWithError(w, http.StatusBadRequest,
				fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
			return
		}

		resp, err := fltSvc.UpdateFlight(r.Context(), claims.UserID(), flightID, &req)
		if services.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "Flight not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, resp)
	}
}

func DeleteFlightHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		flightID := chi.URLParam(r, "flight_id")

		err := fltSvc.DeleteFlight(r.Context(), claims.UserID(), flightID)
		if services.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "Flight not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ImportFlightsHandler godoc
// @Summary      Bulk import flights from CSV
// @Description  Accepts either a raw text/csv body or a multipart upload with
//               a "file" field. Bad rows are skipped and reported.
// @Tags         Flights
// @Produce      json
// @Success      200  {object}  dtos.APIResponse[dtos.ImportResponse]
// @Router       /api/v1/flights/import [post]
func ImportFlightsHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var src io.Reader = r.Body
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			file, _, err := r.FormFile("file")
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Missing file upload")
				return
			}
			defer file.Close()
			src = file
		}

		resp, err := fltSvc.ImportCSV(r.Context(), claims.UserID(), src)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, resp)
	}
}

// ExportFlightsHandler streams the user's full log as a CSV attachment.
func ExportFlightsHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		data, err := fltSvc.ExportCSV(r.Context(), claims.UserID())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="flights.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
