package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"avialog/backend/internal/auth"
	"avialog/backend/internal/services"
	"avialog/backend/internal/stats"
)

const filterDateLayout = "2006-01-02"

// parseFilter builds the flight filter from query parameters. All parameters
// are optional; date bounds are inclusive calendar dates.
func parseFilter(r *http.Request) (*stats.Filter, error) {
	q := r.URL.Query()
	filter := &stats.Filter{
		Airline:       q.Get("airline"),
		DepartureCity: q.Get("departure_city"),
		ArrivalCity:   q.Get("arrival_city"),
		Query:         q.Get("q"),
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(filterDateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("invalid 'from' date, expected YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(filterDateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("invalid 'to' date, expected YYYY-MM-DD")
		}
		filter.To = &t
	}

	return filter, nil
}

// UserStatsHandler godoc
// @Summary      Aggregate flight statistics
// @Description  Totals, per-category breakdowns, most flown routes and the
//               monthly activity series for the authenticated user, narrowed
//               by the optional filter parameters.
// @Tags         Stats
// @Produce      json
// @Param        from            query  string  false  "Start date (YYYY-MM-DD, inclusive)"
// @Param        to              query  string  false  "End date (YYYY-MM-DD, inclusive)"
// @Param        airline         query  string  false  "Exact airline name"
// @Param        departure_city  query  string  false  "Exact departure city"
// @Param        arrival_city    query  string  false  "Exact arrival city"
// @Param        q               query  string  false  "Substring match on flight number or airline"
// @Param        limit           query  int     false  "Top routes limit"  default(10)
// @Success      200  {object}  dtos.APIResponse[dtos.StatsResponse]
// @Failure      400  {object}  dtos.APIResponse[any]
// @Router       /api/v1/stats [get]
func UserStatsHandler(statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		filter, err := parseFilter(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
				return
			}
			limit = n
		}

		resp, err := statsSvc.BuildStats(r.Context(), claims.UserID(), filter, limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, resp)
	}
}
