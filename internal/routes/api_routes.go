package routes

import (
	"avialog/backend/internal/api"
	"avialog/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	userSvc := deps.Services.Users
	flightSvc := deps.Services.Flights

	// Public auth routes
	r.Route("/auth", func(pub chi.Router) {
		pub.Post("/register", api.RegisterHandler(userSvc))
		pub.Post("/login", api.LoginHandler(userSvc))
		pub.Post("/logout", api.LogoutHandler(userSvc))
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Services.Session)) // global: all routes must be authenticated

		v1.Get("/user/details", api.UserDetailsHandler(userSvc))
		v1.Get("/users/compare", api.CompareUsersHandler(userSvc))

		v1.Get("/stats", api.UserStatsHandler(deps.Services.Stats))

		v1.Route("/flights", func(flights chi.Router) {
			flights.Post("/", api.CreateFlightHandler(flightSvc))
			flights.Get("/", api.ListFlightsHandler(flightSvc))
			flights.Get("/lookup", api.FlightLookupHandler(deps.Services.Lookup))
			flights.Post("/import", api.ImportFlightsHandler(flightSvc))
			flights.Get("/export", api.ExportFlightsHandler(flightSvc))
			flights.Get("/{flight_id}", api.GetFlightHandler(flightSvc))
			flights.Put("/{flight_id}", api.UpdateFlightHandler(flightSvc))
			flights.Delete("/{flight_id}", api.DeleteFlightHandler(flightSvc))
		})
	})
}
