package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevents/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(events *controllers.EventController, bookings *controllers.BookingController, health *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /api/events", events.CreateEvent)
	mux.HandleFunc("GET /api/events", events.ListEvents)
	mux.HandleFunc("GET /api/events/{slug}", events.GetEvent)
	mux.HandleFunc("PATCH /api/events/{id}", events.UpdateEvent)
	mux.HandleFunc("GET /api/events/{slug}/similar", events.ListSimilarEvents)
	mux.HandleFunc("GET /api/events/{slug}/calendar.ics", events.ExportCalendar)

	// Bookings
	mux.HandleFunc("POST /api/bookings", bookings.CreateBooking)

	mux.HandleFunc("GET /healthz", health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
