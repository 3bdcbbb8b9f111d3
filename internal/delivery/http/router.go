package http

import (
	"net/http"

	"parking-slot-backend/internal/delivery/http/handler"
	"parking-slot-backend/internal/delivery/http/middleware"
	"parking-slot-backend/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	slotHandler       *handler.SlotHandler
	bookingHandler    *handler.BookingHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	slotHandler *handler.SlotHandler,
	bookingHandler *handler.BookingHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		slotHandler:       slotHandler,
		bookingHandler:    bookingHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Slots
	api.HandleFunc("/slots", r.slotHandler.GetSlots).Methods(http.MethodGet)

	// Bookings
	api.HandleFunc("/bookings", r.bookingHandler.GetBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/auto-allocate", r.bookingHandler.AutoAllocate).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPut)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Message(w, http.StatusOK, "API is running")
}
