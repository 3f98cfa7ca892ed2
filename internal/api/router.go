package api

import (
	"magnumdrive/internal/auth"

	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP surface. Everything under /admin except login
// requires a valid admin token; registering further admins is itself an
// administrative mutation, so it sits behind the middleware too (the first
// account is seeded at startup).
func NewRouter(public *PublicHandler, admin *AdminHandler, invoice *InvoiceHandler, adminAuth *AdminAuthHandler) *mux.Router {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/cars", public.ListCars).Methods("GET")
	r.HandleFunc("/api/cars/{id}", public.GetCar).Methods("GET")
	r.HandleFunc("/api/cities", public.ListCities).Methods("GET")
	r.HandleFunc("/api/quote", public.Quote).Methods("POST")
	r.HandleFunc("/api/bookings", public.CreateBooking).Methods("POST")
	r.HandleFunc("/api/settings", public.ListSettings).Methods("GET")

	r.HandleFunc("/admin/login", adminAuth.Login).Methods("POST")

	// Admin endpoints (protected)
	protected := r.PathPrefix("/admin").Subrouter()
	protected.Use(auth.AdminAuthMiddleware)
	protected.HandleFunc("/register", adminAuth.Register).Methods("POST")
	protected.HandleFunc("/bookings", admin.ListBookings).Methods("GET")
	protected.HandleFunc("/bookings/{id}", admin.GetBooking).Methods("GET")
	protected.HandleFunc("/bookings/{id}/status", admin.TransitionBooking).Methods("PUT")
	protected.HandleFunc("/bookings/{id}/handover", admin.BookingHandover).Methods("PUT")
	protected.HandleFunc("/bookings/{id}/invoice", invoice.Download).Methods("GET")
	protected.HandleFunc("/calendar", admin.Calendar).Methods("GET")
	protected.HandleFunc("/revenue", admin.RevenueReport).Methods("GET")
	protected.HandleFunc("/cars", admin.ListCars).Methods("GET")
	protected.HandleFunc("/cars", admin.CreateCar).Methods("POST")
	protected.HandleFunc("/cars/{id}", admin.UpdateCar).Methods("PUT")
	protected.HandleFunc("/cars/{id}/share", admin.UpdateCarShare).Methods("PUT")
	protected.HandleFunc("/cars/{id}", admin.DeleteCar).Methods("DELETE")
	protected.HandleFunc("/settings/{key}", admin.UpdateSetting).Methods("PUT")

	return r
}
