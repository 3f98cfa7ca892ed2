package api

import (
	"encoding/json"
	"net/http"

	"magnumdrive/internal/entities"
	"magnumdrive/internal/service"

	"github.com/gorilla/mux"
)

// PublicHandler serves the customer-facing endpoints: browsing the fleet,
// pricing a date range and submitting a rental request.
type PublicHandler struct {
	Bookings *service.BookingService
	Cars     *service.CarService
	Settings *service.SettingsService
}

func NewPublicHandler(bookings *service.BookingService, cars *service.CarService, settings *service.SettingsService) *PublicHandler {
	return &PublicHandler{Bookings: bookings, Cars: cars, Settings: settings}
}

func (h *PublicHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Cars.ListCars(r.URL.Query().Get("city"), false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *PublicHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	car, err := h.Cars.GetCar(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *PublicHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entities.Cities)
}

func (h *PublicHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req entities.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	quote, err := h.Bookings.Quote(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *PublicHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Bookings.CreateBooking(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *PublicHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.ListSettings()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
