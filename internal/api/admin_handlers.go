package api

import (
	"encoding/json"
	"net/http"
	"time"

	"magnumdrive/internal/entities"
	"magnumdrive/internal/service"

	"github.com/gorilla/mux"
)

// AdminHandler serves the back-office endpoints behind the auth middleware.
type AdminHandler struct {
	Bookings *service.BookingService
	Cars     *service.CarService
	Revenue  *service.RevenueService
	Settings *service.SettingsService
}

func NewAdminHandler(bookings *service.BookingService, cars *service.CarService, revenue *service.RevenueService, settings *service.SettingsService) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Cars: cars, Revenue: revenue, Settings: settings}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.Bookings.ListBookings(q.Get("status"), q.Get("city"), q.Get("car_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.GetBooking(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *AdminHandler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	b, err := h.Bookings.Transition(mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *AdminHandler) BookingHandover(w http.ResponseWriter, r *http.Request) {
	var req entities.HandoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	b, err := h.Bookings.Handover(mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *AdminHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	cal, err := h.Bookings.Calendar(month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (h *AdminHandler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Revenue.Report(time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *AdminHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Cars.ListCars(r.URL.Query().Get("city"), true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *AdminHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req entities.CarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	car, err := h.Cars.CreateCar(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *AdminHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	var req entities.CarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	car, err := h.Cars.UpdateCar(mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *AdminHandler) UpdateCarShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerSharePercent int `json:"ownerSharePercent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Cars.UpdateShare(mux.Vars(r)["id"], req.OwnerSharePercent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Owner share updated"})
}

func (h *AdminHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	if err := h.Cars.DeleteCar(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Car deleted"})
}

func (h *AdminHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req entities.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	setting, err := h.Settings.UpdateSetting(mux.Vars(r)["key"], &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}
