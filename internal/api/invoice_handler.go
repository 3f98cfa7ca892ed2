package api

import (
	"net/http"
	"strconv"

	"magnumdrive/internal/service"

	"github.com/gorilla/mux"
)

// InvoiceHandler streams a booking's invoice PDF as a download.
type InvoiceHandler struct {
	Bookings *service.BookingService
	Cars     *service.CarService
	Invoices *service.InvoiceService
}

func NewInvoiceHandler(bookings *service.BookingService, cars *service.CarService, invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Bookings: bookings, Cars: cars, Invoices: invoices}
}

func (h *InvoiceHandler) Download(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.GetBooking(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	car, err := h.Cars.GetCar(b.CarID)
	if err != nil {
		writeError(w, err)
		return
	}

	data, filename, err := h.Invoices.Render(*b, *car)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
