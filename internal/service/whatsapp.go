package service

import (
	"fmt"
	"net/url"

	"magnumdrive/internal/entities"
)

// defaultAdminWhatsApp is used when no whatsapp_number setting exists.
const defaultAdminWhatsApp = "917845012402"

// BuildWhatsAppLink drafts the new-booking summary and wraps it in a
// wa.me deep link the frontend opens. Delivery is never confirmed; the
// link is a pure handoff to the messaging app.
func BuildWhatsAppLink(adminPhone string, b entities.BookingResponse, carName string) string {
	if adminPhone == "" {
		adminPhone = defaultAdminWhatsApp
	}

	message := fmt.Sprintf(
		"*New Booking Request*\n\n"+
			"Car: %s\n"+
			"Customer: %s\n"+
			"Phone: %s\n"+
			"City: %s\n"+
			"Dates: %s to %s\n"+
			"Total Days: %d\n"+
			"Total Amount: Rs. %d (incl. Rs. %d deposit)",
		carName, b.CustomerName, b.CustomerPhone, b.CityID,
		b.StartAt.Format("2006-01-02 15:04"), b.EndAt.Format("2006-01-02 15:04"),
		b.TripDays, b.TotalAmount, b.DepositAmount,
	)

	return "https://wa.me/" + adminPhone + "?text=" + url.QueryEscape(message)
}
