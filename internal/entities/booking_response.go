package entities

import (
	"time"

	"magnumdrive/internal/db"
)

// BookingResponse is the API-facing booking shape, handover fields
// included once the lifecycle has advanced past Pending.
type BookingResponse struct {
	ID             string    `json:"id"`
	CarID          string    `json:"carId"`
	CityID         string    `json:"cityId"`
	Status         string    `json:"status"`
	CustomerName   string    `json:"customerName"`
	CustomerPhone  string    `json:"customerPhone"`
	CustomerEmail  string    `json:"customerEmail"`
	Occupation     string    `json:"occupation,omitempty"`
	Address        string    `json:"address,omitempty"`
	TripLocation   string    `json:"tripLocation,omitempty"`
	TripPurpose    string    `json:"tripPurpose,omitempty"`
	TripDays       int       `json:"tripDays"`
	DeliveryNeeded bool      `json:"deliveryNeeded"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	TotalAmount    int       `json:"totalAmount"`
	DepositAmount  int       `json:"depositAmount"`

	StartKM          *int       `json:"startKm,omitempty"`
	EndKM            *int       `json:"endKm,omitempty"`
	DeliveryAt       *time.Time `json:"deliveryDateTime,omitempty"`
	FuelLevel        *string    `json:"fuelLevel,omitempty"`
	FASTagStatus     *string    `json:"fastTagStatus,omitempty"`
	SignatureURL     *string    `json:"signatureUrl,omitempty"`
	IDProofURLs      []string   `json:"idProofUrls,omitempty"`
	CustomerPhotoURL *string    `json:"customerPhotoUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingFromRow maps a database row onto the API shape.
func BookingFromRow(row db.Booking) BookingResponse {
	return BookingResponse{
		ID:               row.ID,
		CarID:            row.CarID,
		CityID:           row.CityID,
		Status:           row.Status,
		CustomerName:     row.CustomerName,
		CustomerPhone:    row.CustomerPhone,
		CustomerEmail:    row.CustomerEmail,
		Occupation:       row.Occupation,
		Address:          row.Address,
		TripLocation:     row.TripLocation,
		TripPurpose:      row.TripPurpose,
		TripDays:         row.TripDays,
		DeliveryNeeded:   row.DeliveryNeeded,
		StartAt:          row.StartAt,
		EndAt:            row.EndAt,
		TotalAmount:      row.TotalAmount,
		DepositAmount:    row.DepositAmount,
		StartKM:          row.StartKM,
		EndKM:            row.EndKM,
		DeliveryAt:       row.DeliveryAt,
		FuelLevel:        row.FuelLevel,
		FASTagStatus:     row.FASTagStatus,
		SignatureURL:     row.SignatureURL,
		IDProofURLs:      row.IDProofURLs,
		CustomerPhotoURL: row.CustomerPhotoURL,
		CreatedAt:        row.CreatedAt,
	}
}

// CreateBookingResponse bundles the stored booking with the WhatsApp
// deep link the frontend opens so staff get notified of the request.
type CreateBookingResponse struct {
	Booking      BookingResponse `json:"booking"`
	WhatsAppLink string          `json:"whatsappLink"`
}

// BookingsList is a filtered admin listing.
type BookingsList struct {
	Total    int               `json:"total"`
	Bookings []BookingResponse `json:"bookings"`
}
