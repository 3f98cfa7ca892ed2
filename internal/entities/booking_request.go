package entities

import (
	"fmt"
	"strings"
	"time"
)

// QuoteRequest asks for a price over a car's rate card. Dates and times
// arrive as the booking form submits them: separate date and time fields.
type QuoteRequest struct {
	CarID     string `json:"carId"`
	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndDate   string `json:"endDate"`
	EndTime   string `json:"endTime"`
}

// Instants combines the split date/time fields into timestamps.
func (r *QuoteRequest) Instants() (start, end time.Time, err error) {
	start, err = parseDateTime(r.StartDate, r.StartTime)
	if err != nil {
		return start, end, fmt.Errorf("invalid start: %w", err)
	}
	end, err = parseDateTime(r.EndDate, r.EndTime)
	if err != nil {
		return start, end, fmt.Errorf("invalid end: %w", err)
	}
	return start, end, nil
}

func parseDateTime(date, clock string) (time.Time, error) {
	if clock == "" {
		clock = "09:00"
	}
	return time.Parse("2006-01-02 15:04", date+" "+clock)
}

// BookingRequest is the public submission that opens a Pending booking.
type BookingRequest struct {
	QuoteRequest
	CityID         string `json:"cityId"`
	CustomerName   string `json:"customerName"`
	CustomerPhone  string `json:"customerPhone"`
	CustomerEmail  string `json:"customerEmail"`
	Occupation     string `json:"occupation"`
	Address        string `json:"address"`
	TripLocation   string `json:"tripLocation"`
	TripPurpose    string `json:"tripPurpose"`
	DeliveryNeeded bool   `json:"deliveryNeeded"`
}

// Validate checks the required customer fields. Date-range validity is the
// pricing calculator's call; the service rejects invalid quotes separately.
func (r *BookingRequest) Validate() error {
	required := []struct {
		field, value string
	}{
		{"carId", r.CarID},
		{"customerName", r.CustomerName},
		{"customerPhone", r.CustomerPhone},
		{"customerEmail", r.CustomerEmail},
		{"address", r.Address},
		{"tripLocation", r.TripLocation},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required", f.field)
		}
	}
	if !strings.Contains(r.CustomerEmail, "@") {
		return fmt.Errorf("customerEmail is not a valid email address")
	}
	return nil
}

// TransitionRequest moves a booking to a new lifecycle status. EndKM only
// applies when closing a trip and is not mandatory.
type TransitionRequest struct {
	Status string `json:"status"`
	EndKM  int    `json:"endKm,omitempty"`
}

// HandoverRequest is the admin delivery data-entry step payload.
type HandoverRequest struct {
	StartKM          int      `json:"startKm"`
	DeliveryDateTime string   `json:"deliveryDateTime"`
	FuelLevel        string   `json:"fuelLevel"`
	FASTagStatus     string   `json:"fastTagStatus"`
	SignatureURL     string   `json:"signatureUrl"`
	IDProofURLs      []string `json:"idProofUrls"`
	CustomerPhotoURL string   `json:"customerPhotoUrl"`
}
