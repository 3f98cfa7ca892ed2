package db

import (
	"time"

	"github.com/lib/pq"
)

// Car is a fleet vehicle row. Columns are snake_case in Postgres; the
// repositories map them onto these camelCase fields at scan time.
type Car struct {
	ID                 string
	Name               string
	SeaterType         string
	Gear               string
	Fuel               string
	Price12h           int
	Price24h           int
	Mileage            string
	ImageURL           string
	CityID             string
	RegistrationNumber string
	IsMaintenance      bool
	OwnerName          string
	OwnerPhone         string
	OwnerSharePercent  int
	TotalRevenue       int
	TotalBookings      int
	CreatedAt          time.Time
}

// Booking is a rental request row. Handover columns stay NULL until the
// admin runs the delivery data-entry step.
type Booking struct {
	ID               string
	CarID            string
	CityID           string
	Status           string
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    string
	Occupation       string
	Address          string
	TripLocation     string
	TripPurpose      string
	TripDays         int
	DeliveryNeeded   bool
	StartAt          time.Time
	EndAt            time.Time
	TotalAmount      int
	DepositAmount    int
	StartKM          *int
	EndKM            *int
	DeliveryAt       *time.Time
	FuelLevel        *string
	FASTagStatus     *string
	SignatureURL     *string
	IDProofURLs      pq.StringArray
	CustomerPhotoURL *string
	CreatedAt        time.Time
}

// Setting is one row of the keyed configuration store.
type Setting struct {
	Key         string
	Value       string
	Description string
	Category    string
}

// Admin is a back-office account. Password is stored as a bcrypt hash.
type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}
