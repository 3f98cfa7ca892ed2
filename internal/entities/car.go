package entities

import (
	"fmt"
	"time"

	"magnumdrive/internal/db"
)

// Car is the API-facing vehicle shape. Attribute names are camelCase;
// the snake_case column convention stays behind the repository boundary.
type Car struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SeaterType         string    `json:"type"`
	Gear               string    `json:"gear"`
	Fuel               string    `json:"fuel"`
	Price12h           int       `json:"price12h"`
	Price24h           int       `json:"price24h"`
	Mileage            string    `json:"mileage"`
	ImageURL           string    `json:"image"`
	CityID             string    `json:"cityId"`
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	IsMaintenance      bool      `json:"isMaintenance"`
	OwnerName          string    `json:"ownerName,omitempty"`
	OwnerPhone         string    `json:"ownerPhone,omitempty"`
	OwnerSharePercent  int       `json:"ownerSharePercent"`
	TotalRevenue       int       `json:"totalRevenue"`
	TotalBookings      int       `json:"totalBookings"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CarFromRow maps a database row onto the API shape.
func CarFromRow(row db.Car) Car {
	return Car{
		ID:                 row.ID,
		Name:               row.Name,
		SeaterType:         row.SeaterType,
		Gear:               row.Gear,
		Fuel:               row.Fuel,
		Price12h:           row.Price12h,
		Price24h:           row.Price24h,
		Mileage:            row.Mileage,
		ImageURL:           row.ImageURL,
		CityID:             row.CityID,
		RegistrationNumber: row.RegistrationNumber,
		IsMaintenance:      row.IsMaintenance,
		OwnerName:          row.OwnerName,
		OwnerPhone:         row.OwnerPhone,
		OwnerSharePercent:  row.OwnerSharePercent,
		TotalRevenue:       row.TotalRevenue,
		TotalBookings:      row.TotalBookings,
		CreatedAt:          row.CreatedAt,
	}
}

// CarRequest is the admin payload for creating or updating a fleet car.
type CarRequest struct {
	Name               string `json:"name"`
	SeaterType         string `json:"type"`
	Gear               string `json:"gear"`
	Fuel               string `json:"fuel"`
	Price12h           int    `json:"price12h"`
	Price24h           int    `json:"price24h"`
	Mileage            string `json:"mileage"`
	ImageURL           string `json:"image"`
	CityID             string `json:"cityId"`
	RegistrationNumber string `json:"registrationNumber"`
	IsMaintenance      bool   `json:"isMaintenance"`
	OwnerName          string `json:"ownerName"`
	OwnerPhone         string `json:"ownerPhone"`
	OwnerSharePercent  *int   `json:"ownerSharePercent"`
}

// Validate checks enumerations and price/share bounds.
func (r *CarRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("car name is required")
	}
	switch r.SeaterType {
	case "4-Seater", "6-Seater", "7-Seater":
	default:
		return fmt.Errorf("invalid seater type %q", r.SeaterType)
	}
	switch r.Gear {
	case "Manual", "Automatic":
	default:
		return fmt.Errorf("invalid gear %q", r.Gear)
	}
	switch r.Fuel {
	case "Petrol", "Diesel", "Electric":
	default:
		return fmt.Errorf("invalid fuel type %q", r.Fuel)
	}
	if r.Price12h < 0 || r.Price24h < 0 {
		return fmt.Errorf("prices must be non-negative")
	}
	if r.OwnerSharePercent != nil && (*r.OwnerSharePercent < 0 || *r.OwnerSharePercent > 100) {
		return fmt.Errorf("owner share percent must be between 0 and 100")
	}
	return nil
}

// SharePercent returns the requested owner share, defaulting to 100 when
// the field was omitted (the car is fully platform-owned).
func (r *CarRequest) SharePercent() int {
	if r.OwnerSharePercent == nil {
		return 100
	}
	return *r.OwnerSharePercent
}
