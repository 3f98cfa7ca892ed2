package service

import (
	"log"
	"time"

	"magnumdrive/internal/db"
	"magnumdrive/internal/entities"
	apperrors "magnumdrive/internal/errors"

	"github.com/google/uuid"
)

// FleetStore is the car repository surface the fleet service needs.
type FleetStore interface {
	List(cityID string, includeMaintenance bool) ([]db.Car, error)
	GetByID(id string) (*db.Car, error)
	Create(c *db.Car) error
	Update(c *db.Car) error
	UpdateSharePercent(id string, percent int) error
	Delete(id string) error
}

// BookingCounter guards car deletion against live bookings.
type BookingCounter interface {
	ActiveCountForCar(carID string, statuses []string) (int, error)
}

type CarService struct {
	Repo     FleetStore
	Bookings BookingCounter
}

func NewCarService(repo FleetStore, bookings BookingCounter) *CarService {
	return &CarService{Repo: repo, Bookings: bookings}
}

// ListCars returns the fleet; the public site hides maintenance cars, the
// back office sees everything.
func (s *CarService) ListCars(cityID string, includeMaintenance bool) ([]entities.Car, error) {
	rows, err := s.Repo.List(cityID, includeMaintenance)
	if err != nil {
		return nil, apperrors.ErrInternal("could not list cars")
	}
	cars := make([]entities.Car, 0, len(rows))
	for _, row := range rows {
		cars = append(cars, entities.CarFromRow(row))
	}
	return cars, nil
}

func (s *CarService) GetCar(id string) (*entities.Car, error) {
	row, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "car not found")
	}
	car := entities.CarFromRow(*row)
	return &car, nil
}

func (s *CarService) CreateCar(req *entities.CarRequest) (*entities.Car, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.ErrValidation(err.Error())
	}
	row := &db.Car{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		SeaterType:         req.SeaterType,
		Gear:               req.Gear,
		Fuel:               req.Fuel,
		Price12h:           req.Price12h,
		Price24h:           req.Price24h,
		Mileage:            req.Mileage,
		ImageURL:           req.ImageURL,
		CityID:             req.CityID,
		RegistrationNumber: req.RegistrationNumber,
		IsMaintenance:      req.IsMaintenance,
		OwnerName:          req.OwnerName,
		OwnerPhone:         req.OwnerPhone,
		OwnerSharePercent:  req.SharePercent(),
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.Repo.Create(row); err != nil {
		log.Printf("Error creating car in repository: %v", err)
		return nil, apperrors.ErrInternal("could not create car")
	}
	car := entities.CarFromRow(*row)
	return &car, nil
}

func (s *CarService) UpdateCar(id string, req *entities.CarRequest) (*entities.Car, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.ErrValidation(err.Error())
	}
	row, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "car not found")
	}

	row.Name = req.Name
	row.SeaterType = req.SeaterType
	row.Gear = req.Gear
	row.Fuel = req.Fuel
	row.Price12h = req.Price12h
	row.Price24h = req.Price24h
	row.Mileage = req.Mileage
	row.ImageURL = req.ImageURL
	row.CityID = req.CityID
	row.RegistrationNumber = req.RegistrationNumber
	row.IsMaintenance = req.IsMaintenance
	row.OwnerName = req.OwnerName
	row.OwnerPhone = req.OwnerPhone
	row.OwnerSharePercent = req.SharePercent()

	if err := s.Repo.Update(row); err != nil {
		return nil, apperrors.ErrInternal("could not update car")
	}
	car := entities.CarFromRow(*row)
	return &car, nil
}

// UpdateShare edits the owner revenue share. It affects future revenue
// reads only; nothing historical is recomputed or stored.
func (s *CarService) UpdateShare(id string, percent int) error {
	if percent < 0 || percent > 100 {
		return apperrors.ErrValidation("owner share percent must be between 0 and 100")
	}
	if err := s.Repo.UpdateSharePercent(id, percent); err != nil {
		return lookupErr(err, "car not found")
	}
	return nil
}

// DeleteCar removes a car. Deletion is refused while any non-terminal
// booking still references it.
func (s *CarService) DeleteCar(id string) error {
	count, err := s.Bookings.ActiveCountForCar(id, activeStatuses())
	if err != nil {
		return apperrors.ErrInternal("could not check bookings for car")
	}
	if count > 0 {
		return apperrors.ErrConflict("car has active bookings and cannot be deleted")
	}
	if err := s.Repo.Delete(id); err != nil {
		return lookupErr(err, "car not found")
	}
	return nil
}
