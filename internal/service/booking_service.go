package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"magnumdrive/internal/booking"
	"magnumdrive/internal/db"
	"magnumdrive/internal/entities"
	apperrors "magnumdrive/internal/errors"
	"magnumdrive/internal/repository"

	"github.com/google/uuid"
)

// BookingStore is the persistence surface the booking service needs.
// *repository.BookingRepository satisfies it; tests plug in mocks.
type BookingStore interface {
	Create(b *db.Booking) error
	GetByID(id string) (*db.Booking, error)
	List(status, cityID, carID string) ([]db.Booking, error)
	UpdateStatus(id, status string) error
	ApplyHandover(id, status string, h repository.HandoverUpdate) error
	Complete(id string, endKM int, status string) error
	ListOverlapping(carID string, start, end time.Time, statuses []string, excludeID string) ([]db.Booking, error)
	ListActiveInRange(from, to time.Time, statuses []string) ([]db.Booking, error)
}

// CarStore is the slice of the car repository the booking flow touches.
type CarStore interface {
	GetByID(id string) (*db.Car, error)
	List(cityID string, includeMaintenance bool) ([]db.Car, error)
	AddCompletedBooking(id string, netAmount int) error
}

type BookingService struct {
	Repo     BookingStore
	Cars     CarStore
	Settings *SettingsService
	Notifier *NotifyService
}

func NewBookingService(repo BookingStore, cars CarStore, settings *SettingsService, notifier *NotifyService) *BookingService {
	return &BookingService{Repo: repo, Cars: cars, Settings: settings, Notifier: notifier}
}

func activeStatuses() []string {
	return []string{
		string(booking.StatusPending),
		string(booking.StatusApproved),
		string(booking.StatusReadyForPickup),
	}
}

// lookupErr keeps missing rows and genuine storage failures apart when
// mapping a repository lookup onto the HTTP taxonomy.
func lookupErr(err error, notFound string) error {
	if errors.Is(err, repository.ErrNoRows) {
		return apperrors.ErrNotFound(notFound)
	}
	return apperrors.ErrInternal("storage failure")
}

// occupyingStatuses are the states the approval overlap guard checks
// against. Pending requests may overlap each other freely.
func occupyingStatuses() []string {
	return []string{
		string(booking.StatusApproved),
		string(booking.StatusReadyForPickup),
	}
}

// Quote prices a date range against a car's rate card without persisting
// anything.
func (s *BookingService) Quote(req *entities.QuoteRequest) (booking.PriceQuote, error) {
	car, err := s.Cars.GetByID(req.CarID)
	if err != nil {
		return booking.PriceQuote{}, lookupErr(err, "car not found")
	}
	start, end, err := req.Instants()
	if err != nil {
		return booking.PriceQuote{}, apperrors.ErrValidation(err.Error())
	}
	return booking.Quote(start, end, car.Price12h, car.Price24h), nil
}

// CreateBooking validates a public submission, persists it in the Pending
// state and returns it together with the WhatsApp handoff link.
func (s *BookingService) CreateBooking(req *entities.BookingRequest) (*entities.CreateBookingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.ErrValidation(err.Error())
	}

	car, err := s.Cars.GetByID(req.CarID)
	if err != nil {
		return nil, lookupErr(err, "car not found")
	}
	if car.IsMaintenance {
		return nil, apperrors.ErrValidation("car is under maintenance and cannot be booked")
	}

	start, end, err := req.Instants()
	if err != nil {
		return nil, apperrors.ErrValidation(err.Error())
	}
	quote := booking.Quote(start, end, car.Price12h, car.Price24h)
	if !quote.Valid() {
		return nil, apperrors.ErrValidation("end of rental must be after its start")
	}

	row := &db.Booking{
		ID:             uuid.NewString(),
		CarID:          car.ID,
		CityID:         req.CityID,
		Status:         string(booking.StatusPending),
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		Occupation:     req.Occupation,
		Address:        req.Address,
		TripLocation:   req.TripLocation,
		TripPurpose:    req.TripPurpose,
		TripDays:       quote.Days,
		DeliveryNeeded: req.DeliveryNeeded,
		StartAt:        start,
		EndAt:          end,
		TotalAmount:    quote.TotalAmount,
		DepositAmount:  quote.DepositAmount,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(row); err != nil {
		log.Printf("Error creating booking in repository: %v", err)
		return nil, apperrors.ErrInternal("could not create booking")
	}

	resp := entities.BookingFromRow(*row)
	link := BuildWhatsAppLink(s.adminWhatsAppNumber(), resp, car.Name)
	return &entities.CreateBookingResponse{Booking: resp, WhatsAppLink: link}, nil
}

func (s *BookingService) GetBooking(id string) (*entities.BookingResponse, error) {
	row, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "booking not found")
	}
	resp := entities.BookingFromRow(*row)
	return &resp, nil
}

func (s *BookingService) ListBookings(status, cityID, carID string) (*entities.BookingsList, error) {
	if status != "" {
		if _, err := booking.ParseStatus(status); err != nil {
			return nil, apperrors.ErrValidation(err.Error())
		}
	}
	rows, err := s.Repo.List(status, cityID, carID)
	if err != nil {
		return nil, apperrors.ErrInternal("could not list bookings")
	}
	list := &entities.BookingsList{Total: len(rows)}
	for _, row := range rows {
		list.Bookings = append(list.Bookings, entities.BookingFromRow(row))
	}
	return list, nil
}

// Transition applies a lifecycle status change. Illegal edges fail without
// touching the row. Approving a booking that overlaps another approved
// booking for the same car is refused.
func (s *BookingService) Transition(id string, req *entities.TransitionRequest) (*entities.BookingResponse, error) {
	to, err := booking.ParseStatus(req.Status)
	if err != nil {
		return nil, apperrors.ErrValidation(err.Error())
	}

	row, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "booking not found")
	}
	from := booking.Status(row.Status)

	if to == booking.StatusReadyForPickup {
		return nil, apperrors.ErrValidation("use the handover step to mark a booking ready for pickup")
	}
	if !booking.CanTransition(from, to) {
		return nil, apperrors.ErrConflict("booking cannot move from " + string(from) + " to " + string(to))
	}

	if to == booking.StatusApproved {
		overlapping, err := s.Repo.ListOverlapping(row.CarID, row.StartAt, row.EndAt, occupyingStatuses(), row.ID)
		if err != nil {
			return nil, apperrors.ErrInternal("could not check overlapping bookings")
		}
		if len(overlapping) > 0 {
			return nil, apperrors.ErrConflict("car already has an approved booking in this date range")
		}
	}

	if to == booking.StatusCompleted {
		if err := s.Repo.Complete(id, req.EndKM, string(to)); err != nil {
			return nil, apperrors.ErrInternal("could not complete booking")
		}
		if req.EndKM > 0 {
			endKM := req.EndKM
			row.EndKM = &endKM
		}
		// Counter update is a separate row write with no transactional tie
		// to the status change. Log and move on if it fails.
		net := row.TotalAmount - row.DepositAmount
		if net > 0 {
			_ = s.Cars.AddCompletedBooking(row.CarID, net)
		}
	} else {
		if err := s.Repo.UpdateStatus(id, string(to)); err != nil {
			return nil, apperrors.ErrInternal("could not update booking status")
		}
	}

	row.Status = string(to)
	resp := entities.BookingFromRow(*row)
	if s.Notifier != nil {
		s.Notifier.NotifyStatusChange(resp)
	}
	return &resp, nil
}

// Handover records the delivery data-entry step and advances an approved
// booking to Ready for Pickup in a single write.
func (s *BookingService) Handover(id string, req *entities.HandoverRequest) (*entities.BookingResponse, error) {
	row, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "booking not found")
	}
	if !booking.CanTransition(booking.Status(row.Status), booking.StatusReadyForPickup) {
		return nil, apperrors.ErrConflict("handover requires an approved booking")
	}

	var deliveryAt time.Time
	if req.DeliveryDateTime != "" {
		deliveryAt, err = time.Parse(time.RFC3339, req.DeliveryDateTime)
		if err != nil {
			return nil, apperrors.ErrValidation("invalid delivery timestamp")
		}
	}
	h := booking.Handover{
		StartKM:          req.StartKM,
		DeliveryAt:       deliveryAt,
		FuelLevel:        req.FuelLevel,
		FASTagStatus:     req.FASTagStatus,
		SignatureURL:     req.SignatureURL,
		IDProofURLs:      req.IDProofURLs,
		CustomerPhotoURL: req.CustomerPhotoURL,
	}
	if err := h.Validate(); err != nil {
		return nil, apperrors.ErrValidation(err.Error())
	}

	update := repository.HandoverUpdate{
		StartKM:          h.StartKM,
		DeliveryAt:       h.DeliveryAt,
		FuelLevel:        h.FuelLevel,
		FASTagStatus:     h.FASTagStatus,
		SignatureURL:     h.SignatureURL,
		IDProofURLs:      h.IDProofURLs,
		CustomerPhotoURL: h.CustomerPhotoURL,
	}
	if err := s.Repo.ApplyHandover(id, string(booking.StatusReadyForPickup), update); err != nil {
		return nil, apperrors.ErrInternal("could not save handover details")
	}
	return s.GetBooking(id)
}

// Calendar builds the per-car availability grid for one month. A day is
// covered when an active booking's inclusive date range contains it.
func (s *BookingService) Calendar(month string) (*entities.CalendarResponse, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperrors.ErrValidation("month must be formatted YYYY-MM")
	}
	next := first.AddDate(0, 1, 0)

	cars, err := s.Cars.List("", true)
	if err != nil {
		return nil, apperrors.ErrInternal("could not list cars")
	}
	bookings, err := s.Repo.ListActiveInRange(first, next.Add(-time.Second), activeStatuses())
	if err != nil {
		return nil, apperrors.ErrInternal("could not list bookings")
	}

	resp := &entities.CalendarResponse{Month: month}
	for _, car := range cars {
		row := entities.CarCalendar{CarID: car.ID, CarName: car.Name, IsMaintenance: car.IsMaintenance}
		for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
			cov := entities.DayCoverage{Date: day.Format("2006-01-02")}
			if b := coveringBooking(bookings, car.ID, day); b != nil {
				cov.BookingID = b.ID
				cov.Status = b.Status
				cov.CustomerName = b.CustomerName
			}
			row.Days = append(row.Days, cov)
		}
		resp.Cars = append(resp.Cars, row)
	}
	return resp, nil
}

// coveringBooking scans for an active booking of the car whose date range
// contains the day, comparing calendar dates inclusively.
func coveringBooking(bookings []db.Booking, carID string, day time.Time) *db.Booking {
	dayDate := day.Truncate(24 * time.Hour)
	for i := range bookings {
		b := &bookings[i]
		if b.CarID != carID {
			continue
		}
		start := b.StartAt.Truncate(24 * time.Hour)
		end := b.EndAt.Truncate(24 * time.Hour)
		if !dayDate.Before(start) && !dayDate.After(end) {
			return b
		}
	}
	return nil
}

func (s *BookingService) adminWhatsAppNumber() string {
	if s.Settings == nil {
		return ""
	}
	return s.Settings.Value("whatsapp_number")
}
