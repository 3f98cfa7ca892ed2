package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"magnumdrive/internal/booking"
	"magnumdrive/internal/db"
	"magnumdrive/internal/entities"
	apperrors "magnumdrive/internal/errors"
	"magnumdrive/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingStore struct {
	bookings    map[string]*db.Booking
	overlapping []db.Booking
	inRange     []db.Booking
	getErr      error

	created       []*db.Booking
	statusUpdates map[string]string
	handovers     map[string]repository.HandoverUpdate
	completions   map[string]int
}

func newStubBookingStore() *stubBookingStore {
	return &stubBookingStore{
		bookings:      map[string]*db.Booking{},
		statusUpdates: map[string]string{},
		handovers:     map[string]repository.HandoverUpdate{},
		completions:   map[string]int{},
	}
}

func (s *stubBookingStore) Create(b *db.Booking) error {
	s.created = append(s.created, b)
	s.bookings[b.ID] = b
	return nil
}

func (s *stubBookingStore) GetByID(id string) (*db.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNoRows)
	}
	return b, nil
}

func (s *stubBookingStore) List(status, cityID, carID string) ([]db.Booking, error) {
	var out []db.Booking
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (s *stubBookingStore) UpdateStatus(id, status string) error {
	s.statusUpdates[id] = status
	return nil
}

func (s *stubBookingStore) ApplyHandover(id, status string, h repository.HandoverUpdate) error {
	s.handovers[id] = h
	s.bookings[id].Status = status
	return nil
}

func (s *stubBookingStore) Complete(id string, endKM int, status string) error {
	s.completions[id] = endKM
	return nil
}

func (s *stubBookingStore) ListOverlapping(carID string, start, end time.Time, statuses []string, excludeID string) ([]db.Booking, error) {
	return s.overlapping, nil
}

func (s *stubBookingStore) ListActiveInRange(from, to time.Time, statuses []string) ([]db.Booking, error) {
	return s.inRange, nil
}

type stubCarStore struct {
	cars      map[string]*db.Car
	completed map[string]int
	getErr    error
}

func newStubCarStore(cars ...*db.Car) *stubCarStore {
	s := &stubCarStore{cars: map[string]*db.Car{}, completed: map[string]int{}}
	for _, c := range cars {
		s.cars[c.ID] = c
	}
	return s
}

func (s *stubCarStore) GetByID(id string) (*db.Car, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	c, ok := s.cars[id]
	if !ok {
		return nil, fmt.Errorf("car %s: %w", id, repository.ErrNoRows)
	}
	return c, nil
}

func (s *stubCarStore) List(cityID string, includeMaintenance bool) ([]db.Car, error) {
	var out []db.Car
	for _, c := range s.cars {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCarStore) AddCompletedBooking(id string, netAmount int) error {
	s.completed[id] += netAmount
	return nil
}

func testCar() *db.Car {
	return &db.Car{ID: "car-1", Name: "Swift Dzire", Price12h: 1500, Price24h: 2500, CityID: "tirunelveli"}
}

func testBookingRequest() *entities.BookingRequest {
	return &entities.BookingRequest{
		QuoteRequest: entities.QuoteRequest{
			CarID:     "car-1",
			StartDate: "2025-03-10",
			StartTime: "09:00",
			EndDate:   "2025-03-11",
			EndTime:   "09:00",
		},
		CityID:        "tirunelveli",
		CustomerName:  "Arun Kumar",
		CustomerPhone: "9876543210",
		CustomerEmail: "arun@example.com",
		Address:       "12 Main Road, Tirunelveli",
		TripLocation:  "Kanyakumari",
	}
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestCreateBookingOpensPending(t *testing.T) {
	store := newStubBookingStore()
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	resp, err := svc.CreateBooking(testBookingRequest())
	require.NoError(t, err)
	require.Len(t, store.created, 1)

	row := store.created[0]
	assert.Equal(t, string(booking.StatusPending), row.Status)
	assert.Equal(t, 2500+booking.DepositAmount, row.TotalAmount)
	assert.Equal(t, 1, row.TripDays)
	assert.NotEmpty(t, row.ID)
	assert.Contains(t, resp.WhatsAppLink, "https://wa.me/")
	assert.Equal(t, row.ID, resp.Booking.ID)
}

func TestCreateBookingRejectsReversedRange(t *testing.T) {
	store := newStubBookingStore()
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	req := testBookingRequest()
	req.EndDate = "2025-03-09"
	_, err := svc.CreateBooking(req)
	assert.Equal(t, 400, httpCode(t, err))
	assert.Empty(t, store.created)
}

func TestCreateBookingRejectsMaintenanceCar(t *testing.T) {
	car := testCar()
	car.IsMaintenance = true
	svc := NewBookingService(newStubBookingStore(), newStubCarStore(car), nil, nil)

	_, err := svc.CreateBooking(testBookingRequest())
	assert.Equal(t, 400, httpCode(t, err))
}

func TestCreateBookingUnknownCar(t *testing.T) {
	svc := NewBookingService(newStubBookingStore(), newStubCarStore(), nil, nil)

	_, err := svc.CreateBooking(testBookingRequest())
	assert.Equal(t, 404, httpCode(t, err))
}

func seedBooking(store *stubBookingStore, status booking.Status) *db.Booking {
	b := &db.Booking{
		ID:            "bk-1",
		CarID:         "car-1",
		Status:        string(status),
		CustomerName:  "Arun Kumar",
		StartAt:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:         time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		TotalAmount:   10000,
		DepositAmount: 5000,
	}
	store.bookings[b.ID] = b
	return b
}

func TestTransitionApprove(t *testing.T) {
	store := newStubBookingStore()
	seedBooking(store, booking.StatusPending)
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	resp, err := svc.Transition("bk-1", &entities.TransitionRequest{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "Approved", resp.Status)
	assert.Equal(t, "Approved", store.statusUpdates["bk-1"])
}

func TestTransitionApproveOverlapConflict(t *testing.T) {
	store := newStubBookingStore()
	seedBooking(store, booking.StatusPending)
	store.overlapping = []db.Booking{{ID: "bk-2", Status: "Approved"}}
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	_, err := svc.Transition("bk-1", &entities.TransitionRequest{Status: "Approved"})
	assert.Equal(t, 409, httpCode(t, err))
	assert.Empty(t, store.statusUpdates)
}

func TestTransitionRejectsIllegalEdge(t *testing.T) {
	store := newStubBookingStore()
	seedBooking(store, booking.StatusPending)
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	// Pending cannot jump straight to Completed.
	_, err := svc.Transition("bk-1", &entities.TransitionRequest{Status: "Completed"})
	assert.Equal(t, 409, httpCode(t, err))

	_, err = svc.Transition("bk-1", &entities.TransitionRequest{Status: "Ready for Pickup"})
	assert.Equal(t, 400, httpCode(t, err))
}

func TestTransitionTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []booking.Status{booking.StatusRejected, booking.StatusCancelled, booking.StatusCompleted} {
		store := newStubBookingStore()
		seedBooking(store, terminal)
		svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

		_, err := svc.Transition("bk-1", &entities.TransitionRequest{Status: "Approved"})
		assert.Equal(t, 409, httpCode(t, err), "from %s", terminal)
	}
}

func TestTransitionCompleteRecordsTrip(t *testing.T) {
	store := newStubBookingStore()
	seedBooking(store, booking.StatusReadyForPickup)
	cars := newStubCarStore(testCar())
	svc := NewBookingService(store, cars, nil, nil)

	resp, err := svc.Transition("bk-1", &entities.TransitionRequest{Status: "Completed", EndKM: 12450})
	require.NoError(t, err)
	assert.Equal(t, "Completed", resp.Status)
	assert.Equal(t, 12450, store.completions["bk-1"])
	assert.Equal(t, 5000, cars.completed["car-1"])

	// The response carries the odometer reading that was just recorded.
	require.NotNil(t, resp.EndKM)
	assert.Equal(t, 12450, *resp.EndKM)
}

func TestHandoverRequiresApprovedBooking(t *testing.T) {
	store := newStubBookingStore()
	seedBooking(store, booking.StatusPending)
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	_, err := svc.Handover("bk-1", &entities.HandoverRequest{StartKM: 12000})
	assert.Equal(t, 409, httpCode(t, err))
}

func TestHandoverFillsDefaultsAndAdvances(t *testing.T) {
	store := newStubBookingStore()
	seedBooking(store, booking.StatusApproved)
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	resp, err := svc.Handover("bk-1", &entities.HandoverRequest{
		StartKM:          12000,
		DeliveryDateTime: "2025-03-10T09:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ready for Pickup", resp.Status)

	h := store.handovers["bk-1"]
	assert.Equal(t, 12000, h.StartKM)
	assert.Equal(t, booking.DefaultFuelLevel, h.FuelLevel)
	assert.Equal(t, booking.DefaultFASTagStatus, h.FASTagStatus)
}

func TestHandoverRejectsMissingStartKM(t *testing.T) {
	store := newStubBookingStore()
	seedBooking(store, booking.StatusApproved)
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	_, err := svc.Handover("bk-1", &entities.HandoverRequest{DeliveryDateTime: "2025-03-10T09:30:00Z"})
	assert.Equal(t, 400, httpCode(t, err))
	assert.Empty(t, store.handovers)
}

func TestCalendarCoversInclusiveRange(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, booking.StatusApproved)
	store.inRange = []db.Booking{*b}
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	resp, err := svc.Calendar("2025-03")
	require.NoError(t, err)
	require.Len(t, resp.Cars, 1)
	require.Len(t, resp.Cars[0].Days, 31)

	byDate := map[string]entities.DayCoverage{}
	for _, day := range resp.Cars[0].Days {
		byDate[day.Date] = day
	}
	for _, date := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		assert.Equal(t, "bk-1", byDate[date].BookingID, date)
		assert.Equal(t, "Approved", byDate[date].Status, date)
	}
	assert.Empty(t, byDate["2025-03-09"].BookingID)
	assert.Empty(t, byDate["2025-03-13"].BookingID)
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	svc := NewBookingService(newStubBookingStore(), newStubCarStore(), nil, nil)
	_, err := svc.Calendar("March 2025")
	assert.Equal(t, 400, httpCode(t, err))
}

func TestGetBookingMissingVersusStorageFailure(t *testing.T) {
	store := newStubBookingStore()
	svc := NewBookingService(store, newStubCarStore(testCar()), nil, nil)

	_, err := svc.GetBooking("absent")
	assert.Equal(t, 404, httpCode(t, err))

	store.getErr = errors.New("connection reset")
	_, err = svc.GetBooking("bk-1")
	assert.Equal(t, 500, httpCode(t, err))
}

func TestQuoteStorageFailureIsNotNotFound(t *testing.T) {
	cars := newStubCarStore(testCar())
	cars.getErr = errors.New("connection reset")
	svc := NewBookingService(newStubBookingStore(), cars, nil, nil)

	_, err := svc.Quote(&testBookingRequest().QuoteRequest)
	assert.Equal(t, 500, httpCode(t, err))
}
