package booking

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a booking. Values match what the admin
// back office displays and what the bookings table stores.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusApproved       Status = "Approved"
	StatusRejected       Status = "Rejected"
	StatusCancelled      Status = "Cancelled"
	StatusReadyForPickup Status = "Ready for Pickup"
	StatusCompleted      Status = "Completed"
)

// allowedTransitions is the directed graph of legal status changes.
// Rejected, Cancelled and Completed are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:        {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:       {StatusReadyForPickup},
	StatusReadyForPickup: {StatusCompleted},
	StatusRejected:       {},
	StatusCancelled:      {},
	StatusCompleted:      {},
}

// ParseStatus validates a status string coming in over the API.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled,
		StatusReadyForPickup, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Active reports whether the booking still occupies its car's calendar.
// Rejected, Cancelled and Completed bookings free the car.
func (s Status) Active() bool {
	return s != StatusRejected && s != StatusCancelled && s != StatusCompleted
}

// CountsAsRevenue reports whether the booking participates in revenue
// aggregation. Rejected and Cancelled bookings never earned anything.
func (s Status) CountsAsRevenue() bool {
	return s != StatusRejected && s != StatusCancelled
}

// CanTransition reports whether from -> to is a legal lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Handover carries the delivery data-entry step that moves an approved
// booking to Ready for Pickup. StartKM and DeliveryAt are mandatory;
// fuel level and FASTag status receive sensible defaults when omitted.
type Handover struct {
	StartKM          int
	DeliveryAt       time.Time
	FuelLevel        string
	FASTagStatus     string
	SignatureURL     string
	IDProofURLs      []string
	CustomerPhotoURL string
}

const (
	DefaultFuelLevel    = "Full"
	DefaultFASTagStatus = "Active"
)

// Validate checks the mandatory handover fields and fills defaults.
func (h *Handover) Validate() error {
	if h.StartKM <= 0 {
		return fmt.Errorf("handover requires a starting odometer reading")
	}
	if h.DeliveryAt.IsZero() {
		return fmt.Errorf("handover requires a delivery timestamp")
	}
	if h.FuelLevel == "" {
		h.FuelLevel = DefaultFuelLevel
	}
	if h.FASTagStatus == "" {
		h.FASTagStatus = DefaultFASTagStatus
	}
	return nil
}
