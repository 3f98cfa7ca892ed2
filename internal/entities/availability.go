package entities

// DayCoverage marks one calendar day of a car's month row. Status and
// customer are empty for free days.
type DayCoverage struct {
	Date         string `json:"date"`
	BookingID    string `json:"bookingId,omitempty"`
	Status       string `json:"status,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
}

// CarCalendar is one row of the availability grid.
type CarCalendar struct {
	CarID         string        `json:"carId"`
	CarName       string        `json:"carName"`
	IsMaintenance bool          `json:"isMaintenance"`
	Days          []DayCoverage `json:"days"`
}

// CalendarResponse is the month view the back office renders. It is
// advisory only; it never gates booking creation.
type CalendarResponse struct {
	Month string        `json:"month"`
	Cars  []CarCalendar `json:"cars"`
}
