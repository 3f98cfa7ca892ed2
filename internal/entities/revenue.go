package entities

// CarRevenue aggregates net rental revenue for one car. Owner earnings are
// computed live from the car's current share percent; editing the share
// changes future reads, historical postings are not snapshotted.
type CarRevenue struct {
	CarID            string `json:"carId"`
	CarName          string `json:"carName"`
	OwnerName        string `json:"ownerName,omitempty"`
	SharePercent     int    `json:"sharePercent"`
	Bookings         int    `json:"bookings"`
	NetRevenue       int    `json:"netRevenue"`
	OwnerEarnings    int    `json:"ownerEarnings"`
	PlatformEarnings int    `json:"platformEarnings"`
}

// RevenueReport is the admin revenue dashboard payload.
type RevenueReport struct {
	TotalNetRevenue   int          `json:"totalNetRevenue"`
	MonthlyNetRevenue int          `json:"monthlyNetRevenue"`
	TotalBookings     int          `json:"totalBookings"`
	Cars              []CarRevenue `json:"cars"`
}
