package booking

import "time"

// DepositAmount is the fixed refundable security deposit folded into every
// booking total. It is never counted as rental revenue.
const DepositAmount = 5000

// PriceQuote is the breakdown returned to the booking form and persisted on
// submission. A zero-value quote (Days == 0) means the requested range was
// invalid and the caller must block submission.
type PriceQuote struct {
	Days          int `json:"days"`
	RentalAmount  int `json:"rentalAmount"`
	DepositAmount int `json:"depositAmount"`
	TotalAmount   int `json:"totalAmount"`
}

// Valid reports whether the quote came from a positive rental period.
func (q PriceQuote) Valid() bool {
	return q.Days > 0 && q.TotalAmount > q.DepositAmount
}

// NetAmount is the rental charge with the deposit stripped out.
func (q PriceQuote) NetAmount() int {
	return q.TotalAmount - q.DepositAmount
}

// Quote computes the price for renting a car from start to end given its
// two-tier rate card. Rentals of up to 12 hours take the flat 12-hour rate;
// anything longer is billed per full day, partial days rounded up.
func Quote(start, end time.Time, rate12h, rate24h int) PriceQuote {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return PriceQuote{}
	}

	days := int(hours / 24)
	if hours > float64(days*24) {
		days++
	}

	var rental int
	if hours <= 12 {
		rental = rate12h
	} else {
		rental = days * rate24h
	}

	return PriceQuote{
		Days:          days,
		RentalAmount:  rental,
		DepositAmount: DepositAmount,
		TotalAmount:   rental + DepositAmount,
	}
}
