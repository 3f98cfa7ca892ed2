package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, time.UTC)
}

func TestQuoteInvalidRange(t *testing.T) {
	// Zero and negative periods must come back as unusable quotes.
	q := Quote(at(2, 9, 0), at(1, 9, 0), 1500, 2500)
	assert.Equal(t, PriceQuote{}, q)
	assert.False(t, q.Valid())

	q = Quote(at(1, 9, 0), at(1, 9, 0), 1500, 2500)
	assert.False(t, q.Valid())
	assert.Zero(t, q.TotalAmount)
}

func TestQuoteTwelveHourTier(t *testing.T) {
	// Exactly 12 hours takes the flat 12h rate regardless of the 24h rate.
	q := Quote(at(1, 9, 0), at(1, 21, 0), 1500, 99999)
	require.True(t, q.Valid())
	assert.Equal(t, 1, q.Days)
	assert.Equal(t, 1500, q.RentalAmount)
	assert.Equal(t, 1500+DepositAmount, q.TotalAmount)

	// 6 hours: still the flat tier.
	q = Quote(at(1, 9, 0), at(1, 15, 0), 1500, 2500)
	assert.Equal(t, 1500, q.RentalAmount)
	assert.Equal(t, 6500, q.TotalAmount)
}

func TestQuoteDailyTier(t *testing.T) {
	// 12h01m already bills as one full day.
	q := Quote(at(1, 9, 0), at(1, 21, 1), 1500, 2500)
	assert.Equal(t, 1, q.Days)
	assert.Equal(t, 2500, q.RentalAmount)

	// Exactly 24 hours: one day at the 24h rate.
	q = Quote(at(1, 9, 0), at(2, 9, 0), 1500, 2500)
	assert.Equal(t, 1, q.Days)
	assert.Equal(t, 2500, q.RentalAmount)
	assert.Equal(t, 7500, q.TotalAmount)

	// 25 hours rounds up to two days.
	q = Quote(at(1, 9, 0), at(2, 10, 0), 1500, 2500)
	assert.Equal(t, 2, q.Days)
	assert.Equal(t, 5000, q.RentalAmount)
}

func TestQuoteNetAmount(t *testing.T) {
	q := Quote(at(1, 9, 0), at(4, 9, 0), 1500, 2500)
	require.True(t, q.Valid())
	assert.Equal(t, q.RentalAmount, q.NetAmount())
	assert.GreaterOrEqual(t, q.NetAmount(), 0)
}
