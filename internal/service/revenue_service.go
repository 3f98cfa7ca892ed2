package service

import (
	"math"
	"time"

	"magnumdrive/internal/booking"
	"magnumdrive/internal/entities"
	apperrors "magnumdrive/internal/errors"
	"magnumdrive/internal/repository"
)

// RevenueStore is the aggregation surface of the booking repository.
type RevenueStore interface {
	RevenuePerCar(excludedStatuses []string) ([]repository.CarRevenueRow, error)
	NetRevenueBetween(from, to time.Time, excludedStatuses []string) (int, error)
}

type RevenueService struct {
	Repo RevenueStore
}

func NewRevenueService(repo RevenueStore) *RevenueService {
	return &RevenueService{Repo: repo}
}

func excludedRevenueStatuses() []string {
	return []string{
		string(booking.StatusRejected),
		string(booking.StatusCancelled),
	}
}

// OwnerEarnings splits net revenue by the owner's share percent, rounding
// to the nearest whole currency unit.
func OwnerEarnings(netRevenue, sharePercent int) int {
	return int(math.Round(float64(netRevenue) * float64(sharePercent) / 100))
}

// Report aggregates per-car net revenue across all non-rejected,
// non-cancelled bookings. Owner earnings use each car's current share
// percent, so past statements shift when a share is edited.
func (s *RevenueService) Report(now time.Time) (*entities.RevenueReport, error) {
	rows, err := s.Repo.RevenuePerCar(excludedRevenueStatuses())
	if err != nil {
		return nil, apperrors.ErrInternal("could not aggregate revenue")
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthly, err := s.Repo.NetRevenueBetween(monthStart, monthStart.AddDate(0, 1, 0), excludedRevenueStatuses())
	if err != nil {
		return nil, apperrors.ErrInternal("could not aggregate monthly revenue")
	}

	report := &entities.RevenueReport{MonthlyNetRevenue: monthly}
	for _, row := range rows {
		owner := OwnerEarnings(row.NetRevenue, row.SharePercent)
		report.Cars = append(report.Cars, entities.CarRevenue{
			CarID:            row.CarID,
			CarName:          row.CarName,
			OwnerName:        row.OwnerName,
			SharePercent:     row.SharePercent,
			Bookings:         row.Bookings,
			NetRevenue:       row.NetRevenue,
			OwnerEarnings:    owner,
			PlatformEarnings: row.NetRevenue - owner,
		})
		report.TotalNetRevenue += row.NetRevenue
		report.TotalBookings += row.Bookings
	}
	return report, nil
}
