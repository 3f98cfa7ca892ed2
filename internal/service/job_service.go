package service

import (
	"fmt"
	"log"
	"time"

	"magnumdrive/internal/booking"
	"magnumdrive/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CancelStalePendingBookings sweeps Pending bookings that sat unreviewed
// longer than maxAge and cancels them. Pending -> Cancelled is a legal
// lifecycle edge, so the sweep never bypasses the state machine.
func (s *JobService) CancelStalePendingBookings(maxAge time.Duration) error {
	log.Println("Cron Job: checking for stale pending bookings...")

	cutoff := time.Now().UTC().Add(-maxAge)
	ids, err := s.Repo.StalePendingIDs(cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending bookings: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: no stale pending bookings found.")
		return nil
	}

	log.Printf("Cron Job: cancelling %d stale pending bookings. IDs: %v", len(ids), ids)
	if err := s.Repo.UpdateBookingStatuses(ids, string(booking.StatusCancelled)); err != nil {
		return fmt.Errorf("cron job: failed to cancel stale bookings: %w", err)
	}
	return nil
}
