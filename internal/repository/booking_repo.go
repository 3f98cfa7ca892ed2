package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"magnumdrive/internal/db"

	"github.com/lib/pq"
)

// ErrNoRows is returned when a lookup matches nothing.
var ErrNoRows = errors.New("no matching rows")

const bookingColumns = `id, car_id, city_id, status, customer_name, customer_phone, customer_email,
	occupation, address, trip_location, trip_purpose, trip_days, delivery_needed,
	start_at, end_at, total_amount, deposit_amount,
	start_km, end_km, delivery_at, fuel_level, fasttag_status,
	signature_url, id_proof_urls, customer_photo_url, created_at`

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func scanBooking(s interface{ Scan(...interface{}) error }) (*db.Booking, error) {
	var b db.Booking
	err := s.Scan(
		&b.ID, &b.CarID, &b.CityID, &b.Status, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
		&b.Occupation, &b.Address, &b.TripLocation, &b.TripPurpose, &b.TripDays, &b.DeliveryNeeded,
		&b.StartAt, &b.EndAt, &b.TotalAmount, &b.DepositAmount,
		&b.StartKM, &b.EndKM, &b.DeliveryAt, &b.FuelLevel, &b.FASTagStatus,
		&b.SignatureURL, &b.IDProofURLs, &b.CustomerPhotoURL, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(id, car_id, city_id, status, customer_name, customer_phone, customer_email,
		 occupation, address, trip_location, trip_purpose, trip_days, delivery_needed,
		 start_at, end_at, total_amount, deposit_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at`
	return r.DB.QueryRow(query,
		b.ID, b.CarID, b.CityID, b.Status, b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		b.Occupation, b.Address, b.TripLocation, b.TripPurpose, b.TripDays, b.DeliveryNeeded,
		b.StartAt, b.EndAt, b.TotalAmount, b.DepositAmount, b.CreatedAt,
	).Scan(&b.CreatedAt)
}

func (r *BookingRepository) GetByID(id string) (*db.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, ErrNoRows)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return b, nil
}

// List returns bookings newest-first, optionally filtered by status, city
// and car. Filters are ANDed the same way the admin list screen combines them.
func (r *BookingRepository) List(status, cityID, carID string) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	if cityID != "" {
		query += " AND city_id = $" + strconv.Itoa(idx)
		args = append(args, cityID)
		idx++
	}
	if carID != "" {
		query += " AND car_id = $" + strconv.Itoa(idx)
		args = append(args, carID)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(id, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNoRows)
	}
	return nil
}

// HandoverUpdate carries the delivery data-entry columns written together
// with the Ready for Pickup status. Applied as a single UPDATE so a failed
// write leaves the booking untouched.
type HandoverUpdate struct {
	StartKM          int
	DeliveryAt       time.Time
	FuelLevel        string
	FASTagStatus     string
	SignatureURL     string
	IDProofURLs      []string
	CustomerPhotoURL string
}

func (r *BookingRepository) ApplyHandover(id, status string, h HandoverUpdate) error {
	query := `
		UPDATE bookings
		SET status = $1, start_km = $2, delivery_at = $3, fuel_level = $4, fasttag_status = $5,
		    signature_url = NULLIF($6, ''), id_proof_urls = $7, customer_photo_url = NULLIF($8, '')
		WHERE id = $9`
	result, err := r.DB.Exec(query,
		status, h.StartKM, h.DeliveryAt, h.FuelLevel, h.FASTagStatus,
		h.SignatureURL, pq.Array(h.IDProofURLs), h.CustomerPhotoURL, id,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNoRows)
	}
	return nil
}

func (r *BookingRepository) Complete(id string, endKM int, status string) error {
	result, err := r.DB.Exec(
		`UPDATE bookings SET status = $1, end_km = NULLIF($2, 0) WHERE id = $3`,
		status, endKM, id,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNoRows)
	}
	return nil
}

// ListOverlapping returns bookings for the car in any of the given statuses
// whose date range overlaps [start, end], excluding one booking id.
func (r *BookingRepository) ListOverlapping(carID string, start, end time.Time, statuses []string, excludeID string) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE car_id = $1
		  AND status = ANY($2)
		  AND start_at <= $3
		  AND end_at >= $4
		  AND id <> $5`
	rows, err := r.DB.Query(query, carID, pq.Array(statuses), end, start, excludeID)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// ListActiveInRange returns non-terminal bookings touching [from, to],
// the input for the availability calendar.
func (r *BookingRepository) ListActiveInRange(from, to time.Time, statuses []string) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = ANY($1) AND start_at <= $2 AND end_at >= $3
		ORDER BY start_at`
	rows, err := r.DB.Query(query, pq.Array(statuses), to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// ActiveCountForCar counts non-terminal bookings referencing the car.
// Car deletion is refused while this is non-zero.
func (r *BookingRepository) ActiveCountForCar(carID string, statuses []string) (int, error) {
	var n int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM bookings WHERE car_id = $1 AND status = ANY($2)`,
		carID, pq.Array(statuses),
	).Scan(&n)
	return n, err
}

// CarRevenueRow is one line of the per-car revenue aggregation. Net revenue
// subtracts the refundable deposit from every counted booking.
type CarRevenueRow struct {
	CarID        string
	CarName      string
	OwnerName    string
	SharePercent int
	Bookings     int
	NetRevenue   int
}

func (r *BookingRepository) RevenuePerCar(excludedStatuses []string) ([]CarRevenueRow, error) {
	query := `
		SELECT c.id, c.name, COALESCE(c.owner_name, ''), c.owner_share_percent,
		       COUNT(b.id),
		       COALESCE(SUM(GREATEST(b.total_amount - b.deposit_amount, 0)), 0)
		FROM cars c
		LEFT JOIN bookings b
			ON b.car_id = c.id
			AND NOT (b.status = ANY($1))
		GROUP BY c.id, c.name, c.owner_name, c.owner_share_percent
		ORDER BY 6 DESC`
	rows, err := r.DB.Query(query, pq.Array(excludedStatuses))
	if err != nil {
		return nil, fmt.Errorf("error querying revenue per car: %w", err)
	}
	defer rows.Close()

	var results []CarRevenueRow
	for rows.Next() {
		var row CarRevenueRow
		if err := rows.Scan(&row.CarID, &row.CarName, &row.OwnerName, &row.SharePercent,
			&row.Bookings, &row.NetRevenue); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// NetRevenueBetween sums net revenue over counted bookings starting in
// [from, to), used for the monthly figure on the dashboard.
func (r *BookingRepository) NetRevenueBetween(from, to time.Time, excludedStatuses []string) (int, error) {
	var total int
	err := r.DB.QueryRow(`
		SELECT COALESCE(SUM(GREATEST(total_amount - deposit_amount, 0)), 0)
		FROM bookings
		WHERE NOT (status = ANY($1)) AND start_at >= $2 AND start_at < $3`,
		pq.Array(excludedStatuses), from, to,
	).Scan(&total)
	return total, err
}
