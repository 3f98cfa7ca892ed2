package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"

	"magnumdrive/internal/db"
)

const carColumns = `id, name, seater_type, gear, fuel, price_12h, price_24h, mileage, image_url,
	city_id, COALESCE(registration_number, ''), is_maintenance,
	COALESCE(owner_name, ''), COALESCE(owner_phone, ''), owner_share_percent,
	total_revenue, total_bookings, created_at`

type CarRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) *CarRepository {
	return &CarRepository{DB: database}
}

func scanCar(s interface{ Scan(...interface{}) error }) (*db.Car, error) {
	var c db.Car
	err := s.Scan(
		&c.ID, &c.Name, &c.SeaterType, &c.Gear, &c.Fuel, &c.Price12h, &c.Price24h, &c.Mileage,
		&c.ImageURL, &c.CityID, &c.RegistrationNumber, &c.IsMaintenance,
		&c.OwnerName, &c.OwnerPhone, &c.OwnerSharePercent,
		&c.TotalRevenue, &c.TotalBookings, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the fleet ordered by creation. An empty city returns every
// location; maintenance cars are hidden unless includeMaintenance is set.
func (r *CarRepository) List(cityID string, includeMaintenance bool) ([]db.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if cityID != "" {
		query += " AND city_id = $" + strconv.Itoa(idx)
		args = append(args, cityID)
		idx++
	}
	if !includeMaintenance {
		query += " AND is_maintenance = FALSE"
	}
	query += " ORDER BY created_at"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []db.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) GetByID(id string) (*db.Car, error) {
	row := r.DB.QueryRow(`SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
	c, err := scanCar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("car %s: %w", id, ErrNoRows)
		}
		return nil, fmt.Errorf("error querying car: %w", err)
	}
	return c, nil
}

func (r *CarRepository) Create(c *db.Car) error {
	query := `
		INSERT INTO cars
		(id, name, seater_type, gear, fuel, price_12h, price_24h, mileage, image_url,
		 city_id, registration_number, is_maintenance, owner_name, owner_phone,
		 owner_share_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, NULLIF($13, ''), NULLIF($14, ''), $15, $16)
		RETURNING created_at`
	return r.DB.QueryRow(query,
		c.ID, c.Name, c.SeaterType, c.Gear, c.Fuel, c.Price12h, c.Price24h, c.Mileage, c.ImageURL,
		c.CityID, c.RegistrationNumber, c.IsMaintenance, c.OwnerName, c.OwnerPhone,
		c.OwnerSharePercent, c.CreatedAt,
	).Scan(&c.CreatedAt)
}

func (r *CarRepository) Update(c *db.Car) error {
	query := `
		UPDATE cars
		SET name = $1, seater_type = $2, gear = $3, fuel = $4, price_12h = $5, price_24h = $6,
		    mileage = $7, image_url = $8, city_id = $9, registration_number = NULLIF($10, ''),
		    is_maintenance = $11, owner_name = NULLIF($12, ''), owner_phone = NULLIF($13, ''),
		    owner_share_percent = $14
		WHERE id = $15`
	result, err := r.DB.Exec(query,
		c.Name, c.SeaterType, c.Gear, c.Fuel, c.Price12h, c.Price24h,
		c.Mileage, c.ImageURL, c.CityID, c.RegistrationNumber,
		c.IsMaintenance, c.OwnerName, c.OwnerPhone, c.OwnerSharePercent, c.ID,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("car %s: %w", c.ID, ErrNoRows)
	}
	return nil
}

func (r *CarRepository) UpdateSharePercent(id string, percent int) error {
	result, err := r.DB.Exec(`UPDATE cars SET owner_share_percent = $1 WHERE id = $2`, percent, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("car %s: %w", id, ErrNoRows)
	}
	return nil
}

func (r *CarRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("car %s: %w", id, ErrNoRows)
	}
	return nil
}

// AddCompletedBooking bumps the car's lifetime counters after a trip
// closes. This write is independent of the booking status update and is
// best-effort: a failure here must not roll the completion back.
func (r *CarRepository) AddCompletedBooking(id string, netAmount int) error {
	_, err := r.DB.Exec(`
		UPDATE cars
		SET total_revenue = total_revenue + $1, total_bookings = total_bookings + 1
		WHERE id = $2`, netAmount, id)
	if err != nil {
		log.Printf("Could not update revenue counters for car %s: %v", id, err)
	}
	return err
}
