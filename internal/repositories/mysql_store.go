package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	intconfig "bikie/internal/config"
	intdb "bikie/internal/db"
	"bikie/internal/domain/models"
)

// MySQLStore persists vehicles, bookings and customers. Testimonials are
// static marketing content and come from the seed.
type MySQLStore struct {
	DB           *sql.DB
	Testimonials []models.Testimonial
}

func (s MySQLStore) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

const (
	vehiclesDDL = `
CREATE TABLE IF NOT EXISTS vehicles (
	seq BIGINT AUTO_INCREMENT PRIMARY KEY,
	id VARCHAR(64) NOT NULL,
	name VARCHAR(255) NOT NULL,
	type VARCHAR(16) NOT NULL,
	image VARCHAR(512) NOT NULL DEFAULT '',
	hourly_rate DECIMAL(12,2) NOT NULL,
	daily_rate DECIMAL(12,2) NULL,
	available TINYINT(1) NOT NULL DEFAULT 1,
	featured TINYINT(1) NOT NULL DEFAULT 0,
	description TEXT,
	specifications JSON,
	slots JSON,
	UNIQUE KEY uniq_vehicle_id (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	seq BIGINT AUTO_INCREMENT PRIMARY KEY,
	id VARCHAR(64) NOT NULL,
	vehicle_id VARCHAR(64) NOT NULL,
	vehicle_name VARCHAR(255) NOT NULL,
	customer_id VARCHAR(64) NOT NULL,
	customer_name VARCHAR(255) NOT NULL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	total_price DECIMAL(12,2) NOT NULL,
	status VARCHAR(16) NOT NULL,
	UNIQUE KEY uniq_booking_id (id),
	KEY idx_booking_customer (customer_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	customersDDL = `
CREATE TABLE IF NOT EXISTS customers (
	seq BIGINT AUTO_INCREMENT PRIMARY KEY,
	id VARCHAR(64) NOT NULL,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL,
	bookings_count INT NOT NULL DEFAULT 0,
	total_spent DECIMAL(12,2) NOT NULL DEFAULT 0,
	last_booking VARCHAR(10) NOT NULL DEFAULT '',
	UNIQUE KEY uniq_customer_id (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
)

// EnsureSchema creates the tables that do not exist yet.
func (s MySQLStore) EnsureSchema(ctx context.Context) error {
	db := s.db()
	if db == nil {
		return fmt.Errorf("database is not connected")
	}
	for _, t := range []struct{ name, ddl string }{
		{"vehicles", vehiclesDDL},
		{"bookings", bookingsDDL},
		{"customers", customersDDL},
	} {
		if err := intdb.EnsureTable(ctx, db, t.name, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}

// SeedIfEmpty loads seed into the database when the vehicles table is empty.
func (s MySQLStore) SeedIfEmpty(ctx context.Context, seed Seed) (bool, error) {
	var n int
	if err := s.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	return true, seed.Apply(ctx, s)
}

func (s MySQLStore) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return slices.Clone(s.Testimonials), nil
}
