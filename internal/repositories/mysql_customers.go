package repositories

import (
	"context"
	"database/sql"
	"errors"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
)

const customerColumns = `id, name, email, phone, bookings_count, total_spent, last_booking`

func scanCustomer(row rowScanner) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BookingsCount, &c.TotalSpent, &c.LastBooking)
	return c, err
}

func (s MySQLStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.db().QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s MySQLStore) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	c, err := scanCustomer(s.db().QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, domain.NotFoundError{Resource: "customer", ID: id, Err: err}
	}
	return c, err
}

func (s MySQLStore) SaveCustomer(ctx context.Context, c models.Customer) error {
	_, err := s.db().ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, bookings_count, total_spent, last_booking)
		VALUES (?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			name=VALUES(name), email=VALUES(email), phone=VALUES(phone),
			bookings_count=VALUES(bookings_count), total_spent=VALUES(total_spent), last_booking=VALUES(last_booking)
	`, c.ID, c.Name, c.Email, c.Phone, c.BookingsCount, c.TotalSpent, c.LastBooking)
	return err
}
