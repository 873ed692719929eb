package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
)

const bookingColumns = `id, vehicle_id, vehicle_name, customer_id, customer_name, start_date, end_date, total_price, status`

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		status string
	)
	if err := row.Scan(&b.ID, &b.VehicleID, &b.VehicleName, &b.CustomerID, &b.CustomerName,
		&b.StartDate, &b.EndDate, &b.TotalPrice, &status); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	return b, nil
}

func (s MySQLStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := s.db().QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s MySQLStore) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	b, err := scanBooking(s.db().QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: id, Err: err}
	}
	return b, err
}

func (s MySQLStore) SaveBooking(ctx context.Context, b models.Booking) error {
	_, err := s.db().ExecContext(ctx, `
		INSERT INTO bookings (id, vehicle_id, vehicle_name, customer_id, customer_name, start_date, end_date, total_price, status)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			vehicle_id=VALUES(vehicle_id), vehicle_name=VALUES(vehicle_name),
			customer_id=VALUES(customer_id), customer_name=VALUES(customer_name),
			start_date=VALUES(start_date), end_date=VALUES(end_date),
			total_price=VALUES(total_price), status=VALUES(status)
	`, b.ID, b.VehicleID, b.VehicleName, b.CustomerID, b.CustomerName,
		b.StartDate.UTC(), b.EndDate.UTC(), b.TotalPrice, string(b.Status))
	return err
}

// SetBookingStatus updates with a status guard so two concurrent
// transitions cannot both apply.
func (s MySQLStore) SetBookingStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	res, err := s.db().ExecContext(ctx, `UPDATE bookings SET status=? WHERE id=? AND status=?`, string(to), id, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	cur, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	return statusMoved(id, from, cur.Status)
}

func statusMoved(id string, from, now models.BookingStatus) error {
	return domain.ConflictError{
		Resource: "booking",
		Msg:      fmt.Sprintf("booking %s is %s, no longer %s", id, now, from),
	}
}
