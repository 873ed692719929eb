package models

import "time"

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// bookingTransitions lists the allowed next states. Completed and cancelled
// are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingUpcoming: {BookingActive, BookingCancelled},
	BookingActive:   {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingUpcoming, BookingActive, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransition reports whether a booking in status s may move to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID           string        `json:"id" toml:"id"`
	VehicleID    string        `json:"vehicleId" toml:"vehicle_id"`
	VehicleName  string        `json:"vehicleName" toml:"vehicle_name"`
	CustomerID   string        `json:"customerId" toml:"customer_id"`
	CustomerName string        `json:"customerName" toml:"customer_name"`
	StartDate    time.Time     `json:"startDate" toml:"start_date"`
	EndDate      time.Time     `json:"endDate" toml:"end_date"`
	TotalPrice   float64       `json:"totalPrice" toml:"total_price"`
	Status       BookingStatus `json:"status" toml:"status"`
}

// WithStatus returns a copy of b in the given status.
func (b Booking) WithStatus(s BookingStatus) Booking {
	b.Status = s
	return b
}
