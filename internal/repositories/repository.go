package repositories

import (
	"context"

	"bikie/internal/domain/models"
)

// VehicleRepository stores the rental fleet. List preserves insertion order,
// which is the "default" listing order.
type VehicleRepository interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (models.Vehicle, error)
	// SaveVehicle inserts v or replaces the record with the same ID.
	SaveVehicle(ctx context.Context, v models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// BookingRepository has no delete: bookings are only ever cancelled.
type BookingRepository interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (models.Booking, error)
	SaveBooking(ctx context.Context, b models.Booking) error
	// SetBookingStatus moves booking id from one status to another only if
	// it is still in from. A booking that moved meanwhile yields a
	// domain.ConflictError.
	SetBookingStatus(ctx context.Context, id string, from, to models.BookingStatus) error
}

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	SaveCustomer(ctx context.Context, c models.Customer) error
}

type TestimonialRepository interface {
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
}

// Store bundles every repository the services need.
type Store interface {
	VehicleRepository
	BookingRepository
	CustomerRepository
	TestimonialRepository
}
