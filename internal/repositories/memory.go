package repositories

import (
	"context"
	"slices"
	"sync"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
)

// MemoryStore keeps everything in process memory. Writes never modify a
// record in place: they build a new slice and swap it in. Restarting the
// process resets it to the seed.
type MemoryStore struct {
	mu           sync.RWMutex
	vehicles     []models.Vehicle
	bookings     []models.Booking
	customers    []models.Customer
	testimonials []models.Testimonial
}

func NewMemoryStore(seed Seed) *MemoryStore {
	s := &MemoryStore{
		bookings:     append([]models.Booking(nil), seed.Bookings...),
		customers:    append([]models.Customer(nil), seed.Customers...),
		testimonials: append([]models.Testimonial(nil), seed.Testimonials...),
	}
	s.vehicles = make([]models.Vehicle, 0, len(seed.Vehicles))
	for _, v := range seed.Vehicles {
		s.vehicles = append(s.vehicles, v.Clone())
	}
	return s
}

func (s *MemoryStore) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vehicles {
		if v.ID == id {
			return v.Clone(), nil
		}
	}
	return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", ID: id}
}

func (s *MemoryStore) SaveVehicle(ctx context.Context, v models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = replaceByID(s.vehicles, v.Clone(), func(x models.Vehicle) string { return x.ID })
	return nil
}

func (s *MemoryStore) DeleteVehicle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := removeByID(s.vehicles, id, func(x models.Vehicle) string { return x.ID })
	if !ok {
		return domain.NotFoundError{Resource: "vehicle", ID: id}
	}
	s.vehicles = next
	return nil
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings), nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: id}
}

func (s *MemoryStore) SaveBooking(ctx context.Context, b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = replaceByID(s.bookings, b, func(x models.Booking) string { return x.ID })
	return nil
}

func (s *MemoryStore) SetBookingStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID != id {
			continue
		}
		if b.Status != from {
			return statusMoved(id, from, b.Status)
		}
		s.bookings = replaceByID(s.bookings, b.WithStatus(to), func(x models.Booking) string { return x.ID })
		return nil
	}
	return domain.NotFoundError{Resource: "booking", ID: id}
}

func (s *MemoryStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.customers), nil
}

func (s *MemoryStore) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, domain.NotFoundError{Resource: "customer", ID: id}
}

func (s *MemoryStore) SaveCustomer(ctx context.Context, c models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = replaceByID(s.customers, c, func(x models.Customer) string { return x.ID })
	return nil
}

func (s *MemoryStore) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.testimonials), nil
}

// replaceByID returns a new slice with item in place of the element sharing
// its id, or appended when there is none.
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	out := make([]T, 0, len(items)+1)
	found := false
	for _, it := range items {
		if id(it) == id(item) {
			out = append(out, item)
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, item)
	}
	return out
}

func removeByID[T any](items []T, target string, id func(T) string) ([]T, bool) {
	out := make([]T, 0, len(items))
	found := false
	for _, it := range items {
		if id(it) == target {
			found = true
			continue
		}
		out = append(out, it)
	}
	return out, found
}
