package repositories

import (
	"context"
	_ "embed"
	"fmt"

	"bikie/internal/domain"
	"bikie/internal/domain/models"

	"github.com/BurntSushi/toml"
)

//go:embed seed.toml
var defaultSeed string

// Seed is the data a fresh store starts from.
type Seed struct {
	Vehicles     []models.Vehicle     `toml:"vehicles"`
	Bookings     []models.Booking     `toml:"bookings"`
	Customers    []models.Customer    `toml:"customers"`
	Testimonials []models.Testimonial `toml:"testimonials"`
}

// DefaultSeed decodes the embedded catalog.
func DefaultSeed() (Seed, error) {
	return DecodeSeed(defaultSeed)
}

// LoadSeed reads a seed file, or the embedded catalog when path is empty.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	var s Seed
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Seed{}, fmt.Errorf("failed to load seed file: %w", err)
	}
	return s, s.Validate()
}

func DecodeSeed(data string) (Seed, error) {
	var s Seed
	if _, err := toml.Decode(data, &s); err != nil {
		return Seed{}, fmt.Errorf("failed to decode seed: %w", err)
	}
	return s, s.Validate()
}

// Validate checks id uniqueness and the value ranges every store relies on.
func (s Seed) Validate() error {
	seen := map[string]bool{}
	for _, v := range s.Vehicles {
		if v.ID == "" || seen[v.ID] {
			return domain.ValidationError{Field: "vehicles", Msg: fmt.Sprintf("missing or duplicate id %q", v.ID)}
		}
		seen[v.ID] = true
		if v.Type != models.VehicleCar && v.Type != models.VehicleBike {
			return domain.ValidationError{Field: "vehicles", Msg: fmt.Sprintf("%s: unknown type %q", v.ID, v.Type)}
		}
		if v.HourlyRate < 0 {
			return domain.ValidationError{Field: "vehicles", Msg: fmt.Sprintf("%s: negative hourly rate", v.ID)}
		}
		if err := domain.CheckSlots(v); err != nil {
			return fmt.Errorf("vehicle %s: %w", v.ID, err)
		}
	}

	seen = map[string]bool{}
	for _, b := range s.Bookings {
		if b.ID == "" || seen[b.ID] {
			return domain.ValidationError{Field: "bookings", Msg: fmt.Sprintf("missing or duplicate id %q", b.ID)}
		}
		seen[b.ID] = true
		if !b.Status.Valid() {
			return domain.ValidationError{Field: "bookings", Msg: fmt.Sprintf("%s: unknown status %q", b.ID, b.Status)}
		}
	}

	seen = map[string]bool{}
	for _, c := range s.Customers {
		if c.ID == "" || seen[c.ID] {
			return domain.ValidationError{Field: "customers", Msg: fmt.Sprintf("missing or duplicate id %q", c.ID)}
		}
		seen[c.ID] = true
	}
	return nil
}

// Apply writes every seed record into a store through its Save methods.
func (s Seed) Apply(ctx context.Context, store Store) error {
	for _, v := range s.Vehicles {
		if err := store.SaveVehicle(ctx, v); err != nil {
			return fmt.Errorf("seed vehicle %s: %w", v.ID, err)
		}
	}
	for _, b := range s.Bookings {
		if err := store.SaveBooking(ctx, b); err != nil {
			return fmt.Errorf("seed booking %s: %w", b.ID, err)
		}
	}
	for _, c := range s.Customers {
		if err := store.SaveCustomer(ctx, c); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.ID, err)
		}
	}
	return nil
}
