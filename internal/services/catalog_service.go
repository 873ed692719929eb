package services

import (
	"context"
	"time"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
	"bikie/internal/repositories"
)

// FeaturedLimit is how many featured vehicles the home page shows.
const FeaturedLimit = 3

// BookingWindowMonths is how far ahead a pickup may be booked.
const BookingWindowMonths = 3

var (
	PickupTimes = []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}
	Durations   = []int{1, 2, 3, 4, 5, 6, 12, 24}
)

type CatalogService struct {
	Vehicles     repositories.VehicleRepository
	Testimonials repositories.TestimonialRepository
	Now          func() time.Time
	Location     *time.Location
}

type Home struct {
	Featured     []models.Vehicle     `json:"featured"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

type BookingOptions struct {
	Vehicles    []models.Vehicle `json:"vehicles"`
	Selected    *models.Vehicle  `json:"selected,omitempty"`
	Slots       []models.Slot    `json:"slots"`
	PickupTimes []string         `json:"pickupTimes"`
	Durations   []int            `json:"durations"`
	MinDate     string           `json:"minDate"`
	MaxDate     string           `json:"maxDate"`
}

func (s CatalogService) now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	if s.Now != nil {
		return s.Now().In(loc)
	}
	return time.Now().In(loc)
}

// ListVehicles is the public listing: every vehicle, available or not.
func (s CatalogService) ListVehicles(ctx context.Context, c domain.Criteria) ([]models.Vehicle, error) {
	all, err := s.Vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load vehicles", Err: err}
	}
	return domain.ApplyView(all, c, domain.VehicleFields), nil
}

func (s CatalogService) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	return s.Vehicles.GetVehicle(ctx, id)
}

func (s CatalogService) AvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	all, err := s.Vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load vehicles", Err: err}
	}
	out := make([]models.Vehicle, 0, len(all))
	for _, v := range all {
		if v.Available {
			out = append(out, v)
		}
	}
	return out, nil
}

// FeaturedVehicles returns up to limit vehicles that are both featured and
// available, in catalog order. limit <= 0 means no limit.
func (s CatalogService) FeaturedVehicles(ctx context.Context, limit int) ([]models.Vehicle, error) {
	avail, err := s.AvailableVehicles(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Vehicle{}
	for _, v := range avail {
		if !v.Featured {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s CatalogService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	if s.Testimonials == nil {
		return []models.Testimonial{}, nil
	}
	out, err := s.Testimonials.ListTestimonials(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load testimonials", Err: err}
	}
	return out, nil
}

func (s CatalogService) Home(ctx context.Context) (Home, error) {
	featured, err := s.FeaturedVehicles(ctx, FeaturedLimit)
	if err != nil {
		return Home{}, err
	}
	testimonials, err := s.ListTestimonials(ctx)
	if err != nil {
		return Home{}, err
	}
	return Home{Featured: featured, Testimonials: testimonials}, nil
}

// BookingOptions lists what the booking form offers. With a vehicleID the
// vehicle is preselected and must exist and be available.
func (s CatalogService) BookingOptions(ctx context.Context, vehicleID string) (BookingOptions, error) {
	avail, err := s.AvailableVehicles(ctx)
	if err != nil {
		return BookingOptions{}, err
	}
	today := s.now()
	opts := BookingOptions{
		Vehicles:    avail,
		Slots:       []models.Slot{},
		PickupTimes: PickupTimes,
		Durations:   Durations,
		MinDate:     today.Format("2006-01-02"),
		MaxDate:     today.AddDate(0, BookingWindowMonths, 0).Format("2006-01-02"),
	}
	if vehicleID == "" {
		return opts, nil
	}

	v, err := s.Vehicles.GetVehicle(ctx, vehicleID)
	if err != nil {
		return BookingOptions{}, err
	}
	if !v.Available {
		return BookingOptions{}, domain.ConflictError{Resource: "vehicle", Msg: v.Name + " is not available for booking"}
	}
	opts.Selected = &v
	if len(v.Slots) > 0 {
		opts.Slots = v.Slots
	}
	return opts, nil
}

// Quote prices a selection for one vehicle.
func (s CatalogService) Quote(ctx context.Context, vehicleID string, sel domain.Selection) (domain.Quote, models.Vehicle, error) {
	v, err := s.Vehicles.GetVehicle(ctx, vehicleID)
	if err != nil {
		return domain.Quote{}, models.Vehicle{}, err
	}
	q, err := domain.Resolve(v, sel)
	if err != nil {
		return domain.Quote{}, models.Vehicle{}, err
	}
	return q, v, nil
}
