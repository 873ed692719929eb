package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
	"bikie/internal/logging"
	"bikie/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AdminService backs the admin panel. Every mutation reads a record, builds a
// modified copy and saves the copy; nothing is changed in place.
type AdminService struct {
	Vehicles  repositories.VehicleRepository
	Bookings  repositories.BookingRepository
	Customers repositories.CustomerRepository
	Now       func() time.Time
	RequestID string
}

func (s AdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ---- vehicles ----

func (s AdminService) ListVehicles(ctx context.Context, c domain.Criteria) ([]models.Vehicle, error) {
	all, err := s.Vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load vehicles", Err: err}
	}
	return domain.ApplyView(all, c, domain.VehicleFields), nil
}

func (s AdminService) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	return s.Vehicles.GetVehicle(ctx, id)
}

// AddVehicle creates a vehicle with a "<type>-<unix millis>" id. Vehicles
// added without specifications get the defaults for their type.
func (s AdminService) AddVehicle(ctx context.Context, in models.Vehicle) (models.Vehicle, error) {
	v := in.Clone()
	v.Name = strings.TrimSpace(v.Name)
	if err := checkVehicle(v); err != nil {
		return models.Vehicle{}, err
	}
	v.ID = fmt.Sprintf("%s-%d", v.Type, s.now().UnixMilli())
	if len(v.Specifications) == 0 {
		v.Specifications = models.DefaultSpecifications(v.Type)
	}

	if _, err := s.Vehicles.GetVehicle(ctx, v.ID); err == nil {
		return models.Vehicle{}, domain.ConflictError{Resource: "vehicle", Msg: "id " + v.ID + " already exists"}
	}
	if err := s.Vehicles.SaveVehicle(ctx, v); err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "failed to save vehicle", Err: err}
	}
	logging.LogEvent(s.RequestID, "admin", "add_vehicle", "vehicle added", zap.String("vehicle_id", v.ID))
	return v, nil
}

// EditVehicle replaces the record with in. Specifications and Slots left nil
// keep their current values; send an empty value to clear them.
func (s AdminService) EditVehicle(ctx context.Context, id string, in models.Vehicle) (models.Vehicle, error) {
	cur, err := s.Vehicles.GetVehicle(ctx, id)
	if err != nil {
		return models.Vehicle{}, err
	}

	next := in.Clone()
	next.ID = cur.ID
	next.Name = strings.TrimSpace(next.Name)
	if next.Specifications == nil {
		next.Specifications = cur.Clone().Specifications
	}
	if next.Slots == nil {
		next.Slots = cur.Clone().Slots
	}
	if err := checkVehicle(next); err != nil {
		return models.Vehicle{}, err
	}

	if err := s.Vehicles.SaveVehicle(ctx, next); err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "failed to save vehicle", Err: err}
	}
	logging.LogEvent(s.RequestID, "admin", "edit_vehicle", "vehicle updated", zap.String("vehicle_id", id))
	return next, nil
}

func (s AdminService) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.Vehicles.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	logging.LogEvent(s.RequestID, "admin", "delete_vehicle", "vehicle deleted", zap.String("vehicle_id", id))
	return nil
}

func (s AdminService) ToggleAvailability(ctx context.Context, id string) (models.Vehicle, error) {
	cur, err := s.Vehicles.GetVehicle(ctx, id)
	if err != nil {
		return models.Vehicle{}, err
	}
	next := cur.Clone()
	next.Available = !cur.Available
	if err := s.Vehicles.SaveVehicle(ctx, next); err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "failed to save vehicle", Err: err}
	}
	logging.LogEvent(s.RequestID, "admin", "toggle_availability", "vehicle availability changed",
		zap.String("vehicle_id", id), zap.Bool("available", next.Available))
	return next, nil
}

func checkVehicle(v models.Vehicle) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.ValidationError{Field: fe.Field(), Msg: describeTag(fe), Err: err}
		}
		return domain.ValidationError{Msg: "invalid vehicle", Err: err}
	}
	return domain.CheckSlots(v)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// ---- bookings ----

func (s AdminService) ListBookings(ctx context.Context, c domain.Criteria) ([]models.Booking, error) {
	all, err := s.Bookings.ListBookings(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	return domain.ApplyView(all, c, domain.BookingFields), nil
}

func (s AdminService) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	return s.Bookings.GetBooking(ctx, id)
}

func (s AdminService) StartBooking(ctx context.Context, id string) (models.Booking, error) {
	return s.transition(ctx, id, models.BookingActive)
}

func (s AdminService) CompleteBooking(ctx context.Context, id string) (models.Booking, error) {
	return s.transition(ctx, id, models.BookingCompleted)
}

func (s AdminService) CancelBooking(ctx context.Context, id string) (models.Booking, error) {
	return s.transition(ctx, id, models.BookingCancelled)
}

// transition moves a booking to next. Customer aggregates are deliberately
// left as they are.
func (s AdminService) transition(ctx context.Context, id string, next models.BookingStatus) (models.Booking, error) {
	cur, err := s.Bookings.GetBooking(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !cur.Status.CanTransition(next) {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot move %s booking to %s", cur.Status, next),
		}
	}
	if err := s.Bookings.SetBookingStatus(ctx, id, cur.Status, next); err != nil {
		if domain.IsConflict(err) || domain.IsNotFound(err) {
			return models.Booking{}, err
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to save booking", Err: err}
	}
	updated := cur.WithStatus(next)
	logging.LogEvent(s.RequestID, "admin", "booking_"+string(next), "booking status changed",
		zap.String("booking_id", id), zap.String("from", string(cur.Status)), zap.String("to", string(next)))
	return updated, nil
}

// ---- customers ----

func (s AdminService) ListCustomers(ctx context.Context, c domain.Criteria) ([]models.Customer, error) {
	all, err := s.Customers.ListCustomers(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load customers", Err: err}
	}
	return domain.ApplyView(all, c, domain.CustomerFields), nil
}

func (s AdminService) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return s.Customers.GetCustomer(ctx, id)
}

// CustomerBookings is the booking history of one customer, newest first.
func (s AdminService) CustomerBookings(ctx context.Context, id string) ([]models.Booking, error) {
	if _, err := s.Customers.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.Bookings.ListBookings(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	out := []models.Booking{}
	for _, b := range all {
		if b.CustomerID == id {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Booking) int { return b.StartDate.Compare(a.StartDate) })
	return out, nil
}

// ---- dashboard ----

type MonthlyStat struct {
	Month    string  `json:"month"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type Overview struct {
	TotalVehicles     int                          `json:"totalVehicles"`
	AvailableVehicles int                          `json:"availableVehicles"`
	AvailableCars     int                          `json:"availableCars"`
	AvailableBikes    int                          `json:"availableBikes"`
	TotalBookings     int                          `json:"totalBookings"`
	BookingsByStatus  map[models.BookingStatus]int `json:"bookingsByStatus"`
	Customers         int                          `json:"customers"`
	Revenue           float64                      `json:"revenue"`
	Monthly           []MonthlyStat                `json:"monthly"`
	RecentBookings    []models.Booking             `json:"recentBookings"`
}

// RecentBookingsLimit is how many bookings the dashboard lists.
const RecentBookingsLimit = 3

// Overview summarizes the fleet and bookings. Revenue counts every booking
// that was not cancelled.
func (s AdminService) Overview(ctx context.Context) (Overview, error) {
	vehicles, err := s.Vehicles.ListVehicles(ctx)
	if err != nil {
		return Overview{}, domain.InternalError{Msg: "failed to load vehicles", Err: err}
	}
	bookings, err := s.Bookings.ListBookings(ctx)
	if err != nil {
		return Overview{}, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	customers, err := s.Customers.ListCustomers(ctx)
	if err != nil {
		return Overview{}, domain.InternalError{Msg: "failed to load customers", Err: err}
	}

	out := Overview{
		TotalVehicles:    len(vehicles),
		TotalBookings:    len(bookings),
		Customers:        len(customers),
		BookingsByStatus: map[models.BookingStatus]int{},
		Monthly:          []MonthlyStat{},
	}
	for _, v := range vehicles {
		if !v.Available {
			continue
		}
		out.AvailableVehicles++
		switch v.Type {
		case models.VehicleCar:
			out.AvailableCars++
		case models.VehicleBike:
			out.AvailableBikes++
		}
	}

	months := map[string]*MonthlyStat{}
	for _, b := range bookings {
		out.BookingsByStatus[b.Status]++
		key := b.StartDate.UTC().Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthlyStat{Month: key}
			months[key] = m
		}
		m.Bookings++
		if b.Status != models.BookingCancelled {
			out.Revenue += b.TotalPrice
			m.Revenue += b.TotalPrice
		}
	}
	for _, m := range months {
		out.Monthly = append(out.Monthly, *m)
	}
	slices.SortFunc(out.Monthly, func(a, b MonthlyStat) int { return strings.Compare(a.Month, b.Month) })

	recent := slices.Clone(bookings)
	slices.SortStableFunc(recent, func(a, b models.Booking) int { return b.StartDate.Compare(a.StartDate) })
	if len(recent) > RecentBookingsLimit {
		recent = recent[:RecentBookingsLimit]
	}
	out.RecentBookings = recent
	return out, nil
}
