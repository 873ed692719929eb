package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
	"bikie/internal/logging"
	"bikie/internal/relay"
	"bikie/internal/repositories"
	"bikie/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FormState string

const (
	FormCollecting FormState = "collecting"
	FormSubmitting FormState = "submitting"
	FormConfirmed  FormState = "confirmed"
)

// BookingForm is what the customer typed in. Selection is the structured
// choice; Duration carries the same choice in its form-field encoding and is
// only consulted when Selection is nil.
type BookingForm struct {
	FirstName  string            `json:"firstName"`
	LastName   string            `json:"lastName"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	VehicleID  string            `json:"vehicleId"`
	PickupDate string            `json:"pickupDate"`
	PickupTime string            `json:"pickupTime"`
	Selection  *domain.Selection `json:"selection,omitempty"`
	Duration   string            `json:"duration,omitempty"`
}

func (f BookingForm) FullName() string {
	return utils.NormalizeSpace(f.FirstName + " " + f.LastName)
}

// Confirmation re-renders the submitted form. It is not a stored booking.
type Confirmation struct {
	Reference   string           `json:"reference"`
	Form        BookingForm      `json:"form"`
	Vehicle     models.Vehicle   `json:"vehicle"`
	Selection   domain.Selection `json:"selection"`
	Quote       domain.Quote     `json:"quote"`
	PickupAt    time.Time        `json:"pickupAt"`
	ReturnAt    time.Time        `json:"returnAt"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

// Sender delivers a booking message. *relay.Client implements it.
type Sender interface {
	Submit(ctx context.Context, s relay.Submission) error
}

type BookingService struct {
	Vehicles     repositories.VehicleRepository
	Relay        Sender
	Now          func() time.Time
	Location     *time.Location
	NewReference func() string
	RequestID    string
}

func (s BookingService) now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	if s.Now != nil {
		return s.Now().In(loc)
	}
	return time.Now().In(loc)
}

func (s BookingService) reference() string {
	if s.NewReference != nil {
		return s.NewReference()
	}
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// BookingFlow is one pass of a customer through the booking form:
// collecting -> submitting -> confirmed, or back to collecting when the
// submission fails.
type BookingFlow struct {
	svc BookingService

	mu           sync.Mutex
	state        FormState
	form         BookingForm
	lastErr      error
	confirmation *Confirmation
}

func (s BookingService) NewFlow(form BookingForm) *BookingFlow {
	return &BookingFlow{svc: s, state: FormCollecting, form: form}
}

func (f *BookingFlow) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError is the notice from the most recent failed submit.
func (f *BookingFlow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *BookingFlow) Form() BookingForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// Update replaces the entered values. Only allowed while collecting.
func (f *BookingFlow) Update(form BookingForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormCollecting {
		return domain.ConflictError{Resource: "booking form", Msg: "form is " + string(f.state)}
	}
	f.form = form
	return nil
}

// Submit validates the form and sends it through the relay. While a submit is
// in flight a second one is rejected. On any failure the flow returns to
// collecting with the form intact so the customer can retry by hand.
func (f *BookingFlow) Submit(ctx context.Context) (Confirmation, error) {
	f.mu.Lock()
	switch f.state {
	case FormSubmitting:
		f.mu.Unlock()
		return Confirmation{}, domain.ConflictError{Resource: "booking form", Msg: "a submission is already in progress"}
	case FormConfirmed:
		f.mu.Unlock()
		return Confirmation{}, domain.ConflictError{Resource: "booking form", Msg: "booking already confirmed"}
	}
	form := f.form
	f.state = FormSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	conf, err := f.svc.prepare(ctx, form)
	if err == nil {
		err = f.svc.send(ctx, conf)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = FormCollecting
		f.lastErr = err
		return Confirmation{}, err
	}
	f.state = FormConfirmed
	f.confirmation = &conf
	return conf, nil
}

// Confirmation is set once the flow reaches confirmed.
func (f *BookingFlow) Confirmation() (Confirmation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmation == nil {
		return Confirmation{}, false
	}
	return *f.confirmation, true
}

// Submit runs a fresh flow for form.
func (s BookingService) Submit(ctx context.Context, form BookingForm) (Confirmation, *BookingFlow, error) {
	flow := s.NewFlow(form)
	conf, err := flow.Submit(ctx)
	return conf, flow, err
}

// prepare validates form and resolves everything the confirmation shows.
func (s BookingService) prepare(ctx context.Context, form BookingForm) (Confirmation, error) {
	form = trimForm(form)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"firstName", form.FirstName},
		{"lastName", form.LastName},
		{"email", form.Email},
		{"phone", form.Phone},
		{"vehicleId", form.VehicleID},
		{"pickupDate", form.PickupDate},
		{"pickupTime", form.PickupTime},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if form.Selection == nil && form.Duration == "" {
		missing = append(missing, "selection")
	}
	if len(missing) > 0 {
		return Confirmation{}, domain.ValidationError{Missing: missing}
	}

	v, err := s.Vehicles.GetVehicle(ctx, form.VehicleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return Confirmation{}, domain.ValidationError{Field: "vehicleId", Msg: "unknown vehicle", Err: err}
		}
		return Confirmation{}, domain.InternalError{Msg: "failed to load vehicle", Err: err}
	}
	if !v.Available {
		return Confirmation{}, domain.ValidationError{Field: "vehicleId", Msg: v.Name + " is not available for booking"}
	}

	now := s.now()
	pickupAt, err := s.pickupTime(form, now)
	if err != nil {
		return Confirmation{}, err
	}

	sel, err := selectionOf(form)
	if err != nil {
		return Confirmation{}, err
	}
	q, err := domain.Resolve(v, sel)
	if err != nil {
		return Confirmation{}, err
	}

	return Confirmation{
		Reference:   s.reference(),
		Form:        form,
		Vehicle:     v,
		Selection:   sel,
		Quote:       q,
		PickupAt:    pickupAt,
		ReturnAt:    pickupAt.Add(time.Duration(q.Hours) * time.Hour),
		SubmittedAt: now,
	}, nil
}

func (s BookingService) pickupTime(form BookingForm, now time.Time) (time.Time, error) {
	day, err := utils.ParseDate(form.PickupDate, now.Location())
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: "pickupDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	first := utils.StartOfDay(now)
	last := first.AddDate(0, BookingWindowMonths, 0)
	if day.Before(first) || day.After(last) {
		return time.Time{}, domain.ValidationError{
			Field: "pickupDate",
			Msg:   fmt.Sprintf("must be between %s and %s", utils.FormatDate(first), utils.FormatDate(last)),
		}
	}

	if !slices.Contains(PickupTimes, form.PickupTime) {
		return time.Time{}, domain.ValidationError{Field: "pickupTime", Msg: "must be one of " + strings.Join(PickupTimes, ", ")}
	}
	clock, err := utils.ParseClock(form.PickupTime)
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: "pickupTime", Msg: "must be HH:MM", Err: err}
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}

func selectionOf(form BookingForm) (domain.Selection, error) {
	if form.Selection != nil {
		return *form.Selection, form.Selection.Validate()
	}
	return domain.ParseSelectionToken(form.Duration)
}

func (s BookingService) send(ctx context.Context, c Confirmation) error {
	if s.Relay == nil {
		return domain.InternalError{Msg: "booking relay is not configured"}
	}
	err := s.Relay.Submit(ctx, relay.Submission{
		Name:    c.Form.FullName(),
		Email:   c.Form.Email,
		Phone:   c.Form.Phone,
		Subject: "New booking request: " + c.Vehicle.Name,
		Message: ComposeBookingMessage(c),
	})
	if err != nil {
		logging.LogEvent(s.RequestID, "booking", "submit_failed", "booking relay rejected submission",
			zap.String("reference", c.Reference), zap.String("vehicle_id", c.Vehicle.ID), zap.Error(err))
		return err
	}
	logging.LogEvent(s.RequestID, "booking", "submit", "booking submitted",
		zap.String("reference", c.Reference), zap.String("vehicle_id", c.Vehicle.ID))
	return nil
}

// ComposeBookingMessage renders the plain-text body sent to the relay.
func ComposeBookingMessage(c Confirmation) string {
	var b strings.Builder
	line := func(label, value string) { fmt.Fprintf(&b, "%-12s %s\n", label+":", value) }

	b.WriteString("New booking request\n\n")
	line("Reference", c.Reference)
	line("Name", c.Form.FullName())
	line("Email", c.Form.Email)
	line("Phone", c.Form.Phone)
	b.WriteString("\n")
	line("Vehicle", fmt.Sprintf("%s (%s)", c.Vehicle.Name, c.Vehicle.ID))
	line("Pickup", c.PickupAt.Format("2006-01-02 15:04"))
	line("Return", c.ReturnAt.Format("2006-01-02 15:04"))
	line("Duration", c.Selection.Label())
	line("Rate", utils.FormatRupees(c.Quote.HourlyRate)+" per hour")
	if c.Quote.Savings > 0 {
		line("Savings", utils.FormatRupees(c.Quote.Savings))
	}
	line("Total", utils.FormatRupees(c.Quote.Total))
	return b.String()
}

func trimForm(f BookingForm) BookingForm {
	f.FirstName = utils.TrimOrEmpty(f.FirstName)
	f.LastName = utils.TrimOrEmpty(f.LastName)
	f.Email = utils.TrimOrEmpty(f.Email)
	f.Phone = utils.TrimOrEmpty(f.Phone)
	f.VehicleID = utils.TrimOrEmpty(f.VehicleID)
	f.PickupDate = utils.TrimOrEmpty(f.PickupDate)
	f.PickupTime = utils.TrimOrEmpty(f.PickupTime)
	f.Duration = utils.TrimOrEmpty(f.Duration)
	return f
}
