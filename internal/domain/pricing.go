package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bikie/internal/domain/models"
	"bikie/internal/utils"
)

type SelectionKind string

const (
	SelectionHourly SelectionKind = "hourly"
	SelectionSlot   SelectionKind = "slot"
)

// Selection is what the customer picked on the booking form: either a plain
// number of hours billed at the hourly rate, or one of the vehicle's
// flat-price slots.
type Selection struct {
	Kind  SelectionKind `json:"kind"`
	Hours int           `json:"hours"`
	Price float64       `json:"price,omitempty"`
}

func HourlySelection(hours int) Selection {
	return Selection{Kind: SelectionHourly, Hours: hours}
}

func SlotSelection(hours int, price float64) Selection {
	return Selection{Kind: SelectionSlot, Hours: hours, Price: price}
}

func (s Selection) Validate() error {
	switch s.Kind {
	case SelectionHourly:
		if s.Hours < 1 {
			return ValidationError{Field: "selection", Msg: "hours must be at least 1"}
		}
	case SelectionSlot:
		if s.Hours < 1 {
			return ValidationError{Field: "selection", Msg: "slot hours must be at least 1"}
		}
		if !(s.Price > 0) || math.IsInf(s.Price, 0) {
			return ValidationError{Field: "selection", Msg: "slot price must be positive"}
		}
	default:
		return ValidationError{Field: "selection", Msg: fmt.Sprintf("unknown selection kind %q", s.Kind)}
	}
	return nil
}

// Token renders the selection in the form-field encoding ("3" or "2:150").
func (s Selection) Token() string {
	if s.Kind == SelectionSlot {
		return strconv.Itoa(s.Hours) + ":" + strconv.FormatFloat(s.Price, 'f', -1, 64)
	}
	return strconv.Itoa(s.Hours)
}

// Label is the human-readable form used in summaries.
func (s Selection) Label() string {
	unit := "hours"
	if s.Hours == 1 {
		unit = "hour"
	}
	if s.Kind == SelectionSlot {
		return fmt.Sprintf("%d %s package (%s)", s.Hours, unit, utils.FormatMoney(s.Price))
	}
	return fmt.Sprintf("%d %s", s.Hours, unit)
}

// ParseSelectionToken decodes the form-field encoding. A bare integer is an
// hourly selection, "<hours>:<price>" is a slot. Anything unparseable is
// rejected rather than resolved to zero.
func ParseSelectionToken(token string) (Selection, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Selection{}, ValidationError{Field: "selection", Msg: "is required"}
	}

	parts := strings.Split(token, ":")
	switch len(parts) {
	case 1:
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return Selection{}, ValidationError{Field: "selection", Msg: fmt.Sprintf("invalid hours %q", parts[0]), Err: err}
		}
		sel := HourlySelection(hours)
		return sel, sel.Validate()
	case 2:
		hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Selection{}, ValidationError{Field: "selection", Msg: fmt.Sprintf("invalid slot hours %q", parts[0]), Err: err}
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return Selection{}, ValidationError{Field: "selection", Msg: fmt.Sprintf("invalid slot price %q", parts[1]), Err: err}
		}
		sel := SlotSelection(hours, price)
		return sel, sel.Validate()
	default:
		return Selection{}, ValidationError{Field: "selection", Msg: fmt.Sprintf("malformed selection %q", token)}
	}
}

// Quote is the resolved price of a selection for one vehicle.
type Quote struct {
	Kind       SelectionKind `json:"kind"`
	Hours      int           `json:"hours"`
	HourlyRate float64       `json:"hourlyRate"`
	Total      float64       `json:"total"`
	Savings    float64       `json:"savings"`
}

// Resolve prices a selection. Hourly selections cost rate × hours. Slot
// selections cost the slot's flat price and must match one of the vehicle's
// configured slots.
func Resolve(v models.Vehicle, s Selection) (Quote, error) {
	if err := s.Validate(); err != nil {
		return Quote{}, err
	}

	q := Quote{Kind: s.Kind, Hours: s.Hours, HourlyRate: v.HourlyRate}
	switch s.Kind {
	case SelectionSlot:
		slot, ok := v.FindSlot(s.Hours, s.Price)
		if !ok {
			return Quote{}, ValidationError{
				Field: "selection",
				Msg:   fmt.Sprintf("%s has no %d-hour slot at %s", v.Name, s.Hours, strconv.FormatFloat(s.Price, 'f', -1, 64)),
			}
		}
		q.Total = slot.Price
		q.Savings = math.Max(0, v.HourlyRate*float64(slot.Hours)-slot.Price)
	default:
		q.Total = v.HourlyRate * float64(s.Hours)
	}
	return q, nil
}

// CheckSlots enforces that every slot is cheaper than, or equal to, renting
// the same hours at the hourly rate.
func CheckSlots(v models.Vehicle) error {
	for i, s := range v.Slots {
		if s.Hours < 1 || !(s.Price > 0) {
			return ValidationError{Field: fmt.Sprintf("slots[%d]", i), Msg: "hours must be at least 1 and price positive"}
		}
		if s.Price > v.HourlyRate*float64(s.Hours) {
			return ValidationError{
				Field: fmt.Sprintf("slots[%d]", i),
				Msg:   fmt.Sprintf("price %.2f exceeds %d hours at the hourly rate", s.Price, s.Hours),
			}
		}
	}
	return nil
}
