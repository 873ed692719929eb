package models

import "maps"

type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
)

// Slot is a discounted flat-price rental block.
type Slot struct {
	Hours int     `json:"hours" toml:"hours" validate:"gte=1"`
	Price float64 `json:"price" toml:"price" validate:"gt=0"`
}

type Vehicle struct {
	ID             string         `json:"id" toml:"id"`
	Name           string         `json:"name" toml:"name" validate:"required"`
	Type           VehicleType    `json:"type" toml:"type" validate:"required,oneof=car bike"`
	Image          string         `json:"image" toml:"image"`
	HourlyRate     float64        `json:"hourlyRate" toml:"hourly_rate" validate:"gt=0"`
	DailyRate      *float64       `json:"dailyRate,omitempty" toml:"daily_rate" validate:"omitempty,gt=0"`
	Available      bool           `json:"available" toml:"available"`
	Featured       bool           `json:"featured" toml:"featured"`
	Description    string         `json:"description" toml:"description"`
	Specifications map[string]any `json:"specifications" toml:"specifications"`
	Slots          []Slot         `json:"slots,omitempty" toml:"slots" validate:"dive"`
}

// Clone returns a copy that shares no maps or slices with v.
func (v Vehicle) Clone() Vehicle {
	out := v
	if v.DailyRate != nil {
		d := *v.DailyRate
		out.DailyRate = &d
	}
	if v.Specifications != nil {
		out.Specifications = maps.Clone(v.Specifications)
	}
	if v.Slots != nil {
		out.Slots = append([]Slot(nil), v.Slots...)
	}
	return out
}

// FindSlot returns the configured slot with the given hours and price.
func (v Vehicle) FindSlot(hours int, price float64) (Slot, bool) {
	for _, s := range v.Slots {
		if s.Hours == hours && s.Price == price {
			return s, true
		}
	}
	return Slot{}, false
}

// DefaultSpecifications are applied to a new vehicle that was added without any.
func DefaultSpecifications(t VehicleType) map[string]any {
	if t == VehicleBike {
		return map[string]any{"frame": "Aluminum", "gears": 21, "brakes": "Disc"}
	}
	return map[string]any{"seats": 5, "doors": 4, "transmission": "Automatic"}
}
