package domain

import (
	"slices"
	"strings"

	"bikie/internal/domain/models"
)

// ViewFields configures ApplyView for one entity type. Search lists the text
// fields matched by the search term, Category the field compared against the
// categorical filter, Rate the value ordered by the price sorts. Nil Category
// or Rate disables that step.
type ViewFields[T any] struct {
	Search   []func(T) string
	Category func(T) string
	Rate     func(T) float64
}

// ApplyView derives a listing from items: filter by search term and category,
// then sort. items is never modified.
func ApplyView[T any](items []T, c Criteria, f ViewFields[T]) []T {
	term := strings.ToLower(strings.TrimSpace(c.Search))
	filter := strings.TrimSpace(c.Filter)
	if strings.EqualFold(filter, FilterAll) {
		filter = ""
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if filter != "" && f.Category != nil && f.Category(it) != filter {
			continue
		}
		if term != "" && !matchesAny(it, term, f.Search) {
			continue
		}
		out = append(out, it)
	}

	if f.Rate == nil {
		return out
	}
	switch c.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b T) int { return compareRate(f.Rate(a), f.Rate(b)) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b T) int { return compareRate(f.Rate(b), f.Rate(a)) })
	}
	return out
}

func matchesAny[T any](it T, term string, fields []func(T) string) bool {
	for _, get := range fields {
		if strings.Contains(strings.ToLower(get(it)), term) {
			return true
		}
	}
	return false
}

func compareRate(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

var VehicleFields = ViewFields[models.Vehicle]{
	Search:   []func(models.Vehicle) string{func(v models.Vehicle) string { return v.Name }},
	Category: func(v models.Vehicle) string { return string(v.Type) },
	Rate:     func(v models.Vehicle) float64 { return v.HourlyRate },
}

var BookingFields = ViewFields[models.Booking]{
	Search: []func(models.Booking) string{
		func(b models.Booking) string { return b.VehicleName },
		func(b models.Booking) string { return b.CustomerName },
		func(b models.Booking) string { return b.ID },
	},
	Category: func(b models.Booking) string { return string(b.Status) },
}

var CustomerFields = ViewFields[models.Customer]{
	Search: []func(models.Customer) string{
		func(c models.Customer) string { return c.Name },
		func(c models.Customer) string { return c.Email },
		func(c models.Customer) string { return c.Phone },
	},
}
