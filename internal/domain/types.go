package domain

import "strings"

// SortKey selects the order of a vehicle listing.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "priceLow"
	SortPriceHigh SortKey = "priceHigh"
)

// FilterAll is the categorical filter value that disables filtering.
const FilterAll = "all"

// Criteria is the search/filter/sort state of a listing view.
type Criteria struct {
	Search string  `json:"search"`
	Filter string  `json:"filter"`
	Sort   SortKey `json:"sort"`
}

// ParseSortKey accepts the query-string form of a sort key. Empty means default.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(strings.TrimSpace(raw)) {
	case "", SortDefault:
		return SortDefault, nil
	case SortPriceLow:
		return SortPriceLow, nil
	case SortPriceHigh:
		return SortPriceHigh, nil
	default:
		return "", ValidationError{Field: "sort", Msg: "must be one of default, priceLow, priceHigh"}
	}
}

// RequestContext carries the authenticated admin when available.
type RequestContext struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}
