package domain

import (
	"testing"

	"bikie/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func fleet() []models.Vehicle {
	return []models.Vehicle{
		{ID: "bike-1", Name: "Honda Activa", Type: models.VehicleBike, HourlyRate: 50},
		{ID: "car-1", Name: "Maruti Swift Dzire", Type: models.VehicleCar, HourlyRate: 180},
		{ID: "bike-2", Name: "Royal Enfield Meteor 350", Type: models.VehicleBike, HourlyRate: 100},
		{ID: "car-3", Name: "Maruti S Presso", Type: models.VehicleCar, HourlyRate: 150},
		{ID: "bike-3", Name: "Bajaj Dominar 400", Type: models.VehicleBike, HourlyRate: 100},
		{ID: "bike-5", Name: "Honda Dio", Type: models.VehicleBike, HourlyRate: 50},
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func vehicleIDs(vs []models.Vehicle) []string {
	return ids(vs, func(v models.Vehicle) string { return v.ID })
}

func TestApplyViewSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := ApplyView(fleet(), Criteria{Search: "hONDa"}, VehicleFields)
	assert.Equal(t, []string{"bike-1", "bike-5"}, vehicleIDs(got))
}

func TestApplyViewEmptySearchReturnsEverything(t *testing.T) {
	all := fleet()
	assert.Equal(t, vehicleIDs(all), vehicleIDs(ApplyView(all, Criteria{}, VehicleFields)))
	assert.Equal(t, vehicleIDs(all), vehicleIDs(ApplyView(all, Criteria{Search: "   ", Filter: FilterAll}, VehicleFields)))

	cars := ApplyView(all, Criteria{Search: "", Filter: "car"}, VehicleFields)
	assert.Equal(t, []string{"car-1", "car-3"}, vehicleIDs(cars))
}

func TestApplyViewSearchAndFilterCommute(t *testing.T) {
	all := fleet()
	searchFirst := ApplyView(ApplyView(all, Criteria{Search: "maruti"}, VehicleFields), Criteria{Filter: "car"}, VehicleFields)
	filterFirst := ApplyView(ApplyView(all, Criteria{Filter: "car"}, VehicleFields), Criteria{Search: "maruti"}, VehicleFields)
	combined := ApplyView(all, Criteria{Search: "maruti", Filter: "car"}, VehicleFields)

	assert.Equal(t, vehicleIDs(searchFirst), vehicleIDs(filterFirst))
	assert.Equal(t, vehicleIDs(searchFirst), vehicleIDs(combined))
}

func TestApplyViewSortIsStable(t *testing.T) {
	all := fleet()

	low := ApplyView(all, Criteria{Sort: SortPriceLow}, VehicleFields)
	assert.Equal(t, []string{"bike-1", "bike-5", "bike-2", "bike-3", "car-3", "car-1"}, vehicleIDs(low))

	high := ApplyView(all, Criteria{Sort: SortPriceHigh}, VehicleFields)
	assert.Equal(t, []string{"car-1", "car-3", "bike-2", "bike-3", "bike-1", "bike-5"}, vehicleIDs(high))

	def := ApplyView(all, Criteria{Sort: SortDefault}, VehicleFields)
	assert.Equal(t, vehicleIDs(all), vehicleIDs(def))
}

func TestApplyViewSortsReverseWithoutTies(t *testing.T) {
	distinct := []models.Vehicle{
		{ID: "a", HourlyRate: 30}, {ID: "b", HourlyRate: 10}, {ID: "c", HourlyRate: 20},
	}
	low := vehicleIDs(ApplyView(distinct, Criteria{Sort: SortPriceLow}, VehicleFields))
	high := vehicleIDs(ApplyView(distinct, Criteria{Sort: SortPriceHigh}, VehicleFields))

	for i := range low {
		assert.Equal(t, low[i], high[len(high)-1-i])
	}
}

func TestApplyViewDoesNotModifyInput(t *testing.T) {
	all := fleet()
	before := vehicleIDs(all)
	_ = ApplyView(all, Criteria{Sort: SortPriceHigh}, VehicleFields)
	assert.Equal(t, before, vehicleIDs(all))
}

func TestApplyViewBookings(t *testing.T) {
	bookings := []models.Booking{
		{ID: "booking-1", VehicleName: "Honda Activa", CustomerName: "Rahul Sharma", Status: models.BookingCompleted},
		{ID: "booking-2", VehicleName: "Hyundai i20", CustomerName: "Priya Patel", Status: models.BookingActive},
		{ID: "booking-3", VehicleName: "Bajaj Dominar 400", CustomerName: "Amit Kumar", Status: models.BookingUpcoming},
	}
	idOf := func(b models.Booking) string { return b.ID }

	assert.Equal(t, []string{"booking-2"}, ids(ApplyView(bookings, Criteria{Search: "priya"}, BookingFields), idOf))
	assert.Equal(t, []string{"booking-3"}, ids(ApplyView(bookings, Criteria{Search: "BOOKING-3"}, BookingFields), idOf))
	assert.Equal(t, []string{"booking-3"}, ids(ApplyView(bookings, Criteria{Filter: "upcoming"}, BookingFields), idOf))
	assert.Len(t, ApplyView(bookings, Criteria{Filter: "all"}, BookingFields), 3)
	// sort keys are ignored for collections without a rate
	assert.Equal(t, []string{"booking-1", "booking-2", "booking-3"}, ids(ApplyView(bookings, Criteria{Sort: SortPriceHigh}, BookingFields), idOf))
}

func TestApplyViewCustomersSearchContactFields(t *testing.T) {
	customers := []models.Customer{
		{ID: "customer-1", Name: "Rahul Sharma", Email: "rahul@example.com", Phone: "+91 98765 43210"},
		{ID: "customer-2", Name: "Priya Patel", Email: "priya@example.com", Phone: "+91 87654 32109"},
	}
	idOf := func(c models.Customer) string { return c.ID }

	assert.Equal(t, []string{"customer-2"}, ids(ApplyView(customers, Criteria{Search: "PRIYA@"}, CustomerFields), idOf))
	assert.Equal(t, []string{"customer-1"}, ids(ApplyView(customers, Criteria{Search: "98765"}, CustomerFields), idOf))
	assert.Len(t, ApplyView(customers, Criteria{Filter: "ignored"}, CustomerFields), 2)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	assert.NoError(t, err)
	assert.Equal(t, SortDefault, k)

	k, err = ParseSortKey("priceHigh")
	assert.NoError(t, err)
	assert.Equal(t, SortPriceHigh, k)

	_, err = ParseSortKey("name")
	assert.True(t, IsValidation(err))
}
