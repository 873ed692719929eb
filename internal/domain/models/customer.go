package models

// Customer aggregates are denormalized seed values. Booking mutations never
// recompute them.
type Customer struct {
	ID            string  `json:"id" toml:"id"`
	Name          string  `json:"name" toml:"name"`
	Email         string  `json:"email" toml:"email"`
	Phone         string  `json:"phone" toml:"phone"`
	BookingsCount int     `json:"bookingsCount" toml:"bookings_count"`
	TotalSpent    float64 `json:"totalSpent" toml:"total_spent"`
	LastBooking   string  `json:"lastBooking" toml:"last_booking"`
}

type Testimonial struct {
	ID      string `json:"id" toml:"id"`
	Name    string `json:"name" toml:"name"`
	Image   string `json:"image,omitempty" toml:"image"`
	Rating  int    `json:"rating" toml:"rating"`
	Comment string `json:"comment" toml:"comment"`
	Vehicle string `json:"vehicle" toml:"vehicle"`
}
