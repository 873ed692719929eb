package handlers

import "bikie/internal/services"

// Handler holds the services behind the HTTP routes. Services are copied per
// request so each call can carry its request_id into the logs.
type Handler struct {
	Catalog  services.CatalogService
	Bookings services.BookingService
	Admin    services.AdminService
	Docs     services.DocsService
	Auth     *services.AuthService
}
