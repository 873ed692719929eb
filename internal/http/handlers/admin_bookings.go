package handlers

import (
	"context"
	"net/http"

	"bikie/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/bookings?status=&q=
func (h *Handler) AdminListBookings(c *gin.Context) {
	crit, err := criteriaFromQuery(c, "status")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	list, err := h.admin(c).ListBookings(c.Request.Context(), crit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "criteria": crit})
}

// GET /api/admin/bookings/:id
func (h *Handler) AdminGetBooking(c *gin.Context) {
	b, err := h.admin(c).GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, b)
}

// PUT /api/admin/bookings/:id/start
func (h *Handler) AdminStartBooking(c *gin.Context) {
	svc := h.admin(c)
	h.bookingTransition(c, "booking started", svc.StartBooking)
}

// PUT /api/admin/bookings/:id/complete
func (h *Handler) AdminCompleteBooking(c *gin.Context) {
	svc := h.admin(c)
	h.bookingTransition(c, "booking completed", svc.CompleteBooking)
}

// PUT /api/admin/bookings/:id/cancel
func (h *Handler) AdminCancelBooking(c *gin.Context) {
	svc := h.admin(c)
	h.bookingTransition(c, "booking cancelled", svc.CancelBooking)
}

func (h *Handler) bookingTransition(c *gin.Context, message string, apply func(context.Context, string) (models.Booking, error)) {
	crit, err := criteriaFromQuery(c, "status")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	b, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	view, err := h.admin(c).ListBookings(c.Request.Context(), crit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "data": b, "view": view})
}
