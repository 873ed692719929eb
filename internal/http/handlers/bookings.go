package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"bikie/internal/domain"
	"bikie/internal/http/middleware"
	"bikie/internal/services"

	"github.com/gin-gonic/gin"
)

type quoteRequest struct {
	VehicleID string            `json:"vehicleId" binding:"required"`
	Selection *domain.Selection `json:"selection"`
	Duration  string            `json:"duration"`
}

// GET /api/bookings/options?vehicleId=
func (h *Handler) BookingOptions(c *gin.Context) {
	opts, err := h.Catalog.BookingOptions(c.Request.Context(), strings.TrimSpace(c.Query("vehicleId")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, opts)
}

// POST /api/bookings/quote
func (h *Handler) QuoteBooking(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	var (
		sel domain.Selection
		err error
	)
	if req.Selection != nil {
		sel, err = *req.Selection, req.Selection.Validate()
	} else {
		sel, err = domain.ParseSelectionToken(req.Duration)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	q, v, err := h.Catalog.Quote(c.Request.Context(), req.VehicleID, sel)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"quote":     q,
			"vehicle":   v,
			"selection": sel,
			"label":     sel.Label(),
		},
	})
}

// POST /api/bookings
//
// Validates the form and forwards it through the form relay. Nothing is
// stored. With ?format=pdf (or Accept: application/pdf) the confirmation is
// returned as a printable receipt instead of JSON.
func (h *Handler) SubmitBooking(c *gin.Context) {
	var form services.BookingForm
	if !BindJSONOrError(c, &form) {
		return
	}

	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)
	conf, _, err := svc.Submit(c.Request.Context(), form)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if wantsPDF(c) {
		docs := h.Docs
		docs.RequestID = svc.RequestID
		pdf, filename, err := docs.GenerateReceipt(conf)
		if err != nil {
			RespondDomainError(c, domain.InternalError{Msg: "failed to render receipt", Err: err})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusCreated, "application/pdf", pdf)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking request sent. We will contact you to confirm.",
		"data":    conf,
	})
}

func wantsPDF(c *gin.Context) bool {
	if strings.EqualFold(c.Query("format"), "pdf") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/pdf")
}
