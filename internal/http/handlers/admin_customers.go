package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/customers?q=
func (h *Handler) AdminListCustomers(c *gin.Context) {
	crit, err := criteriaFromQuery(c, "")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	list, err := h.admin(c).ListCustomers(c.Request.Context(), crit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "criteria": crit})
}

// GET /api/admin/customers/:id
func (h *Handler) AdminGetCustomer(c *gin.Context) {
	cust, err := h.admin(c).GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, cust)
}

// GET /api/admin/customers/:id/bookings
func (h *Handler) AdminCustomerBookings(c *gin.Context) {
	list, err := h.admin(c).CustomerBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// GET /api/admin/overview
func (h *Handler) AdminOverview(c *gin.Context) {
	o, err := h.admin(c).Overview(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, o)
}
