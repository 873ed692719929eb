package handlers

import (
	"net/http"

	"bikie/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?type=&sort=&q=
func (h *Handler) ListVehicles(c *gin.Context) {
	crit, err := criteriaFromQuery(c, "type")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	list, err := h.Catalog.ListVehicles(c.Request.Context(), crit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "criteria": crit})
}

// GET /api/vehicles/featured
func (h *Handler) FeaturedVehicles(c *gin.Context) {
	list, err := h.Catalog.FeaturedVehicles(c.Request.Context(), services.FeaturedLimit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// GET /api/vehicles/:id
func (h *Handler) GetVehicle(c *gin.Context) {
	v, err := h.Catalog.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, v)
}

// GET /api/testimonials
func (h *Handler) Testimonials(c *gin.Context) {
	list, err := h.Catalog.ListTestimonials(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// GET /api/home
func (h *Handler) Home(c *gin.Context) {
	home, err := h.Catalog.Home(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, home)
}
