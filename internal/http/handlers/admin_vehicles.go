package handlers

import (
	"net/http"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
	"bikie/internal/http/middleware"
	"bikie/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) admin(c *gin.Context) services.AdminService {
	svc := h.Admin
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

// vehicleCriteria reads q/type/sort, answering 400 itself on bad input.
func vehicleCriteria(c *gin.Context) (domain.Criteria, bool) {
	crit, err := criteriaFromQuery(c, "type")
	if err != nil {
		RespondDomainError(c, err)
		return domain.Criteria{}, false
	}
	return crit, true
}

// respondVehicleMutation returns the changed record together with the
// listing re-derived under the caller's current q/type/sort.
func (h *Handler) respondVehicleMutation(c *gin.Context, crit domain.Criteria, status int, message string, data any) {
	view, err := h.admin(c).ListVehicles(c.Request.Context(), crit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(status, gin.H{"message": message, "data": data, "view": view})
}

// GET /api/admin/vehicles?type=&sort=&q=
func (h *Handler) AdminListVehicles(c *gin.Context) {
	crit, err := criteriaFromQuery(c, "type")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	list, err := h.admin(c).ListVehicles(c.Request.Context(), crit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "criteria": crit})
}

// GET /api/admin/vehicles/:id
func (h *Handler) AdminGetVehicle(c *gin.Context) {
	v, err := h.admin(c).GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, v)
}

// POST /api/admin/vehicles
func (h *Handler) AdminAddVehicle(c *gin.Context) {
	crit, ok := vehicleCriteria(c)
	if !ok {
		return
	}
	var in models.Vehicle
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := h.admin(c).AddVehicle(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondVehicleMutation(c, crit, http.StatusCreated, "vehicle added", v)
}

// PUT /api/admin/vehicles/:id
func (h *Handler) AdminEditVehicle(c *gin.Context) {
	crit, ok := vehicleCriteria(c)
	if !ok {
		return
	}
	var in models.Vehicle
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := h.admin(c).EditVehicle(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondVehicleMutation(c, crit, http.StatusOK, "vehicle updated", v)
}

// DELETE /api/admin/vehicles/:id
func (h *Handler) AdminDeleteVehicle(c *gin.Context) {
	crit, ok := vehicleCriteria(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.admin(c).DeleteVehicle(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondVehicleMutation(c, crit, http.StatusOK, "vehicle deleted", gin.H{"id": id})
}

// PATCH /api/admin/vehicles/:id/availability
func (h *Handler) AdminToggleAvailability(c *gin.Context) {
	crit, ok := vehicleCriteria(c)
	if !ok {
		return
	}
	v, err := h.admin(c).ToggleAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondVehicleMutation(c, crit, http.StatusOK, "availability updated", v)
}
