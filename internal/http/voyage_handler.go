package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbella/transvoyages/internal/service"
)

// voyageRequest uses the mobile client's field names so existing payloads
// keep working unchanged.
type voyageRequest struct {
	DriverName      string    `json:"nom_chauffeur" binding:"required"`
	VehicleNumber   string    `json:"numero_vehicule" binding:"required"`
	BordereauNumber string    `json:"numero_bordereau"`
	GrossRevenue    float64   `json:"recette_brute"`
	Deduction       float64   `json:"retenue"`
	SeatCount       int       `json:"nombre_places"`
	Date            string    `json:"date" binding:"required"`
	AgencyID        uuid.UUID `json:"agence" binding:"required"`
	City            string    `json:"ville"`
}

func (r voyageRequest) toInput() service.VoyageInput {
	return service.VoyageInput{
		DriverName:      r.DriverName,
		VehicleNumber:   r.VehicleNumber,
		BordereauNumber: r.BordereauNumber,
		GrossRevenue:    r.GrossRevenue,
		Deduction:       r.Deduction,
		SeatCount:       r.SeatCount,
		Date:            r.Date,
		AgencyID:        r.AgencyID,
		City:            r.City,
	}
}

func (h *Handler) listVoyages(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	voyages, err := h.voyages.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, voyages)
}

func (h *Handler) getVoyage(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	voyage, err := h.voyages.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, voyage)
}

func (h *Handler) createVoyage(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req voyageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voyage, err := h.voyages.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, voyage)
}

func (h *Handler) updateVoyage(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req voyageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voyage, err := h.voyages.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, voyage)
}

func (h *Handler) deleteVoyage(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.voyages.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
