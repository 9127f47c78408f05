package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbella/transvoyages/internal/service"
)

type agencyRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email"`
	Manager string  `json:"manager"`
}

func (r agencyRequest) toInput() service.AgencyInput {
	return service.AgencyInput{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		Email:   r.Email,
		Manager: r.Manager,
	}
}

func (h *Handler) listAgencies(c *gin.Context) {
	agencies, err := h.agencies.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agencies)
}

func (h *Handler) createAgency(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req agencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agency, err := h.agencies.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agency)
}

func (h *Handler) updateAgency(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req agencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agency, err := h.agencies.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agency)
}

func (h *Handler) deleteAgency(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.agencies.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
