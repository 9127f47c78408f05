package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbella/transvoyages/internal/service"
)

func aggregateInput(c *gin.Context) service.AggregateInput {
	return service.AggregateInput{
		Period:    c.DefaultQuery("period", "day"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Label:     c.Query("label"),
	}
}

func (h *Handler) aggregate(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.stats.Aggregate(c.Request.Context(), principal, aggregateInput(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) exportPDF(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.stats.ExportPDF(c.Request.Context(), principal, aggregateInput(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) exportExcel(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.stats.ExportExcel(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) dashboard(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	dash, err := h.stats.Dashboard(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
