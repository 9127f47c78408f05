package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/service"
)

func (h *Handler) listUsers(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	users, err := h.personnel.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type createUserRequest struct {
	Email    string     `json:"email" binding:"required"`
	FullName string     `json:"full_name" binding:"required"`
	Role     string     `json:"role" binding:"required"`
	Phone    *string    `json:"phone"`
	AgencyID *uuid.UUID `json:"agency"`
	Password string     `json:"password" binding:"required"`
}

func (h *Handler) createUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.personnel.Create(c.Request.Context(), principal, service.CreateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     model.Role(req.Role),
		Phone:    req.Phone,
		AgencyID: req.AgencyID,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type updateUserRequest struct {
	FullName string     `json:"full_name" binding:"required"`
	Role     string     `json:"role" binding:"required"`
	Phone    *string    `json:"phone"`
	AgencyID *uuid.UUID `json:"agency"`
	Status   string     `json:"status" binding:"required"`
}

func (h *Handler) updateUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.personnel.Update(c.Request.Context(), principal, id, service.UpdateUserInput{
		FullName: req.FullName,
		Role:     model.Role(req.Role),
		Phone:    req.Phone,
		AgencyID: req.AgencyID,
		Status:   model.UserStatus(req.Status),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) setUserStatus(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.personnel.SetStatus(c.Request.Context(), principal, id, model.UserStatus(req.Status)); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.personnel.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
