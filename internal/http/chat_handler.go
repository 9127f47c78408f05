package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/service"
)

type messageRequest struct {
	Content string  `json:"content"`
	Type    string  `json:"message_type" binding:"required"`
	FileURL *string `json:"file_url"`
}

func (r messageRequest) toInput() service.MessageInput {
	return service.MessageInput{
		Content: r.Content,
		Type:    model.MessageType(r.Type),
		FileURL: r.FileURL,
	}
}

func (h *Handler) listDirectMessages(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	otherID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	messages, err := h.chat.ListDirect(c.Request.Context(), principal, otherID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) sendDirectMessage(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	receiverID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.SendDirect(c.Request.Context(), principal, receiverID, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) listGroups(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	groups, err := h.chat.ListGroups(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

type createGroupRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description *string     `json:"description"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}

func (h *Handler) createGroup(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.chat.CreateGroup(c.Request.Context(), principal, service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *Handler) listGroupMessages(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	messages, err := h.chat.ListGroupMessages(c.Request.Context(), principal, groupID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) sendGroupMessage(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.SendGroup(c.Request.Context(), principal, groupID, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) listGroupMembers(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.chat.ListMembers(c.Request.Context(), principal, groupID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

type addMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

func (h *Handler) addGroupMember(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chat.AddMember(c.Request.Context(), principal, groupID, req.UserID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
