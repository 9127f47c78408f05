package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mbella/transvoyages/internal/http/middleware"
	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/realtime"
	"github.com/mbella/transvoyages/internal/service"
	"github.com/mbella/transvoyages/internal/stats"
	"github.com/mbella/transvoyages/internal/storage"
)

type Handler struct {
	auth      *service.AuthService
	voyages   *service.VoyageService
	stats     *service.StatsService
	personnel *service.PersonnelService
	agencies  *service.AgencyService
	chat      *service.ChatService
	files     *storage.Store
	hub       *realtime.Hub
	log       zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	voyages *service.VoyageService,
	statsSvc *service.StatsService,
	personnel *service.PersonnelService,
	agencies *service.AgencyService,
	chat *service.ChatService,
	files *storage.Store,
	hub *realtime.Hub,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		voyages:   voyages,
		stats:     statsSvc,
		personnel: personnel,
		agencies:  agencies,
		chat:      chat,
		files:     files,
		hub:       hub,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)
	router.POST("/auth/register", h.register)
	router.GET("/files/:name", h.downloadFile)
	router.GET("/ws", h.hub.HandleWS)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/voyages", h.listVoyages)
	protected.POST("/voyages", h.createVoyage)
	protected.GET("/voyages/:id", h.getVoyage)
	protected.PUT("/voyages/:id", h.updateVoyage)
	protected.DELETE("/voyages/:id", h.deleteVoyage)
	protected.GET("/voyages/export/excel", h.exportExcel)

	protected.GET("/stats", h.aggregate)
	protected.GET("/stats/export/pdf", h.exportPDF)
	protected.GET("/dashboard", h.dashboard)

	protected.GET("/users", h.listUsers)
	protected.POST("/users", h.createUser)
	protected.PUT("/users/:id", h.updateUser)
	protected.PATCH("/users/:id/status", h.setUserStatus)
	protected.DELETE("/users/:id", h.deleteUser)

	protected.GET("/agencies", h.listAgencies)
	protected.POST("/agencies", h.createAgency)
	protected.PUT("/agencies/:id", h.updateAgency)
	protected.DELETE("/agencies/:id", h.deleteAgency)

	protected.GET("/chat/direct/:userID", h.listDirectMessages)
	protected.POST("/chat/direct/:userID", h.sendDirectMessage)
	protected.GET("/chat/groups", h.listGroups)
	protected.POST("/chat/groups", h.createGroup)
	protected.GET("/chat/groups/:id/messages", h.listGroupMessages)
	protected.POST("/chat/groups/:id/messages", h.sendGroupMessage)
	protected.GET("/chat/groups/:id/members", h.listGroupMembers)
	protected.POST("/chat/groups/:id/members", h.addGroupMember)

	protected.POST("/files", h.uploadFile)
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validation *stats.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validation.Message,
			"field": validation.Field,
			"code":  validation.Code,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
