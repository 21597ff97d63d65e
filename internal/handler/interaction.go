package handler

import (
	"errors"
	"net/http"

	"github.com/mcatania72/CRM-System-NEW/internal/middleware"
	"github.com/mcatania72/CRM-System-NEW/internal/model"
	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InteractionHandler serves the interaction CRUD and lookup endpoints.
type InteractionHandler struct {
	interactions service.InteractionService
	logger       *zap.Logger
	exposeErrors bool
}

// NewInteractionHandler creates an interaction handler.
func NewInteractionHandler(interactions service.InteractionService, logger *zap.Logger, exposeErrors bool) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, logger: logger, exposeErrors: exposeErrors}
}

// List handles GET /api/interactions.
func (h *InteractionHandler) List(c *gin.Context) {
	filters := service.InteractionFilters{
		Type:       c.Query("type"),
		CustomerID: parseUintQuery(c, "customerId"),
		UserID:     parseUintQuery(c, "userId"),
		Page: model.PageRequest{
			Page:  parseIntQuery(c, "page", 1),
			Limit: parseIntQuery(c, "limit", 10),
		},
	}

	interactions, pagination, err := h.interactions.List(c.Request.Context(), filters)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "interaction list failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": interactions, "pagination": pagination})
}

// Get handles GET /api/interactions/:id.
func (h *InteractionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	interaction, err := h.interactions.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "interaction not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "interaction get failed", err)
		return
	}

	c.JSON(http.StatusOK, interaction)
}

// Create handles POST /api/interactions. The authoring user comes from
// the authenticated context.
func (h *InteractionHandler) Create(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found in context"})
		return
	}

	var req model.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	interaction, err := h.interactions.Create(c.Request.Context(), &req, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "customer not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "interaction create failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "interaction created successfully", "interaction": interaction})
}

// Update handles PUT /api/interactions/:id.
func (h *InteractionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	interaction, err := h.interactions.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "interaction not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "interaction update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "interaction updated successfully", "interaction": interaction})
}

// Delete handles DELETE /api/interactions/:id.
func (h *InteractionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.interactions.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "interaction not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "interaction delete failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "interaction deleted successfully"})
}

// Recent handles GET /api/interactions/recent.
func (h *InteractionHandler) Recent(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 10)

	interactions, err := h.interactions.ListRecent(c.Request.Context(), limit)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "recent interactions failed", err)
		return
	}

	c.JSON(http.StatusOK, interactions)
}

// ByCustomer handles GET /api/interactions/customer/:customerId.
func (h *InteractionHandler) ByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}

	interactions, err := h.interactions.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "customer interactions failed", err)
		return
	}

	c.JSON(http.StatusOK, interactions)
}
