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

// ActivityHandler serves the activity CRUD and personal list endpoints.
type ActivityHandler struct {
	activities   service.ActivityService
	logger       *zap.Logger
	exposeErrors bool
}

// NewActivityHandler creates an activity handler.
func NewActivityHandler(activities service.ActivityService, logger *zap.Logger, exposeErrors bool) *ActivityHandler {
	return &ActivityHandler{activities: activities, logger: logger, exposeErrors: exposeErrors}
}

// List handles GET /api/activities. Non-admin callers only ever see their
// own activities regardless of the filters supplied.
func (h *ActivityHandler) List(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found in context"})
		return
	}

	filters := service.ActivityFilters{
		Status:       c.Query("status"),
		Type:         c.Query("type"),
		AssignedToID: parseUintQuery(c, "assignedToId"),
		Page: model.PageRequest{
			Page:  parseIntQuery(c, "page", 1),
			Limit: parseIntQuery(c, "limit", 10),
		},
	}

	activities, pagination, err := h.activities.List(c.Request.Context(), user, filters)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "activity list failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": activities, "pagination": pagination})
}

// Get handles GET /api/activities/:id.
func (h *ActivityHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.activities.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "activity not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "activity get failed", err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// Create handles POST /api/activities.
func (h *ActivityHandler) Create(c *gin.Context) {
	var req model.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	activity, err := h.activities.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAssigneeNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "assigned user not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "activity create failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "activity created successfully", "activity": activity})
}

// Update handles PUT /api/activities/:id.
func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	activity, err := h.activities.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "activity not found"})
			return
		}
		if errors.Is(err, service.ErrAssigneeNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "assigned user not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "activity update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activity updated successfully", "activity": activity})
}

// Delete handles DELETE /api/activities/:id.
func (h *ActivityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.activities.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "activity not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "activity delete failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activity deleted successfully"})
}

// Mine handles GET /api/activities/my-activities.
func (h *ActivityHandler) Mine(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found in context"})
		return
	}

	activities, err := h.activities.ListMine(c.Request.Context(), user.ID, c.Query("status"), c.Query("type"))
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "my-activities failed", err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

// Upcoming handles GET /api/activities/upcoming.
func (h *ActivityHandler) Upcoming(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found in context"})
		return
	}

	activities, err := h.activities.ListUpcoming(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "upcoming activities failed", err)
		return
	}

	c.JSON(http.StatusOK, activities)
}
