package handler

import (
	"errors"
	"net/http"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OpportunityHandler serves the opportunity CRUD and stats endpoints.
type OpportunityHandler struct {
	opportunities service.OpportunityService
	logger        *zap.Logger
	exposeErrors  bool
}

// NewOpportunityHandler creates an opportunity handler.
func NewOpportunityHandler(opportunities service.OpportunityService, logger *zap.Logger, exposeErrors bool) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities, logger: logger, exposeErrors: exposeErrors}
}

// List handles GET /api/opportunities.
func (h *OpportunityHandler) List(c *gin.Context) {
	filters := service.OpportunityFilters{
		Stage:      c.Query("stage"),
		CustomerID: parseUintQuery(c, "customerId"),
		Page: model.PageRequest{
			Page:  parseIntQuery(c, "page", 1),
			Limit: parseIntQuery(c, "limit", 10),
		},
	}

	opportunities, pagination, err := h.opportunities.List(c.Request.Context(), filters)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "opportunity list failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": opportunities, "pagination": pagination})
}

// Get handles GET /api/opportunities/:id.
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	opportunity, err := h.opportunities.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "opportunity not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "opportunity get failed", err)
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// Create handles POST /api/opportunities. A missing referenced customer
// answers 400, not 404: the request body is what is wrong.
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req model.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	opportunity, err := h.opportunities.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "customer not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "opportunity create failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "opportunity created successfully", "opportunity": opportunity})
}

// Update handles PUT /api/opportunities/:id.
func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	opportunity, err := h.opportunities.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "opportunity not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "opportunity update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "opportunity updated successfully", "opportunity": opportunity})
}

// Delete handles DELETE /api/opportunities/:id.
func (h *OpportunityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.opportunities.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "opportunity not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "opportunity delete failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "opportunity deleted successfully"})
}

// Stats handles GET /api/opportunities/stats.
func (h *OpportunityHandler) Stats(c *gin.Context) {
	stats, err := h.opportunities.Stats(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "opportunity stats failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
