package handler

import (
	"errors"
	"net/http"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerHandler serves the customer CRUD and stats endpoints.
type CustomerHandler struct {
	customers    service.CustomerService
	logger       *zap.Logger
	exposeErrors bool
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(customers service.CustomerService, logger *zap.Logger, exposeErrors bool) *CustomerHandler {
	return &CustomerHandler{customers: customers, logger: logger, exposeErrors: exposeErrors}
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	filters := service.CustomerFilters{
		Search:   c.Query("search"),
		Industry: c.Query("industry"),
		Status:   c.Query("status"),
		Page: model.PageRequest{
			Page:  parseIntQuery(c, "page", 1),
			Limit: parseIntQuery(c, "limit", 10),
		},
	}

	customers, pagination, err := h.customers.List(c.Request.Context(), filters)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "customer list failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customers, "pagination": pagination})
}

// Get handles GET /api/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "customer not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "customer get failed", err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req model.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), &req)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "customer create failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "customer created successfully", "customer": customer})
}

// Update handles PUT /api/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "customer not found"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "customer update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "customer updated successfully", "customer": customer})
}

// Delete handles DELETE /api/customers/:id. Customers with dependent
// opportunities or interactions answer 409 with the dependency counts.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.customers.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "customer not found"})
			return
		}
		var dep *service.DependentsError
		if errors.As(err, &dep) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "customer has dependent records",
				"dependencies": gin.H{
					"opportunities": dep.Opportunities,
					"interactions":  dep.Interactions,
				},
			})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "customer delete failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "customer deleted successfully"})
}

// Stats handles GET /api/customers/stats.
func (h *CustomerHandler) Stats(c *gin.Context) {
	stats, err := h.customers.Stats(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "customer stats failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
