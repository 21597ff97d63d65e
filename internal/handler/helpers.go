package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parseIDParam reads a numeric path parameter. On failure it writes a 400
// response and reports false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery reads an optional numeric query parameter, returning 0
// when absent or malformed.
func parseUintQuery(c *gin.Context, name string) uint {
	if v := c.Query(name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return 0
}

// parseIntQuery reads an optional numeric query parameter with a fallback.
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// parseDateQuery reads an optional date query parameter, accepting
// RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDateQuery(c *gin.Context, name string) *time.Time {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t
	}
	return nil
}

// internalError logs the failure and answers 500. The error detail is
// included in the body only when exposeErrors is set (non-production).
func internalError(c *gin.Context, logger *zap.Logger, exposeErrors bool, msg string, err error) {
	logger.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	body := gin.H{"message": "internal server error"}
	if exposeErrors {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
