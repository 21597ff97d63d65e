package handler

import (
	"errors"
	"net/http"

	"github.com/mcatania72/CRM-System-NEW/internal/auth"
	"github.com/mcatania72/CRM-System-NEW/internal/middleware"
	"github.com/mcatania72/CRM-System-NEW/internal/model"
	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and the user directory.
type AuthHandler struct {
	users        service.UserService
	tokens       *auth.Service
	logger       *zap.Logger
	exposeErrors bool
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users service.UserService, tokens *auth.Service, logger *zap.Logger, exposeErrors bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger, exposeErrors: exposeErrors}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user already exists"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "register failed", err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "token generation failed", err)
		return
	}

	c.JSON(http.StatusCreated, model.AuthResponse{
		Message: "user registered successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Login handles POST /api/auth/login. Bad email, wrong password and
// deactivated accounts all answer the same 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "login failed", err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "token generation failed", err)
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{
		Message: "login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found in context"})
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// Users handles GET /api/auth/users.
func (h *AuthHandler) Users(c *gin.Context) {
	users, err := h.users.ListActive(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "user list failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
