package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole enumerates the roles a CRM user can hold.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleSalesperson UserRole = "salesperson"
	RoleManager     UserRole = "manager"
)

// IsValid reports whether the role is one of the known values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSalesperson, RoleManager:
		return true
	}
	return false
}

// User represents a CRM user account.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	FirstName string    `json:"firstName" gorm:"not null"`
	LastName  string    `json:"lastName" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);default:salesperson;not null"`
	IsActive  bool      `json:"isActive" gorm:"default:true;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Activities   []Activity    `json:"activities,omitempty" gorm:"foreignKey:AssignedToID"`
	Interactions []Interaction `json:"interactions,omitempty" gorm:"foreignKey:UserID"`
}

// PublicUser is the subset of user fields exposed over the API.
type PublicUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips credential and lifecycle fields from a user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// JWTClaims is the payload carried by issued access tokens.
type JWTClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=admin salesperson manager"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}
