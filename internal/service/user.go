package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcatania72/CRM-System-NEW/internal/auth"
	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/gorm"
)

// UserService handles account registration, credential checks and the
// user directory.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	ListActive(ctx context.Context) ([]model.PublicUser, error)
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a user service backed by the given database.
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

// Register creates a new account. Duplicate emails are rejected with
// ErrEmailTaken. The role defaults to salesperson when omitted.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	var existing model.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := model.RoleSalesperson
	if req.Role != "" {
		role = model.UserRole(req.Role)
	}

	user := &model.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies email and password for an active account.
// Absent, inactive and wrong-password cases all collapse into
// ErrInvalidCredentials so callers cannot tell which check failed.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetByID loads one user.
func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListActive returns the public fields of all active users.
func (s *userService) ListActive(ctx context.Context) ([]model.PublicUser, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]model.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}
