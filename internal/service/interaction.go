package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/gorm"
)

// InteractionFilters narrows the interaction list.
type InteractionFilters struct {
	Type       string
	CustomerID uint
	UserID     uint
	Page       model.PageRequest
}

// InteractionService manages customer interaction logs.
type InteractionService interface {
	List(ctx context.Context, filters InteractionFilters) ([]model.Interaction, model.Pagination, error)
	GetByID(ctx context.Context, id uint) (*model.Interaction, error)
	Create(ctx context.Context, req *model.CreateInteractionRequest, authorID uint) (*model.Interaction, error)
	Update(ctx context.Context, id uint, req *model.UpdateInteractionRequest) (*model.Interaction, error)
	Delete(ctx context.Context, id uint) error
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Interaction, error)
	ListRecent(ctx context.Context, limit int) ([]model.Interaction, error)
}

type interactionService struct {
	db *gorm.DB
}

// NewInteractionService creates an interaction service backed by the given database.
func NewInteractionService(db *gorm.DB) InteractionService {
	return &interactionService{db: db}
}

// List returns one page of interactions with their relations, newest first.
func (s *interactionService) List(ctx context.Context, filters InteractionFilters) ([]model.Interaction, model.Pagination, error) {
	filters.Page.Normalize()

	query := s.db.WithContext(ctx).Model(&model.Interaction{})
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.CustomerID != 0 {
		query = query.Where("customer_id = ?", filters.CustomerID)
	}
	if filters.UserID != 0 {
		query = query.Where("user_id = ?", filters.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to count interactions: %w", err)
	}

	var interactions []model.Interaction
	err := query.
		Preload("Customer").
		Preload("User").
		Order("created_at DESC").
		Offset(filters.Page.Offset()).
		Limit(filters.Page.Limit).
		Find(&interactions).Error
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list interactions: %w", err)
	}

	return interactions, model.NewPagination(filters.Page.Page, filters.Page.Limit, total), nil
}

// GetByID loads one interaction with its customer and author.
func (s *interactionService) GetByID(ctx context.Context, id uint) (*model.Interaction, error) {
	var interaction model.Interaction
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("User").
		First(&interaction, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}
	return &interaction, nil
}

// Create verifies the referenced customer exists and persists the
// interaction authored by the authenticated user.
func (s *interactionService) Create(ctx context.Context, req *model.CreateInteractionRequest, authorID uint) (*model.Interaction, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	interaction := &model.Interaction{
		Type:        model.InteractionType(req.Type),
		Subject:     req.Subject,
		Content:     req.Content,
		Attachments: req.Attachments,
		CustomerID:  req.CustomerID,
		UserID:      authorID,
	}
	if err := s.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return nil, fmt.Errorf("failed to create interaction: %w", err)
	}

	return s.GetByID(ctx, interaction.ID)
}

// Update merges the non-nil request fields over the stored record.
func (s *interactionService) Update(ctx context.Context, id uint, req *model.UpdateInteractionRequest) (*model.Interaction, error) {
	var interaction model.Interaction
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("User").
		First(&interaction, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}

	if req.Type != nil {
		interaction.Type = model.InteractionType(*req.Type)
	}
	if req.Subject != nil {
		interaction.Subject = *req.Subject
	}
	if req.Content != nil {
		interaction.Content = *req.Content
	}
	if req.Attachments != nil {
		interaction.Attachments = *req.Attachments
	}

	if err := s.db.WithContext(ctx).Save(&interaction).Error; err != nil {
		return nil, fmt.Errorf("failed to update interaction: %w", err)
	}
	return &interaction, nil
}

// Delete removes an interaction.
func (s *interactionService) Delete(ctx context.Context, id uint) error {
	var interaction model.Interaction
	if err := s.db.WithContext(ctx).First(&interaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get interaction: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&interaction).Error; err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	return nil
}

// ListByCustomer returns all interactions for one customer, newest first.
func (s *interactionService) ListByCustomer(ctx context.Context, customerID uint) ([]model.Interaction, error) {
	var interactions []model.Interaction
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}

// ListRecent returns the most recent interactions across all customers.
func (s *interactionService) ListRecent(ctx context.Context, limit int) ([]model.Interaction, error) {
	if limit < 1 {
		limit = 10
	}

	var interactions []model.Interaction
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent interactions: %w", err)
	}
	return interactions, nil
}
