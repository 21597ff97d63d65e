package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/gorm"
)

// OpportunityFilters narrows the opportunity list.
type OpportunityFilters struct {
	Stage      string
	CustomerID uint
	Page       model.PageRequest
}

// OpportunityService manages sales opportunities.
type OpportunityService interface {
	List(ctx context.Context, filters OpportunityFilters) ([]model.Opportunity, model.Pagination, error)
	GetByID(ctx context.Context, id uint) (*model.Opportunity, error)
	Create(ctx context.Context, req *model.CreateOpportunityRequest) (*model.Opportunity, error)
	Update(ctx context.Context, id uint, req *model.UpdateOpportunityRequest) (*model.Opportunity, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*model.OpportunityStats, error)
}

type opportunityService struct {
	db *gorm.DB
}

// NewOpportunityService creates an opportunity service backed by the given database.
func NewOpportunityService(db *gorm.DB) OpportunityService {
	return &opportunityService{db: db}
}

// List returns one page of opportunities with their customers, newest first.
func (s *opportunityService) List(ctx context.Context, filters OpportunityFilters) ([]model.Opportunity, model.Pagination, error) {
	filters.Page.Normalize()

	query := s.db.WithContext(ctx).Model(&model.Opportunity{})
	if filters.Stage != "" {
		query = query.Where("stage = ?", filters.Stage)
	}
	if filters.CustomerID != 0 {
		query = query.Where("customer_id = ?", filters.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to count opportunities: %w", err)
	}

	var opportunities []model.Opportunity
	err := query.
		Preload("Customer").
		Order("created_at DESC").
		Offset(filters.Page.Offset()).
		Limit(filters.Page.Limit).
		Find(&opportunities).Error
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list opportunities: %w", err)
	}

	return opportunities, model.NewPagination(filters.Page.Page, filters.Page.Limit, total), nil
}

// GetByID loads one opportunity with its customer.
func (s *opportunityService) GetByID(ctx context.Context, id uint) (*model.Opportunity, error) {
	var opportunity model.Opportunity
	err := s.db.WithContext(ctx).Preload("Customer").First(&opportunity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return &opportunity, nil
}

// Create verifies the referenced customer exists, persists the opportunity
// and reloads it with the customer relation.
func (s *opportunityService) Create(ctx context.Context, req *model.CreateOpportunityRequest) (*model.Opportunity, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	stage := model.StageProspect
	if req.Stage != "" {
		stage = model.OpportunityStage(req.Stage)
	}

	opportunity := &model.Opportunity{
		Title:             req.Title,
		Description:       req.Description,
		Value:             req.Value,
		Probability:       req.Probability,
		Stage:             stage,
		ExpectedCloseDate: req.ExpectedCloseDate,
		ActualCloseDate:   req.ActualCloseDate,
		CustomerID:        req.CustomerID,
	}
	if err := s.db.WithContext(ctx).Create(opportunity).Error; err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}

	return s.GetByID(ctx, opportunity.ID)
}

// Update merges the non-nil request fields over the stored record.
func (s *opportunityService) Update(ctx context.Context, id uint, req *model.UpdateOpportunityRequest) (*model.Opportunity, error) {
	var opportunity model.Opportunity
	err := s.db.WithContext(ctx).Preload("Customer").First(&opportunity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	if req.Title != nil {
		opportunity.Title = *req.Title
	}
	if req.Description != nil {
		opportunity.Description = *req.Description
	}
	if req.Value != nil {
		opportunity.Value = *req.Value
	}
	if req.Probability != nil {
		opportunity.Probability = *req.Probability
	}
	if req.Stage != nil {
		opportunity.Stage = model.OpportunityStage(*req.Stage)
	}
	if req.ExpectedCloseDate != nil {
		opportunity.ExpectedCloseDate = req.ExpectedCloseDate
	}
	if req.ActualCloseDate != nil {
		opportunity.ActualCloseDate = req.ActualCloseDate
	}

	if err := s.db.WithContext(ctx).Save(&opportunity).Error; err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}
	return &opportunity, nil
}

// Delete removes an opportunity.
func (s *opportunityService) Delete(ctx context.Context, id uint) error {
	var opportunity model.Opportunity
	if err := s.db.WithContext(ctx).First(&opportunity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get opportunity: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&opportunity).Error; err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	return nil
}

// Stats returns totals, averages and the per-stage breakdown.
func (s *opportunityService) Stats(ctx context.Context) (*model.OpportunityStats, error) {
	stats := &model.OpportunityStats{}

	if err := s.db.WithContext(ctx).Model(&model.Opportunity{}).
		Count(&stats.TotalOpportunities).Error; err != nil {
		return nil, fmt.Errorf("failed to count opportunities: %w", err)
	}

	var agg struct {
		Total   float64
		Average float64
	}
	err := s.db.WithContext(ctx).Model(&model.Opportunity{}).
		Select("COALESCE(SUM(value), 0) AS total, COALESCE(AVG(value), 0) AS average").
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate opportunity values: %w", err)
	}
	stats.TotalValue = agg.Total
	stats.AverageValue = agg.Average

	err = s.db.WithContext(ctx).Model(&model.Opportunity{}).
		Select("stage, COUNT(*) AS count, COALESCE(SUM(value), 0) AS total_value").
		Group("stage").
		Order("stage").
		Scan(&stats.StageStats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group opportunities by stage: %w", err)
	}

	return stats, nil
}
