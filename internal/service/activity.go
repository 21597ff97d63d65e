package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/gorm"
)

// ActivityFilters narrows the activity list.
type ActivityFilters struct {
	Status       string
	Type         string
	AssignedToID uint
	Page         model.PageRequest
}

// ActivityService manages scheduled activities.
type ActivityService interface {
	List(ctx context.Context, requester *model.User, filters ActivityFilters) ([]model.Activity, model.Pagination, error)
	GetByID(ctx context.Context, id uint) (*model.Activity, error)
	Create(ctx context.Context, req *model.CreateActivityRequest) (*model.Activity, error)
	Update(ctx context.Context, id uint, req *model.UpdateActivityRequest) (*model.Activity, error)
	Delete(ctx context.Context, id uint) error
	ListMine(ctx context.Context, userID uint, status, activityType string) ([]model.Activity, error)
	ListUpcoming(ctx context.Context, userID uint) ([]model.Activity, error)
}

type activityService struct {
	db *gorm.DB
}

// NewActivityService creates an activity service backed by the given database.
func NewActivityService(db *gorm.DB) ActivityService {
	return &activityService{db: db}
}

// List returns one page of activities ordered by due date. Non-admin
// requesters are restricted to activities assigned to themselves.
func (s *activityService) List(ctx context.Context, requester *model.User, filters ActivityFilters) ([]model.Activity, model.Pagination, error) {
	filters.Page.Normalize()

	query := s.db.WithContext(ctx).Model(&model.Activity{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.AssignedToID != 0 {
		query = query.Where("assigned_to_id = ?", filters.AssignedToID)
	}
	if requester.Role != model.RoleAdmin {
		query = query.Where("assigned_to_id = ?", requester.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to count activities: %w", err)
	}

	var activities []model.Activity
	err := query.
		Preload("AssignedTo").
		Order("due_date ASC").
		Offset(filters.Page.Offset()).
		Limit(filters.Page.Limit).
		Find(&activities).Error
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, model.NewPagination(filters.Page.Page, filters.Page.Limit, total), nil
}

// GetByID loads one activity with its assignee.
func (s *activityService) GetByID(ctx context.Context, id uint) (*model.Activity, error) {
	var activity model.Activity
	err := s.db.WithContext(ctx).Preload("AssignedTo").First(&activity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

// Create verifies the assigned user exists, persists the activity and
// reloads it with the assignee relation.
func (s *activityService) Create(ctx context.Context, req *model.CreateActivityRequest) (*model.Activity, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, req.AssignedToID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to look up assignee: %w", err)
	}

	status := model.ActivityPending
	if req.Status != "" {
		status = model.ActivityStatus(req.Status)
	}
	priority := req.Priority
	if priority == 0 {
		priority = 1
	}

	activity := &model.Activity{
		Title:        req.Title,
		Description:  req.Description,
		Type:         model.ActivityType(req.Type),
		Status:       status,
		DueDate:      req.DueDate,
		Priority:     priority,
		AssignedToID: req.AssignedToID,
	}
	if err := s.db.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return s.GetByID(ctx, activity.ID)
}

// Update merges the non-nil request fields over the stored record.
// The first transition to completed stamps CompletedDate; later updates
// never overwrite an existing completion timestamp.
func (s *activityService) Update(ctx context.Context, id uint, req *model.UpdateActivityRequest) (*model.Activity, error) {
	var activity model.Activity
	err := s.db.WithContext(ctx).Preload("AssignedTo").First(&activity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	if req.Status != nil &&
		model.ActivityStatus(*req.Status) == model.ActivityCompleted &&
		activity.CompletedDate == nil {
		now := time.Now()
		activity.CompletedDate = &now
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Type != nil {
		activity.Type = model.ActivityType(*req.Type)
	}
	if req.Status != nil {
		activity.Status = model.ActivityStatus(*req.Status)
	}
	if req.DueDate != nil {
		activity.DueDate = *req.DueDate
	}
	if req.Priority != nil {
		activity.Priority = *req.Priority
	}
	if req.AssignedToID != nil {
		var user model.User
		if err := s.db.WithContext(ctx).First(&user, *req.AssignedToID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to look up assignee: %w", err)
		}
		activity.AssignedToID = *req.AssignedToID
		activity.AssignedTo = nil
	}

	if err := s.db.WithContext(ctx).Save(&activity).Error; err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return s.GetByID(ctx, activity.ID)
}

// Delete removes an activity.
func (s *activityService) Delete(ctx context.Context, id uint) error {
	var activity model.Activity
	if err := s.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get activity: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&activity).Error; err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// ListMine returns all activities assigned to the user, optionally
// narrowed by status and type, ordered by due date.
func (s *activityService) ListMine(ctx context.Context, userID uint, status, activityType string) ([]model.Activity, error) {
	query := s.db.WithContext(ctx).
		Preload("AssignedTo").
		Where("assigned_to_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if activityType != "" {
		query = query.Where("type = ?", activityType)
	}

	var activities []model.Activity
	if err := query.Order("due_date ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// ListUpcoming returns the user's unfinished activities due within the
// next seven days.
func (s *activityService) ListUpcoming(ctx context.Context, userID uint) ([]model.Activity, error) {
	now := time.Now()
	nextWeek := now.AddDate(0, 0, 7)

	var activities []model.Activity
	err := s.db.WithContext(ctx).
		Preload("AssignedTo").
		Where("assigned_to_id = ?", userID).
		Where("due_date BETWEEN ? AND ?", now, nextWeek).
		Where("status != ?", model.ActivityCompleted).
		Order("due_date ASC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming activities: %w", err)
	}
	return activities, nil
}
