package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/gorm"
)

// CustomerFilters narrows the customer list.
type CustomerFilters struct {
	Search   string // matches name, company or email
	Industry string
	Status   string
	Page     model.PageRequest
}

// CustomerService manages customer records.
type CustomerService interface {
	List(ctx context.Context, filters CustomerFilters) ([]model.Customer, model.Pagination, error)
	GetByID(ctx context.Context, id uint) (*model.Customer, error)
	Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error)
	Update(ctx context.Context, id uint, req *model.UpdateCustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*model.CustomerStats, error)
}

type customerService struct {
	db *gorm.DB
}

// NewCustomerService creates a customer service backed by the given database.
func NewCustomerService(db *gorm.DB) CustomerService {
	return &customerService{db: db}
}

// List returns one page of customers ordered by creation date, newest first.
func (s *customerService) List(ctx context.Context, filters CustomerFilters) ([]model.Customer, model.Pagination, error) {
	filters.Page.Normalize()

	query := s.db.WithContext(ctx).Model(&model.Customer{})
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR company LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if filters.Industry != "" {
		query = query.Where("industry = ?", filters.Industry)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to count customers: %w", err)
	}

	var customers []model.Customer
	err := query.
		Order("created_at DESC").
		Offset(filters.Page.Offset()).
		Limit(filters.Page.Limit).
		Find(&customers).Error
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, model.NewPagination(filters.Page.Page, filters.Page.Limit, total), nil
}

// GetByID loads one customer with its opportunities and interactions.
func (s *customerService) GetByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.WithContext(ctx).
		Preload("Opportunities").
		Preload("Interactions").
		First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// Create persists a new customer.
func (s *customerService) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	status := model.CustomerProspect
	if req.Status != "" {
		status = model.CustomerStatus(req.Status)
	}

	customer := &model.Customer{
		Name:     req.Name,
		Company:  req.Company,
		Industry: req.Industry,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Status:   status,
		Notes:    req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// Update merges the non-nil request fields over the stored record.
func (s *customerService) Update(ctx context.Context, id uint, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Company != nil {
		customer.Company = *req.Company
	}
	if req.Industry != nil {
		customer.Industry = *req.Industry
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}
	if req.Status != nil {
		customer.Status = model.CustomerStatus(*req.Status)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.db.WithContext(ctx).Save(&customer).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return &customer, nil
}

// Delete removes a customer. Customers with dependent opportunities or
// interactions are not deleted; the returned DependentsError carries the
// counts so the handler can answer 409 with detail.
func (s *customerService) Delete(ctx context.Context, id uint) error {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	var oppCount, intCount int64
	if err := s.db.WithContext(ctx).Model(&model.Opportunity{}).
		Where("customer_id = ?", id).Count(&oppCount).Error; err != nil {
		return fmt.Errorf("failed to count opportunities: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&model.Interaction{}).
		Where("customer_id = ?", id).Count(&intCount).Error; err != nil {
		return fmt.Errorf("failed to count interactions: %w", err)
	}
	if oppCount > 0 || intCount > 0 {
		return &DependentsError{Opportunities: oppCount, Interactions: intCount}
	}

	if err := s.db.WithContext(ctx).Delete(&customer).Error; err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// Stats returns customer counts by status.
func (s *customerService) Stats(ctx context.Context) (*model.CustomerStats, error) {
	stats := &model.CustomerStats{}
	db := s.db.WithContext(ctx).Model(&model.Customer{})

	if err := db.Count(&stats.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	counts := []struct {
		status model.CustomerStatus
		dest   *int64
	}{
		{model.CustomerActive, &stats.ActiveCustomers},
		{model.CustomerProspect, &stats.ProspectCustomers},
		{model.CustomerInactive, &stats.InactiveCustomers},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(&model.Customer{}).
			Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count customers by status: %w", err)
		}
	}

	return stats, nil
}
