package model

import "time"

// CustomerStatus enumerates the lifecycle states of a customer.
type CustomerStatus string

const (
	CustomerProspect CustomerStatus = "prospect"
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerLost     CustomerStatus = "lost"
)

// IsValid reports whether the status is one of the known values.
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerProspect, CustomerActive, CustomerInactive, CustomerLost:
		return true
	}
	return false
}

// Customer represents a company or person the sales team works.
type Customer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null;index"`
	Company   string         `json:"company"`
	Industry  string         `json:"industry"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	City      string         `json:"city"`
	Country   string         `json:"country"`
	Status    CustomerStatus `json:"status" gorm:"type:varchar(20);default:prospect;not null;index"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	Opportunities []Opportunity `json:"opportunities,omitempty" gorm:"foreignKey:CustomerID"`
	Interactions  []Interaction `json:"interactions,omitempty" gorm:"foreignKey:CustomerID"`
}

// CreateCustomerRequest is the payload for POST /api/customers.
type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Company  string `json:"company"`
	Industry string `json:"industry"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Status   string `json:"status" binding:"omitempty,oneof=prospect active inactive lost"`
	Notes    string `json:"notes"`
}

// UpdateCustomerRequest carries partial customer fields for PUT /api/customers/:id.
// Nil pointers leave the stored value untouched.
type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Company  *string `json:"company,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Country  *string `json:"country,omitempty"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=prospect active inactive lost"`
	Notes    *string `json:"notes,omitempty"`
}

// CustomerStats summarizes customer counts by status.
type CustomerStats struct {
	TotalCustomers    int64 `json:"totalCustomers"`
	ActiveCustomers   int64 `json:"activeCustomers"`
	ProspectCustomers int64 `json:"prospectCustomers"`
	InactiveCustomers int64 `json:"inactiveCustomers"`
}
