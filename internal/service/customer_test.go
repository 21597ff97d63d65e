package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
)

func TestCreateCustomerDefaultsStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	customer, err := svc.Create(context.Background(), &model.CreateCustomerRequest{Name: "Acme"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if customer.Status != model.CustomerProspect {
		t.Errorf("status = %q, want %q", customer.Status, model.CustomerProspect)
	}
}

func TestListCustomersPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	for i := 0; i < 25; i++ {
		createTestCustomer(t, db, fmt.Sprintf("Customer %02d", i))
	}

	customers, pagination, err := svc.List(context.Background(), CustomerFilters{
		Page: model.PageRequest{Page: 3, Limit: 10},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(customers) != 5 {
		t.Errorf("page 3 has %d customers, want 5", len(customers))
	}
	if pagination.Total != 25 {
		t.Errorf("total = %d, want 25", pagination.Total)
	}
	if pagination.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", pagination.TotalPages)
	}

	// Out-of-range pages return an empty data slice, not an error.
	customers, _, err = svc.List(context.Background(), CustomerFilters{
		Page: model.PageRequest{Page: 9, Limit: 10},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("out-of-range page has %d customers, want 0", len(customers))
	}
}

func TestListCustomersSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	createTestCustomer(t, db, "Globex")
	createTestCustomer(t, db, "Initech")

	customers, _, err := svc.List(context.Background(), CustomerFilters{Search: "glob"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(customers) != 1 || customers[0].Name != "Globex" {
		t.Errorf("search returned %d customers, want just Globex", len(customers))
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)
	customer := createTestCustomer(t, db, "Acme")

	city := "Milan"
	updated, err := svc.Update(context.Background(), customer.ID, &model.UpdateCustomerRequest{City: &city})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.City != "Milan" {
		t.Errorf("city = %q, want %q", updated.City, "Milan")
	}
	if updated.Name != "Acme" {
		t.Errorf("name = %q, untouched fields must survive", updated.Name)
	}
}

func TestUpdateCustomerNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	name := "Ghost"
	_, err := svc.Update(context.Background(), 999, &model.UpdateCustomerRequest{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)
	customer := createTestCustomer(t, db, "Acme")

	if err := svc.Delete(context.Background(), customer.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), customer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestDeleteCustomerWithDependents(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)
	customer := createTestCustomer(t, db, "Acme")
	user := createTestUser(t, db, "rep@example.com", model.RoleSalesperson)

	opp := &model.Opportunity{Title: "Deal", Value: 1000, CustomerID: customer.ID}
	if err := db.Create(opp).Error; err != nil {
		t.Fatalf("failed to create opportunity: %v", err)
	}
	interaction := &model.Interaction{
		Type:       model.InteractionCall,
		Subject:    "Demo",
		Content:    "Went well",
		CustomerID: customer.ID,
		UserID:     user.ID,
	}
	if err := db.Create(interaction).Error; err != nil {
		t.Fatalf("failed to create interaction: %v", err)
	}

	err := svc.Delete(context.Background(), customer.ID)
	if !errors.Is(err, ErrHasDependents) {
		t.Fatalf("err = %v, want ErrHasDependents", err)
	}

	var depErr *DependentsError
	if !errors.As(err, &depErr) {
		t.Fatalf("err is not a *DependentsError: %v", err)
	}
	if depErr.Opportunities != 1 || depErr.Interactions != 1 {
		t.Errorf("counts = %d/%d, want 1/1", depErr.Opportunities, depErr.Interactions)
	}

	// The record must survive a rejected delete.
	if _, err := svc.GetByID(context.Background(), customer.ID); err != nil {
		t.Errorf("customer gone after rejected delete: %v", err)
	}
}

func TestCustomerStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	statuses := []model.CustomerStatus{
		model.CustomerActive, model.CustomerActive,
		model.CustomerProspect,
		model.CustomerInactive,
	}
	for i, status := range statuses {
		customer := &model.Customer{Name: fmt.Sprintf("C%d", i), Status: status}
		if err := db.Create(customer).Error; err != nil {
			t.Fatalf("failed to create customer: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalCustomers != 4 {
		t.Errorf("total = %d, want 4", stats.TotalCustomers)
	}
	if stats.ActiveCustomers != 2 {
		t.Errorf("active = %d, want 2", stats.ActiveCustomers)
	}
	if stats.ProspectCustomers != 1 {
		t.Errorf("prospects = %d, want 1", stats.ProspectCustomers)
	}
	if stats.InactiveCustomers != 1 {
		t.Errorf("inactive = %d, want 1", stats.InactiveCustomers)
	}
}
