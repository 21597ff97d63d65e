package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)
	user := createTestUser(t, db, "rep@example.com", model.RoleSalesperson)
	customer := createTestCustomer(t, db, "Acme")

	now := time.Now()
	closeDate := now.Add(-24 * time.Hour)
	opportunities := []model.Opportunity{
		{Title: "Open deal", Value: 1000, Stage: model.StageQualified, CustomerID: customer.ID},
		{Title: "Won deal", Value: 2000, Stage: model.StageClosedWon, ActualCloseDate: &closeDate, CustomerID: customer.ID},
		{Title: "Lost deal", Value: 500, Stage: model.StageClosedLost, CustomerID: customer.ID},
	}
	for i := range opportunities {
		if err := db.Create(&opportunities[i]).Error; err != nil {
			t.Fatalf("failed to create opportunity: %v", err)
		}
	}

	activities := []model.Activity{
		{Title: "Overdue call", Type: model.ActivityCall, Status: model.ActivityPending, DueDate: now.Add(-48 * time.Hour), AssignedToID: user.ID},
		{Title: "Done on time", Type: model.ActivityTask, Status: model.ActivityCompleted, DueDate: now.Add(-24 * time.Hour), AssignedToID: user.ID},
		{Title: "Future task", Type: model.ActivityTask, Status: model.ActivityPending, DueDate: now.Add(24 * time.Hour), AssignedToID: user.ID},
	}
	for i := range activities {
		if err := db.Create(&activities[i]).Error; err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}
	}

	interaction := &model.Interaction{
		Type: model.InteractionNote, Subject: "Hi", Content: "text",
		CustomerID: customer.ID, UserID: user.ID,
	}
	if err := db.Create(interaction).Error; err != nil {
		t.Fatalf("failed to create interaction: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Customers.Total != 1 || stats.Customers.Active != 1 {
		t.Errorf("customers = %+v, want 1 total, 1 active", stats.Customers)
	}
	if stats.Opportunities.Open != 1 {
		t.Errorf("open opportunities = %d, want 1 (closed stages excluded)", stats.Opportunities.Open)
	}
	if stats.Opportunities.Won != 1 {
		t.Errorf("won opportunities = %d, want 1", stats.Opportunities.Won)
	}
	if stats.Opportunities.TotalValue != 3500 {
		t.Errorf("total value = %v, want 3500", stats.Opportunities.TotalValue)
	}
	if stats.Activities.Overdue != 1 {
		t.Errorf("overdue = %d, want 1 (completed past-due excluded)", stats.Activities.Overdue)
	}
	if stats.Interactions.ThisWeek != 1 {
		t.Errorf("interactions this week = %d, want 1", stats.Interactions.ThisWeek)
	}
	if len(stats.Charts.SalesPerformance) != 1 {
		t.Errorf("sales performance has %d buckets, want 1", len(stats.Charts.SalesPerformance))
	}
}

func TestReportInvalidType(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	_, err := svc.Report(context.Background(), "nonsense", nil, nil)
	if !errors.Is(err, ErrInvalidReportType) {
		t.Errorf("err = %v, want ErrInvalidReportType", err)
	}
}

func TestSalesReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)
	customer := createTestCustomer(t, db, "Acme")

	now := time.Now()
	recent := now.Add(-24 * time.Hour)
	old := now.AddDate(-1, 0, 0)
	opportunities := []model.Opportunity{
		{Title: "Won recently", Value: 3000, Stage: model.StageClosedWon, ActualCloseDate: &recent, CustomerID: customer.ID},
		{Title: "Won long ago", Value: 9000, Stage: model.StageClosedWon, ActualCloseDate: &old, CustomerID: customer.ID},
		{Title: "Still open", Value: 500, Stage: model.StageProposal, CustomerID: customer.ID},
	}
	for i := range opportunities {
		if err := db.Create(&opportunities[i]).Error; err != nil {
			t.Fatalf("failed to create opportunity: %v", err)
		}
	}

	start := now.AddDate(0, -1, 0)
	report, err := svc.Report(context.Background(), "sales", &start, nil)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	summary, ok := report.Summary.(map[string]any)
	if !ok {
		t.Fatalf("summary has unexpected shape: %T", report.Summary)
	}
	if got := summary["totalSales"]; got != 1 {
		t.Errorf("totalSales = %v, want 1 (open and out-of-range deals excluded)", got)
	}
	if got := summary["totalRevenue"]; got != 3000.0 {
		t.Errorf("totalRevenue = %v, want 3000", got)
	}
}

func TestCustomerReportGroups(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	seed := []model.Customer{
		{Name: "A", Status: model.CustomerActive, Industry: "tech"},
		{Name: "B", Status: model.CustomerActive, Industry: ""},
		{Name: "C", Status: model.CustomerProspect, Industry: "tech"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to create customer: %v", err)
		}
	}

	report, err := svc.Report(context.Background(), "customers", nil, nil)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	summary := report.Summary.(map[string]any)
	byStatus := summary["byStatus"].(map[string]int64)
	if byStatus["active"] != 2 {
		t.Errorf("active count = %d, want 2", byStatus["active"])
	}
	byIndustry := summary["byIndustry"].(map[string]int64)
	if byIndustry["unspecified"] != 1 {
		t.Errorf("unspecified industry = %d, want 1", byIndustry["unspecified"])
	}
}
