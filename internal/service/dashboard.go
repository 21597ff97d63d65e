package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/gorm"
)

// DashboardStats is the aggregated snapshot behind GET /api/dashboard/stats.
type DashboardStats struct {
	Customers     CustomerCounters    `json:"customers"`
	Opportunities OpportunityCounters `json:"opportunities"`
	Activities    ActivityCounters    `json:"activities"`
	Interactions  InteractionCounters `json:"interactions"`
	Charts        DashboardCharts     `json:"charts"`
}

type CustomerCounters struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	NewThisMonth int64 `json:"newThisMonth"`
}

type OpportunityCounters struct {
	Total      int64   `json:"total"`
	Open       int64   `json:"open"`
	TotalValue float64 `json:"totalValue"`
	Won        int64   `json:"won"`
}

type ActivityCounters struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Overdue int64 `json:"overdue"`
}

type InteractionCounters struct {
	Total    int64 `json:"total"`
	ThisWeek int64 `json:"thisWeek"`
}

// DashboardCharts holds the grouped breakdowns and monthly trend series.
type DashboardCharts struct {
	OpportunitiesByStage []model.StageStat `json:"opportunitiesByStage"`
	ActivitiesByType     []TypeCount       `json:"activitiesByType"`
	CustomerTrend        []MonthCount      `json:"customerTrend"`
	SalesPerformance     []MonthRevenue    `json:"salesPerformance"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type MonthRevenue struct {
	Month      string  `json:"month"`
	Count      int64   `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// ReportPeriod echoes the requested date bounds.
type ReportPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Report is an ad hoc aggregation over one entity for a date range.
type Report struct {
	Title   string       `json:"title"`
	Period  ReportPeriod `json:"period"`
	Summary any          `json:"summary"`
	Data    any          `json:"data"`
}

// CustomerRevenue ranks a customer inside the sales report.
type CustomerRevenue struct {
	Customer string  `json:"customer"`
	Deals    int64   `json:"deals"`
	Revenue  float64 `json:"revenue"`
}

// ErrInvalidReportType rejects unknown report type tags.
var ErrInvalidReportType = fmt.Errorf("invalid report type")

// DashboardService computes aggregate statistics and reports.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	Report(ctx context.Context, reportType string, start, end *time.Time) (*Report, error)
}

type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a dashboard service backed by the given database.
func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

// monthExpr returns the SQL expression that buckets a timestamp column
// into a YYYY-MM string for the connected backend.
func (s *dashboardService) monthExpr(column string) string {
	if s.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}

// Stats aggregates the whole dashboard snapshot. Each counter is its own
// query; there is no cross-query consistency guarantee.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)
	now := time.Now()

	// Customers
	if err := db.Model(&model.Customer{}).Count(&stats.Customers.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if err := db.Model(&model.Customer{}).
		Where("status = ?", model.CustomerActive).
		Count(&stats.Customers.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active customers: %w", err)
	}
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&model.Customer{}).
		Where("created_at >= ?", startOfMonth).
		Count(&stats.Customers.NewThisMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to count new customers: %w", err)
	}

	// Opportunities
	if err := db.Model(&model.Opportunity{}).Count(&stats.Opportunities.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count opportunities: %w", err)
	}
	if err := db.Model(&model.Opportunity{}).
		Where("stage NOT IN ?", []model.OpportunityStage{model.StageClosedWon, model.StageClosedLost}).
		Count(&stats.Opportunities.Open).Error; err != nil {
		return nil, fmt.Errorf("failed to count open opportunities: %w", err)
	}
	var totalValue struct{ Total float64 }
	if err := db.Model(&model.Opportunity{}).
		Select("COALESCE(SUM(value), 0) AS total").
		Scan(&totalValue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum opportunity values: %w", err)
	}
	stats.Opportunities.TotalValue = totalValue.Total
	if err := db.Model(&model.Opportunity{}).
		Where("stage = ?", model.StageClosedWon).
		Count(&stats.Opportunities.Won).Error; err != nil {
		return nil, fmt.Errorf("failed to count won opportunities: %w", err)
	}

	// Activities
	if err := db.Model(&model.Activity{}).Count(&stats.Activities.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	if err := db.Model(&model.Activity{}).
		Where("status = ?", model.ActivityPending).
		Count(&stats.Activities.Pending).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending activities: %w", err)
	}
	if err := db.Model(&model.Activity{}).
		Where("due_date < ?", now).
		Where("status != ?", model.ActivityCompleted).
		Count(&stats.Activities.Overdue).Error; err != nil {
		return nil, fmt.Errorf("failed to count overdue activities: %w", err)
	}

	// Interactions
	if err := db.Model(&model.Interaction{}).Count(&stats.Interactions.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	weekAgo := now.AddDate(0, 0, -7)
	if err := db.Model(&model.Interaction{}).
		Where("created_at >= ?", weekAgo).
		Count(&stats.Interactions.ThisWeek).Error; err != nil {
		return nil, fmt.Errorf("failed to count recent interactions: %w", err)
	}

	// Breakdowns
	if err := db.Model(&model.Opportunity{}).
		Select("stage, COUNT(*) AS count, COALESCE(SUM(value), 0) AS total_value").
		Group("stage").
		Order("stage").
		Scan(&stats.Charts.OpportunitiesByStage).Error; err != nil {
		return nil, fmt.Errorf("failed to group opportunities by stage: %w", err)
	}
	if err := db.Model(&model.Activity{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Order("type").
		Scan(&stats.Charts.ActivitiesByType).Error; err != nil {
		return nil, fmt.Errorf("failed to group activities by type: %w", err)
	}

	// Monthly trends over the last six months
	sixMonthsAgo := now.AddDate(0, -6, 0)
	monthCreated := s.monthExpr("created_at")
	if err := db.Model(&model.Customer{}).
		Select(monthCreated+" AS month, COUNT(*) AS count").
		Where("created_at >= ?", sixMonthsAgo).
		Group(monthCreated).
		Order("month ASC").
		Scan(&stats.Charts.CustomerTrend).Error; err != nil {
		return nil, fmt.Errorf("failed to compute customer trend: %w", err)
	}
	monthClosed := s.monthExpr("actual_close_date")
	if err := db.Model(&model.Opportunity{}).
		Select(monthClosed+" AS month, COUNT(*) AS count, COALESCE(SUM(value), 0) AS total_value").
		Where("stage = ?", model.StageClosedWon).
		Where("actual_close_date >= ?", sixMonthsAgo).
		Group(monthClosed).
		Order("month ASC").
		Scan(&stats.Charts.SalesPerformance).Error; err != nil {
		return nil, fmt.Errorf("failed to compute sales performance: %w", err)
	}

	return stats, nil
}

// Report builds the requested report for an optional date range.
func (s *dashboardService) Report(ctx context.Context, reportType string, start, end *time.Time) (*Report, error) {
	switch reportType {
	case "customers":
		return s.customerReport(ctx, start, end)
	case "opportunities":
		return s.opportunityReport(ctx, start, end)
	case "activities":
		return s.activityReport(ctx, start, end)
	case "sales":
		return s.salesReport(ctx, start, end)
	default:
		return nil, ErrInvalidReportType
	}
}

func reportPeriod(start, end *time.Time) ReportPeriod {
	p := ReportPeriod{}
	if start != nil {
		p.StartDate = start.Format(time.RFC3339)
	}
	if end != nil {
		p.EndDate = end.Format(time.RFC3339)
	}
	return p
}

func dateBounds(query *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where(column+" >= ?", *start)
	}
	if end != nil {
		query = query.Where(column+" <= ?", *end)
	}
	return query
}

func (s *dashboardService) customerReport(ctx context.Context, start, end *time.Time) (*Report, error) {
	query := dateBounds(s.db.WithContext(ctx).Model(&model.Customer{}), "created_at", start, end)

	var customers []model.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	byStatus := map[string]int64{}
	byIndustry := map[string]int64{}
	for i := range customers {
		byStatus[string(customers[i].Status)]++
		industry := customers[i].Industry
		if industry == "" {
			industry = "unspecified"
		}
		byIndustry[industry]++
	}

	return &Report{
		Title:  "Customer Report",
		Period: reportPeriod(start, end),
		Summary: map[string]any{
			"totalCustomers": len(customers),
			"byStatus":       byStatus,
			"byIndustry":     byIndustry,
		},
		Data: customers,
	}, nil
}

func (s *dashboardService) opportunityReport(ctx context.Context, start, end *time.Time) (*Report, error) {
	query := dateBounds(s.db.WithContext(ctx).Model(&model.Opportunity{}), "created_at", start, end).
		Preload("Customer")

	var opportunities []model.Opportunity
	if err := query.Find(&opportunities).Error; err != nil {
		return nil, fmt.Errorf("failed to load opportunities: %w", err)
	}

	byStage := map[string]int64{}
	var totalValue float64
	for i := range opportunities {
		byStage[string(opportunities[i].Stage)]++
		totalValue += opportunities[i].Value
	}
	averageValue := 0.0
	if len(opportunities) > 0 {
		averageValue = totalValue / float64(len(opportunities))
	}

	return &Report{
		Title:  "Opportunity Report",
		Period: reportPeriod(start, end),
		Summary: map[string]any{
			"totalOpportunities": len(opportunities),
			"totalValue":         totalValue,
			"averageValue":       averageValue,
			"byStage":            byStage,
		},
		Data: opportunities,
	}, nil
}

func (s *dashboardService) activityReport(ctx context.Context, start, end *time.Time) (*Report, error) {
	query := dateBounds(s.db.WithContext(ctx).Model(&model.Activity{}), "created_at", start, end).
		Preload("AssignedTo")

	var activities []model.Activity
	if err := query.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	byStatus := map[string]int64{}
	byType := map[string]int64{}
	var completed int
	for i := range activities {
		byStatus[string(activities[i].Status)]++
		byType[string(activities[i].Type)]++
		if activities[i].Status == model.ActivityCompleted {
			completed++
		}
	}
	completionRate := 0.0
	if len(activities) > 0 {
		completionRate = float64(completed) / float64(len(activities)) * 100
	}

	return &Report{
		Title:  "Activity Report",
		Period: reportPeriod(start, end),
		Summary: map[string]any{
			"totalActivities": len(activities),
			"byStatus":        byStatus,
			"byType":          byType,
			"completionRate":  completionRate,
		},
		Data: activities,
	}, nil
}

// salesReport covers won opportunities only, bounded by actual close date.
func (s *dashboardService) salesReport(ctx context.Context, start, end *time.Time) (*Report, error) {
	query := s.db.WithContext(ctx).Model(&model.Opportunity{}).
		Where("stage = ?", model.StageClosedWon).
		Preload("Customer")
	query = dateBounds(query, "actual_close_date", start, end)

	var won []model.Opportunity
	if err := query.Find(&won).Error; err != nil {
		return nil, fmt.Errorf("failed to load won opportunities: %w", err)
	}

	var totalRevenue float64
	topCustomers := map[uint]*CustomerRevenue{}
	for i := range won {
		totalRevenue += won[i].Value
		if won[i].Customer != nil {
			entry, ok := topCustomers[won[i].CustomerID]
			if !ok {
				entry = &CustomerRevenue{Customer: won[i].Customer.Name}
				topCustomers[won[i].CustomerID] = entry
			}
			entry.Deals++
			entry.Revenue += won[i].Value
		}
	}
	averageDealSize := 0.0
	if len(won) > 0 {
		averageDealSize = totalRevenue / float64(len(won))
	}

	return &Report{
		Title:  "Sales Report",
		Period: reportPeriod(start, end),
		Summary: map[string]any{
			"totalSales":      len(won),
			"totalRevenue":    totalRevenue,
			"averageDealSize": averageDealSize,
			"topCustomers":    topCustomers,
		},
		Data: won,
	}, nil
}
