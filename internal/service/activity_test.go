package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
)

func TestCreateActivityRequiresAssignee(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	_, err := svc.Create(context.Background(), &model.CreateActivityRequest{
		Title:        "Call nobody",
		Type:         "call",
		DueDate:      time.Now().Add(24 * time.Hour),
		AssignedToID: 99,
	})
	if !errors.Is(err, ErrAssigneeNotFound) {
		t.Errorf("err = %v, want ErrAssigneeNotFound", err)
	}
}

func TestCreateActivityDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "rep@example.com", model.RoleSalesperson)

	activity, err := svc.Create(context.Background(), &model.CreateActivityRequest{
		Title:        "Follow up",
		Type:         "followup",
		DueDate:      time.Now().Add(24 * time.Hour),
		AssignedToID: user.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if activity.Status != model.ActivityPending {
		t.Errorf("status = %q, want %q", activity.Status, model.ActivityPending)
	}
	if activity.Priority != 1 {
		t.Errorf("priority = %d, want 1", activity.Priority)
	}
	if activity.CompletedDate != nil {
		t.Error("new activity must not carry a completion date")
	}
}

func TestCompletionDateStampedOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "rep@example.com", model.RoleSalesperson)

	activity, err := svc.Create(context.Background(), &model.CreateActivityRequest{
		Title:        "Close the loop",
		Type:         "task",
		DueDate:      time.Now().Add(24 * time.Hour),
		AssignedToID: user.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	completed := string(model.ActivityCompleted)
	first, err := svc.Update(context.Background(), activity.ID, &model.UpdateActivityRequest{Status: &completed})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if first.CompletedDate == nil {
		t.Fatal("transition to completed must stamp the completion date")
	}
	stamped := *first.CompletedDate

	time.Sleep(10 * time.Millisecond)
	second, err := svc.Update(context.Background(), activity.ID, &model.UpdateActivityRequest{Status: &completed})
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if second.CompletedDate == nil || !second.CompletedDate.Equal(stamped) {
		t.Errorf("completion date changed on repeat update: %v != %v", second.CompletedDate, stamped)
	}
}

func TestListActivitiesScopedForNonAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	admin := createTestUser(t, db, "admin@example.com", model.RoleAdmin)
	rep := createTestUser(t, db, "rep@example.com", model.RoleSalesperson)

	for _, assignee := range []uint{admin.ID, rep.ID, rep.ID} {
		activity := &model.Activity{
			Title:        "Work",
			Type:         model.ActivityTask,
			Status:       model.ActivityPending,
			DueDate:      time.Now().Add(time.Hour),
			AssignedToID: assignee,
		}
		if err := db.Create(activity).Error; err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}
	}

	_, pagination, err := svc.List(context.Background(), rep, ActivityFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if pagination.Total != 2 {
		t.Errorf("salesperson sees %d activities, want 2", pagination.Total)
	}

	_, pagination, err = svc.List(context.Background(), admin, ActivityFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if pagination.Total != 3 {
		t.Errorf("admin sees %d activities, want 3", pagination.Total)
	}
}

func TestListUpcomingWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "rep@example.com", model.RoleSalesperson)

	seed := []struct {
		title  string
		due    time.Time
		status model.ActivityStatus
	}{
		{"due soon", time.Now().Add(48 * time.Hour), model.ActivityPending},
		{"too far out", time.Now().AddDate(0, 0, 10), model.ActivityPending},
		{"already past", time.Now().Add(-48 * time.Hour), model.ActivityPending},
		{"done", time.Now().Add(24 * time.Hour), model.ActivityCompleted},
	}
	for _, s := range seed {
		activity := &model.Activity{
			Title:        s.title,
			Type:         model.ActivityTask,
			Status:       s.status,
			DueDate:      s.due,
			AssignedToID: user.ID,
		}
		if err := db.Create(activity).Error; err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}
	}

	upcoming, err := svc.ListUpcoming(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListUpcoming failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Title != "due soon" {
		t.Errorf("upcoming = %d items, want just the activity due in 2 days", len(upcoming))
	}
}

func TestListMineFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "rep@example.com", model.RoleSalesperson)

	seed := []struct {
		activityType model.ActivityType
		status       model.ActivityStatus
	}{
		{model.ActivityCall, model.ActivityPending},
		{model.ActivityCall, model.ActivityCompleted},
		{model.ActivityEmail, model.ActivityPending},
	}
	for _, s := range seed {
		activity := &model.Activity{
			Title:        "Work",
			Type:         s.activityType,
			Status:       s.status,
			DueDate:      time.Now().Add(time.Hour),
			AssignedToID: user.ID,
		}
		if err := db.Create(activity).Error; err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}
	}

	mine, err := svc.ListMine(context.Background(), user.ID, string(model.ActivityPending), string(model.ActivityCall))
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("filtered list has %d activities, want 1", len(mine))
	}
}
