package model

import "time"

// ActivityType enumerates the kinds of scheduled work items.
type ActivityType string

const (
	ActivityCall     ActivityType = "call"
	ActivityEmail    ActivityType = "email"
	ActivityMeeting  ActivityType = "meeting"
	ActivityFollowup ActivityType = "followup"
	ActivityTask     ActivityType = "task"
)

// IsValid reports whether the type is one of the known values.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityFollowup, ActivityTask:
		return true
	}
	return false
}

// ActivityStatus enumerates the workflow states of an activity.
type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "pending"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivityCancelled  ActivityStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityPending, ActivityInProgress, ActivityCompleted, ActivityCancelled:
		return true
	}
	return false
}

// Activity represents a scheduled work item assigned to a user.
// Priority is 1=low, 2=medium, 3=high.
type Activity struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Type          ActivityType   `json:"type" gorm:"type:varchar(20);not null"`
	Status        ActivityStatus `json:"status" gorm:"type:varchar(20);default:pending;not null;index"`
	DueDate       time.Time      `json:"dueDate" gorm:"not null;index"`
	CompletedDate *time.Time     `json:"completedDate,omitempty"`
	Priority      int            `json:"priority" gorm:"default:1"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	AssignedToID uint  `json:"assignedToId" gorm:"not null;index"`
	AssignedTo   *User `json:"assignedTo,omitempty" gorm:"foreignKey:AssignedToID"`
}

// CreateActivityRequest is the payload for POST /api/activities.
type CreateActivityRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	Type         string    `json:"type" binding:"required,oneof=call email meeting followup task"`
	Status       string    `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate      time.Time `json:"dueDate" binding:"required"`
	Priority     int       `json:"priority" binding:"omitempty,gte=1,lte=3"`
	AssignedToID uint      `json:"assignedToId" binding:"required"`
}

// UpdateActivityRequest carries partial fields for PUT /api/activities/:id.
type UpdateActivityRequest struct {
	Title        *string    `json:"title,omitempty" binding:"omitempty,min=1"`
	Description  *string    `json:"description,omitempty"`
	Type         *string    `json:"type,omitempty" binding:"omitempty,oneof=call email meeting followup task"`
	Status       *string    `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Priority     *int       `json:"priority,omitempty" binding:"omitempty,gte=1,lte=3"`
	AssignedToID *uint      `json:"assignedToId,omitempty"`
}
