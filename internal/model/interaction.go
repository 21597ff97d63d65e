package model

import "time"

// InteractionType enumerates the kinds of recorded customer contact.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
	InteractionNote    InteractionType = "note"
)

// IsValid reports whether the type is one of the known values.
func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionNote:
		return true
	}
	return false
}

// Interaction is a logged touchpoint between a user and a customer.
// Attachments holds an optional serialized list of file references.
type Interaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Type        InteractionType `json:"type" gorm:"type:varchar(20);not null"`
	Subject     string          `json:"subject" gorm:"not null"`
	Content     string          `json:"content" gorm:"type:text;not null"`
	Attachments string          `json:"attachments,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"index"`

	CustomerID uint      `json:"customerId" gorm:"not null;index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// CreateInteractionRequest is the payload for POST /api/interactions.
// The authoring user is taken from the authenticated context, not the body.
type CreateInteractionRequest struct {
	Type        string `json:"type" binding:"required,oneof=call email meeting note"`
	Subject     string `json:"subject" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Attachments string `json:"attachments"`
	CustomerID  uint   `json:"customerId" binding:"required"`
}

// UpdateInteractionRequest carries partial fields for PUT /api/interactions/:id.
type UpdateInteractionRequest struct {
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=call email meeting note"`
	Subject     *string `json:"subject,omitempty" binding:"omitempty,min=1"`
	Content     *string `json:"content,omitempty" binding:"omitempty,min=1"`
	Attachments *string `json:"attachments,omitempty"`
}
