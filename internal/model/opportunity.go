package model

import "time"

// OpportunityStage enumerates the pipeline stages of a sales opportunity.
type OpportunityStage string

const (
	StageProspect    OpportunityStage = "prospect"
	StageQualified   OpportunityStage = "qualified"
	StageProposal    OpportunityStage = "proposal"
	StageNegotiation OpportunityStage = "negotiation"
	StageClosedWon   OpportunityStage = "closed_won"
	StageClosedLost  OpportunityStage = "closed_lost"
)

// IsValid reports whether the stage is one of the known values.
func (s OpportunityStage) IsValid() bool {
	switch s {
	case StageProspect, StageQualified, StageProposal,
		StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}

// Closed reports whether the stage is terminal.
func (s OpportunityStage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Opportunity represents a potential deal attached to a customer.
type Opportunity struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	Title             string           `json:"title" gorm:"not null"`
	Description       string           `json:"description" gorm:"type:text"`
	Value             float64          `json:"value" gorm:"type:decimal(10,2);not null"`
	Probability       int              `json:"probability" gorm:"default:0"`
	Stage             OpportunityStage `json:"stage" gorm:"type:varchar(20);default:prospect;not null;index"`
	ExpectedCloseDate *time.Time       `json:"expectedCloseDate,omitempty"`
	ActualCloseDate   *time.Time       `json:"actualCloseDate,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`

	CustomerID uint      `json:"customerId" gorm:"not null;index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// CreateOpportunityRequest is the payload for POST /api/opportunities.
type CreateOpportunityRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description"`
	Value             float64    `json:"value" binding:"gte=0"`
	Probability       int        `json:"probability" binding:"gte=0,lte=100"`
	Stage             string     `json:"stage" binding:"omitempty,oneof=prospect qualified proposal negotiation closed_won closed_lost"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	ActualCloseDate   *time.Time `json:"actualCloseDate,omitempty"`
	CustomerID        uint       `json:"customerId" binding:"required"`
}

// UpdateOpportunityRequest carries partial fields for PUT /api/opportunities/:id.
type UpdateOpportunityRequest struct {
	Title             *string    `json:"title,omitempty" binding:"omitempty,min=1"`
	Description       *string    `json:"description,omitempty"`
	Value             *float64   `json:"value,omitempty" binding:"omitempty,gte=0"`
	Probability       *int       `json:"probability,omitempty" binding:"omitempty,gte=0,lte=100"`
	Stage             *string    `json:"stage,omitempty" binding:"omitempty,oneof=prospect qualified proposal negotiation closed_won closed_lost"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	ActualCloseDate   *time.Time `json:"actualCloseDate,omitempty"`
}

// StageStat is one row of the per-stage breakdown.
type StageStat struct {
	Stage      OpportunityStage `json:"stage"`
	Count      int64            `json:"count"`
	TotalValue float64          `json:"totalValue"`
}

// OpportunityStats summarizes the opportunity pipeline.
type OpportunityStats struct {
	TotalOpportunities int64       `json:"totalOpportunities"`
	TotalValue         float64     `json:"totalValue"`
	AverageValue       float64     `json:"averageValue"`
	StageStats         []StageStat `json:"stageStats"`
}
