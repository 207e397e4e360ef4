package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request Types
type RequestType string

const (
	RequestTypeIrrigation  RequestType = "Irrigation"
	RequestTypeLandscaping RequestType = "Landscaping"
	RequestTypeCommonArea  RequestType = "Common Area"
	RequestTypeOther       RequestType = "Other"
)

// Priorities
type Priority string

const (
	PriorityLow       Priority = "Low"
	PriorityMedium    Priority = "Medium"
	PriorityHigh      Priority = "High"
	PriorityEmergency Priority = "Emergency"
)

// Request Status
type RequestStatus string

const (
	StatusOpen       RequestStatus = "Open"
	StatusInProgress RequestStatus = "In Progress"
	StatusCompleted  RequestStatus = "Completed"
	StatusCancelled  RequestStatus = "Cancelled"
)

type MaintenanceRequest struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	PropertyID    uint            `json:"property_id" gorm:"index;not null"`
	RequestType   RequestType     `json:"request_type" gorm:"default:'Other'"`
	Priority      Priority        `json:"priority" gorm:"default:'Medium'"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description" gorm:"type:text"`
	ReportedBy    string          `json:"reported_by"`
	AssignedTo    string          `json:"assigned_to"`
	EstimatedCost decimal.Decimal `json:"estimated_cost" gorm:"type:decimal(10,2)"`
	ActualCost    decimal.Decimal `json:"actual_cost" gorm:"type:decimal(10,2)"`
	Status        RequestStatus   `json:"status" gorm:"default:'Open'"`
	Notes         string          `json:"notes" gorm:"type:text"`
	CompletedDate *time.Time      `json:"completed_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// ApplyStatus moves the request to the given status. Transitions are
// unconstrained; the only side effect is stamping the completion time the
// first time a request reaches Completed.
func (mr *MaintenanceRequest) ApplyStatus(status RequestStatus, now time.Time) {
	mr.Status = status
	if status == StatusCompleted && mr.CompletedDate == nil {
		mr.CompletedDate = &now
	}
}
