package model

import "time"

// Template Types
type TemplateType string

const (
	TemplateMonthlyStatement  TemplateType = "Monthly Statement"
	TemplateMaintenanceNotice TemplateType = "Maintenance Notice"
	TemplateGeneral           TemplateType = "General"
	TemplateAssessmentNotice  TemplateType = "Assessment Notice"
	TemplateMeetingNotice     TemplateType = "Meeting Notice"
	TemplateViolationNotice   TemplateType = "Violation Notice"
)

type EmailTemplate struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"not null"`
	Subject   string       `json:"subject" gorm:"not null"`
	Body      string       `json:"body" gorm:"type:text;not null"`
	Type      TemplateType `json:"type" gorm:"default:'General'"`
	IsActive  bool         `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Delivery status values recorded on email log rows.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// EmailLog records one delivery attempt. Rows survive template deletion so
// the send history stays intact.
type EmailLog struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	TemplateID     *uint     `json:"template_id" gorm:"index"`
	BatchID        string    `json:"batch_id" gorm:"index"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	Status         string    `json:"status" gorm:"not null"`
	Reason         string    `json:"reason"`
	SentAt         time.Time `json:"sent_at"`
}
