package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction Types
type TransactionType string

const (
	TransactionAssessment TransactionType = "Assessment"
	TransactionPayment    TransactionType = "Payment"
	TransactionFee        TransactionType = "Fee"
	TransactionFine       TransactionType = "Fine"
	TransactionCredit     TransactionType = "Credit"
)

// FinancialTransaction is a signed ledger row: positive amounts are charges
// owed by the resident (assessments, fees, fines), negative amounts are money
// received (payments, credits).
type FinancialTransaction struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	PropertyID      uint            `json:"property_id" gorm:"index;not null"`
	TransactionType TransactionType `json:"transaction_type" gorm:"not null"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description     string          `json:"description" gorm:"type:text"`
	DueDate         *datatypes.Date `json:"due_date"`
	PaidDate        *datatypes.Date `json:"paid_date"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}
