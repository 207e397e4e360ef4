package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Property Types
type PropertyType string

const (
	PropertyTypeSingleFamily PropertyType = "Single Family"
	PropertyTypeCondo        PropertyType = "Condo"
	PropertyTypeTownhome     PropertyType = "Townhome"
)

type Property struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Address       string          `json:"address" gorm:"not null"`
	UnitNumber    string          `json:"unit_number"`
	PropertyType  PropertyType    `json:"property_type" gorm:"default:'Single Family'"`
	SquareFootage int             `json:"square_footage"`
	LotSizeSqft   int             `json:"lot_size_sqft"`
	HOAFeeMonthly decimal.Decimal `json:"hoa_fee_monthly" gorm:"type:decimal(10,2)"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Deleting a property removes everything attached to it.
	Residents             []Resident             `json:"residents,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	MaintenanceRequests   []MaintenanceRequest   `json:"maintenance_requests,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	FinancialTransactions []FinancialTransaction `json:"financial_transactions,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// DisplayLabel is how properties are listed and selected in the admin UI,
// e.g. "123 Oak Street 4B" or just "123 Oak Street" for unnumbered lots.
func (p *Property) DisplayLabel() string {
	return strings.TrimSpace(p.Address + " " + p.UnitNumber)
}

type Resident struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	PropertyID       uint            `json:"property_id" gorm:"index;not null"`
	FirstName        string          `json:"first_name" gorm:"not null"`
	LastName         string          `json:"last_name" gorm:"not null"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	IsOwner          bool            `json:"is_owner" gorm:"default:true"`
	IsPrimaryContact bool            `json:"is_primary_contact" gorm:"default:false"`
	MoveInDate       *datatypes.Date `json:"move_in_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

func (r *Resident) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Confirmation entity names used in typed delete phrases.
const (
	ConfirmProperty    = "PROPERTY"
	ConfirmResident    = "RESIDENT"
	ConfirmRequest     = "REQUEST"
	ConfirmTransaction = "TRANSACTION"
	ConfirmTemplate    = "TEMPLATE"
)

// DeleteConfirmPhrase returns the exact phrase an operator has to type before
// a destructive action is carried out, e.g. "DELETE PROPERTY 12".
func DeleteConfirmPhrase(entity string, id uint) string {
	return fmt.Sprintf("DELETE %s %d", entity, id)
}
