package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hoamanager_backend/internal/model"
)

type PropertyController struct {
	db *gorm.DB
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{db: db}
}

type PropertyInput struct {
	Address       string             `json:"address" validate:"required"`
	UnitNumber    string             `json:"unit_number"`
	PropertyType  model.PropertyType `json:"property_type"`
	SquareFootage int                `json:"square_footage"`
	LotSizeSqft   int                `json:"lot_size_sqft"`
	HOAFeeMonthly decimal.Decimal    `json:"hoa_fee_monthly"`

	// Optional inline primary contact, matching the add-property form.
	PrimaryContact *ResidentInput `json:"primary_contact"`
}

type ResidentInput struct {
	PropertyID       uint            `json:"property_id"`
	FirstName        string          `json:"first_name" validate:"required"`
	LastName         string          `json:"last_name" validate:"required"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	IsOwner          bool            `json:"is_owner"`
	IsPrimaryContact bool            `json:"is_primary_contact"`
	MoveInDate       *datatypes.Date `json:"move_in_date"`
}

// PropertySummary is the properties list row: the property joined with its
// primary contact. Properties without a primary contact are valid rows with
// empty contact fields.
type PropertySummary struct {
	ID             uint            `json:"id"`
	Address        string          `json:"address"`
	UnitNumber     string          `json:"unit_number"`
	HOAFeeMonthly  decimal.Decimal `json:"hoa_fee_monthly"`
	PrimaryContact string          `json:"primary_contact"`
	Email          string          `json:"email"`
}

// List returns all properties with their primary contacts.
func (ctl *PropertyController) List(c *fiber.Ctx) error {
	var rows []PropertySummary
	err := ctl.db.Table("properties").
		Select("properties.id, properties.address, properties.unit_number, properties.hoa_fee_monthly, " +
			"TRIM(COALESCE(residents.first_name, '') || ' ' || COALESCE(residents.last_name, '')) AS primary_contact, " +
			"COALESCE(residents.email, '') AS email").
		Joins("LEFT JOIN residents ON residents.property_id = properties.id AND residents.is_primary_contact = ?", true).
		Order("properties.address, properties.unit_number").
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(rows)
}

// Get returns one property with its residents, requests and transactions.
func (ctl *PropertyController) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := ctl.db.Preload("Residents").
		Preload("MaintenanceRequests").
		Preload("FinancialTransactions").
		First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	return c.JSON(property)
}

// Create adds a property, optionally with its primary contact. The two
// inserts are separate statements: a failed resident insert leaves the
// property committed, and the error reports that.
func (ctl *PropertyController) Create(c *fiber.Ctx) error {
	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Address is required",
		})
	}

	property := model.Property{
		Address:       input.Address,
		UnitNumber:    input.UnitNumber,
		PropertyType:  input.PropertyType,
		SquareFootage: input.SquareFootage,
		LotSizeSqft:   input.LotSizeSqft,
		HOAFeeMonthly: input.HOAFeeMonthly,
	}

	if err := ctl.db.Create(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	if contact := input.PrimaryContact; contact != nil {
		resident := model.Resident{
			PropertyID:       property.ID,
			FirstName:        contact.FirstName,
			LastName:         contact.LastName,
			Email:            contact.Email,
			Phone:            contact.Phone,
			IsOwner:          contact.IsOwner,
			IsPrimaryContact: true,
			MoveInDate:       contact.MoveInDate,
		}
		if err := ctl.db.Create(&resident).Error; err != nil {
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"property": property,
				"warning":  "Property created but primary contact could not be saved",
			})
		}
		property.Residents = []model.Resident{resident}
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// Update overwrites the property fields.
func (ctl *PropertyController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var property model.Property
	if err := ctl.db.First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	property.Address = input.Address
	property.UnitNumber = input.UnitNumber
	property.PropertyType = input.PropertyType
	property.SquareFootage = input.SquareFootage
	property.LotSizeSqft = input.LotSizeSqft
	property.HOAFeeMonthly = input.HOAFeeMonthly

	if err := ctl.db.Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update property",
		})
	}

	return c.JSON(property)
}

// Delete removes a property and everything attached to it, gated on the
// typed confirmation phrase.
func (ctl *PropertyController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := ctl.db.First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if !requireConfirmation(c, model.ConfirmProperty, property.ID) {
		return nil
	}

	// Cascade: residents, maintenance requests and financial transactions
	// go with the property.
	if err := ctl.db.Select(clause.Associations).Delete(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
