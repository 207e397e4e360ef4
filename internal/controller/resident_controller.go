package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hoamanager_backend/internal/model"
)

type ResidentController struct {
	db *gorm.DB
}

func NewResidentController(db *gorm.DB) *ResidentController {
	return &ResidentController{db: db}
}

// List returns residents, optionally filtered by property.
func (ctl *ResidentController) List(c *fiber.Ctx) error {
	query := ctl.db.Order("last_name, first_name")
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var residents []model.Resident
	if err := query.Find(&residents).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch residents",
		})
	}

	return c.JSON(residents)
}

func (ctl *ResidentController) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var resident model.Resident
	if err := ctl.db.First(&resident, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resident not found",
		})
	}

	return c.JSON(resident)
}

func (ctl *ResidentController) Create(c *fiber.Ctx) error {
	input := new(ResidentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.FirstName == "" || input.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "First and last name are required",
		})
	}

	var property model.Property
	if err := ctl.db.First(&property, input.PropertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	resident := model.Resident{
		PropertyID:       input.PropertyID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Phone:            input.Phone,
		IsOwner:          input.IsOwner,
		IsPrimaryContact: input.IsPrimaryContact,
		MoveInDate:       input.MoveInDate,
	}

	if err := ctl.db.Create(&resident).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create resident",
		})
	}

	if resident.IsPrimaryContact {
		ctl.demoteSiblings(&resident)
	}

	return c.Status(fiber.StatusCreated).JSON(resident)
}

func (ctl *ResidentController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(ResidentInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var resident model.Resident
	if err := ctl.db.First(&resident, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resident not found",
		})
	}

	resident.FirstName = input.FirstName
	resident.LastName = input.LastName
	resident.Email = input.Email
	resident.Phone = input.Phone
	resident.IsOwner = input.IsOwner
	resident.IsPrimaryContact = input.IsPrimaryContact
	resident.MoveInDate = input.MoveInDate

	if err := ctl.db.Save(&resident).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update resident",
		})
	}

	if resident.IsPrimaryContact {
		ctl.demoteSiblings(&resident)
	}

	return c.JSON(resident)
}

func (ctl *ResidentController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var resident model.Resident
	if err := ctl.db.First(&resident, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resident not found",
		})
	}

	if !requireConfirmation(c, model.ConfirmResident, resident.ID) {
		return nil
	}

	if err := ctl.db.Delete(&resident).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete resident",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// demoteSiblings keeps one primary contact per property. Runs as a second
// statement after the save; a failure here leaves the new primary committed.
func (ctl *ResidentController) demoteSiblings(resident *model.Resident) {
	ctl.db.Model(&model.Resident{}).
		Where("property_id = ? AND id <> ? AND is_primary_contact = ?", resident.PropertyID, resident.ID, true).
		Update("is_primary_contact", false)
}
