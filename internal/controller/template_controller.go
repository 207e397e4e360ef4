package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hoamanager_backend/internal/model"
)

type TemplateController struct {
	db *gorm.DB
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{db: db}
}

type TemplateInput struct {
	Name     string             `json:"name" validate:"required"`
	Subject  string             `json:"subject" validate:"required"`
	Body     string             `json:"body" validate:"required"`
	Type     model.TemplateType `json:"type"`
	IsActive *bool              `json:"is_active"`
}

// List returns all templates; pass ?active=true for the send-form dropdown.
func (ctl *TemplateController) List(c *fiber.Ctx) error {
	query := ctl.db.Order("name")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var templates []model.EmailTemplate
	if err := query.Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch templates",
		})
	}

	return c.JSON(templates)
}

func (ctl *TemplateController) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var template model.EmailTemplate
	if err := ctl.db.First(&template, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	return c.JSON(template)
}

func (ctl *TemplateController) Create(c *fiber.Ctx) error {
	input := new(TemplateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.Subject == "" || input.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, subject and body are required",
		})
	}

	template := model.EmailTemplate{
		Name:     input.Name,
		Subject:  input.Subject,
		Body:     input.Body,
		Type:     input.Type,
		IsActive: true,
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := ctl.db.Create(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create template",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(template)
}

func (ctl *TemplateController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(TemplateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var template model.EmailTemplate
	if err := ctl.db.First(&template, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	template.Name = input.Name
	template.Subject = input.Subject
	template.Body = input.Body
	template.Type = input.Type
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := ctl.db.Save(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update template",
		})
	}

	return c.JSON(template)
}

// ToggleActive flips the active flag from the templates list.
func (ctl *TemplateController) ToggleActive(c *fiber.Ctx) error {
	id := c.Params("id")

	var template model.EmailTemplate
	if err := ctl.db.First(&template, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	template.IsActive = !template.IsActive

	if err := ctl.db.Save(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update template",
		})
	}

	return c.JSON(template)
}

// Delete removes a template. Sent emails referencing it stay in the log;
// the response reports how many there are.
func (ctl *TemplateController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var template model.EmailTemplate
	if err := ctl.db.First(&template, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	if !requireConfirmation(c, model.ConfirmTemplate, template.ID) {
		return nil
	}

	var usageCount int64
	ctl.db.Model(&model.EmailLog{}).Where("template_id = ?", template.ID).Count(&usageCount)

	if err := ctl.db.Delete(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete template",
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Template deleted",
		"usage_count": usageCount,
	})
}
