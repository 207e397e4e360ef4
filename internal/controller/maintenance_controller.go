package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hoamanager_backend/internal/model"
)

type MaintenanceController struct {
	db *gorm.DB
}

func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{db: db}
}

type MaintenanceInput struct {
	PropertyID    uint                `json:"property_id"`
	RequestType   model.RequestType   `json:"request_type"`
	Priority      model.Priority      `json:"priority"`
	Title         string              `json:"title" validate:"required"`
	Description   string              `json:"description"`
	ReportedBy    string              `json:"reported_by"`
	AssignedTo    string              `json:"assigned_to"`
	EstimatedCost decimal.Decimal     `json:"estimated_cost"`
	ActualCost    decimal.Decimal     `json:"actual_cost"`
	Status        model.RequestStatus `json:"status"`
	Notes         string              `json:"notes"`
}

// MaintenanceSummary is the requests list row joined with its property.
type MaintenanceSummary struct {
	ID            uint            `json:"id"`
	Address       string          `json:"address"`
	UnitNumber    string          `json:"unit_number"`
	RequestType   string          `json:"request_type"`
	Title         string          `json:"title"`
	Status        string          `json:"status"`
	Priority      string          `json:"priority"`
	CreatedAt     time.Time       `json:"created_at"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// List returns maintenance requests, newest first, filterable by status and
// request type.
func (ctl *MaintenanceController) List(c *fiber.Ctx) error {
	query := ctl.db.Table("maintenance_requests").
		Select("maintenance_requests.id, properties.address, properties.unit_number, " +
			"maintenance_requests.request_type, maintenance_requests.title, maintenance_requests.status, " +
			"maintenance_requests.priority, maintenance_requests.created_at, maintenance_requests.estimated_cost").
		Joins("JOIN properties ON maintenance_requests.property_id = properties.id").
		Order("maintenance_requests.created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("maintenance_requests.status = ?", status)
	}
	if requestType := c.Query("type"); requestType != "" {
		query = query.Where("maintenance_requests.request_type = ?", requestType)
	}

	var rows []MaintenanceSummary
	if err := query.Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch maintenance requests",
		})
	}

	return c.JSON(rows)
}

func (ctl *MaintenanceController) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var request model.MaintenanceRequest
	if err := ctl.db.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Maintenance request not found",
		})
	}

	return c.JSON(request)
}

func (ctl *MaintenanceController) Create(c *fiber.Ctx) error {
	input := new(MaintenanceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	var property model.Property
	if err := ctl.db.First(&property, input.PropertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	request := model.MaintenanceRequest{
		PropertyID:    input.PropertyID,
		RequestType:   input.RequestType,
		Priority:      input.Priority,
		Title:         input.Title,
		Description:   input.Description,
		ReportedBy:    input.ReportedBy,
		EstimatedCost: input.EstimatedCost,
		Status:        model.StatusOpen,
	}

	if err := ctl.db.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create maintenance request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func (ctl *MaintenanceController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(MaintenanceInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var request model.MaintenanceRequest
	if err := ctl.db.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Maintenance request not found",
		})
	}

	request.RequestType = input.RequestType
	request.Priority = input.Priority
	request.Title = input.Title
	request.Description = input.Description
	request.AssignedTo = input.AssignedTo
	request.EstimatedCost = input.EstimatedCost
	request.ActualCost = input.ActualCost
	request.Notes = input.Notes
	request.ApplyStatus(input.Status, time.Now())

	if err := ctl.db.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update maintenance request",
		})
	}

	return c.JSON(request)
}

type statusInput struct {
	Status model.RequestStatus `json:"status"`
}

// UpdateStatus is the quick status transition from the requests list.
func (ctl *MaintenanceController) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(statusInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var request model.MaintenanceRequest
	if err := ctl.db.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Maintenance request not found",
		})
	}

	request.ApplyStatus(input.Status, time.Now())

	if err := ctl.db.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update status",
		})
	}

	return c.JSON(request)
}

func (ctl *MaintenanceController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var request model.MaintenanceRequest
	if err := ctl.db.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Maintenance request not found",
		})
	}

	if !requireConfirmation(c, model.ConfirmRequest, request.ID) {
		return nil
	}

	if err := ctl.db.Delete(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete maintenance request",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
