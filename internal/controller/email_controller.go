package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hoamanager_backend/internal/model"
	"hoamanager_backend/pkg/email"
)

type EmailController struct {
	db         *gorm.DB
	dispatcher *email.Dispatcher
}

func NewEmailController(db *gorm.DB, sender email.Sender) *EmailController {
	return &EmailController{
		db:         db,
		dispatcher: email.NewDispatcher(sender),
	}
}

type SendBatchInput struct {
	TemplateID *uint    `json:"template_id"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Properties []string `json:"properties"` // display labels, in selection order
}

// SendBatch renders and sends one email per selected property. Recipients
// without an email on file and failed sends are tallied as failures; the
// batch always runs to the end.
func (ctl *EmailController) SendBatch(c *fiber.Ctx) error {
	input := new(SendBatchInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	subject, body, templateID, errResp := ctl.resolveTemplates(c, input.TemplateID, input.Subject, input.Body)
	if errResp {
		return nil
	}

	if len(input.Properties) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No properties selected",
		})
	}

	recipients, err := ctl.resolveRecipients(input.Properties)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not resolve recipients",
		})
	}

	result := ctl.dispatcher.Dispatch(subject, body, recipients)
	ctl.logDeliveries(templateID, result)

	failures := make([]fiber.Map, 0)
	for _, d := range result.Deliveries {
		if d.Status == model.DeliveryFailed {
			failures = append(failures, fiber.Map{
				"label":  d.Label,
				"reason": d.Reason,
			})
		}
	}

	return c.JSON(fiber.Map{
		"batch_id": result.BatchID,
		"sent":     result.Sent,
		"failed":   result.Failed,
		"failures": failures,
	})
}

type PreviewInput struct {
	TemplateID           *uint  `json:"template_id"`
	Subject              string `json:"subject"`
	Body                 string `json:"body"`
	PropertyID           *uint  `json:"property_id"`
	MaintenanceRequestID *uint  `json:"maintenance_request_id"`
}

// Preview renders a template against real records without sending anything.
func (ctl *EmailController) Preview(c *fiber.Ctx) error {
	input := new(PreviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	subject, body, _, errResp := ctl.resolveTemplates(c, input.TemplateID, input.Subject, input.Body)
	if errResp {
		return nil
	}

	var ctx email.RenderContext
	if input.PropertyID != nil {
		var property model.Property
		if err := ctl.db.First(&property, *input.PropertyID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		ctx.Property = ctl.propertyContext(&property)
		ctx.Financial = ctl.financialContext(property.ID)
	}
	if input.MaintenanceRequestID != nil {
		var request model.MaintenanceRequest
		if err := ctl.db.First(&request, *input.MaintenanceRequestID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Maintenance request not found",
			})
		}
		ctx.Maintenance = maintenanceContext(&request)
	}

	return c.JSON(fiber.Map{
		"subject": email.Render(subject, ctx),
		"body":    email.Render(body, ctx),
	})
}

// NotifyMaintenance sends a status notice for one request to the primary
// contact of its property.
func (ctl *EmailController) NotifyMaintenance(c *fiber.Ctx) error {
	id := c.Params("id")

	var request model.MaintenanceRequest
	if err := ctl.db.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Maintenance request not found",
		})
	}

	var property model.Property
	if err := ctl.db.First(&property, request.PropertyID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	input := new(SendBatchInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	subject, body, templateID, errResp := ctl.resolveTemplates(c, input.TemplateID, input.Subject, input.Body)
	if errResp {
		return nil
	}

	recipient := email.Recipient{
		Label: property.DisplayLabel(),
		Context: email.RenderContext{
			Property:    ctl.propertyContext(&property),
			Maintenance: maintenanceContext(&request),
			Financial:   ctl.financialContext(property.ID),
		},
	}

	var contact model.Resident
	if err := ctl.db.Where("property_id = ? AND is_primary_contact = ?", property.ID, true).
		First(&contact).Error; err == nil {
		recipient.Email = contact.Email
	}

	result := ctl.dispatcher.Dispatch(subject, body, []email.Recipient{recipient})
	ctl.logDeliveries(templateID, result)

	if result.Failed > 0 {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": result.Deliveries[0].Reason,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Notification sent",
		"to":      recipient.Email,
	})
}

// ListLog returns the most recent delivery records.
func (ctl *EmailController) ListLog(c *fiber.Ctx) error {
	var logs []model.EmailLog
	if err := ctl.db.Order("sent_at DESC").Limit(100).Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch email log",
		})
	}

	return c.JSON(logs)
}

// resolveTemplates picks subject and body from either a stored template or
// the free-form fields. The bool reports that an error response has already
// been written.
func (ctl *EmailController) resolveTemplates(c *fiber.Ctx, templateID *uint, subject, body string) (string, string, *uint, bool) {
	if templateID != nil {
		var template model.EmailTemplate
		if err := ctl.db.First(&template, *templateID).Error; err != nil {
			c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Template not found",
			})
			return "", "", nil, true
		}
		if !template.IsActive {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Template is not active",
			})
			return "", "", nil, true
		}
		if subject == "" {
			subject = template.Subject
		}
		if body == "" {
			body = template.Body
		}
	}

	if subject == "" || body == "" {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subject and body are required",
		})
		return "", "", nil, true
	}

	return subject, body, templateID, false
}

// resolveRecipients maps selected display labels back to properties and
// their primary contacts, preserving selection order. Labels that match no
// property become recipients with no email so the dispatcher records them
// as failures instead of dropping them silently.
func (ctl *EmailController) resolveRecipients(labels []string) ([]email.Recipient, error) {
	var properties []model.Property
	if err := ctl.db.Preload("Residents", "is_primary_contact = ?", true).
		Find(&properties).Error; err != nil {
		return nil, err
	}

	byLabel := make(map[string]*model.Property, len(properties))
	for i := range properties {
		byLabel[properties[i].DisplayLabel()] = &properties[i]
	}

	recipients := make([]email.Recipient, 0, len(labels))
	for _, label := range labels {
		recipient := email.Recipient{Label: label}
		if property, ok := byLabel[label]; ok {
			recipient.Context = email.RenderContext{
				Property:  ctl.propertyContext(property),
				Financial: ctl.financialContext(property.ID),
			}
			if len(property.Residents) > 0 {
				recipient.Email = property.Residents[0].Email
			}
		}
		recipients = append(recipients, recipient)
	}

	return recipients, nil
}

func (ctl *EmailController) propertyContext(property *model.Property) *email.PropertyContext {
	ctx := &email.PropertyContext{
		Address:    property.DisplayLabel(),
		MonthlyFee: property.HOAFeeMonthly.StringFixed(2),
	}

	if len(property.Residents) > 0 && property.Residents[0].IsPrimaryContact {
		ctx.ResidentName = property.Residents[0].FullName()
		return ctx
	}

	var contact model.Resident
	if err := ctl.db.Where("property_id = ? AND is_primary_contact = ?", property.ID, true).
		First(&contact).Error; err == nil {
		ctx.ResidentName = contact.FullName()
	}

	return ctx
}

// financialContext computes the property's signed balance and next unpaid
// due date. A property with no transactions gets no financial context, so
// the renderer falls back to the fixed defaults.
func (ctl *EmailController) financialContext(propertyID uint) *email.FinancialContext {
	var summary struct {
		Count   int64
		Balance decimal.Decimal
	}
	err := ctl.db.Model(&model.FinancialTransaction{}).
		Where("property_id = ?", propertyID).
		Select("COUNT(id) AS count, COALESCE(SUM(amount), 0) AS balance").
		Scan(&summary).Error
	if err != nil || summary.Count == 0 {
		return nil
	}

	ctx := &email.FinancialContext{
		CurrentBalance: summary.Balance.StringFixed(2),
	}

	var next model.FinancialTransaction
	if err := ctl.db.Where("property_id = ? AND due_date IS NOT NULL AND paid_date IS NULL", propertyID).
		Order("due_date ASC").
		First(&next).Error; err == nil && next.DueDate != nil {
		ctx.DueDate = time.Time(*next.DueDate).Format("2006-01-02")
	} else {
		// Nothing outstanding with a concrete due date.
		ctx.DueDate = "End of Month"
	}

	return ctx
}

func maintenanceContext(request *model.MaintenanceRequest) *email.MaintenanceContext {
	return &email.MaintenanceContext{
		RequestTitle: request.Title,
		Status:       string(request.Status),
		Notes:        request.Notes,
	}
}

func (ctl *EmailController) logDeliveries(templateID *uint, result email.DispatchResult) {
	for _, d := range result.Deliveries {
		entry := model.EmailLog{
			TemplateID:     templateID,
			BatchID:        result.BatchID,
			RecipientEmail: d.Email,
			Subject:        d.Subject,
			Status:         d.Status,
			Reason:         d.Reason,
			SentAt:         d.SentAt,
		}
		ctl.db.Create(&entry)
	}
}
