package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hoamanager_backend/internal/model"
)

// The transactions list shows the most recent entries only.
const transactionListLimit = 50

type FinancialController struct {
	db *gorm.DB
}

func NewFinancialController(db *gorm.DB) *FinancialController {
	return &FinancialController{db: db}
}

type TransactionInput struct {
	PropertyID      uint                  `json:"property_id"`
	TransactionType model.TransactionType `json:"transaction_type"`
	Category        string                `json:"category"`
	Amount          decimal.Decimal       `json:"amount"`
	Description     string                `json:"description"`
	DueDate         *datatypes.Date       `json:"due_date"`
	PaidDate        *datatypes.Date       `json:"paid_date"`
	PaymentMethod   string                `json:"payment_method"`
	ReferenceNumber string                `json:"reference_number"`
}

// TransactionSummary is the transactions list row joined with its property.
type TransactionSummary struct {
	ID              uint            `json:"id"`
	Address         string          `json:"address"`
	UnitNumber      string          `json:"unit_number"`
	TransactionType string          `json:"transaction_type"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	DueDate         *time.Time      `json:"due_date"`
	PaidDate        *time.Time      `json:"paid_date"`
}

// List returns the most recent transactions, filterable by property.
func (ctl *FinancialController) List(c *fiber.Ctx) error {
	query := ctl.db.Table("financial_transactions").
		Select("financial_transactions.id, properties.address, properties.unit_number, " +
			"financial_transactions.transaction_type, financial_transactions.category, " +
			"financial_transactions.amount, financial_transactions.description, " +
			"financial_transactions.due_date, financial_transactions.paid_date").
		Joins("JOIN properties ON financial_transactions.property_id = properties.id").
		Order("financial_transactions.created_at DESC").
		Limit(transactionListLimit)

	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("financial_transactions.property_id = ?", propertyID)
	}

	var rows []TransactionSummary
	if err := query.Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch transactions",
		})
	}

	return c.JSON(rows)
}

func (ctl *FinancialController) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var transaction model.FinancialTransaction
	if err := ctl.db.First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	return c.JSON(transaction)
}

func (ctl *FinancialController) Create(c *fiber.Ctx) error {
	input := new(TransactionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Amount.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be non-zero",
		})
	}

	var property model.Property
	if err := ctl.db.First(&property, input.PropertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	transaction := model.FinancialTransaction{
		PropertyID:      input.PropertyID,
		TransactionType: input.TransactionType,
		Category:        input.Category,
		Amount:          input.Amount,
		Description:     input.Description,
		DueDate:         input.DueDate,
		PaymentMethod:   input.PaymentMethod,
		ReferenceNumber: input.ReferenceNumber,
	}

	if err := ctl.db.Create(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

func (ctl *FinancialController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(TransactionInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var transaction model.FinancialTransaction
	if err := ctl.db.First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	transaction.TransactionType = input.TransactionType
	transaction.Category = input.Category
	transaction.Amount = input.Amount
	transaction.Description = input.Description
	transaction.DueDate = input.DueDate
	transaction.PaidDate = input.PaidDate
	transaction.PaymentMethod = input.PaymentMethod
	transaction.ReferenceNumber = input.ReferenceNumber

	if err := ctl.db.Save(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update transaction",
		})
	}

	return c.JSON(transaction)
}

func (ctl *FinancialController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var transaction model.FinancialTransaction
	if err := ctl.db.First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	if !requireConfirmation(c, model.ConfirmTransaction, transaction.ID) {
		return nil
	}

	if err := ctl.db.Delete(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete transaction",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
