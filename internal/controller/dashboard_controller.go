package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hoamanager_backend/internal/model"
)

type DashboardController struct {
	db *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	TotalProperties int64                `json:"total_properties"`
	OpenRequests    int64                `json:"open_requests"`
	NetBalance      decimal.Decimal      `json:"net_balance"`
	RecentRequests  []MaintenanceSummary `json:"recent_requests"`
}

// FinancialSummary aggregates the ledger: assessments are positive amounts,
// payments negative.
type FinancialSummary struct {
	TotalProperties  int64           `json:"total_properties"`
	TotalAssessments decimal.Decimal `json:"total_assessments"`
	TotalPayments    decimal.Decimal `json:"total_payments"`
	NetBalance       decimal.Decimal `json:"net_balance"`
}

type TypeTotal struct {
	TransactionType string          `json:"transaction_type"`
	Count           int64           `json:"count"`
	Total           decimal.Decimal `json:"total"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RequestTypeCount struct {
	RequestType string `json:"request_type"`
	Count       int64  `json:"count"`
}

// GetStats returns the dashboard metrics and the ten most recent requests.
func (ctl *DashboardController) GetStats(c *fiber.Ctx) error {
	var stats DashboardStats

	ctl.db.Model(&model.Property{}).Count(&stats.TotalProperties)

	ctl.db.Model(&model.MaintenanceRequest{}).
		Where("status = ?", model.StatusOpen).
		Count(&stats.OpenRequests)

	var balance struct {
		Net decimal.Decimal
	}
	ctl.db.Model(&model.FinancialTransaction{}).
		Select("COALESCE(SUM(amount), 0) AS net").
		Scan(&balance)
	stats.NetBalance = balance.Net

	err := ctl.db.Table("maintenance_requests").
		Select("maintenance_requests.id, properties.address, properties.unit_number, "+
			"maintenance_requests.request_type, maintenance_requests.title, maintenance_requests.status, "+
			"maintenance_requests.priority, maintenance_requests.created_at, maintenance_requests.estimated_cost").
		Joins("JOIN properties ON maintenance_requests.property_id = properties.id").
		Order("maintenance_requests.created_at DESC").
		Limit(10).
		Scan(&stats.RecentRequests).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch dashboard stats",
		})
	}

	return c.JSON(stats)
}

// GetFinancialReport returns the ledger summary plus per-type totals.
func (ctl *DashboardController) GetFinancialReport(c *fiber.Ctx) error {
	var summary FinancialSummary
	err := ctl.db.Raw(`
        SELECT
            COUNT(DISTINCT property_id) AS total_properties,
            COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS total_assessments,
            COALESCE(SUM(CASE WHEN amount < 0 THEN ABS(amount) ELSE 0 END), 0) AS total_payments,
            COALESCE(SUM(amount), 0) AS net_balance
        FROM financial_transactions
    `).Scan(&summary).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch financial summary",
		})
	}

	var byType []TypeTotal
	err = ctl.db.Model(&model.FinancialTransaction{}).
		Select("transaction_type, COUNT(id) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("transaction_type").
		Order("transaction_type").
		Scan(&byType).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch transaction totals",
		})
	}

	return c.JSON(fiber.Map{
		"summary": summary,
		"by_type": byType,
	})
}

// GetMaintenanceReport returns request counts by status and by type.
func (ctl *DashboardController) GetMaintenanceReport(c *fiber.Ctx) error {
	var byStatus []StatusCount
	err := ctl.db.Model(&model.MaintenanceRequest{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Order("status").
		Scan(&byStatus).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch maintenance report",
		})
	}

	var byType []RequestTypeCount
	err = ctl.db.Model(&model.MaintenanceRequest{}).
		Select("request_type, COUNT(id) AS count").
		Group("request_type").
		Order("request_type").
		Scan(&byType).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch maintenance report",
		})
	}

	return c.JSON(fiber.Map{
		"by_status": byStatus,
		"by_type":   byType,
	})
}
