package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"hoamanager_backend/internal/controller"
	"hoamanager_backend/internal/model"
	"hoamanager_backend/pkg/config"
	"hoamanager_backend/pkg/database"
	"hoamanager_backend/pkg/email"
	"hoamanager_backend/pkg/seed"
)

func setupRoutes(app *fiber.App, db *gorm.DB, sender email.Sender) {
	api := app.Group("/api")

	// Dashboard and reports
	dashboardCtl := controller.NewDashboardController(db)
	api.Get("/dashboard/stats", dashboardCtl.GetStats)
	api.Get("/reports/financial", dashboardCtl.GetFinancialReport)
	api.Get("/reports/maintenance", dashboardCtl.GetMaintenanceReport)

	// Properties
	propertyCtl := controller.NewPropertyController(db)
	properties := api.Group("/properties")
	properties.Get("/", propertyCtl.List)
	properties.Get("/:id", propertyCtl.Get)
	properties.Post("/", propertyCtl.Create)
	properties.Put("/:id", propertyCtl.Update)
	properties.Delete("/:id", propertyCtl.Delete)

	// Residents
	residentCtl := controller.NewResidentController(db)
	residents := api.Group("/residents")
	residents.Get("/", residentCtl.List)
	residents.Get("/:id", residentCtl.Get)
	residents.Post("/", residentCtl.Create)
	residents.Put("/:id", residentCtl.Update)
	residents.Delete("/:id", residentCtl.Delete)

	// Maintenance requests
	maintenanceCtl := controller.NewMaintenanceController(db)
	maintenance := api.Group("/maintenance")
	maintenance.Get("/", maintenanceCtl.List)
	maintenance.Get("/:id", maintenanceCtl.Get)
	maintenance.Post("/", maintenanceCtl.Create)
	maintenance.Put("/:id", maintenanceCtl.Update)
	maintenance.Put("/:id/status", maintenanceCtl.UpdateStatus)
	maintenance.Delete("/:id", maintenanceCtl.Delete)

	// Financial transactions
	financialCtl := controller.NewFinancialController(db)
	transactions := api.Group("/transactions")
	transactions.Get("/", financialCtl.List)
	transactions.Get("/:id", financialCtl.Get)
	transactions.Post("/", financialCtl.Create)
	transactions.Put("/:id", financialCtl.Update)
	transactions.Delete("/:id", financialCtl.Delete)

	// Email center
	templateCtl := controller.NewTemplateController(db)
	templates := api.Group("/templates")
	templates.Get("/", templateCtl.List)
	templates.Get("/:id", templateCtl.Get)
	templates.Post("/", templateCtl.Create)
	templates.Put("/:id", templateCtl.Update)
	templates.Put("/:id/toggle", templateCtl.ToggleActive)
	templates.Delete("/:id", templateCtl.Delete)

	emailCtl := controller.NewEmailController(db, sender)
	emails := api.Group("/emails")
	emails.Post("/send", emailCtl.SendBatch)
	emails.Post("/preview", emailCtl.Preview)
	emails.Post("/maintenance/:id/notify", emailCtl.NotifyMaintenance)
	emails.Get("/log", emailCtl.ListLog)
}

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = database.Migrate(db,
		&model.Property{},
		&model.Resident{},
		&model.MaintenanceRequest{},
		&model.FinancialTransaction{},
		&model.EmailTemplate{},
		&model.EmailLog{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedEmailTemplates(db)

	mailer := email.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, db, mailer)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
