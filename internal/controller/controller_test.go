package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hoamanager_backend/internal/model"
	"hoamanager_backend/pkg/email"
)

type sentMessage struct {
	To      string
	Subject string
	Body    string
}

type stubSender struct {
	sent    []sentMessage
	failAll bool
}

func (s *stubSender) Send(to, subject, body string) error {
	if s.failAll {
		return fiber.ErrBadGateway
	}
	s.sent = append(s.sent, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Property{},
		&model.Resident{},
		&model.MaintenanceRequest{},
		&model.FinancialTransaction{},
		&model.EmailTemplate{},
		&model.EmailLog{},
	))

	return db
}

func newTestApp(db *gorm.DB, sender email.Sender) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")

	dashboardCtl := NewDashboardController(db)
	api.Get("/dashboard/stats", dashboardCtl.GetStats)
	api.Get("/reports/financial", dashboardCtl.GetFinancialReport)
	api.Get("/reports/maintenance", dashboardCtl.GetMaintenanceReport)

	propertyCtl := NewPropertyController(db)
	api.Get("/properties", propertyCtl.List)
	api.Get("/properties/:id", propertyCtl.Get)
	api.Post("/properties", propertyCtl.Create)
	api.Put("/properties/:id", propertyCtl.Update)
	api.Delete("/properties/:id", propertyCtl.Delete)

	residentCtl := NewResidentController(db)
	api.Get("/residents", residentCtl.List)
	api.Post("/residents", residentCtl.Create)
	api.Put("/residents/:id", residentCtl.Update)
	api.Delete("/residents/:id", residentCtl.Delete)

	maintenanceCtl := NewMaintenanceController(db)
	api.Get("/maintenance", maintenanceCtl.List)
	api.Post("/maintenance", maintenanceCtl.Create)
	api.Put("/maintenance/:id", maintenanceCtl.Update)
	api.Put("/maintenance/:id/status", maintenanceCtl.UpdateStatus)
	api.Delete("/maintenance/:id", maintenanceCtl.Delete)

	financialCtl := NewFinancialController(db)
	api.Get("/transactions", financialCtl.List)
	api.Post("/transactions", financialCtl.Create)
	api.Put("/transactions/:id", financialCtl.Update)
	api.Delete("/transactions/:id", financialCtl.Delete)

	templateCtl := NewTemplateController(db)
	api.Get("/templates", templateCtl.List)
	api.Post("/templates", templateCtl.Create)
	api.Put("/templates/:id", templateCtl.Update)
	api.Put("/templates/:id/toggle", templateCtl.ToggleActive)
	api.Delete("/templates/:id", templateCtl.Delete)

	emailCtl := NewEmailController(db, sender)
	api.Post("/emails/send", emailCtl.SendBatch)
	api.Post("/emails/preview", emailCtl.Preview)
	api.Post("/emails/maintenance/:id/notify", emailCtl.NotifyMaintenance)
	api.Get("/emails/log", emailCtl.ListLog)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}
