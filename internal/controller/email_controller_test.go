package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoamanager_backend/internal/model"
)

func TestSendBatchPartialFailure(t *testing.T) {
	db := newTestDB(t)
	sender := &stubSender{}
	app := newTestApp(db, sender)

	addresses := []struct {
		address string
		email   string
	}{
		{"123 Oak Street", "jane@example.com"},
		{"456 Elm Street", ""}, // no email on file
		{"789 Pine Street", "bob@example.com"},
	}
	for _, a := range addresses {
		property := model.Property{Address: a.address, HOAFeeMonthly: decimal.RequireFromString("150.00")}
		require.NoError(t, db.Create(&property).Error)
		require.NoError(t, db.Create(&model.Resident{
			PropertyID:       property.ID,
			FirstName:        "Test",
			LastName:         "Resident",
			Email:            a.email,
			IsPrimaryContact: true,
		}).Error)
	}

	resp := doRequest(t, app, http.MethodPost, "/api/emails/send", fiber.Map{
		"subject":    "Statement for {{property_address}}",
		"body":       "Hi {{resident_name}}, balance {{current_balance}}",
		"properties": []string{"123 Oak Street", "456 Elm Street", "789 Pine Street"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		BatchID  string `json:"batch_id"`
		Sent     int    `json:"sent"`
		Failed   int    `json:"failed"`
		Failures []struct {
			Label  string `json:"label"`
			Reason string `json:"reason"`
		} `json:"failures"`
	}
	decodeBody(t, resp, &result)

	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "456 Elm Street", result.Failures[0].Label)
	assert.Equal(t, "no email on file", result.Failures[0].Reason)

	// The recipient after the failure was still processed.
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "jane@example.com", sender.sent[0].To)
	assert.Equal(t, "bob@example.com", sender.sent[1].To)
	assert.Equal(t, "Statement for 123 Oak Street", sender.sent[0].Subject)

	// No transactions exist, so the balance fell back to the default.
	assert.Equal(t, "Hi Test Resident, balance 0.00", sender.sent[0].Body)

	// Every attempt was logged under one batch.
	var logs []model.EmailLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 3)
	for _, entry := range logs {
		assert.Equal(t, result.BatchID, entry.BatchID)
	}
	assert.Equal(t, model.DeliverySent, logs[0].Status)
	assert.Equal(t, model.DeliveryFailed, logs[1].Status)
	assert.Equal(t, "no email on file", logs[1].Reason)
	assert.Equal(t, model.DeliverySent, logs[2].Status)
}

func TestSendBatchUsesStoredTemplate(t *testing.T) {
	db := newTestDB(t)
	sender := &stubSender{}
	app := newTestApp(db, sender)

	property := model.Property{Address: "123 Oak Street", HOAFeeMonthly: decimal.RequireFromString("150.00")}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&model.Resident{
		PropertyID:       property.ID,
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@example.com",
		IsPrimaryContact: true,
	}).Error)

	template := model.EmailTemplate{
		Name:     "Statement",
		Subject:  "Monthly HOA Statement - {{property_address}}",
		Body:     "Dear {{resident_name}}, your monthly fee is ${{monthly_fee}}.",
		IsActive: true,
	}
	require.NoError(t, db.Create(&template).Error)

	resp := doRequest(t, app, http.MethodPost, "/api/emails/send", fiber.Map{
		"template_id": template.ID,
		"properties":  []string{"123 Oak Street"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Monthly HOA Statement - 123 Oak Street", sender.sent[0].Subject)
	assert.Equal(t, "Dear Jane Doe, your monthly fee is $150.00.", sender.sent[0].Body)

	var entry model.EmailLog
	require.NoError(t, db.First(&entry).Error)
	require.NotNil(t, entry.TemplateID)
	assert.Equal(t, template.ID, *entry.TemplateID)
}

func TestSendBatchRejectsInactiveTemplate(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db, &stubSender{})

	template := model.EmailTemplate{Name: "Old", Subject: "s", Body: "b", IsActive: false}
	require.NoError(t, db.Create(&template).Error)

	resp := doRequest(t, app, http.MethodPost, "/api/emails/send", fiber.Map{
		"template_id": template.ID,
		"properties":  []string{"123 Oak Street"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPreviewRendersWithoutSending(t *testing.T) {
	db := newTestDB(t)
	sender := &stubSender{}
	app := newTestApp(db, sender)

	property := model.Property{Address: "123 Oak Street", HOAFeeMonthly: decimal.RequireFromString("99.00")}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&model.Resident{
		PropertyID:       property.ID,
		FirstName:        "Jane",
		LastName:         "Doe",
		IsPrimaryContact: true,
	}).Error)
	require.NoError(t, db.Create(&model.FinancialTransaction{
		PropertyID:      property.ID,
		TransactionType: model.TransactionAssessment,
		Amount:          decimal.RequireFromString("42.00"),
	}).Error)

	resp := doRequest(t, app, http.MethodPost, "/api/emails/preview", fiber.Map{
		"subject":     "For {{resident_name}}",
		"body":        "Balance {{current_balance}}, fee {{monthly_fee}}",
		"property_id": property.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var preview struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	decodeBody(t, resp, &preview)

	assert.Equal(t, "For Jane Doe", preview.Subject)
	assert.Equal(t, "Balance 42.00, fee 99.00", preview.Body)
	assert.Empty(t, sender.sent)
}

func TestNotifyMaintenanceSendsToPrimaryContact(t *testing.T) {
	db := newTestDB(t)
	sender := &stubSender{}
	app := newTestApp(db, sender)

	property := model.Property{Address: "123 Oak Street"}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&model.Resident{
		PropertyID:       property.ID,
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@example.com",
		IsPrimaryContact: true,
	}).Error)
	request := model.MaintenanceRequest{
		PropertyID: property.ID,
		Title:      "Broken sprinkler",
		Status:     model.StatusInProgress,
		Notes:      "Parts ordered",
	}
	require.NoError(t, db.Create(&request).Error)

	resp := doRequest(t, app, http.MethodPost, "/api/emails/maintenance/1/notify", fiber.Map{
		"subject": "Update on {{request_title}}",
		"body":    "Status is now {{status}}. {{notes}}",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].To)
	assert.Equal(t, "Update on Broken sprinkler", sender.sent[0].Subject)
	assert.Equal(t, "Status is now In Progress. Parts ordered", sender.sent[0].Body)
}
