package controller

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoamanager_backend/internal/model"
)

func TestFinancialReportSummary(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db, &stubSender{})

	property := model.Property{Address: "123 Oak Street"}
	require.NoError(t, db.Create(&property).Error)

	transactions := []model.FinancialTransaction{
		{PropertyID: property.ID, TransactionType: model.TransactionAssessment, Amount: decimal.RequireFromString("200.00")},
		{PropertyID: property.ID, TransactionType: model.TransactionFee, Amount: decimal.RequireFromString("100.00")},
		{PropertyID: property.ID, TransactionType: model.TransactionPayment, Amount: decimal.RequireFromString("-50.00")},
	}
	for i := range transactions {
		require.NoError(t, db.Create(&transactions[i]).Error)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/reports/financial", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Summary FinancialSummary `json:"summary"`
		ByType  []TypeTotal      `json:"by_type"`
	}
	decodeBody(t, resp, &report)

	assert.Equal(t, int64(1), report.Summary.TotalProperties)
	assert.True(t, report.Summary.TotalAssessments.Equal(decimal.RequireFromString("300.00")), "assessments: %s", report.Summary.TotalAssessments)
	assert.True(t, report.Summary.TotalPayments.Equal(decimal.RequireFromString("50.00")), "payments: %s", report.Summary.TotalPayments)
	assert.True(t, report.Summary.NetBalance.Equal(decimal.RequireFromString("250.00")), "net: %s", report.Summary.NetBalance)
	assert.Len(t, report.ByType, 3)
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db, &stubSender{})

	property := model.Property{Address: "123 Oak Street"}
	require.NoError(t, db.Create(&property).Error)

	require.NoError(t, db.Create(&model.MaintenanceRequest{PropertyID: property.ID, Title: "Open one", Status: model.StatusOpen}).Error)
	require.NoError(t, db.Create(&model.MaintenanceRequest{PropertyID: property.ID, Title: "Done one", Status: model.StatusCompleted}).Error)
	require.NoError(t, db.Create(&model.FinancialTransaction{
		PropertyID:      property.ID,
		TransactionType: model.TransactionAssessment,
		Amount:          decimal.RequireFromString("75.25"),
	}).Error)

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats DashboardStats
	decodeBody(t, resp, &stats)

	assert.Equal(t, int64(1), stats.TotalProperties)
	assert.Equal(t, int64(1), stats.OpenRequests)
	assert.True(t, stats.NetBalance.Equal(decimal.RequireFromString("75.25")), "net: %s", stats.NetBalance)
	assert.Len(t, stats.RecentRequests, 2)
}

func TestMaintenanceReportCounts(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db, &stubSender{})

	property := model.Property{Address: "123 Oak Street"}
	require.NoError(t, db.Create(&property).Error)

	requests := []model.MaintenanceRequest{
		{PropertyID: property.ID, Title: "A", RequestType: model.RequestTypeIrrigation, Status: model.StatusOpen},
		{PropertyID: property.ID, Title: "B", RequestType: model.RequestTypeIrrigation, Status: model.StatusOpen},
		{PropertyID: property.ID, Title: "C", RequestType: model.RequestTypeOther, Status: model.StatusCancelled},
	}
	for i := range requests {
		require.NoError(t, db.Create(&requests[i]).Error)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/reports/maintenance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		ByStatus []StatusCount      `json:"by_status"`
		ByType   []RequestTypeCount `json:"by_type"`
	}
	decodeBody(t, resp, &report)

	statusCounts := map[string]int64{}
	for _, row := range report.ByStatus {
		statusCounts[row.Status] = row.Count
	}
	assert.Equal(t, int64(2), statusCounts["Open"])
	assert.Equal(t, int64(1), statusCounts["Cancelled"])

	typeCounts := map[string]int64{}
	for _, row := range report.ByType {
		typeCounts[row.RequestType] = row.Count
	}
	assert.Equal(t, int64(2), typeCounts["Irrigation"])
	assert.Equal(t, int64(1), typeCounts["Other"])
}
