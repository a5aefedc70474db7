package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHealth(t *testing.T) {
	app, _ := setupApp(t)

	resp := do(t, app, call{method: http.MethodGet, path: "/healthz"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/employees", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatisticsAndNotifications(t *testing.T) {
	app, clock := setupApp(t)
	ada := createEmployee(t, app, "Ada", "ada@example.com")
	createEmployee(t, app, "Grace", "grace@example.com")

	clock.Set(7, 30)
	status, resp := doJSON(t, app, call{
		method: http.MethodPost,
		path:   "/api/attendance",
		body:   map[string]interface{}{"employee_id": ada.ID, "action": "check_in"},
	}, nil)
	require.Equal(t, http.StatusCreated, status, resp.Error)

	var stats struct {
		TotalEmployees   int64   `json:"total_employees"`
		TotalDepartments int64   `json:"total_departments"`
		TotalPayout      float64 `json:"total_payout"`
		AttendanceToday  int64   `json:"attendance_today"`
	}
	status, _ = doJSON(t, app, call{method: http.MethodGet, path: "/api/statistics"}, &stats)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), stats.TotalEmployees)
	assert.Zero(t, stats.TotalDepartments)
	assert.Equal(t, 100500.0, stats.TotalPayout)
	assert.Equal(t, int64(1), stats.AttendanceToday)

	var notifications []struct {
		ID    int    `json:"id"`
		Type  string `json:"type"`
		Title string `json:"title"`
	}
	status, _ = doJSON(t, app, call{method: http.MethodGet, path: "/api/notifications/1"}, &notifications)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, notifications, 1)
	assert.Equal(t, "success", notifications[0].Type)
	assert.Equal(t, "Early Arrival Bonus!", notifications[0].Title)

	status, _ = doJSON(t, app, call{method: http.MethodGet, path: "/api/notifications/999"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSalaryReportDownload(t *testing.T) {
	app, _ := setupApp(t)
	createEmployee(t, app, "Ada Lovelace", "ada@example.com")

	t.Run("Text", func(t *testing.T) {
		resp := do(t, app, call{method: http.MethodGet, path: "/api/salary-report/1"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "salary_report_1.txt")
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "SALARY REPORT - ADA LOVELACE")
		assert.Contains(t, string(body), "TOTAL SALARY:       KES 50,000.00")
	})

	t.Run("Workbook", func(t *testing.T) {
		resp := do(t, app, call{method: http.MethodGet, path: "/api/salary-report/1?format=xlsx"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "salary_report_1.xlsx")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		f, err := excelize.OpenReader(bytes.NewReader(body))
		require.NoError(t, err)
		defer f.Close()

		name, err := f.GetCellValue("Salary Report", "B2")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", name)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		status, _ := doJSON(t, app, call{method: http.MethodGet, path: "/api/salary-report/1?format=pdf"}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Unknown Employee", func(t *testing.T) {
		status, resp := doJSON(t, app, call{method: http.MethodGet, path: "/api/salary-report/999"}, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Employee not found", resp.Error)
	})
}

func TestPayrollExport(t *testing.T) {
	app, _ := setupApp(t)
	createEmployee(t, app, "Ada", "ada@example.com")

	resp := do(t, app, call{method: http.MethodGet, path: "/api/payroll/export"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "payroll.xlsx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
