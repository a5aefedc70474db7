package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attendanceJSON struct {
	ID           uint    `json:"id"`
	EmployeeID   uint    `json:"employee_id"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	PointsEarned int     `json:"points_earned"`
}

func TestAttendanceRoutes(t *testing.T) {
	app, clock := setupApp(t)
	ada := createEmployee(t, app, "Ada", "ada@example.com")
	createEmployee(t, app, "Grace", "grace@example.com")

	var day struct {
		Status     string          `json:"status"`
		Attendance *attendanceJSON `json:"attendance"`
	}
	status, _ := doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance/today/1"}, &day)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "not_marked", day.Status)
	assert.Nil(t, day.Attendance)

	t.Run("Check In", func(t *testing.T) {
		clock.Set(8, 15)
		var record attendanceJSON
		status, resp := doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance",
			body:   map[string]interface{}{"employee_id": ada.ID, "action": "check_in"},
		}, &record)
		require.Equal(t, http.StatusCreated, status, resp.Error)
		assert.Equal(t, "early", record.Status)
		assert.Equal(t, "2026-03-02", record.Date)
		assert.Equal(t, "08:15:00", record.CheckInTime)
		assert.Equal(t, 5, record.PointsEarned)

		status, resp = doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance",
			body:   map[string]interface{}{"employee_id": ada.ID, "action": "check_in"},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Already checked in today", resp.Error)

		var employee employeeJSON
		doJSON(t, app, call{method: http.MethodGet, path: "/api/employees/1"}, &employee)
		assert.Equal(t, 5, employee.Points)
	})

	t.Run("Check Out", func(t *testing.T) {
		status, resp := doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance",
			body:   map[string]interface{}{"employee_id": 2, "action": "check_out"},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Must check in before checking out", resp.Error)

		clock.Set(17, 0)
		var record attendanceJSON
		status, resp = doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance",
			body:   map[string]interface{}{"employee_id": ada.ID, "action": "check_out"},
		}, &record)
		require.Equal(t, http.StatusOK, status, resp.Error)
		require.NotNil(t, record.CheckOutTime)
		assert.Equal(t, "17:00:00", *record.CheckOutTime)

		status, resp = doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance",
			body:   map[string]interface{}{"employee_id": ada.ID, "action": "check_out"},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Already checked out today", resp.Error)

		doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance/today/1"}, &day)
		assert.Equal(t, "clocked_out", day.Status)
	})

	t.Run("Bad Requests", func(t *testing.T) {
		status, resp := doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance",
			body:   map[string]interface{}{"employee_id": ada.ID, "action": "lunch"},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid action", resp.Error)

		status, _ = doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance",
			body:   map[string]interface{}{"employee_id": 999, "action": "check_in"},
		}, nil)
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance/today/999"}, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Bulk", func(t *testing.T) {
		var records []attendanceJSON
		status, resp := doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance/bulk",
			body: map[string]interface{}{
				"date": "2026-03-01",
				"records": []map[string]interface{}{
					{"employee_id": 1, "status": "early"},
					{"employee_id": 2},
				},
			},
		}, &records)
		require.Equal(t, http.StatusCreated, status, resp.Error)
		require.Len(t, records, 2)
		assert.Equal(t, 5, records[0].PointsEarned)
		assert.Equal(t, "present", records[1].Status)
		assert.Equal(t, 3, records[1].PointsEarned)

		status, resp = doJSON(t, app, call{
			method: http.MethodPost,
			path:   "/api/attendance/bulk",
			body:   map[string]interface{}{"date": "01/03/2026", "records": []interface{}{}},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, resp.Error, "Invalid date")
	})

	t.Run("List", func(t *testing.T) {
		var records []attendanceJSON
		status, _ := doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance"}, &records)
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, records, 3)

		doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance?date=2026-03-01"}, &records)
		assert.Len(t, records, 2)

		doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance?employee_id=1"}, &records)
		assert.Len(t, records, 2)

		doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance?employee_id=2&date=2026-03-02"}, &records)
		assert.Empty(t, records)

		status, _ = doJSON(t, app, call{method: http.MethodGet, path: "/api/attendance?employee_id=x"}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
