package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"payflow/services"
	"payflow/store"
	"payflow/types"
)

const testPassword = "welcome2026"

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(hour, minute int) {
	c.now = time.Date(c.now.Year(), c.now.Month(), c.now.Day(), hour, minute, 0, 0, c.now.Location())
}

func setupApp(t *testing.T) (*fiber.App, *testClock) {
	t.Helper()

	st, err := store.Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := &testClock{now: time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)}
	svc := services.New(st, services.Options{
		DefaultPassword: testPassword,
		BcryptCost:      bcrypt.MinCost,
		JWTSecret:       "test-secret-0123456789",
		TokenExpiry:     time.Hour,
		Currency:        "KES",
		Clock:           clock.Now,
	}, zap.NewNop())

	return NewApp(svc, zap.NewNop()), clock
}

type call struct {
	method string
	path   string
	body   interface{}
	token  string
}

func do(t *testing.T, app *fiber.App, c call) *http.Response {
	t.Helper()

	var body io.Reader
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doJSON performs the call and decodes the envelope. Data is decoded into
// data when it is non-nil.
func doJSON(t *testing.T, app *fiber.App, c call, data interface{}) (int, types.APIResponse) {
	t.Helper()

	resp := do(t, app, c)
	defer resp.Body.Close()

	var envelope struct {
		types.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	if data != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return resp.StatusCode, envelope.APIResponse
}

type employeeJSON struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	DepartmentID       *uint   `json:"department_id"`
	DepartmentName     *string `json:"department_name"`
	Points             int     `json:"points"`
	PasswordUsed       bool    `json:"password_used"`
	MustChangePassword bool    `json:"must_change_password"`
	TemporaryPassword  string  `json:"temporary_password"`
	SalaryBreakdown    struct {
		BaseSalary float64 `json:"base_salary"`
		Bonus      float64 `json:"bonus"`
		Raise      float64 `json:"raise"`
		Total      float64 `json:"total"`
	} `json:"salary_breakdown"`
}

func createEmployee(t *testing.T, app *fiber.App, name, email string) employeeJSON {
	t.Helper()

	var employee employeeJSON
	status, resp := doJSON(t, app, call{
		method: http.MethodPost,
		path:   "/api/employees",
		body:   map[string]interface{}{"name": name, "email": email, "base_salary": 50000},
	}, &employee)
	require.Equal(t, http.StatusCreated, status, resp.Error)
	return employee
}
