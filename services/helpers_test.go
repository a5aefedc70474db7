package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"payflow/store"
)

const testPassword = "welcome2026"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(hour, minute int) {
	c.now = time.Date(c.now.Year(), c.now.Month(), c.now.Day(), hour, minute, 0, 0, c.now.Location())
}

func (c *fakeClock) NextDay() {
	c.now = c.now.AddDate(0, 0, 1)
}

func setupServices(t *testing.T) (*Services, *store.Store, *fakeClock) {
	t.Helper()

	st, err := store.Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := &fakeClock{now: time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)}
	svc := New(st, Options{
		DefaultPassword: testPassword,
		BcryptCost:      bcrypt.MinCost,
		JWTSecret:       "test-secret-0123456789",
		TokenExpiry:     time.Hour,
		Currency:        "KES",
		Clock:           clock.Now,
	}, zap.NewNop())

	return svc, st, clock
}

func createEmployee(t *testing.T, svc *Services, name, email string) *CreatedEmployee {
	t.Helper()
	salary := 50000.0
	created, err := svc.Employees.Create(context.Background(), &CreateEmployeeRequest{
		Name:       name,
		Email:      email,
		BaseSalary: &salary,
	})
	require.NoError(t, err)
	return created
}

func points(t *testing.T, st *store.Store, id uint) int {
	t.Helper()
	e, err := st.Employees.GetByID(context.Background(), id)
	require.NoError(t, err)
	return e.Points
}

func ptr[T any](v T) *T { return &v }

