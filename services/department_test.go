package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payflow/types"
)

func TestDepartmentLifecycle(t *testing.T) {
	svc, _, _ := setupServices(t)
	ctx := context.Background()

	eng, err := svc.Departments.Create(ctx, &CreateDepartmentRequest{Name: "Engineering", Manager: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", eng.Manager)
	assert.Zero(t, eng.EmployeeCount)

	_, err = svc.Departments.Create(ctx, &CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, ErrDepartmentNameExists)

	_, err = svc.Departments.Create(ctx, &CreateDepartmentRequest{Name: "   "})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Department name is required", err.Error())

	ops, err := svc.Departments.Create(ctx, &CreateDepartmentRequest{Name: "Operations"})
	require.NoError(t, err)

	t.Run("Rename", func(t *testing.T) {
		_, err := svc.Departments.Update(ctx, ops.ID, &UpdateDepartmentRequest{Name: ptr("Engineering")})
		assert.ErrorIs(t, err, ErrDepartmentNameExists)

		updated, err := svc.Departments.Update(ctx, ops.ID, &UpdateDepartmentRequest{Name: ptr("Ops"), Manager: ptr("Linus")})
		require.NoError(t, err)
		assert.Equal(t, "Ops", updated.Name)
		assert.Equal(t, "Linus", updated.Manager)

		_, err = svc.Departments.Update(ctx, 999, &UpdateDepartmentRequest{Name: ptr("X")})
		assert.ErrorIs(t, err, ErrDepartmentNotFound)
	})

	t.Run("Employee Count Is Derived", func(t *testing.T) {
		for _, email := range []string{"a@example.com", "b@example.com"} {
			_, err := svc.Employees.Create(ctx, &CreateEmployeeRequest{
				Name: "Dev", Email: email, BaseSalary: ptr(1.0), DepartmentID: &eng.ID,
			})
			require.NoError(t, err)
		}

		list, err := svc.Departments.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(2), list[0].EmployeeCount)
		assert.Zero(t, list[1].EmployeeCount)

		got, err := svc.Departments.Get(ctx, eng.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.EmployeeCount)
	})

	t.Run("Delete Guarded By Employees", func(t *testing.T) {
		err := svc.Departments.Delete(ctx, eng.ID)
		require.ErrorIs(t, err, ErrDepartmentInUse)
		assert.Equal(t, "Cannot delete department with 2 employees", err.Error())

		var inUse *DepartmentInUseError
		require.ErrorAs(t, err, &inUse)
		assert.Equal(t, int64(2), inUse.Employees)

		require.NoError(t, svc.Departments.Delete(ctx, ops.ID))
		_, err = svc.Departments.Get(ctx, ops.ID)
		assert.ErrorIs(t, err, ErrDepartmentNotFound)

		assert.ErrorIs(t, svc.Departments.Delete(ctx, ops.ID), ErrDepartmentNotFound)
	})

	t.Run("Delete After Employees Move", func(t *testing.T) {
		employees, err := svc.Employees.List(ctx)
		require.NoError(t, err)
		for _, e := range employees {
			_, err := svc.Employees.Update(ctx, e.ID, &UpdateEmployeeRequest{DepartmentID: types.NullableID{Set: true}})
			require.NoError(t, err)
		}
		assert.NoError(t, svc.Departments.Delete(ctx, eng.ID))
	})
}
