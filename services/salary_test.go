package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payflow/models"
)

func TestCalculateSalary(t *testing.T) {
	settings := models.DefaultSettings()

	t.Run("Promoted With Points", func(t *testing.T) {
		employee := models.Employee{
			BaseSalary: 50000,
			Allowances: 2000,
			Deductions: 1000,
			Points:     10,
			IsPromoted: true,
		}

		got := CalculateSalary(employee, settings)
		assert.Equal(t, SalaryBreakdown{
			BaseSalary: 50000,
			Allowances: 2000,
			Bonus:      1000,
			Raise:      5000,
			Deductions: 1000,
			Total:      57000,
		}, got)
	})

	t.Run("Not Promoted", func(t *testing.T) {
		employee := models.Employee{BaseSalary: 30000, Points: 3}

		got := CalculateSalary(employee, settings)
		assert.Zero(t, got.Raise)
		assert.Equal(t, 300.0, got.Bonus)
		assert.Equal(t, 30300.0, got.Total)
	})

	t.Run("Total Floored At Zero", func(t *testing.T) {
		for _, deductions := range []float64{10001, 1e6, 1e12} {
			employee := models.Employee{BaseSalary: 10000, Deductions: deductions}
			got := CalculateSalary(employee, settings)
			assert.Zero(t, got.Total, "deductions=%v", deductions)
			assert.Equal(t, deductions, got.Deductions)
		}
	})

	t.Run("Follows Current Settings", func(t *testing.T) {
		employee := models.Employee{BaseSalary: 1000, Points: 4, IsPromoted: true}
		custom := settings
		custom.PointValue = 2.5
		custom.RaisePercentage = 50

		got := CalculateSalary(employee, custom)
		assert.Equal(t, 10.0, got.Bonus)
		assert.Equal(t, 500.0, got.Raise)
		assert.Equal(t, 1510.0, got.Total)
	})

	t.Run("Tenure Does Not Matter", func(t *testing.T) {
		employee := models.Employee{BaseSalary: 1000, IsPromoted: true}
		custom := settings
		custom.RaiseAfterYears = 50

		assert.Equal(t, 100.0, CalculateSalary(employee, custom).Raise)
	})
}
