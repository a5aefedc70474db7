package services

import (
	"math"

	"payflow/models"
)

// SalaryBreakdown decomposes an employee's pay.
type SalaryBreakdown struct {
	BaseSalary float64 `json:"base_salary"`
	Allowances float64 `json:"allowances"`
	Bonus      float64 `json:"bonus"`
	Raise      float64 `json:"raise"`
	Deductions float64 `json:"deductions"`
	Total      float64 `json:"total"`
}

// CalculateSalary derives the breakdown from the employee's current fields
// and the current settings. Points convert to a bonus at PointValue each; a
// promoted employee gets RaisePercentage of the base salary on top. The
// total never drops below zero.
//
// RaiseAfterYears is not consulted: raises follow the promotion flag only.
func CalculateSalary(employee models.Employee, settings models.Settings) SalaryBreakdown {
	bonus := float64(employee.Points) * settings.PointValue

	var raise float64
	if employee.IsPromoted {
		raise = employee.BaseSalary * (settings.RaisePercentage / 100)
	}

	total := employee.BaseSalary + employee.Allowances + bonus + raise - employee.Deductions

	return SalaryBreakdown{
		BaseSalary: employee.BaseSalary,
		Allowances: employee.Allowances,
		Bonus:      bonus,
		Raise:      raise,
		Deductions: employee.Deductions,
		Total:      math.Max(total, 0),
	}
}
