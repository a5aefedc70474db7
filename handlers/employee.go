package handlers

import (
	"github.com/gofiber/fiber/v2"

	"payflow/services"
)

func (h *Handler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.svc.Employees.List(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", employees)
}

func (h *Handler) GetEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	employee, err := h.svc.Employees.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, "", employee)
}

func (h *Handler) CreateEmployee(c *fiber.Ctx) error {
	var req services.CreateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	employee, err := h.svc.Employees.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, "Employee created successfully", employee)
}

func (h *Handler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	employee, err := h.svc.Employees.Update(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ok(c, "Employee updated successfully", employee)
}

func (h *Handler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Employees.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, "Employee deleted successfully", nil)
}
