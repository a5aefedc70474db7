package handlers

import (
	"github.com/gofiber/fiber/v2"

	"payflow/services"
)

func (h *Handler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.svc.Departments.List(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", departments)
}

func (h *Handler) GetDepartment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	department, err := h.svc.Departments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, "", department)
}

func (h *Handler) CreateDepartment(c *fiber.Ctx) error {
	var req services.CreateDepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	department, err := h.svc.Departments.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, "Department created successfully", department)
}

func (h *Handler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdateDepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	department, err := h.svc.Departments.Update(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ok(c, "Department updated successfully", department)
}

func (h *Handler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Departments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, "Department deleted successfully", nil)
}
