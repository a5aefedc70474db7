package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"payflow/services"
)

func (h *Handler) GetTodayAttendance(c *fiber.Ctx) error {
	employeeID, err := paramID(c, "employee_id")
	if err != nil {
		return err
	}

	status, err := h.svc.Attendance.Today(c.UserContext(), employeeID)
	if err != nil {
		return err
	}
	return ok(c, "", status)
}

// ListAttendance supports the optional query filters date and employee_id.
func (h *Handler) ListAttendance(c *fiber.Ctx) error {
	req := services.ListAttendanceRequest{Date: c.Query("date")}
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid employee_id")
		}
		employeeID := uint(id)
		req.EmployeeID = &employeeID
	}

	records, err := h.svc.Attendance.List(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, "", records)
}

func (h *Handler) MarkAttendance(c *fiber.Ctx) error {
	var req services.MarkAttendanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	record, err := h.svc.Attendance.Mark(c.UserContext(), &req)
	if err != nil {
		return err
	}

	if req.Action == services.ActionCheckIn {
		return created(c, "Checked in successfully", record)
	}
	return ok(c, "Checked out successfully", record)
}

func (h *Handler) BulkAttendance(c *fiber.Ctx) error {
	var req services.BulkAttendanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	records, err := h.svc.Attendance.BulkMark(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, "Attendance marked successfully", records)
}
