package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.svc.Reports.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", stats)
}

func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	employeeID, err := paramID(c, "employee_id")
	if err != nil {
		return err
	}

	notifications, err := h.svc.Reports.Notifications(c.UserContext(), employeeID)
	if err != nil {
		return err
	}
	return ok(c, "", notifications)
}
