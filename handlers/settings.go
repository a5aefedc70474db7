package handlers

import (
	"github.com/gofiber/fiber/v2"

	"payflow/services"
)

func (h *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.svc.Settings.Get(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", settings)
}

func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	var req services.UpdateSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	settings, err := h.svc.Settings.Update(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, "Settings updated successfully", settings)
}
