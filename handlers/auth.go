package handlers

import (
	"github.com/gofiber/fiber/v2"

	"payflow/middleware"
	"payflow/services"
	"payflow/types"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.svc.Auth.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, "Login successful", result)
}

// ChangePassword runs behind RequireEmployee; the token's employee may only
// change their own password.
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	callerID, authenticated := middleware.EmployeeID(c)
	if !authenticated {
		return fiber.NewError(fiber.StatusUnauthorized, types.ErrUnauthorized)
	}

	var req services.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.svc.Auth.ChangePassword(c.UserContext(), callerID, &req); err != nil {
		return err
	}
	return ok(c, "Password changed successfully", nil)
}
