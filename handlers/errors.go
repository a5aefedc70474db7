package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"payflow/services"
	"payflow/types"
)

// ErrorHandler renders every error a handler returns as an APIResponse.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("Request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(types.APIResponse{
			Success: false,
			Error:   message,
		})
	}
}

func statusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrEmailExists),
		errors.Is(err, services.ErrDepartmentNameExists),
		errors.Is(err, services.ErrDepartmentInUse),
		errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrNotCheckedIn),
		errors.Is(err, services.ErrAlreadyCheckedOut),
		errors.Is(err, services.ErrInvalidAction):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrDepartmentNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, types.ErrInvalidCredentials
	case errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized, services.ErrInvalidToken.Error()
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden, err.Error()
	}
	return fiber.StatusInternalServerError, err.Error()
}
