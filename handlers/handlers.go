package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"payflow/middleware"
	"payflow/services"
	"payflow/types"
)

// Handler exposes the services over HTTP.
type Handler struct {
	svc    *services.Services
	logger *zap.Logger
}

func New(svc *services.Services, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api")

	api.Get("/employees", h.ListEmployees)
	api.Post("/employees", h.CreateEmployee)
	api.Get("/employees/:id", h.GetEmployee)
	api.Put("/employees/:id", h.UpdateEmployee)
	api.Delete("/employees/:id", h.DeleteEmployee)

	api.Get("/departments", h.ListDepartments)
	api.Post("/departments", h.CreateDepartment)
	api.Get("/departments/:id", h.GetDepartment)
	api.Put("/departments/:id", h.UpdateDepartment)
	api.Delete("/departments/:id", h.DeleteDepartment)

	api.Get("/settings", h.GetSettings)
	api.Put("/settings", h.UpdateSettings)

	api.Get("/statistics", h.GetStatistics)
	api.Get("/notifications/:employee_id", h.GetNotifications)

	api.Get("/attendance/today/:employee_id", h.GetTodayAttendance)
	api.Get("/attendance", h.ListAttendance)
	api.Post("/attendance", h.MarkAttendance)
	api.Post("/attendance/bulk", h.BulkAttendance)

	api.Get("/salary-report/:employee_id", h.GetSalaryReport)
	api.Get("/payroll/export", h.ExportPayroll)

	api.Post("/employee/login", h.Login)
	api.Post("/employee/change-password", middleware.RequireEmployee(h.svc.Auth.Tokens()), h.ChangePassword)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(types.APIResponse{
		Success: true,
		Message: "PayFlow API is running",
	})
}

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 0)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, types.ErrInvalidInput)
	}
	return nil
}

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(types.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
