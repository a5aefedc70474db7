package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetSalaryReport downloads an employee's salary statement as text, or as a
// workbook with ?format=xlsx.
func (h *Handler) GetSalaryReport(c *fiber.Ctx) error {
	employeeID, err := paramID(c, "employee_id")
	if err != nil {
		return err
	}

	report, err := h.svc.Reports.SalaryReport(c.UserContext(), employeeID)
	if err != nil {
		return err
	}

	switch c.Query("format", "txt") {
	case "xlsx":
		buf, err := report.Workbook()
		if err != nil {
			h.logger.Error("Failed to build salary workbook", zap.Uint("employee_id", employeeID), zap.Error(err))
			return err
		}
		c.Attachment(fmt.Sprintf("salary_report_%d.xlsx", employeeID))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	case "txt":
		text, err := report.Text()
		if err != nil {
			return err
		}
		c.Attachment(fmt.Sprintf("salary_report_%d.txt", employeeID))
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(text)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported format, use txt or xlsx")
	}
}

func (h *Handler) ExportPayroll(c *fiber.Ctx) error {
	buf, err := h.svc.Reports.PayrollWorkbook(c.UserContext())
	if err != nil {
		return err
	}

	c.Attachment("payroll.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
