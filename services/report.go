package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"payflow/models"
	"payflow/store"
)

// notificationWindow is how many of the latest attendance records
// notifications are derived from.
const notificationWindow = 5

type Notification struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

type Statistics struct {
	TotalEmployees   int64   `json:"total_employees"`
	TotalDepartments int64   `json:"total_departments"`
	TotalPayout      float64 `json:"total_payout"`
	AttendanceToday  int64   `json:"attendance_today"`
}

// SalaryReport is everything a salary statement shows for one employee.
type SalaryReport struct {
	Employee       models.Employee
	DepartmentName string
	Breakdown      SalaryBreakdown
	PointValue     float64
	Currency       string
	GeneratedAt    time.Time
}

var moneyPrinter = message.NewPrinter(language.English)

func formatMoney(amount float64) string {
	return moneyPrinter.Sprintf("%.2f", amount)
}

var salaryReportTemplate = template.Must(template.New("salary_report").
	Funcs(template.FuncMap{"money": formatMoney, "upper": strings.ToUpper}).
	Parse(`===============================================
SALARY REPORT - {{upper .Employee.Name}}
===============================================

Employee ID: {{.Employee.ID}}
Email: {{.Employee.Email}}
Department: {{.DepartmentName}}

===============================================
SALARY BREAKDOWN
===============================================

Base Salary:        {{.Currency}} {{money .Breakdown.BaseSalary}}
Allowances:       + {{.Currency}} {{money .Breakdown.Allowances}}
Bonus (Points):   + {{.Currency}} {{money .Breakdown.Bonus}}
Raise:            + {{.Currency}} {{money .Breakdown.Raise}}
Deductions:       - {{.Currency}} {{money .Breakdown.Deductions}}
-----------------------------------------------
TOTAL SALARY:       {{.Currency}} {{money .Breakdown.Total}}

===============================================
POINTS SUMMARY
===============================================

Total Points: {{.Employee.Points}}
Point Value: {{.Currency}} {{printf "%.2f" .PointValue}} per point
Bonus Earned: {{.Currency}} {{money .Breakdown.Bonus}}

===============================================
Generated on: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
===============================================
`))

// Text renders the plain-text statement.
func (r *SalaryReport) Text() (string, error) {
	var buf bytes.Buffer
	if err := salaryReportTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render salary report: %w", err)
	}
	return buf.String(), nil
}

// Workbook renders the statement as a two-column xlsx sheet.
func (r *SalaryReport) Workbook() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Salary Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Employee ID", r.Employee.ID},
		{"Name", r.Employee.Name},
		{"Email", r.Employee.Email},
		{"Department", r.DepartmentName},
		{"Currency", r.Currency},
		{},
		{"Base Salary", r.Breakdown.BaseSalary},
		{"Allowances", r.Breakdown.Allowances},
		{"Bonus (Points)", r.Breakdown.Bonus},
		{"Raise", r.Breakdown.Raise},
		{"Deductions", r.Breakdown.Deductions},
		{"Total Salary", r.Breakdown.Total},
		{},
		{"Total Points", r.Employee.Points},
		{"Point Value", r.PointValue},
		{"Generated On", r.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheet, "A", "B", 20); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

type ReportService struct {
	store    *store.Store
	currency string
	now      Clock
	logger   *zap.Logger
}

func NewReportService(st *store.Store, currency string, now Clock, logger *zap.Logger) *ReportService {
	return &ReportService{store: st, currency: currency, now: now, logger: logger}
}

// Notifications derives messages from the employee's latest attendance.
// Early and on-time records produce one notification each; late ones none.
func (s *ReportService) Notifications(ctx context.Context, employeeID uint) ([]Notification, error) {
	if _, err := s.store.Employees.GetByID(ctx, employeeID); err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	records, err := s.store.Attendance.Recent(ctx, employeeID, notificationWindow)
	if err != nil {
		s.logger.Error("Failed to load attendance", zap.Uint("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	notifications := make([]Notification, 0, len(records))
	for _, r := range records {
		var n Notification
		switch r.Status {
		case models.StatusEarly:
			n = Notification{
				Type:    "success",
				Title:   "Early Arrival Bonus!",
				Message: fmt.Sprintf("You earned %d points for arriving early on %s", r.PointsEarned, r.Date),
			}
		case models.StatusPresent:
			n = Notification{
				Type:    "info",
				Title:   "Attendance Marked",
				Message: fmt.Sprintf("You earned %d points for being on time on %s", r.PointsEarned, r.Date),
			}
		default:
			continue
		}
		n.ID = len(notifications) + 1
		n.CreatedAt = r.CreatedAt
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (s *ReportService) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	var err error

	if stats.TotalEmployees, err = s.store.Employees.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalDepartments, err = s.store.Departments.Count(ctx); err != nil {
		return nil, err
	}

	employees, err := s.store.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		stats.TotalPayout += CalculateSalary(e, *settings).Total
	}

	today := s.now().Format(models.DateLayout)
	stats.AttendanceToday, err = s.store.Attendance.CountForDay(ctx, today, models.StatusEarly, models.StatusPresent)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *ReportService) SalaryReport(ctx context.Context, employeeID uint) (*SalaryReport, error) {
	employee, err := s.store.Employees.GetByID(ctx, employeeID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	department := "N/A"
	if employee.DepartmentID != nil {
		d, err := s.store.Departments.GetByID(ctx, *employee.DepartmentID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		if d != nil {
			department = d.Name
		}
	}

	return &SalaryReport{
		Employee:       *employee,
		DepartmentName: department,
		Breakdown:      CalculateSalary(*employee, *settings),
		PointValue:     settings.PointValue,
		Currency:       s.currency,
		GeneratedAt:    s.now(),
	}, nil
}

// PayrollWorkbook exports every employee's breakdown as one xlsx sheet with
// a totals row.
func (s *ReportService) PayrollWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	employees, err := s.store.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.store.Departments.Names(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payroll"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []interface{}{
		"ID", "Name", "Email", "Department", "Points",
		"Base Salary", "Allowances", "Bonus", "Raise", "Deductions", "Total",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	var total float64
	for i, e := range employees {
		b := CalculateSalary(e, *settings)
		total += b.Total

		department := ""
		if e.DepartmentID != nil {
			department = names[*e.DepartmentID]
		}
		row := []interface{}{
			e.ID, e.Name, e.Email, department, e.Points,
			b.BaseSalary, b.Allowances, b.Bonus, b.Raise, b.Deductions, b.Total,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	totalRow := len(employees) + 2
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(11, totalRow)
	if err := f.SetCellValue(sheet, labelCell, "Total Payout"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, totalCell, total); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, totalRow, totalRow, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "K", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Failed to write payroll workbook", zap.Error(err))
		return nil, err
	}
	return buf, nil
}
