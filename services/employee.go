package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"payflow/models"
	"payflow/store"
	"payflow/types"
)

type CreateEmployeeRequest struct {
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	DepartmentID *uint    `json:"department_id"`
	BaseSalary   *float64 `json:"base_salary" validate:"required,gt=0"`
	Allowances   float64  `json:"allowances" validate:"gte=0"`
	Deductions   float64  `json:"deductions" validate:"gte=0"`
	Points       int      `json:"points" validate:"gte=0"`
}

// UpdateEmployeeRequest is a partial update: nil fields are left alone.
type UpdateEmployeeRequest struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email" validate:"omitempty,email"`
	DepartmentID types.NullableID `json:"department_id"`
	BaseSalary   *float64         `json:"base_salary" validate:"omitempty,gte=0"`
	Allowances   *float64         `json:"allowances" validate:"omitempty,gte=0"`
	Deductions   *float64         `json:"deductions" validate:"omitempty,gte=0"`
	Points       *int             `json:"points" validate:"omitempty,gte=0"`
	IsPromoted   *bool            `json:"is_promoted"`
}

// EmployeeView is an employee enriched for reading. The breakdown is
// computed from the settings current at read time.
type EmployeeView struct {
	models.Employee
	DepartmentName  *string         `json:"department_name"`
	SalaryBreakdown SalaryBreakdown `json:"salary_breakdown"`
}

// CreatedEmployee is returned once, at registration, with the password the
// employee signs in with the first time.
type CreatedEmployee struct {
	EmployeeView
	TemporaryPassword string `json:"temporary_password"`
}

type EmployeeService struct {
	store           *store.Store
	defaultPassword string
	bcryptCost      int
	now             Clock
	logger          *zap.Logger
}

func NewEmployeeService(st *store.Store, defaultPassword string, bcryptCost int, now Clock, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		store:           st,
		defaultPassword: defaultPassword,
		bcryptCost:      bcryptCost,
		now:             now,
		logger:          logger,
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]EmployeeView, error) {
	employees, err := s.store.Employees.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list employees", zap.Error(err))
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

	views := make([]EmployeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, newEmployeeView(e, *settings, names))
	}
	return views, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*EmployeeView, error) {
	return s.load(ctx, s.store, id)
}

// Create registers an employee with the shared default password. The
// employee must change it after the first login.
func (s *EmployeeService) Create(ctx context.Context, req *CreateEmployeeRequest) (*CreatedEmployee, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	hash, err := hashPassword(s.defaultPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash default password", zap.Error(err))
		return nil, err
	}

	now := s.now()
	employee := &models.Employee{
		Name:               req.Name,
		Email:              req.Email,
		DepartmentID:       normalizeID(req.DepartmentID),
		BaseSalary:         *req.BaseSalary,
		Allowances:         req.Allowances,
		Deductions:         req.Deductions,
		Points:             req.Points,
		PasswordHash:       hash,
		PasswordUsed:       false,
		MustChangePassword: true,
		HireDate:           now,
	}

	var view *EmployeeView
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := ensureEmailFree(ctx, tx, employee.Email, 0); err != nil {
			return err
		}
		if err := ensureDepartmentExists(ctx, tx, employee.DepartmentID); err != nil {
			return err
		}
		if err := tx.Employees.Create(ctx, employee); err != nil {
			return err
		}
		view, err = s.load(ctx, tx, employee.ID)
		return err
	})
	if err != nil {
		return nil, s.employeeError("Failed to create employee", err)
	}

	s.logger.Info("Employee created", zap.Uint("id", employee.ID), zap.String("email", employee.Email))
	return &CreatedEmployee{EmployeeView: *view, TemporaryPassword: s.defaultPassword}, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uint, req *UpdateEmployeeRequest) (*EmployeeView, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var view *EmployeeView
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		employee, err := tx.Employees.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return ErrEmployeeNotFound
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return invalid("Name is required")
			}
			employee.Name = name
		}
		if req.Email != nil {
			email := strings.TrimSpace(*req.Email)
			if email == "" {
				return invalid("Email is required")
			}
			if email != employee.Email {
				if err := ensureEmailFree(ctx, tx, email, id); err != nil {
					return err
				}
				employee.Email = email
			}
		}
		if req.DepartmentID.Set {
			if err := ensureDepartmentExists(ctx, tx, req.DepartmentID.Value); err != nil {
				return err
			}
			employee.DepartmentID = req.DepartmentID.Value
		}
		if req.BaseSalary != nil {
			employee.BaseSalary = *req.BaseSalary
		}
		if req.Allowances != nil {
			employee.Allowances = *req.Allowances
		}
		if req.Deductions != nil {
			employee.Deductions = *req.Deductions
		}
		if req.Points != nil {
			employee.Points = *req.Points
		}
		if req.IsPromoted != nil {
			employee.IsPromoted = *req.IsPromoted
		}

		if err := tx.Employees.Save(ctx, employee); err != nil {
			return err
		}
		view, err = s.load(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, s.employeeError("Failed to update employee", err)
	}

	s.logger.Info("Employee updated", zap.Uint("id", id))
	return view, nil
}

// Delete removes the employee. Their attendance records are kept.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.Employees.GetByID(ctx, id); err != nil {
			if isNotFound(err) {
				return ErrEmployeeNotFound
			}
			return err
		}
		return tx.Employees.Delete(ctx, id)
	})
	if err != nil {
		return s.employeeError("Failed to delete employee", err)
	}

	s.logger.Info("Employee deleted", zap.Uint("id", id))
	return nil
}

func (s *EmployeeService) load(ctx context.Context, st *store.Store, id uint) (*EmployeeView, error) {
	employee, err := st.Employees.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	settings, err := st.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	names := map[uint]string{}
	if employee.DepartmentID != nil {
		department, err := st.Departments.GetByID(ctx, *employee.DepartmentID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		if department != nil {
			names[department.ID] = department.Name
		}
	}

	view := newEmployeeView(*employee, *settings, names)
	return &view, nil
}

func (s *EmployeeService) employeeError(msg string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrEmailExists
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmployeeNotFound),
		errors.Is(err, ErrEmailExists):
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

func newEmployeeView(employee models.Employee, settings models.Settings, departmentNames map[uint]string) EmployeeView {
	view := EmployeeView{
		Employee:        employee,
		SalaryBreakdown: CalculateSalary(employee, settings),
	}
	if employee.DepartmentID != nil {
		if name, ok := departmentNames[*employee.DepartmentID]; ok {
			view.DepartmentName = &name
		}
	}
	return view
}

func ensureEmailFree(ctx context.Context, st *store.Store, email string, selfID uint) error {
	existing, err := st.Employees.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}

func ensureDepartmentExists(ctx context.Context, st *store.Store, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := st.Departments.GetByID(ctx, *id); err != nil {
		if isNotFound(err) {
			return invalid("Department %d does not exist", *id)
		}
		return err
	}
	return nil
}

// normalizeID treats a zero id as no reference.
func normalizeID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}
