package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"payflow/models"
	"payflow/store"
)

type CreateDepartmentRequest struct {
	Name    string `json:"name"`
	Manager string `json:"manager"`
}

type UpdateDepartmentRequest struct {
	Name    *string `json:"name"`
	Manager *string `json:"manager"`
}

// DepartmentView is a department with its employee count, which is derived
// from the employee registry on every read.
type DepartmentView struct {
	models.Department
	EmployeeCount int64 `json:"employee_count"`
}

type DepartmentService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewDepartmentService(st *store.Store, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{store: st, logger: logger}
}

func (s *DepartmentService) List(ctx context.Context) ([]DepartmentView, error) {
	departments, err := s.store.Departments.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list departments", zap.Error(err))
		return nil, err
	}

	counts, err := s.store.Employees.CountsByDepartment(ctx)
	if err != nil {
		s.logger.Error("Failed to count department employees", zap.Error(err))
		return nil, err
	}

	views := make([]DepartmentView, 0, len(departments))
	for _, d := range departments {
		views = append(views, DepartmentView{Department: d, EmployeeCount: counts[d.ID]})
	}
	return views, nil
}

func (s *DepartmentService) Get(ctx context.Context, id uint) (*DepartmentView, error) {
	department, err := s.store.Departments.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return s.view(ctx, s.store, department)
}

func (s *DepartmentService) Create(ctx context.Context, req *CreateDepartmentRequest) (*DepartmentView, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, invalid("Department name is required")
	}

	department := &models.Department{Name: req.Name, Manager: req.Manager}
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := ensureDepartmentNameFree(ctx, tx, req.Name, 0); err != nil {
			return err
		}
		return tx.Departments.Create(ctx, department)
	})
	if err != nil {
		return nil, s.departmentError("Failed to create department", err)
	}

	s.logger.Info("Department created", zap.Uint("id", department.ID), zap.String("name", department.Name))
	return &DepartmentView{Department: *department}, nil
}

func (s *DepartmentService) Update(ctx context.Context, id uint, req *UpdateDepartmentRequest) (*DepartmentView, error) {
	var view *DepartmentView
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		department, err := tx.Departments.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return ErrDepartmentNotFound
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return invalid("Department name is required")
			}
			if name != department.Name {
				if err := ensureDepartmentNameFree(ctx, tx, name, id); err != nil {
					return err
				}
				department.Name = name
			}
		}
		if req.Manager != nil {
			department.Manager = *req.Manager
		}

		if err := tx.Departments.Save(ctx, department); err != nil {
			return err
		}
		view, err = s.view(ctx, tx, department)
		return err
	})
	if err != nil {
		return nil, s.departmentError("Failed to update department", err)
	}

	s.logger.Info("Department updated", zap.Uint("id", id))
	return view, nil
}

// Delete removes a department that no employee references.
func (s *DepartmentService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.Departments.GetByID(ctx, id); err != nil {
			if isNotFound(err) {
				return ErrDepartmentNotFound
			}
			return err
		}

		count, err := tx.Employees.CountByDepartment(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &DepartmentInUseError{Employees: count}
		}
		return tx.Departments.Delete(ctx, id)
	})
	if err != nil {
		return s.departmentError("Failed to delete department", err)
	}

	s.logger.Info("Department deleted", zap.Uint("id", id))
	return nil
}

func (s *DepartmentService) view(ctx context.Context, st *store.Store, department *models.Department) (*DepartmentView, error) {
	count, err := st.Employees.CountByDepartment(ctx, department.ID)
	if err != nil {
		return nil, err
	}
	return &DepartmentView{Department: *department, EmployeeCount: count}, nil
}

// departmentError logs unexpected failures and passes domain errors through.
func (s *DepartmentService) departmentError(msg string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDepartmentNameExists
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDepartmentNotFound),
		errors.Is(err, ErrDepartmentNameExists),
		errors.Is(err, ErrDepartmentInUse):
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

func ensureDepartmentNameFree(ctx context.Context, st *store.Store, name string, selfID uint) error {
	existing, err := st.Departments.GetByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrDepartmentNameExists
	}
	return nil
}
