package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrEmployeeNotFound     = errors.New("Employee not found")
	ErrEmailExists          = errors.New("Email already exists")
	ErrDepartmentNotFound   = errors.New("Department not found")
	ErrDepartmentNameExists = errors.New("Department name already exists")
	ErrDepartmentInUse      = errors.New("department has employees")

	ErrAlreadyCheckedIn  = errors.New("Already checked in today")
	ErrNotCheckedIn      = errors.New("Must check in before checking out")
	ErrAlreadyCheckedOut = errors.New("Already checked out today")
	ErrInvalidAction     = errors.New("Invalid action")

	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidToken       = errors.New("Invalid or expired token")
	ErrForbidden          = errors.New("Cannot act on behalf of another employee")
)

// ValidationError carries a message meant for the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DepartmentInUseError reports how many employees still reference a
// department that was asked to be deleted.
type DepartmentInUseError struct {
	Employees int64
}

func (e *DepartmentInUseError) Error() string {
	return fmt.Sprintf("Cannot delete department with %d employees", e.Employees)
}

func (e *DepartmentInUseError) Unwrap() error { return ErrDepartmentInUse }
