package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"payflow/store"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	EmployeeID  uint   `json:"employee_id" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type LoginEmployee struct {
	ID                     uint   `json:"id"`
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	RequiresPasswordChange bool   `json:"requires_password_change"`
}

type LoginResult struct {
	Employee  LoginEmployee `json:"employee"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// AuthService implements the employee credential flow.
//
// Every new employee starts with the shared default password as a one-time
// password. The first successful login consumes it; from then on only a
// password the employee set through ChangePassword is accepted.
type AuthService struct {
	store      *store.Store
	tokens     *TokenManager
	bcryptCost int
	now        Clock
	logger     *zap.Logger
}

func NewAuthService(st *store.Store, tokens *TokenManager, bcryptCost int, now Clock, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:      st,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        now,
		logger:     logger,
	}
}

func (s *AuthService) Tokens() *TokenManager {
	return s.tokens
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	employee, err := s.store.Employees.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up employee", zap.Error(err))
		return nil, err
	}

	if !checkPassword(employee.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	switch {
	case !employee.PasswordUsed:
		// one-time password: only the first login may consume it
		consumed, err := s.store.Employees.ConsumeOneTimePassword(ctx, employee.ID)
		if err != nil {
			s.logger.Error("Failed to consume one-time password", zap.Error(err))
			return nil, err
		}
		if !consumed {
			return nil, ErrInvalidCredentials
		}
	case employee.PasswordChangedAt == nil:
		// one-time password already consumed and never replaced
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(employee.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Employee login", zap.Uint("id", employee.ID))
	return &LoginResult{
		Employee: LoginEmployee{
			ID:                     employee.ID,
			Name:                   employee.Name,
			Email:                  employee.Email,
			RequiresPasswordChange: employee.MustChangePassword,
		},
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ChangePassword sets a new password for callerID. Employees may only change
// their own password.
func (s *AuthService) ChangePassword(ctx context.Context, callerID uint, req *ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if callerID != req.EmployeeID {
		return ErrForbidden
	}

	if _, err := s.store.Employees.GetByID(ctx, req.EmployeeID); err != nil {
		if isNotFound(err) {
			return ErrEmployeeNotFound
		}
		return err
	}

	hash, err := hashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return err
	}
	if err := s.store.Employees.SetPassword(ctx, req.EmployeeID, hash, s.now()); err != nil {
		s.logger.Error("Failed to store password", zap.Uint("id", req.EmployeeID), zap.Error(err))
		return err
	}

	s.logger.Info("Password changed", zap.Uint("id", req.EmployeeID))
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
