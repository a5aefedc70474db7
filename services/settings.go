package services

import (
	"context"

	"go.uber.org/zap"

	"payflow/models"
	"payflow/store"
)

// UpdateSettingsRequest replaces the fields that are present.
type UpdateSettingsRequest struct {
	RaiseAfterYears *int     `json:"raise_after_years" validate:"omitempty,gte=0"`
	RaisePercentage *float64 `json:"raise_percentage" validate:"omitempty,gte=0"`
	PointValue      *float64 `json:"point_value" validate:"omitempty,gte=0"`
	PaymentMethod   *string  `json:"payment_method"`
	EarlyPoints     *int     `json:"early_points" validate:"omitempty,gte=0"`
	OnTimePoints    *int     `json:"on_time_points" validate:"omitempty,gte=0"`
}

type SettingsService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewSettingsService(st *store.Store, logger *zap.Logger) *SettingsService {
	return &SettingsService{store: st, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, req *UpdateSettingsRequest) (*models.Settings, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *models.Settings
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		settings, err := tx.Settings.Get(ctx)
		if err != nil {
			return err
		}

		if req.RaiseAfterYears != nil {
			settings.RaiseAfterYears = *req.RaiseAfterYears
		}
		if req.RaisePercentage != nil {
			settings.RaisePercentage = *req.RaisePercentage
		}
		if req.PointValue != nil {
			settings.PointValue = *req.PointValue
		}
		if req.PaymentMethod != nil {
			settings.PaymentMethod = *req.PaymentMethod
		}
		if req.EarlyPoints != nil {
			settings.EarlyPoints = *req.EarlyPoints
		}
		if req.OnTimePoints != nil {
			settings.OnTimePoints = *req.OnTimePoints
		}

		if err := tx.Settings.Save(ctx, settings); err != nil {
			return err
		}
		updated = settings
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update settings", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Settings updated")
	return updated, nil
}
