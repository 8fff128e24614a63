package application

import (
	"context"
	"fmt"
	"time"

	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

// SettingsService manages the global exchange rate settings
type SettingsService struct {
	settings domain.SettingsRepository
	logger   *logging.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settings domain.SettingsRepository, logger *logging.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

// GetRates returns the current exchange rates, falling back to defaults when
// no settings document exists yet
func (s *SettingsService) GetRates(ctx context.Context) (*SettingsDTO, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", "error", err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return ToSettingsDTO(settings), nil
}

// UpdateRates overwrites the global exchange rates
func (s *SettingsService) UpdateRates(ctx context.Context, cmd UpdateRatesCommand) (*SettingsDTO, error) {
	settings := domain.Settings{
		EURRate:     cmd.EURRate,
		USDRate:     cmd.USDRate,
		LastUpdated: time.Now(),
	}

	if err := s.settings.Update(ctx, settings); err != nil {
		s.logger.Error("Failed to update settings", "error", err)
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.logger.Info("Updated exchange rates", "eurRate", cmd.EURRate, "usdRate", cmd.USDRate)
	return ToSettingsDTO(settings), nil
}
