package service

import (
	"context"
	"fmt"
	"strconv"

	"sabor-express/internal/domain"

	"go.uber.org/zap"
)

// SettingsService loads and saves per-client notification preferences. Stored
// data never fails a read: malformed fields silently fall back to defaults
// with a logged warning.
type SettingsService struct {
	store  SettingsRepository
	logger *zap.SugaredLogger
}

func NewSettingsService(store SettingsRepository, logger *zap.SugaredLogger) *SettingsService {
	return &SettingsService{store: store, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context, clientID string) (domain.NotificationSettings, error) {
	settings := domain.DefaultNotificationSettings()

	fields, err := s.store.Load(ctx, clientID)
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}
	if len(fields) == 0 {
		return settings, nil
	}

	if raw, ok := fields["enabled"]; ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			settings.Enabled = v
		} else {
			s.warnMalformed(clientID, "enabled", raw)
		}
	}
	if raw, ok := fields["duration"]; ok {
		if v, err := strconv.Atoi(raw); err == nil {
			settings.Duration = clampDuration(v)
		} else {
			s.warnMalformed(clientID, "duration", raw)
		}
	}
	if raw, ok := fields["sound_enabled"]; ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			settings.SoundEnabled = v
		} else {
			s.warnMalformed(clientID, "sound_enabled", raw)
		}
	}
	if raw, ok := fields["sound"]; ok {
		if sound := domain.SoundType(raw); sound.Valid() {
			settings.Sound = sound
		} else {
			s.warnMalformed(clientID, "sound", raw)
		}
	}
	if raw, ok := fields["volume"]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			settings.Volume = clampVolume(v)
		} else {
			s.warnMalformed(clientID, "volume", raw)
		}
	}

	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, clientID string, settings domain.NotificationSettings) (domain.NotificationSettings, error) {
	settings.Duration = clampDuration(settings.Duration)
	settings.Volume = clampVolume(settings.Volume)
	if !settings.Sound.Valid() {
		settings.Sound = domain.SoundDefault
	}

	err := s.store.Save(ctx, clientID, map[string]interface{}{
		"enabled":       strconv.FormatBool(settings.Enabled),
		"duration":      settings.Duration,
		"sound_enabled": strconv.FormatBool(settings.SoundEnabled),
		"sound":         string(settings.Sound),
		"volume":        settings.Volume,
	})
	if err != nil {
		return settings, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}

func (s *SettingsService) warnMalformed(clientID, field, value string) {
	s.logger.Warnw("malformed stored setting, using default", "client_id", clientID, "field", field, "value", value)
}

func clampDuration(d int) int {
	if d < domain.MinNotificationDuration {
		return domain.MinNotificationDuration
	}
	if d > domain.MaxNotificationDuration {
		return domain.MaxNotificationDuration
	}
	return d
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var _ SettingsServiceInterface = (*SettingsService)(nil)
