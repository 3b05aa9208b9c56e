package service_test

import (
	"context"
	"testing"

	"sabor-express/internal/domain"
	"sabor-express/internal/service"
	"sabor-express/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSettingsService(t *testing.T) (*service.SettingsService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return service.NewSettingsService(storage.NewSettingsStore(client), zap.NewNop().Sugar()), mr
}

func TestSettingsService_GetDefaultsForUnknownClient(t *testing.T) {
	svc, _ := newSettingsService(t)

	settings, err := svc.Get(context.Background(), "client-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultNotificationSettings(), settings)
}

func TestSettingsService_RoundTrip(t *testing.T) {
	svc, _ := newSettingsService(t)
	in := domain.NotificationSettings{
		Enabled:      false,
		Duration:     5000,
		SoundEnabled: true,
		Sound:        domain.SoundBell,
		Volume:       0.8,
	}

	saved, err := svc.Update(context.Background(), "client-1", in)
	require.NoError(t, err)
	assert.Equal(t, in, saved)

	loaded, err := svc.Get(context.Background(), "client-1")
	assert.NoError(t, err)
	assert.Equal(t, in, loaded)
}

func TestSettingsService_UpdateClampsOutOfRangeValues(t *testing.T) {
	svc, _ := newSettingsService(t)

	saved, err := svc.Update(context.Background(), "client-1", domain.NotificationSettings{
		Enabled:  true,
		Duration: 60000,
		Sound:    "airhorn",
		Volume:   1.7,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.MaxNotificationDuration, saved.Duration)
	assert.Equal(t, domain.SoundDefault, saved.Sound)
	assert.InDelta(t, 1.0, saved.Volume, 1e-9)

	saved, err = svc.Update(context.Background(), "client-1", domain.NotificationSettings{
		Duration: 100,
		Sound:    domain.SoundChime,
		Volume:   -0.2,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.MinNotificationDuration, saved.Duration)
	assert.Zero(t, saved.Volume)
}

func TestSettingsService_MalformedStoredFieldsFallBackToDefaults(t *testing.T) {
	svc, mr := newSettingsService(t)
	mr.HSet("settings:client-1",
		"enabled", "not-a-bool",
		"duration", "soon",
		"sound_enabled", "false",
		"sound", "airhorn",
		"volume", "loud",
	)

	settings, err := svc.Get(context.Background(), "client-1")

	assert.NoError(t, err)
	defaults := domain.DefaultNotificationSettings()
	assert.Equal(t, defaults.Enabled, settings.Enabled)
	assert.Equal(t, defaults.Duration, settings.Duration)
	assert.Equal(t, defaults.Sound, settings.Sound)
	assert.InDelta(t, defaults.Volume, settings.Volume, 1e-9)
	assert.False(t, settings.SoundEnabled, "well-formed fields are still read")
}

func TestSettingsService_GetClampsStoredValues(t *testing.T) {
	svc, mr := newSettingsService(t)
	mr.HSet("settings:client-1", "duration", "1", "volume", "4.5")

	settings, err := svc.Get(context.Background(), "client-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.MinNotificationDuration, settings.Duration)
	assert.InDelta(t, 1.0, settings.Volume, 1e-9)
}

func TestSettingsService_ClientsAreIsolated(t *testing.T) {
	svc, _ := newSettingsService(t)

	_, err := svc.Update(context.Background(), "client-1", domain.NotificationSettings{
		Enabled:  false,
		Duration: 4000,
		Sound:    domain.SoundPing,
		Volume:   0.5,
	})
	require.NoError(t, err)

	other, err := svc.Get(context.Background(), "client-2")
	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultNotificationSettings(), other)
}
