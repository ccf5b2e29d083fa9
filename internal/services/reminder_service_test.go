package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
)

func setupReminderServiceTest(t *testing.T) (*ReminderSettingsService, func()) {
	requireDatabases(t)

	ctx := context.Background()
	userConfigs := NewUserConfigService(logging.Logger)
	service := NewReminderSettingsService(userConfigs, logging.Logger)

	return service, func() {
		keys, _ := config.Redis.Keys(ctx, "user_config:*").Result()
		if len(keys) > 0 {
			config.Redis.Del(ctx, keys...)
		}
		_ = config.MongoDB.Collection(config.AppConfig.UserConfigCollection).Drop(ctx)
		_ = config.MongoDB.Collection(config.AppConfig.ReminderSettingsCollection).Drop(ctx)
	}
}

func TestMarkReminderAutoPrompted(t *testing.T) {
	service, cleanup := setupReminderServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, service.MarkReminderAutoPrompted(ctx, "user-1"))

	userConfigs := NewUserConfigService(logging.Logger)
	state, err := userConfigs.GetOnboardingState(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, state.ReminderAutoPrompted)
	assert.False(t, state.HasCompletedOnboarding)
}

func TestApplyReminderSettingsRejectsBadTime(t *testing.T) {
	service, cleanup := setupReminderServiceTest(t)
	defer cleanup()

	err := service.ApplyReminderSettings(context.Background(), models.ReminderSettings{
		UserID: "user-1",
		Hour:   24,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidReminderTime)

	err = service.ApplyReminderSettings(context.Background(), models.ReminderSettings{
		UserID: "user-1",
		Hour:   8,
		Minute: 60,
	})
	assert.ErrorIs(t, err, models.ErrInvalidReminderTime)
}

func TestApplyAndGetReminderSettings(t *testing.T) {
	service, cleanup := setupReminderServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, service.ApplyReminderSettings(ctx, models.ReminderSettings{
		UserID:  "user-1",
		Enabled: true,
		Hour:    models.DefaultReminderHour,
		Minute:  models.DefaultReminderMinute,
	}))

	settings, err := service.GetReminderSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
	assert.Equal(t, models.DefaultReminderHour, settings.Hour)
	assert.Equal(t, models.DefaultReminderMinute, settings.Minute)
}

func TestGetReminderSettingsDefaults(t *testing.T) {
	service, cleanup := setupReminderServiceTest(t)
	defer cleanup()

	settings, err := service.GetReminderSettings(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, settings.Enabled)
	assert.Equal(t, models.DefaultReminderHour, settings.Hour)
	assert.Equal(t, models.DefaultReminderMinute, settings.Minute)
}

func TestUpdateReminderSettings(t *testing.T) {
	service, cleanup := setupReminderServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	updated, err := service.UpdateReminderSettings(ctx, "user-1", models.UpdateReminderRequest{
		Enabled: true,
		Hour:    7,
		Minute:  30,
	})
	require.NoError(t, err)
	assert.True(t, updated.Enabled)
	assert.Equal(t, 7, updated.Hour)
	assert.Equal(t, 30, updated.Minute)

	settings, err := service.GetReminderSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, updated, settings)
}
