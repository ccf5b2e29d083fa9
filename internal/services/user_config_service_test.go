package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
)

func setupUserConfigServiceTest(t *testing.T) (*UserConfigService, func()) {
	requireDatabases(t)

	ctx := context.Background()
	service := NewUserConfigService(logging.Logger)

	return service, func() {
		keys, _ := config.Redis.Keys(ctx, "user_config:*").Result()
		if len(keys) > 0 {
			config.Redis.Del(ctx, keys...)
		}
		_ = config.MongoDB.Collection(config.AppConfig.UserConfigCollection).Drop(ctx)
	}
}

func TestGetOnboardingStateMissingUser(t *testing.T) {
	service, cleanup := setupUserConfigServiceTest(t)
	defer cleanup()

	state, err := service.GetOnboardingState(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, state.HasCompletedOnboarding)
	assert.False(t, state.ReminderAutoPrompted)
}

func TestMarkOnboardingCompleted(t *testing.T) {
	service, cleanup := setupUserConfigServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, service.MarkOnboardingCompleted(ctx, "user-42"))

	state, err := service.GetOnboardingState(ctx, "user-42")
	require.NoError(t, err)
	assert.True(t, state.HasCompletedOnboarding)
	assert.False(t, state.ReminderAutoPrompted)

	// idempotent for a repeated completion
	require.NoError(t, service.MarkOnboardingCompleted(ctx, "user-42"))

	var cfg models.UserConfig
	err = config.MongoDB.Collection(config.AppConfig.UserConfigCollection).
		FindOne(ctx, bson.M{"user_id": "user-42"}).Decode(&cfg)
	require.NoError(t, err)
	assert.True(t, cfg.HasCompletedOnboarding)
	assert.Equal(t, int32(2), cfg.Version)
}

func TestMarkOnboardingCompletedInvalidatesCache(t *testing.T) {
	service, cleanup := setupUserConfigServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	// prime the cache with the empty state
	_, err := service.GetOnboardingState(ctx, "user-7")
	require.NoError(t, err)

	require.NoError(t, service.MarkOnboardingCompleted(ctx, "user-7"))

	state, err := service.GetOnboardingState(ctx, "user-7")
	require.NoError(t, err)
	assert.True(t, state.HasCompletedOnboarding)
}
