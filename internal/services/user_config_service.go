package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/observability"
	"github.com/mindpage/app-journal/internal/utils"
)

// UserConfigService reads and writes per-user onboarding state. It implements
// the completion flow's flag store.
type UserConfigService struct {
	logger *logging.SafeLogger
}

// NewUserConfigService creates a new user config service
func NewUserConfigService(logger *logging.SafeLogger) *UserConfigService {
	return &UserConfigService{
		logger: logger,
	}
}

func userConfigCacheKey(userID string) string {
	return fmt.Sprintf("user_config:%s", userID)
}

// GetOnboardingState returns the persisted onboarding flags for a user. A
// user with no config document has completed nothing.
func (s *UserConfigService) GetOnboardingState(ctx context.Context, userID string) (*models.OnboardingStateResponse, error) {
	cacheKey := userConfigCacheKey(userID)

	cached, err := config.Redis.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var cfg models.UserConfig
		if unmarshalErr := json.Unmarshal([]byte(cached), &cfg); unmarshalErr == nil {
			observability.CacheHits.WithLabelValues("user_config_hit").Inc()
			return &models.OnboardingStateResponse{
				HasCompletedOnboarding: cfg.HasCompletedOnboarding,
				ReminderAutoPrompted:   cfg.ReminderAutoPrompted,
			}, nil
		} else {
			s.logger.Warn("failed to unmarshal cached user config",
				zap.String("user_id", observability.MaskUserID(userID)), zap.Error(unmarshalErr))
		}
	}
	observability.CacheHits.WithLabelValues("user_config_miss").Inc()

	var cfg models.UserConfig
	collection := config.MongoDB.Collection(config.AppConfig.UserConfigCollection)
	err = utils.FindOneWithTimeout(ctx, collection, bson.M{"user_id": userID}, &cfg, utils.DefaultQueryTimeout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.OnboardingStateResponse{}, nil
		}
		observability.DatabaseOperations.WithLabelValues("find_user_config", "error").Inc()
		return nil, fmt.Errorf("failed to get user config: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("find_user_config", "success").Inc()

	if data, err := json.Marshal(cfg); err == nil {
		config.Redis.Set(ctx, cacheKey, string(data), config.AppConfig.RedisTTL)
	}

	return &models.OnboardingStateResponse{
		HasCompletedOnboarding: cfg.HasCompletedOnboarding,
		ReminderAutoPrompted:   cfg.ReminderAutoPrompted,
	}, nil
}

// MarkOnboardingCompleted persists the completion flag with majority write
// concern. The completion flow reads this method's return before navigating,
// so the write must be durable when it reports success.
func (s *UserConfigService) MarkOnboardingCompleted(ctx context.Context, userID string) error {
	collection := utils.MajorityCollection(config.MongoDB, config.AppConfig.UserConfigCollection)

	update := bson.M{
		"$set": bson.M{
			"has_completed_onboarding": true,
			"updated_at":               time.Now(),
		},
		"$inc":         bson.M{"version": 1},
		"$setOnInsert": bson.M{"user_id": userID},
	}

	_, err := collection.UpdateOne(ctx, bson.M{"user_id": userID}, update,
		utils.GetUpdateOptionsWithWriteConcern(true))
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("mark_onboarding_completed", "error").Inc()
		s.logger.Error("failed to persist onboarding completion",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
		return fmt.Errorf("failed to persist onboarding completion: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("mark_onboarding_completed", "success").Inc()

	s.InvalidateCache(ctx, userID)
	return nil
}

// InvalidateCache drops the cached config for a user
func (s *UserConfigService) InvalidateCache(ctx context.Context, userID string) {
	if err := config.Redis.Del(ctx, userConfigCacheKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate user config cache",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
	}
}
