package services

import (
	"context"
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

// ReminderSettingsService persists daily reminder configuration and the
// auto-prompted flag. It implements the completion flow's reminder service.
type ReminderSettingsService struct {
	userConfigs *UserConfigService
	logger      *logging.SafeLogger
}

// NewReminderSettingsService creates a new reminder settings service
func NewReminderSettingsService(userConfigs *UserConfigService, logger *logging.SafeLogger) *ReminderSettingsService {
	return &ReminderSettingsService{
		userConfigs: userConfigs,
		logger:      logger,
	}
}

// MarkReminderAutoPrompted persists the flag preventing a later launch from
// re-triggering the permission prompt. The completion flow writes it before
// the permission request is issued.
func (s *ReminderSettingsService) MarkReminderAutoPrompted(ctx context.Context, userID string) error {
	collection := utils.MajorityCollection(config.MongoDB, config.AppConfig.UserConfigCollection)

	update := bson.M{
		"$set": bson.M{
			"reminder_auto_prompted": true,
			"updated_at":             time.Now(),
		},
		"$setOnInsert": bson.M{"user_id": userID},
	}

	_, err := collection.UpdateOne(ctx, bson.M{"user_id": userID}, update,
		utils.GetUpdateOptionsWithWriteConcern(true))
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("mark_reminder_auto_prompted", "error").Inc()
		return fmt.Errorf("failed to mark reminder auto-prompted: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("mark_reminder_auto_prompted", "success").Inc()

	s.userConfigs.InvalidateCache(ctx, userID)
	return nil
}

// ApplyReminderSettings upserts a user's reminder configuration
func (s *ReminderSettingsService) ApplyReminderSettings(ctx context.Context, settings models.ReminderSettings) error {
	if settings.Hour < 0 || settings.Hour > 23 || settings.Minute < 0 || settings.Minute > 59 {
		return fmt.Errorf("hour %d minute %d: %w", settings.Hour, settings.Minute, models.ErrInvalidReminderTime)
	}

	collection := config.MongoDB.Collection(config.AppConfig.ReminderSettingsCollection)
	update := bson.M{
		"$set": bson.M{
			"enabled":    settings.Enabled,
			"hour":       settings.Hour,
			"minute":     settings.Minute,
			"updated_at": time.Now(),
		},
		"$setOnInsert": bson.M{"user_id": settings.UserID},
	}

	_, err := utils.UpsertOneWithTimeout(ctx, collection, bson.M{"user_id": settings.UserID}, update, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("apply_reminder_settings", "error").Inc()
		s.logger.Error("failed to apply reminder settings",
			zap.String("user_id", observability.MaskUserID(settings.UserID)), zap.Error(err))
		return fmt.Errorf("failed to apply reminder settings: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("apply_reminder_settings", "success").Inc()

	s.logger.Info("applied reminder settings",
		zap.String("user_id", observability.MaskUserID(settings.UserID)),
		zap.Bool("enabled", settings.Enabled),
		zap.Int("hour", settings.Hour),
		zap.Int("minute", settings.Minute))
	return nil
}

// GetReminderSettings returns a user's reminder configuration. A user with no
// settings document gets the disabled default time.
func (s *ReminderSettingsService) GetReminderSettings(ctx context.Context, userID string) (*models.ReminderSettingsResponse, error) {
	var settings models.ReminderSettings
	collection := config.MongoDB.Collection(config.AppConfig.ReminderSettingsCollection)
	err := utils.FindOneWithTimeout(ctx, collection, bson.M{"user_id": userID}, &settings, utils.DefaultQueryTimeout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.ReminderSettingsResponse{
				Enabled: false,
				Hour:    models.DefaultReminderHour,
				Minute:  models.DefaultReminderMinute,
			}, nil
		}
		return nil, fmt.Errorf("failed to get reminder settings: %w", err)
	}

	return &models.ReminderSettingsResponse{
		Enabled: settings.Enabled,
		Hour:    settings.Hour,
		Minute:  settings.Minute,
	}, nil
}

// UpdateReminderSettings applies an explicit settings change from the
// settings screen
func (s *ReminderSettingsService) UpdateReminderSettings(ctx context.Context, userID string, req models.UpdateReminderRequest) (*models.ReminderSettingsResponse, error) {
	settings := models.ReminderSettings{
		UserID:  userID,
		Enabled: req.Enabled,
		Hour:    req.Hour,
		Minute:  req.Minute,
	}
	if err := s.ApplyReminderSettings(ctx, settings); err != nil {
		return nil, err
	}
	return &models.ReminderSettingsResponse{
		Enabled: settings.Enabled,
		Hour:    settings.Hour,
		Minute:  settings.Minute,
	}, nil
}
