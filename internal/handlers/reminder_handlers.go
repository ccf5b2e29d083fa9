package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/observability"
	"github.com/mindpage/app-journal/internal/services"
	"github.com/mindpage/app-journal/internal/utils"
)

// ReminderHandlers serves the reminder settings screen
type ReminderHandlers struct {
	service *services.ReminderSettingsService
	logger  *logging.SafeLogger
}

func NewReminderHandlers(service *services.ReminderSettingsService, logger *logging.SafeLogger) *ReminderHandlers {
	return &ReminderHandlers{
		service: service,
		logger:  logger,
	}
}

// GetReminderSettings godoc
// @Summary Get reminder settings
// @Description Returns a user's daily reminder configuration. A user with no settings gets the disabled default time.
// @Tags reminder
// @Produce json
// @Param id path string true "User ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.ReminderSettingsResponse "Reminder settings"
// @Failure 400 {object} ErrorResponse "Invalid user ID"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/{id}/reminder [get]
func (h *ReminderHandlers) GetReminderSettings(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetReminderSettings")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "get_reminder_settings"),
		attribute.String("service", "reminder"),
	)

	ctx, validationSpan := utils.TraceInputValidation(ctx, "user_id", "id")
	userID := c.Param("id")
	if !utils.ValidateUserID(userID) {
		validationSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}
	validationSpan.End()

	ctx, serviceSpan := utils.TraceExternalService(ctx, "reminder_settings_service", "get")
	settings, err := h.service.GetReminderSettings(ctx, userID)
	if err != nil {
		utils.RecordErrorInSpan(serviceSpan, err, map[string]interface{}{
			"service.name":      "reminder_settings_service",
			"service.operation": "get",
		})
		serviceSpan.End()
		h.logger.Error("failed to get reminder settings",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get reminder settings"})
		return
	}
	serviceSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusOK, settings)
	responseSpan.End()

	h.logger.Debug("GetReminderSettings completed",
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.Duration("total_duration", time.Since(startTime)))
}

// UpdateReminderSettings godoc
// @Summary Update reminder settings
// @Description Updates a user's daily reminder configuration from the settings screen
// @Tags reminder
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param data body models.UpdateReminderRequest true "Reminder settings"
// @Security ApiKeyAuth
// @Success 200 {object} models.ReminderSettingsResponse "Updated settings"
// @Failure 400 {object} ErrorResponse "Invalid user ID or reminder time"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/{id}/reminder [put]
func (h *ReminderHandlers) UpdateReminderSettings(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateReminderSettings")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "update_reminder_settings"),
		attribute.String("service", "reminder"),
	)

	ctx, validationSpan := utils.TraceInputValidation(ctx, "user_id", "id")
	userID := c.Param("id")
	if !utils.ValidateUserID(userID) {
		validationSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}
	validationSpan.End()

	ctx, inputSpan := utils.TraceInputParsing(ctx, "update_reminder_request")
	var req models.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(inputSpan, err, map[string]interface{}{
			"error.type": "input_parsing",
			"input.type": "UpdateReminderRequest",
		})
		inputSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	inputSpan.End()

	// previous state for the audit trail
	oldSettings, err := h.service.GetReminderSettings(ctx, userID)
	if err != nil {
		h.logger.Warn("failed to read previous reminder settings for audit",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
	}

	ctx, serviceSpan := utils.TraceExternalService(ctx, "reminder_settings_service", "update")
	settings, err := h.service.UpdateReminderSettings(ctx, userID, req)
	if err != nil {
		utils.RecordErrorInSpan(serviceSpan, err, map[string]interface{}{
			"service.name":      "reminder_settings_service",
			"service.operation": "update",
		})
		serviceSpan.End()
		if errors.Is(err, models.ErrInvalidReminderTime) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reminder time out of range"})
			return
		}
		h.logger.Error("failed to update reminder settings",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update reminder settings"})
		return
	}
	serviceSpan.End()

	ctx, auditSpan := utils.TraceAuditLogging(ctx, utils.AuditActionUpdate, utils.AuditResourceReminderSettings)
	auditCtx := utils.GetAuditContextFromGin(c, userID)
	if err := utils.LogReminderSettingsUpdate(ctx, auditCtx, oldSettings, settings); err != nil {
		h.logger.Warn("failed to log reminder settings audit event", zap.Error(err))
	}
	auditSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusOK, settings)
	responseSpan.End()

	h.logger.Info("UpdateReminderSettings completed",
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.Bool("enabled", settings.Enabled),
		zap.Duration("total_duration", time.Since(startTime)))
}
