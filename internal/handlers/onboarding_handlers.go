package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/observability"
	"github.com/mindpage/app-journal/internal/onboarding"
	"github.com/mindpage/app-journal/internal/services"
	"github.com/mindpage/app-journal/internal/utils"
)

// OnboardingHandlers serves onboarding state and the completion flow
type OnboardingHandlers struct {
	userConfigs *services.UserConfigService
	reminders   *services.ReminderSettingsService
	logger      *logging.SafeLogger
}

func NewOnboardingHandlers(userConfigs *services.UserConfigService, reminders *services.ReminderSettingsService, logger *logging.SafeLogger) *OnboardingHandlers {
	return &OnboardingHandlers{
		userConfigs: userConfigs,
		reminders:   reminders,
		logger:      logger,
	}
}

// GetOnboardingState godoc
// @Summary Get onboarding state
// @Description Returns the persisted onboarding flags for a user. A user with no record has completed nothing.
// @Tags onboarding
// @Produce json
// @Param id path string true "User ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.OnboardingStateResponse "Onboarding state"
// @Failure 400 {object} ErrorResponse "Invalid user ID"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/{id}/onboarding [get]
func (h *OnboardingHandlers) GetOnboardingState(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetOnboardingState")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "get_onboarding_state"),
		attribute.String("service", "onboarding"),
	)

	ctx, validationSpan := utils.TraceInputValidation(ctx, "user_id", "id")
	userID := c.Param("id")
	if !utils.ValidateUserID(userID) {
		validationSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}
	validationSpan.End()

	ctx, serviceSpan := utils.TraceExternalService(ctx, "user_config_service", "get_onboarding_state")
	state, err := h.userConfigs.GetOnboardingState(ctx, userID)
	if err != nil {
		utils.RecordErrorInSpan(serviceSpan, err, map[string]interface{}{
			"service.name":      "user_config_service",
			"service.operation": "get_onboarding_state",
		})
		serviceSpan.End()
		h.logger.Error("failed to get onboarding state",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get onboarding state"})
		return
	}
	serviceSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusOK, state)
	responseSpan.End()

	h.logger.Debug("GetOnboardingState completed",
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.Bool("completed", state.HasCompletedOnboarding),
		zap.Duration("total_duration", time.Since(startTime)))
}

// CompleteOnboarding godoc
// @Summary Complete onboarding
// @Description Runs the onboarding completion flow for the given choice. The allow choice carries the permission outcome the client observed from the OS dialog.
// @Tags onboarding
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param data body models.CompleteOnboardingRequest true "Completion choice"
// @Security ApiKeyAuth
// @Success 200 {object} models.CompleteOnboardingResponse "Completion effects"
// @Failure 400 {object} ErrorResponse "Invalid user ID or choice"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/{id}/onboarding/complete [post]
func (h *OnboardingHandlers) CompleteOnboarding(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CompleteOnboarding")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "complete_onboarding"),
		attribute.String("service", "onboarding"),
	)

	ctx, validationSpan := utils.TraceInputValidation(ctx, "user_id", "id")
	userID := c.Param("id")
	if !utils.ValidateUserID(userID) {
		validationSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}
	validationSpan.End()

	ctx, inputSpan := utils.TraceInputParsing(ctx, "complete_onboarding_request")
	var req models.CompleteOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(inputSpan, err, map[string]interface{}{
			"error.type": "input_parsing",
			"input.type": "CompleteOnboardingRequest",
		})
		inputSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if !req.Choice.Valid() {
		inputSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid choice: must be skip or allow"})
		return
	}
	utils.AddSpanAttribute(inputSpan, "input.choice", string(req.Choice))
	utils.AddSpanAttribute(inputSpan, "input.permission_granted", req.PermissionGranted)
	inputSpan.End()

	sequencer := onboarding.NewSequencer(
		h.userConfigs,
		h.reminders,
		services.ClientPermissionService{Granted: req.PermissionGranted},
		services.NewScreenNavigator(h.logger),
	)

	ctx, logicSpan := utils.TraceBusinessLogic(ctx, "onboarding_completion_sequence")
	result, err := sequencer.Complete(ctx, userID, req.Choice)
	if err != nil {
		utils.RecordErrorInSpan(logicSpan, err, map[string]interface{}{
			"logic.type": "onboarding_completion_sequence",
		})
		logicSpan.End()
		h.logger.Error("onboarding completion failed",
			zap.String("user_id", observability.MaskUserID(userID)),
			zap.String("choice", string(req.Choice)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete onboarding"})
		return
	}
	logicSpan.End()

	observability.OnboardingCompletions.WithLabelValues(
		string(req.Choice), strconv.FormatBool(result.ReminderEnabled)).Inc()

	ctx, auditSpan := utils.TraceAuditLogging(ctx, utils.AuditActionUpdate, utils.AuditResourceUserConfig)
	auditCtx := utils.GetAuditContextFromGin(c, userID)
	if err := utils.LogOnboardingCompletion(ctx, auditCtx, string(req.Choice), req.PermissionGranted); err != nil {
		h.logger.Warn("failed to log onboarding completion audit event", zap.Error(err))
	}
	auditSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusOK, models.CompleteOnboardingResponse{
		HasCompletedOnboarding: true,
		ReminderEnabled:        result.ReminderEnabled,
		NextScreen:             result.NextScreen,
	})
	responseSpan.End()

	h.logger.Info("CompleteOnboarding completed",
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.String("choice", string(req.Choice)),
		zap.Bool("reminder_enabled", result.ReminderEnabled),
		zap.Duration("total_duration", time.Since(startTime)))
}
