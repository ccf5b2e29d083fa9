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

// ConsentHandlers records and reads legal document acceptances
type ConsentHandlers struct {
	service *services.ConsentService
	logger  *logging.SafeLogger
}

func NewConsentHandlers(service *services.ConsentService, logger *logging.SafeLogger) *ConsentHandlers {
	return &ConsentHandlers{
		service: service,
		logger:  logger,
	}
}

// RecordConsent godoc
// @Summary Record document acceptance
// @Description Records that a user accepted the current version of a legal document
// @Tags consent
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param data body models.RecordConsentRequest true "Accepted document"
// @Security ApiKeyAuth
// @Success 201 {object} models.ConsentRecord "Recorded consent"
// @Failure 400 {object} ErrorResponse "Invalid user ID or request body"
// @Failure 404 {object} ErrorResponse "Document not available for locale"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/{id}/consent [post]
func (h *ConsentHandlers) RecordConsent(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "RecordConsent")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "record_consent"),
		attribute.String("service", "consent"),
	)

	ctx, validationSpan := utils.TraceInputValidation(ctx, "user_id", "id")
	userID := c.Param("id")
	if !utils.ValidateUserID(userID) {
		validationSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}
	validationSpan.End()

	ctx, inputSpan := utils.TraceInputParsing(ctx, "record_consent_request")
	var req models.RecordConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(inputSpan, err, map[string]interface{}{
			"error.type": "input_parsing",
			"input.type": "RecordConsentRequest",
		})
		inputSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	utils.AddSpanAttribute(inputSpan, "input.document", string(req.Document))
	utils.AddSpanAttribute(inputSpan, "input.locale", req.Locale)
	inputSpan.End()

	ctx, serviceSpan := utils.TraceExternalService(ctx, "consent_service", "record")
	record, err := h.service.RecordConsent(ctx, userID, req)
	if err != nil {
		utils.RecordErrorInSpan(serviceSpan, err, map[string]interface{}{
			"service.name":      "consent_service",
			"service.operation": "record",
		})
		serviceSpan.End()
		if errors.Is(err, models.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not available for locale"})
			return
		}
		h.logger.Error("failed to record consent",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record consent"})
		return
	}
	serviceSpan.End()

	ctx, auditSpan := utils.TraceAuditLogging(ctx, utils.AuditActionCreate, utils.AuditResourceConsent)
	auditCtx := utils.GetAuditContextFromGin(c, userID)
	if err := utils.LogConsentRecorded(ctx, auditCtx, string(record.Document), record.Locale, record.Version); err != nil {
		h.logger.Warn("failed to log consent audit event", zap.Error(err))
	}
	auditSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusCreated, record)
	responseSpan.End()

	h.logger.Info("RecordConsent completed",
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.String("document", string(record.Document)),
		zap.Duration("total_duration", time.Since(startTime)))
}

// GetConsentStatus godoc
// @Summary Get consent status
// @Description Lists the legal documents a user has accepted, with version and locale
// @Tags consent
// @Produce json
// @Param id path string true "User ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.ConsentStatusResponse "Consent records"
// @Failure 400 {object} ErrorResponse "Invalid user ID"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/{id}/consent [get]
func (h *ConsentHandlers) GetConsentStatus(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetConsentStatus")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "get_consent_status"),
		attribute.String("service", "consent"),
	)

	ctx, validationSpan := utils.TraceInputValidation(ctx, "user_id", "id")
	userID := c.Param("id")
	if !utils.ValidateUserID(userID) {
		validationSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}
	validationSpan.End()

	ctx, serviceSpan := utils.TraceExternalService(ctx, "consent_service", "status")
	status, err := h.service.GetConsentStatus(ctx, userID)
	if err != nil {
		utils.RecordErrorInSpan(serviceSpan, err, map[string]interface{}{
			"service.name":      "consent_service",
			"service.operation": "status",
		})
		serviceSpan.End()
		h.logger.Error("failed to get consent status",
			zap.String("user_id", observability.MaskUserID(userID)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get consent status"})
		return
	}
	serviceSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusOK, status)
	responseSpan.End()

	h.logger.Debug("GetConsentStatus completed",
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.Int("consents", len(status.Consents)),
		zap.Duration("total_duration", time.Since(startTime)))
}
