package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/services"
	"github.com/mindpage/app-journal/internal/utils"
)

// LegalHandlers serves rendered legal documents and the locale list
type LegalHandlers struct {
	service *services.LegalDocumentService
	logger  *logging.SafeLogger
}

func NewLegalHandlers(service *services.LegalDocumentService, logger *logging.SafeLogger) *LegalHandlers {
	return &LegalHandlers{
		service: service,
		logger:  logger,
	}
}

// GetPrivacyPolicy godoc
// @Summary Get rendered privacy policy
// @Description Returns the privacy policy rendered as an ordered node list for the request locale. A locale with no document yields a single loading node.
// @Tags legal
// @Produce json
// @Param locale query string false "Locale tag (falls back to Accept-Language, then the default locale)"
// @Success 200 {object} models.RenderedDocumentResponse "Rendered document"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /legal/privacy-policy [get]
func (h *LegalHandlers) GetPrivacyPolicy(c *gin.Context) {
	h.renderDocument(c, "GetPrivacyPolicy", models.LegalDocumentPrivacyPolicy)
}

// GetTermsOfService godoc
// @Summary Get rendered terms of service
// @Description Returns the terms of service rendered as an ordered node list for the request locale. A locale with no document yields a single loading node.
// @Tags legal
// @Produce json
// @Param locale query string false "Locale tag (falls back to Accept-Language, then the default locale)"
// @Success 200 {object} models.RenderedDocumentResponse "Rendered document"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /legal/terms-of-service [get]
func (h *LegalHandlers) GetTermsOfService(c *gin.Context) {
	h.renderDocument(c, "GetTermsOfService", models.LegalDocumentTermsOfService)
}

func (h *LegalHandlers) renderDocument(c *gin.Context, operation string, kind models.LegalDocumentKind) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), operation)
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.String("service", "legal"),
		attribute.String("document", string(kind)),
	)

	ctx, localeSpan := utils.TraceBusinessLogic(ctx, "resolve_locale")
	locale := c.Query("locale")
	if locale == "" {
		locale = h.service.NegotiateLocale(c.GetHeader("Accept-Language"))
	}
	utils.AddSpanAttribute(localeSpan, "locale", locale)
	localeSpan.End()

	ctx, serviceSpan := utils.TraceExternalService(ctx, "legal_document_service", "render")
	resp, err := h.service.Render(ctx, kind, locale)
	if err != nil {
		utils.RecordErrorInSpan(serviceSpan, err, map[string]interface{}{
			"service.name":      "legal_document_service",
			"service.operation": "render",
		})
		serviceSpan.End()
		h.logger.Error("failed to render legal document",
			zap.String("document", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render document"})
		return
	}
	utils.AddSpanAttribute(serviceSpan, "document.loading", resp.Loading)
	serviceSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusOK, resp)
	responseSpan.End()

	h.logger.Debug(operation+" completed",
		zap.String("locale", resp.Locale),
		zap.Bool("loading", resp.Loading),
		zap.Int("nodes", len(resp.Nodes)),
		zap.Duration("total_duration", time.Since(startTime)))
}

// GetLocales godoc
// @Summary List available locales
// @Description Lists the locales carrying a complete legal document set
// @Tags legal
// @Produce json
// @Success 200 {object} models.LocalesResponse "Available locales"
// @Router /legal/locales [get]
func (h *LegalHandlers) GetLocales(c *gin.Context) {
	_, span := otel.Tracer("").Start(c.Request.Context(), "GetLocales")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "get_locales"),
		attribute.String("service", "legal"),
	)

	c.JSON(http.StatusOK, h.service.Locales())
}
